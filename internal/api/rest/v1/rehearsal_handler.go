package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// RehearsalHandler defines the interface for templates, rehearsals,
// attendance and the holiday calendar
type RehearsalHandler interface {
	CreateTemplate(ctx *gin.Context)
	ListTemplates(ctx *gin.Context)
	GetTemplate(ctx *gin.Context)
	UpdateTemplate(ctx *gin.Context)
	DeleteTemplate(ctx *gin.Context)
	Instantiate(ctx *gin.Context)
	GenerateSeries(ctx *gin.Context)

	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	Delete(ctx *gin.Context)
	Respond(ctx *gin.Context)
	Attendance(ctx *gin.Context)
	OwnResponses(ctx *gin.Context)
	PlanPDF(ctx *gin.Context)

	ListHolidays(ctx *gin.Context)
	SyncHolidays(ctx *gin.Context)
}

// PublicHolidayYears is how many years around the current one the public
// holiday listing serves.
const PublicHolidayYears = 5

type rehearsalHandler struct {
	templateService  rehearsals.TemplateService
	rehearsalService rehearsals.Service
	holidayService   holidays.Service
	location         *time.Location
	now              func() time.Time
}

// NewRehearsalHandler creates a new RehearsalHandler. Dates in requests are
// calendar days in loc.
func NewRehearsalHandler(templateService rehearsals.TemplateService, rehearsalService rehearsals.Service, holidayService holidays.Service, loc *time.Location, now func() time.Time) RehearsalHandler {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &rehearsalHandler{
		templateService:  templateService,
		rehearsalService: rehearsalService,
		holidayService:   holidayService,
		location:         loc,
		now:              now,
	}
}

func (handler *rehearsalHandler) CreateTemplate(ctx *gin.Context) {
	var request TemplateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Vorlage.", err)
		return
	}
	t, err := handler.templateService.Create(ctx.Request.Context(), principalFrom(ctx), request.toDomain())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toTemplateResponse(t))
}

func (handler *rehearsalHandler) ListTemplates(ctx *gin.Context) {
	list, err := handler.templateService.List(ctx.Request.Context(), principalFrom(ctx), ctx.Query("activeOnly") == "true")
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]TemplateResponse, len(list))
	for i, t := range list {
		response[i] = toTemplateResponse(t)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *rehearsalHandler) GetTemplate(ctx *gin.Context) {
	t, err := handler.templateService.GetByID(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toTemplateResponse(t))
}

func (handler *rehearsalHandler) UpdateTemplate(ctx *gin.Context) {
	var request TemplateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Vorlage.", err)
		return
	}
	t, err := handler.templateService.Update(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), request.toDomain())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toTemplateResponse(t))
}

func (handler *rehearsalHandler) DeleteTemplate(ctx *gin.Context) {
	if err := handler.templateService.Delete(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (handler *rehearsalHandler) Instantiate(ctx *gin.Context) {
	var request InstantiateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Anfrage.", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Bitte gib ein Datum im Format JJJJ-MM-TT an.", err)
		return
	}
	date, err := httputil.ParseDate(request.Date, handler.location)
	if err != nil {
		respondBadRequest(ctx, "Ungültiges Datum.", err)
		return
	}

	r, err := handler.templateService.Instantiate(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), date)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toRehearsalResponse(r))
}

// GenerateSeries handles the POST request that fills a date range from a template
// @Summary Generate a rehearsal series
// @Description Creates one rehearsal per matching weekday in [from, to]. Holidays and days already generated from the template are skipped and reported.
// @Tags Rehearsal
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param requestBody body GenerateSeriesRequest true "Date range"
// @Success 201 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /rehearsal-templates/{id}/series [post]
func (handler *rehearsalHandler) GenerateSeries(ctx *gin.Context) {
	var request GenerateSeriesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Anfrage.", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Bitte gib Beginn und Ende im Format JJJJ-MM-TT an.", err)
		return
	}
	from, err := httputil.ParseDate(request.From, handler.location)
	if err != nil {
		respondBadRequest(ctx, "Ungültiger Beginn.", err)
		return
	}
	to, err := httputil.ParseDate(request.To, handler.location)
	if err != nil {
		respondBadRequest(ctx, "Ungültiges Ende.", err)
		return
	}

	res, err := handler.templateService.GenerateSeries(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), from, to)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toSeriesResponse(res))
}

func (handler *rehearsalHandler) Create(ctx *gin.Context) {
	var request RehearsalRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Probe.", err)
		return
	}
	r, err := handler.rehearsalService.Create(ctx.Request.Context(), principalFrom(ctx), request.toDomain())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toRehearsalResponse(r))
}

// rangeQuery reads from/to (calendar days, to inclusive), showId and
// includeCancelled from the query string.
func (handler *rehearsalHandler) rangeQuery(ctx *gin.Context) (*rehearsals.Query, bool) {
	query := &rehearsals.Query{
		ShowID:           ctx.Query("showId"),
		IncludeCancelled: ctx.Query("includeCancelled") == "true",
	}
	if from := ctx.Query("from"); len(from) > 0 {
		d, err := httputil.ParseDate(from, handler.location)
		if err != nil {
			respondBadRequest(ctx, "Ungültiger Beginn.", err)
			return nil, false
		}
		query.From = d
	}
	if to := ctx.Query("to"); len(to) > 0 {
		d, err := httputil.ParseDate(to, handler.location)
		if err != nil {
			respondBadRequest(ctx, "Ungültiges Ende.", err)
			return nil, false
		}
		query.To = d.AddDate(0, 0, 1)
	}
	return query, true
}

func (handler *rehearsalHandler) List(ctx *gin.Context) {
	query, ok := handler.rangeQuery(ctx)
	if !ok {
		return
	}
	list, err := handler.rehearsalService.List(ctx.Request.Context(), principalFrom(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toRehearsalResponses(list))
}

func (handler *rehearsalHandler) GetByID(ctx *gin.Context) {
	r, err := handler.rehearsalService.GetByID(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toRehearsalResponse(r))
}

func (handler *rehearsalHandler) Update(ctx *gin.Context) {
	var request RehearsalRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Probe.", err)
		return
	}
	r, err := handler.rehearsalService.Update(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), request.toDomain())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toRehearsalResponse(r))
}

func (handler *rehearsalHandler) Cancel(ctx *gin.Context) {
	r, err := handler.rehearsalService.Cancel(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toRehearsalResponse(r))
}

func (handler *rehearsalHandler) Delete(ctx *gin.Context) {
	if err := handler.rehearsalService.Delete(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (handler *rehearsalHandler) Respond(ctx *gin.Context) {
	var request RespondRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Antwort.", err)
		return
	}
	a, err := handler.rehearsalService.Respond(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), rehearsals.Response(request.Response), request.Note)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toAttendanceResponses([]*rehearsals.Attendance{a})[0])
}

func (handler *rehearsalHandler) Attendance(ctx *gin.Context) {
	overview, err := handler.rehearsalService.Attendance(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, AttendanceOverviewResponse{
		Rehearsal: toRehearsalResponse(overview.Rehearsal),
		Yes:       overview.Yes,
		No:        overview.No,
		Maybe:     overview.Maybe,
		Responses: toAttendanceResponses(overview.Responses),
	})
}

func (handler *rehearsalHandler) OwnResponses(ctx *gin.Context) {
	query, ok := handler.rangeQuery(ctx)
	if !ok {
		return
	}
	list, err := handler.rehearsalService.OwnResponses(ctx.Request.Context(), principalFrom(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toAttendanceResponses(list))
}

// PlanPDF handles the GET request for the printable rehearsal plan
// @Summary Download a rehearsal plan
// @Tags Rehearsal
// @Produce application/pdf
// @Param showId query string false "Show ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /rehearsals/plan.pdf [get]
func (handler *rehearsalHandler) PlanPDF(ctx *gin.Context) {
	query, ok := handler.rangeQuery(ctx)
	if !ok {
		return
	}
	pdf, err := handler.rehearsalService.PlanPDF(ctx.Request.Context(), principalFrom(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", httputil.ContentDisposition("probenplan.pdf"))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// ListHolidays is public and syncs the year when nothing is stored yet. Only
// years within PublicHolidayYears of the current one are served.
func (handler *rehearsalHandler) ListHolidays(ctx *gin.Context) {
	current := handler.now().In(handler.location).Year()
	year := current
	if y := ctx.Query("year"); len(y) > 0 {
		n, err := strconv.Atoi(y)
		if err != nil {
			respondBadRequest(ctx, "Ungültiges Jahr.", err)
			return
		}
		year = n
	}
	if year < current-PublicHolidayYears || year > current+PublicHolidayYears {
		respondBadRequest(ctx, fmt.Sprintf("Feiertage gibt es nur für %d bis %d.", current-PublicHolidayYears, current+PublicHolidayYears), nil)
		return
	}
	list, err := handler.holidayService.List(ctx.Request.Context(), year)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toHolidayResponses(list))
}

func (handler *rehearsalHandler) SyncHolidays(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		respondBadRequest(ctx, "Ungültiges Jahr.", err)
		return
	}
	res, err := handler.holidayService.Sync(ctx.Request.Context(), principalFrom(ctx), year)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, SyncHolidaysResponse{
		Year:     res.Year,
		Source:   string(res.Source),
		Holidays: toHolidayResponses(res.Holidays),
	})
}
