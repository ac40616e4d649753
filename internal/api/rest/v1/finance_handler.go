package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// FinanceHandler defines the interface for budgets and bookings
type FinanceHandler interface {
	CreateBudget(ctx *gin.Context)
	ListBudgets(ctx *gin.Context)
	UpdateBudget(ctx *gin.Context)
	DeleteBudget(ctx *gin.Context)

	CreateEntry(ctx *gin.Context)
	ListEntries(ctx *gin.Context)
	GetEntry(ctx *gin.Context)
	UpdateEntry(ctx *gin.Context)
	DeleteEntry(ctx *gin.Context)
	Approve(ctx *gin.Context)
	Reject(ctx *gin.Context)

	Summary(ctx *gin.Context)
	ExportCSV(ctx *gin.Context)
}

type financeHandler struct {
	financeService finance.Service
	location       *time.Location
	now            func() time.Time
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService finance.Service, loc *time.Location, now func() time.Time) FinanceHandler {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &financeHandler{
		financeService: financeService,
		location:       loc,
		now:            now,
	}
}

func (handler *financeHandler) CreateBudget(ctx *gin.Context) {
	var request BudgetRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültiges Budget.", err)
		return
	}
	b, err := handler.financeService.CreateBudget(ctx.Request.Context(), principalFrom(ctx), request.toDomain())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toBudgetResponse(b))
}

func (handler *financeHandler) ListBudgets(ctx *gin.Context) {
	list, err := handler.financeService.ListBudgets(ctx.Request.Context(), principalFrom(ctx), ctx.Query("showId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]BudgetResponse, len(list))
	for i, b := range list {
		response[i] = toBudgetResponse(b)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *financeHandler) UpdateBudget(ctx *gin.Context) {
	var request BudgetRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültiges Budget.", err)
		return
	}
	b, err := handler.financeService.UpdateBudget(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), request.toDomain())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toBudgetResponse(b))
}

func (handler *financeHandler) DeleteBudget(ctx *gin.Context) {
	if err := handler.financeService.DeleteBudget(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// bindEntry decodes and converts an entry body, answering 400 itself.
func bindEntry(ctx *gin.Context) (*finance.EntryInput, bool) {
	var request EntryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Buchung.", err)
		return nil, false
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Bitte gib das Buchungsdatum im Format JJJJ-MM-TT an.", err)
		return nil, false
	}
	in, err := request.toDomain()
	if err != nil {
		respondBadRequest(ctx, "Ungültiges Buchungsdatum.", err)
		return nil, false
	}
	return in, true
}

// CreateEntry handles the POST request for a new booking
// @Summary Book income or an expense
// @Description Expenses up to the configured threshold are approved on creation, larger ones wait for a second person.
// @Tags Finance
// @Accept json
// @Produce json
// @Param requestBody body EntryRequest true "Booking"
// @Success 201 {object} EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /finance/entries [post]
func (handler *financeHandler) CreateEntry(ctx *gin.Context) {
	in, ok := bindEntry(ctx)
	if !ok {
		return
	}
	e, err := handler.financeService.CreateEntry(ctx.Request.Context(), principalFrom(ctx), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toEntryResponse(e))
}

// entryQuery reads showId, kind, status, from, to (inclusive days), limit
// and offset.
func (handler *financeHandler) entryQuery(ctx *gin.Context) (*finance.EntryQuery, bool) {
	query := &finance.EntryQuery{
		ShowID: ctx.Query("showId"),
		Kind:   finance.Kind(ctx.Query("kind")),
		Status: finance.Status(ctx.Query("status")),
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
		query.To = d
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = httputil.ConvertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = httputil.ConvertToInt(offset)
	}
	return query, true
}

func (handler *financeHandler) ListEntries(ctx *gin.Context) {
	query, ok := handler.entryQuery(ctx)
	if !ok {
		return
	}
	list, err := handler.financeService.ListEntries(ctx.Request.Context(), principalFrom(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]EntryResponse, len(list))
	for i, e := range list {
		response[i] = toEntryResponse(e)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *financeHandler) GetEntry(ctx *gin.Context) {
	e, err := handler.financeService.GetEntry(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toEntryResponse(e))
}

func (handler *financeHandler) UpdateEntry(ctx *gin.Context) {
	in, ok := bindEntry(ctx)
	if !ok {
		return
	}
	e, err := handler.financeService.UpdateEntry(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toEntryResponse(e))
}

func (handler *financeHandler) DeleteEntry(ctx *gin.Context) {
	if err := handler.financeService.DeleteEntry(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (handler *financeHandler) Approve(ctx *gin.Context) {
	e, err := handler.financeService.Approve(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toEntryResponse(e))
}

func (handler *financeHandler) Reject(ctx *gin.Context) {
	var request RejectEntryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Anfrage.", err)
		return
	}
	e, err := handler.financeService.Reject(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), request.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toEntryResponse(e))
}

func (handler *financeHandler) Summary(ctx *gin.Context) {
	summary, err := handler.financeService.Summary(ctx.Request.Context(), principalFrom(ctx), ctx.Query("showId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toSummaryResponse(summary))
}

// ExportCSV handles the GET request for the bookings as a spreadsheet file
// @Summary Export bookings as CSV
// @Tags Finance
// @Produce text/csv
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Router /finance/entries/export.csv [get]
func (handler *financeHandler) ExportCSV(ctx *gin.Context) {
	query, ok := handler.entryQuery(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := handler.financeService.ExportCSV(ctx.Request.Context(), principalFrom(ctx), query, &buf); err != nil {
		respondError(ctx, err)
		return
	}

	filename := fmt.Sprintf("buchungen-%s.csv", handler.now().In(handler.location).Format(time.DateOnly))
	ctx.Header("Content-Disposition", httputil.ContentDisposition(filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
