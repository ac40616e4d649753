package v1

import (
	"net/http"
	"strings"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/measurements"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// MemberHandler defines the interface for the member directory and the
// per-member data (measurements, dietary restrictions, photo consent)
type MemberHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	UpdateRoles(ctx *gin.Context)
	SetActive(ctx *gin.Context)
	GetProfile(ctx *gin.Context)

	ListMeasurements(ctx *gin.Context)
	ListAllMeasurements(ctx *gin.Context)
	RecordMeasurements(ctx *gin.Context)
	DeleteMeasurement(ctx *gin.Context)

	ListOwnDietary(ctx *gin.Context)
	CreateDietary(ctx *gin.Context)
	UpdateDietary(ctx *gin.Context)
	DeleteDietary(ctx *gin.Context)
	CateringOverview(ctx *gin.Context)

	GetOwnConsent(ctx *gin.Context)
	SubmitConsent(ctx *gin.Context)
	WithdrawConsent(ctx *gin.Context)
	ListPendingConsents(ctx *gin.Context)
	ReviewConsent(ctx *gin.Context)
}

type memberHandler struct {
	memberService      members.Service
	onboardingService  onboarding.Service
	measurementService measurements.Service
	dietaryService     dietary.Service
	consentService     consent.Service
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(
	memberService members.Service,
	onboardingService onboarding.Service,
	measurementService measurements.Service,
	dietaryService dietary.Service,
	consentService consent.Service,
) MemberHandler {
	return &memberHandler{
		memberService:      memberService,
		onboardingService:  onboardingService,
		measurementService: measurementService,
		dietaryService:     dietaryService,
		consentService:     consentService,
	}
}

// List handles the GET request for the member directory
// @Summary List members
// @Description Members can be filtered by search term and role. Inactive members are only listed for members.manage.
// @Tags Member
// @Produce json
// @Param search query string false "Name or email fragment"
// @Param role query string false "Role"
// @Param includeInactive query bool false "Include deactivated members"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} MemberResponse
// @Failure 403 {object} ErrorResponse
// @Router /members [get]
func (handler *memberHandler) List(ctx *gin.Context) {
	query := members.NewUserQuery()
	query.Search = strings.TrimSpace(ctx.Query("search"))
	query.Role = access.Role(ctx.Query("role"))
	query.IncludeInactive = ctx.Query("includeInactive") == "true"
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = httputil.ConvertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = httputil.ConvertToInt(offset)
	}

	list, err := handler.memberService.List(ctx.Request.Context(), principalFrom(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]MemberResponse, len(list))
	for i, u := range list {
		response[i] = toMemberResponse(u)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *memberHandler) GetByID(ctx *gin.Context) {
	user, err := handler.memberService.GetByID(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMemberResponse(user))
}

func (handler *memberHandler) UpdateRoles(ctx *gin.Context) {
	var request UpdateRolesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Rollenliste.", err)
		return
	}

	user, err := handler.memberService.UpdateRoles(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), stringsToRoles(request.Roles))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMemberResponse(user))
}

func (handler *memberHandler) SetActive(ctx *gin.Context) {
	var request SetActiveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Anfrage.", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Bitte gib an, ob das Konto aktiv sein soll.", err)
		return
	}

	user, err := handler.memberService.SetActive(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), *request.Active)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMemberResponse(user))
}

func (handler *memberHandler) GetProfile(ctx *gin.Context) {
	profile, err := handler.onboardingService.GetProfile(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toProfileResponse(profile))
}

func (handler *memberHandler) ListMeasurements(ctx *gin.Context) {
	list, err := handler.measurementService.ListForUser(ctx.Request.Context(), principalFrom(ctx), memberID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMeasurementResponses(list))
}

func (handler *memberHandler) ListAllMeasurements(ctx *gin.Context) {
	list, err := handler.measurementService.ListAll(ctx.Request.Context(), principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMeasurementResponses(list))
}

// RecordMeasurements handles the PUT request that upserts measurements
// @Summary Record measurements of a member
// @Description Stores one value per kind. Members may record their own values, measurements.manage may record anyone's.
// @Tags Member
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param requestBody body RecordMeasurementsRequest true "Measurements"
// @Success 200 {array} MeasurementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /members/{id}/measurements [put]
func (handler *memberHandler) RecordMeasurements(ctx *gin.Context) {
	var request RecordMeasurementsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Maße.", err)
		return
	}

	list, err := handler.measurementService.Record(ctx.Request.Context(), principalFrom(ctx), memberID(ctx), request.Measurements)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMeasurementResponses(list))
}

func (handler *memberHandler) DeleteMeasurement(ctx *gin.Context) {
	kind := measurements.Kind(ctx.Param("kind"))
	if err := handler.measurementService.Delete(ctx.Request.Context(), principalFrom(ctx), memberID(ctx), kind); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (handler *memberHandler) ListOwnDietary(ctx *gin.Context) {
	list, err := handler.dietaryService.ListOwn(ctx.Request.Context(), principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]DietaryResponse, len(list))
	for i, r := range list {
		response[i] = toDietaryResponse(r)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *memberHandler) CreateDietary(ctx *gin.Context) {
	var request DietaryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Angaben.", err)
		return
	}

	in := request.toDomain()
	r, err := handler.dietaryService.Create(ctx.Request.Context(), principalFrom(ctx), &in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toDietaryResponse(r))
}

func (handler *memberHandler) UpdateDietary(ctx *gin.Context) {
	var request DietaryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Angaben.", err)
		return
	}

	in := request.toDomain()
	r, err := handler.dietaryService.Update(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), &in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toDietaryResponse(r))
}

func (handler *memberHandler) DeleteDietary(ctx *gin.Context) {
	if err := handler.dietaryService.Delete(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CateringOverview handles the GET request for the aggregated dietary list
// @Summary Catering overview
// @Description Restrictions grouped by label with member counts, severest first.
// @Tags Member
// @Produce json
// @Success 200 {array} CateringItemResponse
// @Failure 403 {object} ErrorResponse
// @Router /dietary/catering [get]
func (handler *memberHandler) CateringOverview(ctx *gin.Context) {
	items, err := handler.dietaryService.CateringOverview(ctx.Request.Context(), principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]CateringItemResponse, len(items))
	for i, item := range items {
		notes := item.Notes
		if notes == nil {
			notes = []string{}
		}
		response[i] = CateringItemResponse{Label: item.Label, Count: item.Count, Severity: string(item.Severity), Notes: notes}
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *memberHandler) GetOwnConsent(ctx *gin.Context) {
	c, err := handler.consentService.GetOwn(ctx.Request.Context(), principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toConsentResponse(c))
}

func (handler *memberHandler) SubmitConsent(ctx *gin.Context) {
	var request ConsentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Einwilligung.", err)
		return
	}

	c, err := handler.consentService.Submit(ctx.Request.Context(), principalFrom(ctx), &consent.Submission{
		Consents:     request.Consents,
		GuardianName: request.GuardianName,
		Notes:        request.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toConsentResponse(c))
}

func (handler *memberHandler) WithdrawConsent(ctx *gin.Context) {
	c, err := handler.consentService.Withdraw(ctx.Request.Context(), principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toConsentResponse(c))
}

func (handler *memberHandler) ListPendingConsents(ctx *gin.Context) {
	list, err := handler.consentService.ListPending(ctx.Request.Context(), principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]ConsentResponse, len(list))
	for i, c := range list {
		response[i] = toConsentResponse(c)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *memberHandler) ReviewConsent(ctx *gin.Context) {
	var request ReviewConsentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Prüfung.", err)
		return
	}

	c, err := handler.consentService.Review(ctx.Request.Context(), principalFrom(ctx), ctx.Param("userId"), request.Approve, request.Note)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toConsentResponse(c))
}
