package v1

import (
	"net/http"

	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/pkg/clock"

	"github.com/gin-gonic/gin"
)

// OnboardingHandler defines the interface for invites and their redemption
type OnboardingHandler interface {
	CreateInvite(ctx *gin.Context)
	ListInvites(ctx *gin.Context)
	RevokeInvite(ctx *gin.Context)
	InspectInvite(ctx *gin.Context)
	RedeemInvite(ctx *gin.Context)
}

type onboardingHandler struct {
	onboardingService onboarding.Service
	clock             clock.Clock
}

// NewOnboardingHandler creates a new OnboardingHandler
func NewOnboardingHandler(onboardingService onboarding.Service, clk clock.Clock) OnboardingHandler {
	return &onboardingHandler{
		onboardingService: onboardingService,
		clock:             clk,
	}
}

// CreateInvite handles the POST request to create an onboarding link
// @Summary Create an invite
// @Description The raw token and link are only returned by this call.
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param requestBody body CreateInviteRequest true "Invite"
// @Success 201 {object} CreatedInviteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /invites [post]
func (handler *onboardingHandler) CreateInvite(ctx *gin.Context) {
	var request CreateInviteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Einladung.", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Die Gültigkeit darf höchstens ein Jahr betragen.", err)
		return
	}

	created, err := handler.onboardingService.CreateInvite(ctx.Request.Context(), principalFrom(ctx), request.toDomain())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, CreatedInviteResponse{
		Invite: toInviteResponse(created.Invite, handler.clock.Now()),
		Token:  created.Token,
		Link:   created.Link,
	})
}

func (handler *onboardingHandler) ListInvites(ctx *gin.Context) {
	list, err := handler.onboardingService.ListInvites(ctx.Request.Context(), principalFrom(ctx), ctx.Query("includeClosed") == "true")
	if err != nil {
		respondError(ctx, err)
		return
	}
	now := handler.clock.Now()
	response := make([]InviteResponse, len(list))
	for i, invite := range list {
		response[i] = toInviteResponse(invite, now)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *onboardingHandler) RevokeInvite(ctx *gin.Context) {
	if err := handler.onboardingService.RevokeInvite(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// InspectInvite is public; it tells the form whether the link can be used.
func (handler *onboardingHandler) InspectInvite(ctx *gin.Context) {
	info, err := handler.onboardingService.Inspect(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toInviteInfoResponse(info))
}

// RedeemInvite handles the public POST request that turns an invite into an account
// @Summary Redeem an invite
// @Description Creates the user, onboarding profile, dietary restrictions and photo consent in one transaction.
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param token path string true "Invite token"
// @Param requestBody body RedeemInviteRequest true "Onboarding form"
// @Success 201 {object} MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /onboarding/invites/{token}/redeem [post]
func (handler *onboardingHandler) RedeemInvite(ctx *gin.Context) {
	var request RedeemInviteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Formulardaten.", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Bitte gib dein Geburtsdatum im Format JJJJ-MM-TT an.", err)
		return
	}
	req, err := request.toDomain()
	if err != nil {
		respondBadRequest(ctx, "Ungültiges Geburtsdatum.", err)
		return
	}

	user, err := handler.onboardingService.Redeem(ctx.Request.Context(), ctx.Param("token"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toMemberResponse(user))
}
