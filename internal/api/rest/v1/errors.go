package v1

import (
	"errors"
	"net/http"

	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/domain/measurements"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type sentinel struct {
	err     error
	status  int
	code    string
	message string
}

var sentinels = []sentinel{
	{members.ErrNotFound, http.StatusNotFound, "MEMBER_NOT_FOUND", "Mitglied nicht gefunden."},
	{members.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN", "Diese E-Mail-Adresse ist bereits registriert."},
	{onboarding.ErrInviteNotFound, http.StatusNotFound, "INVITE_NOT_FOUND", "Einladung nicht gefunden."},
	{onboarding.ErrInviteAlreadyRedeemed, http.StatusConflict, "INVITE_REDEEMED", "Diese Einladung wurde bereits eingelöst."},
	{onboarding.ErrInviteRevoked, http.StatusGone, "INVITE_REVOKED", "Diese Einladung wurde zurückgezogen."},
	{onboarding.ErrInviteExpired, http.StatusGone, "INVITE_EXPIRED", "Diese Einladung ist abgelaufen."},
	{onboarding.ErrProfileNotFound, http.StatusNotFound, "PROFILE_NOT_FOUND", "Kein Onboarding-Profil vorhanden."},
	{consent.ErrNotFound, http.StatusNotFound, "CONSENT_NOT_FOUND", "Keine Foto-Einwilligung vorhanden."},
	{measurements.ErrNotFound, http.StatusNotFound, "MEASUREMENT_NOT_FOUND", "Maß nicht gefunden."},
	{dietary.ErrNotFound, http.StatusNotFound, "DIETARY_NOT_FOUND", "Eintrag nicht gefunden."},
	{shows.ErrNotFound, http.StatusNotFound, "SHOW_NOT_FOUND", "Stück nicht gefunden."},
	{shows.ErrImageNotFound, http.StatusNotFound, "IMAGE_NOT_FOUND", "Bild nicht gefunden."},
	{rehearsals.ErrNotFound, http.StatusNotFound, "REHEARSAL_NOT_FOUND", "Probe nicht gefunden."},
	{rehearsals.ErrTemplateNotFound, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "Probenvorlage nicht gefunden."},
	{finance.ErrEntryNotFound, http.StatusNotFound, "ENTRY_NOT_FOUND", "Buchung nicht gefunden."},
	{finance.ErrBudgetNotFound, http.StatusNotFound, "BUDGET_NOT_FOUND", "Budget nicht gefunden."},
	{finance.ErrBudgetExists, http.StatusConflict, "BUDGET_EXISTS", "Für diese Kategorie gibt es schon ein Budget."},
}

// toErrorResponse maps err onto a status and a German message. Anything
// unknown becomes a 500 without leaking the cause.
func toErrorResponse(err error) (int, ErrorResponse) {
	if ae, ok := apperr.As(err); ok {
		return apperr.StatusOf(ae), ErrorResponse{Message: ae.Message, Code: ae.Code, Details: ae.Details}
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.status, ErrorResponse{Message: s.message, Code: s.code}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Message: "Interner Fehler.", Code: "INTERNAL"}
}

func respondError(ctx *gin.Context, err error) {
	status, body := toErrorResponse(err)
	if status >= http.StatusInternalServerError {
		_ = ctx.Error(err)
	}
	ctx.AbortWithStatusJSON(status, body)
}

func respondBadRequest(ctx *gin.Context, message string, err error) {
	if err != nil {
		_ = ctx.Error(err)
	}
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: message, Code: "BAD_REQUEST"})
}
