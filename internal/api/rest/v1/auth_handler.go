package v1

import (
	"net/http"
	"time"

	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/domain/members"

	"github.com/gin-gonic/gin"
)

// CookieSettings controls the session cookie written on login
type CookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler defines the interface for login and the caller's own account
type AuthHandler interface {
	Login(ctx *gin.Context)
	Logout(ctx *gin.Context)
	Me(ctx *gin.Context)
	UpdateMe(ctx *gin.Context)
	ChangePassword(ctx *gin.Context)
}

type authHandler struct {
	authService   auth.Service
	memberService members.Service
	cookie        CookieSettings
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService auth.Service, memberService members.Service, cookie CookieSettings) AuthHandler {
	return &authHandler{
		authService:   authService,
		memberService: memberService,
		cookie:        cookie,
	}
}

// Login handles the POST request to start a session
// @Summary Log in with email and password
// @Description Verifies the credentials, returns a session token and sets it as HttpOnly cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (handler *authHandler) Login(ctx *gin.Context) {
	var request LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Anmeldedaten.", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Bitte gib E-Mail und Passwort an.", err)
		return
	}

	session, err := handler.authService.Login(ctx.Request.Context(), request.Email, request.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if handler.cookie.Name != "" {
		maxAge := int(time.Until(session.ExpiresAt).Seconds())
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(handler.cookie.Name, session.Token, maxAge, "/", "", handler.cookie.Secure, true)
	}
	ctx.JSON(http.StatusOK, toLoginResponse(session))
}

// Logout clears the session cookie
func (handler *authHandler) Logout(ctx *gin.Context) {
	if handler.cookie.Name != "" {
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(handler.cookie.Name, "", -1, "/", "", handler.cookie.Secure, true)
	}
	ctx.Status(http.StatusNoContent)
}

// Me handles the GET request for the caller's account
// @Summary Get the caller's profile, roles and permissions
// @Tags Auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Router /me [get]
func (handler *authHandler) Me(ctx *gin.Context) {
	p := principalFrom(ctx)
	user, err := handler.memberService.GetByID(ctx.Request.Context(), p, p.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	perms := p.PermissionList()
	response := MeResponse{MemberResponse: toMemberResponse(user), Permissions: make([]string, len(perms))}
	for i, perm := range perms {
		response.Permissions[i] = string(perm)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *authHandler) UpdateMe(ctx *gin.Context) {
	var request UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Profildaten.", err)
		return
	}

	user, err := handler.memberService.UpdateOwnProfile(ctx.Request.Context(), principalFrom(ctx), &members.ProfileUpdate{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Phone:     request.Phone,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMemberResponse(user))
}

func (handler *authHandler) ChangePassword(ctx *gin.Context) {
	var request ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Anfrage.", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Bitte gib das aktuelle und das neue Passwort an.", err)
		return
	}

	if err := handler.authService.ChangePassword(ctx.Request.Context(), principalFrom(ctx), request.CurrentPassword, request.NewPassword); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
