package v1

import (
	"net/http"
	"strings"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/auth"

	"github.com/gin-gonic/gin"
)

const principalKey = "portal.principal"

// AuthRequired resolves the caller from a Bearer token or the session cookie
// and stores the principal in the gin context.
func AuthRequired(authService auth.Service, cookieName string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			if c, err := ctx.Cookie(cookieName); err == nil {
				token = c
			}
		}
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Bitte melde dich an.", Code: "UNAUTHORIZED"})
			return
		}

		p, err := authService.Authenticate(ctx.Request.Context(), token)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.Set(principalKey, p)
		ctx.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// principalFrom returns the caller set by AuthRequired, nil on public routes.
func principalFrom(ctx *gin.Context) *access.Principal {
	v, ok := ctx.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*access.Principal)
	return p
}

// memberID is the :id path parameter, or the caller on /me routes.
func memberID(ctx *gin.Context) string {
	if id := ctx.Param("id"); id != "" {
		return id
	}
	if p := principalFrom(ctx); p != nil {
		return p.UserID
	}
	return ""
}
