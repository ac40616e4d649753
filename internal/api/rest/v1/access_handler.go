package v1

import (
	"context"
	"net/http"

	"github.com/sommertheater/portal/internal/domain/access"

	"github.com/gin-gonic/gin"
)

// AccessHandler defines the interface for the role permission matrix
type AccessHandler interface {
	Matrix(ctx *gin.Context)
	Grant(ctx *gin.Context)
	Revoke(ctx *gin.Context)
}

type accessHandler struct {
	accessService access.Service
}

// NewAccessHandler creates a new AccessHandler
func NewAccessHandler(accessService access.Service) AccessHandler {
	return &accessHandler{accessService: accessService}
}

func (handler *accessHandler) Matrix(ctx *gin.Context) {
	m, err := handler.accessService.Matrix(ctx.Request.Context(), principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make(map[string][]string, len(m))
	for role, perms := range m {
		list := make([]string, len(perms))
		for i, perm := range perms {
			list[i] = string(perm)
		}
		response[string(role)] = list
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *accessHandler) Grant(ctx *gin.Context) {
	handler.change(ctx, handler.accessService.Grant)
}

func (handler *accessHandler) Revoke(ctx *gin.Context) {
	handler.change(ctx, handler.accessService.Revoke)
}

type permissionChange func(ctx context.Context, p *access.Principal, role access.Role, perm access.Permission) error

func (handler *accessHandler) change(ctx *gin.Context, apply permissionChange) {
	var request PermissionChangeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Anfrage.", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Bitte gib Rolle und Berechtigung an.", err)
		return
	}

	if err := apply(ctx.Request.Context(), principalFrom(ctx), access.Role(request.Role), access.Permission(request.Permission)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
