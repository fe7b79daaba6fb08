package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/gatemock-backend/internal/middleware"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/response"
	"github.com/stemsi/gatemock-backend/internal/validator"
)

// CurrentUserStore reads and writes the signed-in user.
type CurrentUserStore interface {
	GetCurrentUser(ctx context.Context) (*model.User, error)
	SetCurrentUser(ctx context.Context, u *model.User) error
}

// CurrentUserHandler exposes the signed-in user to operator tooling and the
// client shell.
type CurrentUserHandler struct {
	users CurrentUserStore
}

// NewCurrentUserHandler creates a new CurrentUserHandler.
func NewCurrentUserHandler(users CurrentUserStore) *CurrentUserHandler {
	return &CurrentUserHandler{users: users}
}

// GetCurrentUser godoc
// GET /api/v1/current-user
// Returns null data while nobody is signed in.
func (h *CurrentUserHandler) GetCurrentUser(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"user": middleware.GetCurrentUser(c)})
}

// SetCurrentUser godoc
// PUT /api/v1/current-user
func (h *CurrentUserHandler) SetCurrentUser(c *gin.Context) {
	var req model.SetCurrentUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	u := &model.User{ID: req.ID, Name: req.Name, Role: req.Role}
	if err := h.users.SetCurrentUser(c.Request.Context(), u); err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStorageUnavailable)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// SignOut godoc
// DELETE /api/v1/current-user
func (h *CurrentUserHandler) SignOut(c *gin.Context) {
	if err := h.users.SetCurrentUser(c.Request.Context(), nil); err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStorageUnavailable)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": nil})
}
