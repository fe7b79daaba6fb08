package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/response"
)

const (
	// ContextKeyUser is the Gin context key for the signed-in user.
	ContextKeyUser = "current_user"
)

// CurrentUserProvider resolves the signed-in user; nil means signed out.
type CurrentUserProvider interface {
	GetCurrentUser(ctx context.Context) (*model.User, error)
}

// LoadCurrentUser resolves the signed-in user once per request. A storage
// failure is logged and treated as signed out.
func LoadCurrentUser(provider CurrentUserProvider, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := provider.GetCurrentUser(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Failed to load current user")
		}
		if u != nil {
			c.Set(ContextKeyUser, u)
		}
		c.Next()
	}
}

// RequireCurrentUser rejects requests made while nobody is signed in.
func RequireCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCurrentUser(c) == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSignInRequired)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests from anyone but an administrator.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := GetCurrentUser(c)
		if u == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSignInRequired)
			return
		}
		if !u.IsAdmin() {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}
		c.Next()
	}
}

// GetCurrentUser retrieves the signed-in user from the Gin context.
func GetCurrentUser(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	u, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return u
}
