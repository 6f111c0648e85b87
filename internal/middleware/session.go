package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/identity"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/models"
	"github.com/BruksfildServices01/estate-listings/internal/usecase/session"
)

const ContextUser = "currentUser"

type SessionResolver interface {
	Resolve(ctx context.Context, cred session.Credentials) (*models.User, error)
}

// Session resolves the current user, if any, and stores it in the context.
// Requests without a valid credential continue anonymously.
func Session(r SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		u, err := r.Resolve(ctx, session.Credentials{
			SessionToken:  identity.SessionToken(c.Request),
			ExternalToken: c.GetHeader(identity.ExternalTokenHeader),
		})
		if err != nil {
			logger.FromContext(ctx).Error().Err(err).Msg("session resolution failed")
			httperr.Internal(c, "internal_error", "Internal server error")
			c.Abort()
			return
		}

		if u != nil {
			c.Set(ContextUser, u)
		}
		c.Next()
	}
}

// RequireUser must run after Session.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			httperr.Unauthorized(c, "unauthenticated", "You must be signed in.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// RequireAdmin must run after Session.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			httperr.Unauthorized(c, "unauthenticated", "You must be signed in.")
			c.Abort()
			return
		}
		if u.Role != models.RoleAdmin {
			httperr.Write(c, http.StatusForbidden, "forbidden", "Admin access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}
