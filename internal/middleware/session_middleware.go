package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/service"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/utils"
)

const ctxAdminKey = "admin"

// SessionToken extracts the session token from the request: the session
// cookie first, then an Authorization bearer header for non-browser clients.
func SessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// SessionAuth verifies the request's session against the store on every call
// and aborts 401 through the envelope when it fails. On success the admin
// projection is attached to the gin context for downstream handlers.
func SessionAuth(auth *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := auth.Verify(c.Request.Context(), SessionToken(c, cookieName))
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrUnauthenticated):
				utils.Error(c, 401, "Not authenticated")
			case errors.Is(err, utils.ErrSessionExpired):
				utils.Error(c, 401, "Session expired")
			default:
				log.Error().Err(err).Msg("Session verification failed")
				utils.Error(c, 500, "Internal server error")
			}
			return
		}

		c.Set(ctxAdminKey, profile)
		c.Next()
	}
}

// GetAdmin returns the verified admin identity attached by SessionAuth.
func GetAdmin(c *gin.Context) *models.AdminProfile {
	v, ok := c.Get(ctxAdminKey)
	if !ok {
		return nil
	}
	profile, _ := v.(*models.AdminProfile)
	return profile
}
