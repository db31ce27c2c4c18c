package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/config"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/middleware"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/service"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/utils"
)

// AuthHandler exposes the admin auth endpoint: POST /api/auth?action=login,
// POST /api/auth?action=logout and GET /api/auth for the session check.
type AuthHandler struct {
	authService *service.AuthService
	session     config.SessionConfig
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{authService: authService, session: session}
}

// HandleAction dispatches POST /api/auth on the action query parameter.
func (h *AuthHandler) HandleAction(c *gin.Context) {
	switch c.Query("action") {
	case "login":
		h.login(c)
	case "logout":
		h.logout(c)
	default:
		utils.Error(c, 400, "Unknown action")
	}
}

func (h *AuthHandler) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	meta := service.ClientMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password, meta)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrMissingCredentials):
			utils.Error(c, 400, "Username and password are required")
		case errors.Is(err, utils.ErrInvalidCredentials):
			utils.Error(c, 401, "Invalid username or password")
		default:
			log.Error().Err(err).Msg("Login failed")
			utils.Error(c, 500, "Internal server error")
		}
		return
	}

	h.setSessionCookie(c, result.Token, int(h.session.TTL.Seconds()))
	utils.Success(c, 200, "Login successful", result)
}

func (h *AuthHandler) logout(c *gin.Context) {
	token := middleware.SessionToken(c, h.session.CookieName)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		// Logout is contractually idempotent and always succeeds; a storage
		// hiccup only costs an unpurged row that the sweeper collects later.
		log.Warn().Err(err).Msg("Failed to delete session on logout")
	}

	h.setSessionCookie(c, "", -1)
	utils.Success(c, 200, "Logged out", nil)
}

// Session handles GET /api/auth behind the session middleware.
func (h *AuthHandler) Session(c *gin.Context) {
	utils.Success(c, 200, "Authenticated", gin.H{"admin": middleware.GetAdmin(c)})
}

// setSessionCookie writes the session cookie: HttpOnly, SameSite=None so the
// admin frontend can call cross-origin with credentials, Secure on HTTPS.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.session.CookieName, token, maxAge, "/", "", secure, true)
}
