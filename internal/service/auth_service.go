package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/utils"
)

// AdminUserStore is the admin-account data access the authenticator needs.
type AdminUserStore interface {
	GetActiveByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id int, t time.Time) error
}

// SessionStore is the session persistence contract. Lookups are not filtered
// on expiry; validity is decided here, on every call.
type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	FindWithAdmin(ctx context.Context, token string) (*models.SessionRow, error)
	Delete(ctx context.Context, token string) error
}

// ClientMeta is audit metadata recorded on a new session.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string              `json:"token"`
	Admin models.AdminProfile `json:"admin"`
}

// AuthService validates credentials, issues sessions, verifies them on
// protected calls and tears them down on logout.
type AuthService struct {
	admins   AdminUserStore
	sessions SessionStore
	ttl      time.Duration

	now func() time.Time
}

// NewAuthService constructs an AuthService with the given session lifetime.
func NewAuthService(admins AdminUserStore, sessions SessionStore, ttl time.Duration) *AuthService {
	return &AuthService{
		admins:   admins,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login checks the credentials against the active admin with that username
// and issues a fresh session. A missing user and a wrong password are
// indistinguishable to the caller; the difference lives only in debug logs.
func (s *AuthService) Login(ctx context.Context, username, password string, meta ClientMeta) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, utils.ErrMissingCredentials
	}

	user, err := s.admins.GetActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug().Str("username", username).Msg("Login attempt for unknown or inactive admin")
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Debug().Str("username", username).Msg("Password verification failed")
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.Session{
		ID:        token,
		AdminID:   user.ID,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.admins.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Login stands; the timestamp is informational.
		log.Warn().Err(err).Str("username", username).Msg("Failed to update last_login")
	}

	log.Info().Str("username", username).Str("ip", meta.IP).Msg("Admin login successful")
	return &LoginResult{Token: token, Admin: user.Profile()}, nil
}

// Verify resolves a session token to its owning admin. Validity is re-derived
// from stored expiry and account status on every call; nothing is cached.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.AdminProfile, error) {
	if token == "" {
		return nil, utils.ErrUnauthenticated
	}

	row, err := s.sessions.FindWithAdmin(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUnauthenticated
		}
		return nil, err
	}

	if !s.now().Before(row.ExpiresAt) || row.Admin.Status != models.AdminStatusActive {
		return nil, utils.ErrSessionExpired
	}

	profile := row.Admin.Profile()
	return &profile, nil
}

// Logout destroys the session. Destroying an unknown or already-expired
// session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
