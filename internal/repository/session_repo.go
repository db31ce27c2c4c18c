package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
)

// SessionRepository persists admin sessions keyed by their opaque token.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row. Token collisions surface as a unique
// constraint violation; with 256-bit random tokens that never happens in
// practice.
func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_sessions (id, admin_id, ip_address, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.ID, s.AdminID, s.IPAddress, s.UserAgent, s.ExpiresAt, s.CreatedAt)
	return err
}

// FindWithAdmin looks up a session by token joined with its owning admin.
// It does not filter on expiry or account status: the caller decides validity
// so both checks happen on every request.
func (r *SessionRepository) FindWithAdmin(ctx context.Context, token string) (*models.SessionRow, error) {
	var row models.SessionRow
	err := r.db.GetContext(ctx, &row, `
		SELECT s.id, s.admin_id, s.ip_address, s.user_agent, s.expires_at, s.created_at,
		       a.id AS "admin.id", a.username AS "admin.username", a.password AS "admin.password",
		       a.email AS "admin.email", a.full_name AS "admin.full_name",
		       a.role AS "admin.role", a.status AS "admin.status", a.last_login AS "admin.last_login"
		FROM admin_sessions s
		JOIN admin_users a ON a.id = s.admin_id
		WHERE s.id = $1
	`, token)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes a session row. Deleting an unknown token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = $1`, token)
	return err
}

// DeleteExpired purges sessions past their expiry and returns the number of
// rows removed. Used only by the cleanup worker; validity never depends on it.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
