package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
)

// AdminUserRepository handles data access for admin accounts.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetActiveByUsername returns the active admin with the given username.
// Inactive accounts are filtered out here so they can never authenticate.
func (r *AdminUserRepository) GetActiveByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.GetContext(ctx, &user, `
		SELECT id, username, password, email, full_name, role, status, last_login
		FROM admin_users
		WHERE username = $1 AND status = 'active'
	`, username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin records the time of a successful authentication.
func (r *AdminUserRepository) UpdateLastLogin(ctx context.Context, id int, t time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE admin_users SET last_login = $1 WHERE id = $2`, t, id)
	return err
}
