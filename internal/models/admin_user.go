package models

import "time"

// Admin account statuses.
const (
	AdminStatusActive   = "active"
	AdminStatusInactive = "inactive"
)

// AdminUser represents an account for the back-office panel.
type AdminUser struct {
	ID        int        `db:"id" json:"id"`
	Username  string     `db:"username" json:"username"`
	Password  string     `db:"password" json:"-"`
	Email     string     `db:"email" json:"email"`
	FullName  string     `db:"full_name" json:"full_name"`
	Role      string     `db:"role" json:"role"`
	Status    string     `db:"status" json:"-"`
	LastLogin *time.Time `db:"last_login" json:"-"`
}

// AdminProfile is the public-safe projection returned to clients.
// It never carries the password hash or account status.
type AdminProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Profile returns the projection of the admin safe to send to clients.
func (u *AdminUser) Profile() AdminProfile {
	return AdminProfile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
