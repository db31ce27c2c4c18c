package models

import "time"

// Session is a persisted admin session. The ID is the opaque token handed to
// the client; validity is re-derived from expires_at and the owner's status on
// every protected request.
type Session struct {
	ID        string    `db:"id" json:"-"`
	AdminID   int       `db:"admin_id" json:"-"`
	IPAddress string    `db:"ip_address" json:"-"`
	UserAgent string    `db:"user_agent" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// SessionRow is a session joined with its owning admin, as returned by the
// per-request validity lookup.
type SessionRow struct {
	Session
	Admin AdminUser `db:"admin"`
}
