package models

import "time"

// Inquiry triage statuses.
const (
	InquiryStatusNew     = "new"
	InquiryStatusRead    = "read"
	InquiryStatusReplied = "replied"
)

// ValidInquiryStatus reports whether s is one of the triage statuses.
func ValidInquiryStatus(s string) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusRead, InquiryStatusReplied:
		return true
	}
	return false
}

// Inquiry is a contact-form submission from the public site.
type Inquiry struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Message   string    `db:"message" json:"message"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// InquiryStats holds per-status counts for the admin dashboard.
type InquiryStats struct {
	Total   int `db:"total" json:"total"`
	New     int `db:"new" json:"new"`
	Read    int `db:"read" json:"read"`
	Replied int `db:"replied" json:"replied"`
}
