package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
)

// InquiryRepository handles data access for contact inquiries.
type InquiryRepository struct {
	db *sqlx.DB
}

// NewInquiryRepository creates a new InquiryRepository.
func NewInquiryRepository(db *sqlx.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create inserts an inquiry with status 'new' and fills in the assigned id
// and creation time.
func (r *InquiryRepository) Create(ctx context.Context, inq *models.Inquiry) error {
	const q = `
		INSERT INTO inquiries (name, email, phone, message, status)
		VALUES ($1, $2, $3, $4, 'new')
		RETURNING id, status, created_at`
	return r.db.QueryRowContext(ctx, q, inq.Name, inq.Email, inq.Phone, inq.Message).
		Scan(&inq.ID, &inq.Status, &inq.CreatedAt)
}

// GetByID returns a single inquiry by id.
func (r *InquiryRepository) GetByID(ctx context.Context, id int) (*models.Inquiry, error) {
	var inq models.Inquiry
	if err := r.db.GetContext(ctx, &inq, `SELECT * FROM inquiries WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &inq, nil
}

// List returns inquiries filtered by status and a search term over name,
// email and message, newest first, with the total count for pagination.
func (r *InquiryRepository) List(ctx context.Context, status, search string, limit, offset int) ([]models.Inquiry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const baseWhere = `WHERE ($1 = '' OR status = $1)
		AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%' OR message ILIKE '%' || $2 || '%')`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM inquiries `+baseWhere, status, search); err != nil {
		return nil, 0, err
	}

	var inquiries []models.Inquiry
	err := r.db.SelectContext(ctx, &inquiries,
		`SELECT * FROM inquiries `+baseWhere+` ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`,
		status, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return inquiries, total, nil
}

// Stats returns per-status inquiry counts for the admin dashboard.
func (r *InquiryRepository) Stats(ctx context.Context) (*models.InquiryStats, error) {
	var stats models.InquiryStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT COUNT(1) AS total,
		       COUNT(1) FILTER (WHERE status = 'new') AS new,
		       COUNT(1) FILTER (WHERE status = 'read') AS read,
		       COUNT(1) FILTER (WHERE status = 'replied') AS replied
		FROM inquiries`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// UpdateStatus sets the triage status and reports whether the row existed.
func (r *InquiryRepository) UpdateStatus(ctx context.Context, id int, status string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE inquiries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes an inquiry and reports whether a row existed.
func (r *InquiryRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
