package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
)

// PackageRepository handles data access for tour packages.
type PackageRepository struct {
	db *sqlx.DB
}

// NewPackageRepository creates a new PackageRepository.
func NewPackageRepository(db *sqlx.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// List returns packages with optional status and category filters, newest
// created first. Empty filters are ignored.
func (r *PackageRepository) List(ctx context.Context, status, category string, limit int) ([]models.Package, error) {
	const q = `
		SELECT * FROM packages
		WHERE ($1 = '' OR status = $1)
		AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var pkgs []models.Package
	if err := r.db.SelectContext(ctx, &pkgs, q, status, category, limit); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// GetByID returns a single package by id.
func (r *PackageRepository) GetByID(ctx context.Context, id int) (*models.Package, error) {
	var p models.Package
	if err := r.db.GetContext(ctx, &p, `SELECT * FROM packages WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a package and fills in the server-assigned id and creation time.
func (r *PackageRepository) Create(ctx context.Context, p *models.Package) error {
	const q = `
		INSERT INTO packages
			(category, title_en, title_si, title_ta, description_en, description_si, description_ta,
			 price, duration, image, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		p.Category, p.TitleEn, p.TitleSi, p.TitleTa,
		p.DescriptionEn, p.DescriptionSi, p.DescriptionTa,
		p.Price, p.Duration, p.Image, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

// Update rewrites all mutable columns of a package.
func (r *PackageRepository) Update(ctx context.Context, p *models.Package) error {
	const q = `
		UPDATE packages SET
			category = $1, title_en = $2, title_si = $3, title_ta = $4,
			description_en = $5, description_si = $6, description_ta = $7,
			price = $8, duration = $9, image = $10, status = $11
		WHERE id = $12`
	_, err := r.db.ExecContext(ctx, q,
		p.Category, p.TitleEn, p.TitleSi, p.TitleTa,
		p.DescriptionEn, p.DescriptionSi, p.DescriptionTa,
		p.Price, p.Duration, p.Image, p.Status, p.ID)
	return err
}

// Delete removes a package and reports whether a row existed.
func (r *PackageRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
