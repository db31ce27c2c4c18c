package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
)

// ServiceRepository handles data access for the marketing services list.
type ServiceRepository struct {
	db *sqlx.DB
}

// NewServiceRepository creates a new ServiceRepository.
func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// ListActive returns active services ordered by display_order.
func (r *ServiceRepository) ListActive(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := r.db.SelectContext(ctx, &services, `
		SELECT id, title_en, description_en, icon, display_order, status
		FROM services
		WHERE status = 'active'
		ORDER BY display_order, id`)
	if err != nil {
		return nil, err
	}
	return services, nil
}
