package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/utils"
)

// InquiryStore is the inquiry data access contract.
type InquiryStore interface {
	Create(ctx context.Context, inq *models.Inquiry) error
	GetByID(ctx context.Context, id int) (*models.Inquiry, error)
	List(ctx context.Context, status, search string, limit, offset int) ([]models.Inquiry, int, error)
	Stats(ctx context.Context) (*models.InquiryStats, error)
	UpdateStatus(ctx context.Context, id int, status string) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// InquiryNotifier sends the office a notification about a new inquiry.
type InquiryNotifier interface {
	SendInquiryNotification(ctx context.Context, inq *models.Inquiry) error
}

// InquiryListResult is the admin listing with pagination and status counters.
type InquiryListResult struct {
	Inquiries []models.Inquiry     `json:"inquiries"`
	Total     int                  `json:"total"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	Stats     *models.InquiryStats `json:"stats"`
}

// InquiryService handles public submissions and admin triage of inquiries.
type InquiryService struct {
	inquiries InquiryStore
	notifier  InquiryNotifier
}

// NewInquiryService constructs an InquiryService. notifier may be nil when
// email is not configured.
func NewInquiryService(inquiries InquiryStore, notifier InquiryNotifier) *InquiryService {
	return &InquiryService{inquiries: inquiries, notifier: notifier}
}

// Submit persists a new inquiry and sends the notification email
// best-effort. The returned flag reports whether the email went out; a mail
// failure never fails the submission.
func (s *InquiryService) Submit(ctx context.Context, inq *models.Inquiry) (emailSent bool, err error) {
	if err := s.inquiries.Create(ctx, inq); err != nil {
		return false, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendInquiryNotification(ctx, inq); err == nil {
			emailSent = true
		}
	}
	return emailSent, nil
}

// Get returns one inquiry by id.
func (s *InquiryService) Get(ctx context.Context, id int) (*models.Inquiry, error) {
	inq, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return inq, nil
}

// List returns the filtered admin listing together with per-status counts.
func (s *InquiryService) List(ctx context.Context, status, search string, limit, offset int) (*InquiryListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	inquiries, total, err := s.inquiries.List(ctx, status, search, limit, offset)
	if err != nil {
		return nil, err
	}
	stats, err := s.inquiries.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if inquiries == nil {
		inquiries = []models.Inquiry{}
	}
	return &InquiryListResult{
		Inquiries: inquiries,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		Stats:     stats,
	}, nil
}

// UpdateStatus moves an inquiry between triage states.
func (s *InquiryService) UpdateStatus(ctx context.Context, id int, status string) error {
	if id <= 0 {
		return fmt.Errorf("%w: id is required", utils.ErrInvalidInput)
	}
	if !models.ValidInquiryStatus(status) {
		return fmt.Errorf("%w: status must be one of new, read, replied", utils.ErrInvalidInput)
	}

	existed, err := s.inquiries.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !existed {
		return utils.ErrNotFound
	}
	log.Debug().Int("inquiry_id", id).Str("status", status).Msg("Inquiry status updated")
	return nil
}

// Delete removes an inquiry.
func (s *InquiryService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: id is required", utils.ErrInvalidInput)
	}
	existed, err := s.inquiries.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return utils.ErrNotFound
	}
	return nil
}
