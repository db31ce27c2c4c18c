package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/config"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
)

// EmailService sends transactional mail via Mailgun.
type EmailService struct {
	mg         *mailgun.MailgunImpl
	from       string
	notifyAddr string
}

// NewEmailService creates an EmailService from config. Returns nil when no
// API key is configured, which disables notifications.
func NewEmailService(cfg *config.MailConfig) *EmailService {
	if cfg.APIKey == "" || cfg.Domain == "" {
		return nil
	}
	return &EmailService{
		mg:         mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		from:       cfg.From,
		notifyAddr: cfg.NotifyAddr,
	}
}

// SendInquiryNotification mails the office about a new contact inquiry.
func (s *EmailService) SendInquiryNotification(ctx context.Context, inq *models.Inquiry) error {
	subject := fmt.Sprintf("New inquiry from %s", inq.Name)
	body := fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\n\n%s\n\nReceived: %s\n",
		inq.Name, inq.Email, inq.Phone, inq.Message,
		inq.CreatedAt.Format(time.RFC1123),
	)

	message := s.mg.NewMessage(s.from, subject, body, s.notifyAddr)

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, _, err := s.mg.Send(sendCtx, message); err != nil {
		log.Error().Err(err).Int("inquiry_id", inq.ID).Msg("Failed to send inquiry notification")
		return err
	}
	return nil
}
