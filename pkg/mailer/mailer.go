package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/jmcalloway/motoclubs-backend/pkg/config"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
)

// Sender delivers a single transactional email.
type Sender interface {
	Send(ctx context.Context, to, subject, plainText, htmlBody string) error
}

type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer wraps the SendGrid client. A disabled mailer drops messages with a log line
// so local environments never need an API key.
type Mailer struct {
	client    sendClient
	fromName  string
	fromEmail string
	enabled   bool
	logg      *logger.Logger
}

// New builds a Mailer from config. Missing API key yields a disabled mailer, not an error.
func New(cfg config.SendgridConfig, logg *logger.Logger) *Mailer {
	m := &Mailer{
		fromName:  cfg.FromName,
		fromEmail: cfg.DefaultFrom,
		enabled:   cfg.Enabled(),
		logg:      logg,
	}
	if m.enabled {
		m.client = sendgrid.NewSendClient(cfg.APIKey)
	}
	return m
}

// Send delivers a single email. Delivery problems are returned so callers can
// decide whether to log or fail; request paths log and continue.
func (m *Mailer) Send(ctx context.Context, to, subject, plainText, htmlBody string) error {
	if m == nil || !m.enabled {
		if m != nil && m.logg != nil {
			m.logg.Info(ctx, fmt.Sprintf("mailer disabled, dropping email to %s (%s)", to, subject))
		}
		return nil
	}
	from := mail.NewEmail(m.fromName, m.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlBody)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp != nil && resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
