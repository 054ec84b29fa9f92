package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db"
	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
	"github.com/jmcalloway/motoclubs-backend/pkg/mailer"
)

// Service manages mailing-list membership. Subscribe is idempotent for an
// active subscriber; unsubscribe keeps the row so the history survives.
type Service interface {
	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) error
}

type service struct {
	repo   Repository
	mailer mailer.Sender
	logg   *logger.Logger
}

// ServiceParams bundles the dependencies required to build the newsletter service.
type ServiceParams struct {
	Repo   Repository
	Mailer mailer.Sender
	Logger *logger.Logger
}

// NewService wires newsletter dependencies. Mailer and logger are optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("newsletter repository is required")
	}
	return &service{repo: params.Repo, mailer: params.Mailer, logg: params.Logger}, nil
}

func (s *service) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.UnsubscribedAt == nil {
			// already on the list
			return nil
		}
		if _, err := s.repo.Resubscribe(ctx, email); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resubscribe")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		subscriber := &models.NewsletterSubscriber{Email: email}
		if err := s.repo.Create(ctx, subscriber); err != nil {
			// a concurrent signup for the same address is fine
			if !db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscriber")
			}
		}
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscriber")
	}

	s.sendConfirmation(ctx, email)
	return nil
}

func (s *service) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	removed, err := s.repo.Unsubscribe(ctx, email, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unsubscribe")
	}
	if !removed {
		// unknown or already-unsubscribed addresses succeed silently so the
		// endpoint leaks no membership information
		if s.logg != nil {
			s.logg.Info(ctx, fmt.Sprintf("newsletter unsubscribe no-op for %s", email))
		}
	}
	return nil
}

func (s *service) sendConfirmation(ctx context.Context, email string) {
	if s.mailer == nil {
		return
	}
	err := s.mailer.Send(ctx, email,
		"You're subscribed",
		"You are now subscribed to the club directory newsletter.",
		"<p>You are now subscribed to the club directory newsletter.</p>")
	if err != nil && s.logg != nil {
		s.logg.Error(ctx, "newsletter confirmation email failed", err)
	}
}
