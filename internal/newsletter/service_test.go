package newsletter

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
)

type fakeSubscriberRepo struct {
	findFn        func(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	createFn      func(ctx context.Context, subscriber *models.NewsletterSubscriber) error
	resubscribeFn func(ctx context.Context, email string) (bool, error)
	unsubscribeFn func(ctx context.Context, email string, now time.Time) (bool, error)
}

func (f *fakeSubscriberRepo) FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	if f.findFn != nil {
		return f.findFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubscriberRepo) Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	if f.createFn != nil {
		return f.createFn(ctx, subscriber)
	}
	return nil
}

func (f *fakeSubscriberRepo) Resubscribe(ctx context.Context, email string) (bool, error) {
	if f.resubscribeFn != nil {
		return f.resubscribeFn(ctx, email)
	}
	return false, nil
}

func (f *fakeSubscriberRepo) Unsubscribe(ctx context.Context, email string, now time.Time) (bool, error) {
	if f.unsubscribeFn != nil {
		return f.unsubscribeFn(ctx, email, now)
	}
	return false, nil
}

func buildNewsletterService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestSubscribeValidatesEmail(t *testing.T) {
	svc := buildNewsletterService(t, &fakeSubscriberRepo{})
	for _, email := range []string{"", "   ", "not-an-email"} {
		err := svc.Subscribe(context.Background(), email)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("email %q: expected validation error, got %v", email, err)
		}
	}
}

func TestSubscribeCreatesNormalizedRow(t *testing.T) {
	var created *models.NewsletterSubscriber
	repo := &fakeSubscriberRepo{
		createFn: func(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
			created = subscriber
			return nil
		},
	}
	svc := buildNewsletterService(t, repo)

	if err := svc.Subscribe(context.Background(), "  Rider@Example.COM "); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if created == nil || created.Email != "rider@example.com" {
		t.Fatalf("email not normalized: %+v", created)
	}
}

func TestSubscribeActiveSubscriberIsIdempotent(t *testing.T) {
	repo := &fakeSubscriberRepo{
		findFn: func(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
			return &models.NewsletterSubscriber{Email: email}, nil
		},
		createFn: func(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
			t.Fatal("create must not run for an active subscriber")
			return nil
		},
	}
	svc := buildNewsletterService(t, repo)

	if err := svc.Subscribe(context.Background(), "rider@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
}

func TestSubscribeClearsUnsubscribeStamp(t *testing.T) {
	past := time.Now().UTC().Add(-24 * time.Hour)
	resubscribed := false
	repo := &fakeSubscriberRepo{
		findFn: func(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
			return &models.NewsletterSubscriber{Email: email, UnsubscribedAt: &past}, nil
		},
		resubscribeFn: func(ctx context.Context, email string) (bool, error) {
			resubscribed = true
			return true, nil
		},
	}
	svc := buildNewsletterService(t, repo)

	if err := svc.Subscribe(context.Background(), "rider@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !resubscribed {
		t.Fatal("resubscribe must clear the unsubscribe stamp")
	}
}

func TestUnsubscribeNeverLeaksMembership(t *testing.T) {
	svc := buildNewsletterService(t, &fakeSubscriberRepo{})
	if err := svc.Unsubscribe(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("unsubscribe of unknown address must succeed, got %v", err)
	}
}
