package contact

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

type fakeContactRepo struct {
	createFn  func(ctx context.Context, submission *models.ContactSubmission) error
	listFn    func(ctx context.Context, params listSubmissionsParams) ([]models.ContactSubmission, *pagination.Cursor, error)
	resolveFn func(ctx context.Context, id uuid.UUID, now time.Time) (resolveResult, error)
}

func (f *fakeContactRepo) Create(ctx context.Context, submission *models.ContactSubmission) error {
	if f.createFn != nil {
		return f.createFn(ctx, submission)
	}
	return nil
}

func (f *fakeContactRepo) List(ctx context.Context, params listSubmissionsParams) ([]models.ContactSubmission, *pagination.Cursor, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, nil, nil
}

func (f *fakeContactRepo) Resolve(ctx context.Context, id uuid.UUID, now time.Time) (resolveResult, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, id, now)
	}
	return resolveResult{}, nil
}

func buildContactService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestSubmitRequiresAllFields(t *testing.T) {
	svc := buildContactService(t, &fakeContactRepo{})
	cases := []SubmitInput{
		{Email: "a@b.com", Subject: "s", Body: "b"},
		{Name: "n", Subject: "s", Body: "b"},
		{Name: "n", Email: "a@b.com", Body: "b"},
		{Name: "n", Email: "a@b.com", Subject: "s"},
	}
	for _, input := range cases {
		_, err := svc.Submit(context.Background(), input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("input %+v: expected validation error, got %v", input, err)
		}
	}
}

func TestSubmitNormalizesEmail(t *testing.T) {
	var created *models.ContactSubmission
	repo := &fakeContactRepo{
		createFn: func(ctx context.Context, submission *models.ContactSubmission) error {
			created = submission
			return nil
		},
	}
	svc := buildContactService(t, repo)

	dto, err := svc.Submit(context.Background(), SubmitInput{
		Name:    "Dana",
		Email:   "  Dana@Example.COM ",
		Subject: "Listing question",
		Body:    "How do I claim my club?",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created == nil || created.Email != "dana@example.com" {
		t.Fatalf("email not normalized: %+v", created)
	}
	if dto.ResolvedAt != nil {
		t.Fatal("new submission must be unresolved")
	}
}

func TestResolveAlreadyResolved(t *testing.T) {
	repo := &fakeContactRepo{
		resolveFn: func(ctx context.Context, id uuid.UUID, now time.Time) (resolveResult, error) {
			return resolveResult{Found: true, Updated: false}, nil
		},
	}
	svc := buildContactService(t, repo)

	err := svc.Resolve(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestResolveNotFound(t *testing.T) {
	svc := buildContactService(t, &fakeContactRepo{})
	err := svc.Resolve(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
