package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	clubspkg "github.com/jmcalloway/motoclubs-backend/internal/clubs"
	"github.com/jmcalloway/motoclubs-backend/internal/notifications"
	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeReviewRepo struct {
	createFn    func(ctx context.Context, review *models.Review) error
	findByIDFn  func(ctx context.Context, id uuid.UUID) (*models.Review, error)
	existsFn    func(ctx context.Context, userID, clubID uuid.UUID) (bool, error)
	resolveFn   func(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) (resolveResult, error)
	recomputeFn func(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, int, error)
	listClubFn  func(ctx context.Context, params listReviewsParams) ([]models.Review, *pagination.Cursor, error)
}

func (f *fakeReviewRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if f.createFn != nil {
		return f.createFn(ctx, review)
	}
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) Exists(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, userID, clubID)
	}
	return false, nil
}

func (f *fakeReviewRepo) ListByClub(ctx context.Context, params listReviewsParams) ([]models.Review, *pagination.Cursor, error) {
	if f.listClubFn != nil {
		return f.listClubFn(ctx, params)
	}
	return nil, nil, nil
}

func (f *fakeReviewRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	return nil, nil
}

func (f *fakeReviewRepo) ListByStatus(ctx context.Context, status *enums.ReviewStatus, limit int, cursor *pagination.Cursor) ([]models.Review, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (f *fakeReviewRepo) Resolve(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) (resolveResult, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, id, status)
	}
	return resolveResult{}, nil
}

func (f *fakeReviewRepo) RecomputeClubAggregates(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, int, error) {
	if f.recomputeFn != nil {
		return f.recomputeFn(ctx, clubID)
	}
	return decimal.Zero, 0, nil
}

type fakeClubsRepo struct {
	clubspkg.Repository
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Club, error)
	findBySlugFn func(ctx context.Context, slug string) (*models.Club, error)
}

func (f *fakeClubsRepo) WithTx(tx *gorm.DB) clubspkg.Repository { return f }

func (f *fakeClubsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClubsRepo) FindBySlug(ctx context.Context, slug string) (*models.Club, error) {
	if f.findBySlugFn != nil {
		return f.findBySlugFn(ctx, slug)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeNotificationRepo struct {
	notifications.Repository
	created []*models.Notification
}

func (f *fakeNotificationRepo) WithTx(tx *gorm.DB) notifications.Repository { return f }

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func buildReviewService(t *testing.T, repo Repository, clubsRepo clubspkg.Repository, notifs *fakeNotificationRepo) Service {
	t.Helper()
	if notifs == nil {
		notifs = &fakeNotificationRepo{}
	}
	svc, err := NewService(ServiceParams{
		DB:            stubTxRunner{},
		Repo:          repo,
		Clubs:         clubsRepo,
		Notifications: notifs,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func activeClub(id uuid.UUID) *models.Club {
	return &models.Club{ID: id, Slug: "test-club", Status: enums.ClubStatusActive}
}

func TestSubmitReviewValidatesRatingRange(t *testing.T) {
	svc := buildReviewService(t, &fakeReviewRepo{}, &fakeClubsRepo{}, nil)
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.SubmitReview(context.Background(), uuid.New(), uuid.New(), SubmitReviewInput{
			Rating:  rating,
			Content: "great rides",
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestSubmitReviewRequiresContent(t *testing.T) {
	svc := buildReviewService(t, &fakeReviewRepo{}, &fakeClubsRepo{}, nil)
	_, err := svc.SubmitReview(context.Background(), uuid.New(), uuid.New(), SubmitReviewInput{
		Rating:  4,
		Content: "   ",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitReviewDuplicateConflict(t *testing.T) {
	clubID := uuid.New()
	clubsRepo := &fakeClubsRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Club, error) {
			return activeClub(clubID), nil
		},
	}
	repo := &fakeReviewRepo{
		existsFn: func(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
			return true, nil
		},
		createFn: func(ctx context.Context, review *models.Review) error {
			t.Fatal("create must not run for a duplicate review")
			return nil
		},
	}
	svc := buildReviewService(t, repo, clubsRepo, nil)

	_, err := svc.SubmitReview(context.Background(), uuid.New(), clubID, SubmitReviewInput{
		Rating:  5,
		Content: "second try",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSubmitReviewCreatesPending(t *testing.T) {
	userID := uuid.New()
	clubID := uuid.New()
	clubsRepo := &fakeClubsRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Club, error) {
			return activeClub(clubID), nil
		},
	}
	var created *models.Review
	repo := &fakeReviewRepo{
		createFn: func(ctx context.Context, review *models.Review) error {
			created = review
			return nil
		},
	}
	svc := buildReviewService(t, repo, clubsRepo, nil)

	dto, err := svc.SubmitReview(context.Background(), userID, clubID, SubmitReviewInput{
		Rating:  4,
		Content: "  friendly chapter  ",
	})
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}
	if created == nil || created.Status != enums.ReviewStatusPending {
		t.Fatalf("expected pending review, got %+v", created)
	}
	if created.Content != "friendly chapter" {
		t.Fatalf("content not trimmed: %q", created.Content)
	}
	if dto.UserID != userID || dto.ClubID != clubID || dto.Rating != 4 {
		t.Fatalf("unexpected dto %+v", dto)
	}
}

func TestListForClubSlugHidesNonActiveClubs(t *testing.T) {
	clubsRepo := &fakeClubsRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Club, error) {
			return &models.Club{ID: uuid.New(), Slug: slug, Status: enums.ClubStatusPending}, nil
		},
	}
	svc := buildReviewService(t, &fakeReviewRepo{}, clubsRepo, nil)

	_, err := svc.ListForClubSlug(context.Background(), "ghost-riders", ListParams{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for pending club, got %v", err)
	}
}

func TestListForClubSlugRequestsApprovedOnly(t *testing.T) {
	clubID := uuid.New()
	clubsRepo := &fakeClubsRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Club, error) {
			return activeClub(clubID), nil
		},
	}
	var captured *listReviewsParams
	repo := &fakeReviewRepo{
		listClubFn: func(ctx context.Context, params listReviewsParams) ([]models.Review, *pagination.Cursor, error) {
			captured = &params
			return nil, nil, nil
		},
	}
	svc := buildReviewService(t, repo, clubsRepo, nil)

	if _, err := svc.ListForClubSlug(context.Background(), "test-club", ListParams{}); err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if captured == nil || !captured.ApprovedOnly || captured.ClubID != clubID {
		t.Fatalf("expected approved-only list for club, got %+v", captured)
	}
}

func TestResolveReviewApproveRecomputesAggregates(t *testing.T) {
	reviewID := uuid.New()
	userID := uuid.New()
	clubID := uuid.New()

	review := &models.Review{ID: reviewID, UserID: userID, ClubID: clubID, Rating: 5, Status: enums.ReviewStatusPending}
	recomputed := false
	repo := &fakeReviewRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Review, error) {
			return review, nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) (resolveResult, error) {
			if status != enums.ReviewStatusApproved {
				t.Fatalf("expected approved target, got %s", status)
			}
			return resolveResult{Found: true, Updated: true}, nil
		},
		recomputeFn: func(ctx context.Context, cID uuid.UUID) (decimal.Decimal, int, error) {
			if cID != clubID {
				t.Fatalf("recompute for wrong club %s", cID)
			}
			recomputed = true
			return decimal.NewFromFloat(4.7), 3, nil
		},
	}
	notifs := &fakeNotificationRepo{}
	svc := buildReviewService(t, repo, &fakeClubsRepo{}, notifs)

	dto, err := svc.ResolveReview(context.Background(), reviewID, enums.ModerationDecisionApprove)
	if err != nil {
		t.Fatalf("resolve review: %v", err)
	}
	if !recomputed {
		t.Fatal("approval must recompute the club aggregates")
	}
	if dto.Status != enums.ReviewStatusApproved {
		t.Fatalf("expected approved, got %s", dto.Status)
	}
	if len(notifs.created) != 1 || notifs.created[0].Type != enums.NotificationTypeReviewUpdate {
		t.Fatalf("expected review notification, got %+v", notifs.created)
	}
	if notifs.created[0].UserID == nil || *notifs.created[0].UserID != userID {
		t.Fatal("notification must target the reviewer")
	}
}

func TestResolveReviewRejectSkipsRecompute(t *testing.T) {
	reviewID := uuid.New()
	review := &models.Review{ID: reviewID, UserID: uuid.New(), ClubID: uuid.New(), Rating: 1, Status: enums.ReviewStatusPending}
	repo := &fakeReviewRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Review, error) {
			return review, nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) (resolveResult, error) {
			return resolveResult{Found: true, Updated: true}, nil
		},
		recomputeFn: func(ctx context.Context, cID uuid.UUID) (decimal.Decimal, int, error) {
			t.Fatal("reject must not recompute aggregates")
			return decimal.Zero, 0, nil
		},
	}
	svc := buildReviewService(t, repo, &fakeClubsRepo{}, nil)

	dto, err := svc.ResolveReview(context.Background(), reviewID, enums.ModerationDecisionReject)
	if err != nil {
		t.Fatalf("resolve review: %v", err)
	}
	if dto.Status != enums.ReviewStatusRejected {
		t.Fatalf("expected rejected, got %s", dto.Status)
	}
}

func TestResolveReviewAlreadyResolved(t *testing.T) {
	reviewID := uuid.New()
	review := &models.Review{ID: reviewID, Status: enums.ReviewStatusApproved}
	repo := &fakeReviewRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Review, error) {
			return review, nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) (resolveResult, error) {
			return resolveResult{Found: true, Updated: false}, nil
		},
	}
	svc := buildReviewService(t, repo, &fakeClubsRepo{}, nil)

	_, err := svc.ResolveReview(context.Background(), reviewID, enums.ModerationDecisionApprove)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestResolveReviewNotFound(t *testing.T) {
	svc := buildReviewService(t, &fakeReviewRepo{}, &fakeClubsRepo{}, nil)
	_, err := svc.ResolveReview(context.Background(), uuid.New(), enums.ModerationDecisionApprove)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
