package claims

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
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

type fakeClaimRepo struct {
	createFn     func(ctx context.Context, claim *models.ClubClaim) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.ClubClaim, error)
	hasPendingFn func(ctx context.Context, userID, clubID uuid.UUID) (bool, error)
	resolveFn    func(ctx context.Context, id uuid.UUID, status enums.ClaimStatus, reviewedAt time.Time) (resolveResult, error)
}

func (f *fakeClaimRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeClaimRepo) Create(ctx context.Context, claim *models.ClubClaim) error {
	if f.createFn != nil {
		return f.createFn(ctx, claim)
	}
	return nil
}

func (f *fakeClaimRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ClubClaim, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClaimRepo) HasPending(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
	if f.hasPendingFn != nil {
		return f.hasPendingFn(ctx, userID, clubID)
	}
	return false, nil
}

func (f *fakeClaimRepo) List(ctx context.Context, params listClaimsParams) ([]ClaimDetail, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (f *fakeClaimRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ClubClaim, error) {
	return nil, nil
}

func (f *fakeClaimRepo) Resolve(ctx context.Context, id uuid.UUID, status enums.ClaimStatus, reviewedAt time.Time) (resolveResult, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, id, status, reviewedAt)
	}
	return resolveResult{}, nil
}

func (f *fakeClaimRepo) ExpirePendingBefore(ctx context.Context, cutoff, reviewedAt time.Time) (int64, error) {
	return 0, nil
}

type fakeClubsRepo struct {
	clubspkg.Repository
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Club, error)
	assignFn   func(ctx context.Context, clubID, userID uuid.UUID) (bool, error)
}

func (f *fakeClubsRepo) WithTx(tx *gorm.DB) clubspkg.Repository { return f }

func (f *fakeClubsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClubsRepo) AssignClaimant(ctx context.Context, clubID, userID uuid.UUID) (bool, error) {
	if f.assignFn != nil {
		return f.assignFn(ctx, clubID, userID)
	}
	return false, nil
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

func buildClaimService(t *testing.T, repo Repository, clubsRepo clubspkg.Repository, notifs *fakeNotificationRepo) Service {
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

func TestSubmitClaimChecksPreconditionsInOrder(t *testing.T) {
	userID := uuid.New()
	clubID := uuid.New()

	t.Run("club not found", func(t *testing.T) {
		svc := buildClaimService(t, &fakeClaimRepo{}, &fakeClubsRepo{}, nil)
		_, err := svc.SubmitClaim(context.Background(), userID, clubID, SubmitClaimInput{})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("already claimed wins over duplicate pending", func(t *testing.T) {
		owner := uuid.New()
		clubsRepo := &fakeClubsRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Club, error) {
				return &models.Club{ID: clubID, ClaimedByID: &owner}, nil
			},
		}
		repo := &fakeClaimRepo{
			hasPendingFn: func(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
				t.Fatal("pending check must not run for a claimed club")
				return false, nil
			},
		}
		svc := buildClaimService(t, repo, clubsRepo, nil)
		_, err := svc.SubmitClaim(context.Background(), userID, clubID, SubmitClaimInput{})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("duplicate pending claim", func(t *testing.T) {
		clubsRepo := &fakeClubsRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Club, error) {
				return &models.Club{ID: clubID}, nil
			},
		}
		repo := &fakeClaimRepo{
			hasPendingFn: func(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
				return true, nil
			},
			createFn: func(ctx context.Context, claim *models.ClubClaim) error {
				t.Fatal("create must not run for a duplicate pending claim")
				return nil
			},
		}
		svc := buildClaimService(t, repo, clubsRepo, nil)
		_, err := svc.SubmitClaim(context.Background(), userID, clubID, SubmitClaimInput{})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("success creates pending claim", func(t *testing.T) {
		clubsRepo := &fakeClubsRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Club, error) {
				return &models.Club{ID: clubID}, nil
			},
		}
		var created *models.ClubClaim
		repo := &fakeClaimRepo{
			createFn: func(ctx context.Context, claim *models.ClubClaim) error {
				created = claim
				return nil
			},
		}
		svc := buildClaimService(t, repo, clubsRepo, nil)
		dto, err := svc.SubmitClaim(context.Background(), userID, clubID, SubmitClaimInput{})
		if err != nil {
			t.Fatalf("submit claim: %v", err)
		}
		if created == nil || created.Status != enums.ClaimStatusPending {
			t.Fatalf("expected pending claim, got %+v", created)
		}
		if dto.UserID != userID || dto.ClubID != clubID {
			t.Fatalf("unexpected dto %+v", dto)
		}
	})
}

func TestResolveClaimApproveFlipsClubOwnership(t *testing.T) {
	claimID := uuid.New()
	userID := uuid.New()
	clubID := uuid.New()

	claim := &models.ClubClaim{ID: claimID, UserID: userID, ClubID: clubID, Status: enums.ClaimStatusPending}
	repo := &fakeClaimRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.ClubClaim, error) {
			return claim, nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, status enums.ClaimStatus, reviewedAt time.Time) (resolveResult, error) {
			if status != enums.ClaimStatusApproved {
				t.Fatalf("expected approved target, got %s", status)
			}
			return resolveResult{Found: true, Updated: true}, nil
		},
	}
	var assignedClub, assignedUser uuid.UUID
	clubsRepo := &fakeClubsRepo{
		assignFn: func(ctx context.Context, cID, uID uuid.UUID) (bool, error) {
			assignedClub, assignedUser = cID, uID
			return true, nil
		},
	}
	notifs := &fakeNotificationRepo{}
	svc := buildClaimService(t, repo, clubsRepo, notifs)

	dto, err := svc.ResolveClaim(context.Background(), claimID, enums.ModerationDecisionApprove)
	if err != nil {
		t.Fatalf("resolve claim: %v", err)
	}
	if assignedClub != clubID || assignedUser != userID {
		t.Fatal("club claimant not assigned from the claim")
	}
	if dto.Status != enums.ClaimStatusApproved || dto.ReviewedAt == nil {
		t.Fatalf("unexpected resolved claim %+v", dto)
	}
	if len(notifs.created) != 1 || notifs.created[0].Type != enums.NotificationTypeClaimUpdate {
		t.Fatalf("expected claim notification, got %+v", notifs.created)
	}
}

func TestResolveClaimRejectLeavesClubAlone(t *testing.T) {
	claimID := uuid.New()
	claim := &models.ClubClaim{ID: claimID, UserID: uuid.New(), ClubID: uuid.New(), Status: enums.ClaimStatusPending}
	repo := &fakeClaimRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.ClubClaim, error) {
			return claim, nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, status enums.ClaimStatus, reviewedAt time.Time) (resolveResult, error) {
			return resolveResult{Found: true, Updated: true}, nil
		},
	}
	clubsRepo := &fakeClubsRepo{
		assignFn: func(ctx context.Context, cID, uID uuid.UUID) (bool, error) {
			t.Fatal("reject must not touch the club")
			return false, nil
		},
	}
	svc := buildClaimService(t, repo, clubsRepo, nil)

	dto, err := svc.ResolveClaim(context.Background(), claimID, enums.ModerationDecisionReject)
	if err != nil {
		t.Fatalf("resolve claim: %v", err)
	}
	if dto.Status != enums.ClaimStatusRejected {
		t.Fatalf("expected rejected, got %s", dto.Status)
	}
}

func TestResolveClaimLostRaceSurfacesConflict(t *testing.T) {
	claimID := uuid.New()
	claim := &models.ClubClaim{ID: claimID, UserID: uuid.New(), ClubID: uuid.New(), Status: enums.ClaimStatusPending}
	repo := &fakeClaimRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.ClubClaim, error) {
			return claim, nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, status enums.ClaimStatus, reviewedAt time.Time) (resolveResult, error) {
			return resolveResult{Found: true, Updated: true}, nil
		},
	}
	clubsRepo := &fakeClubsRepo{
		assignFn: func(ctx context.Context, cID, uID uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := buildClaimService(t, repo, clubsRepo, nil)

	_, err := svc.ResolveClaim(context.Background(), claimID, enums.ModerationDecisionApprove)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict when the CAS loses, got %v", err)
	}
}

func TestResolveClaimAlreadyResolved(t *testing.T) {
	claimID := uuid.New()
	claim := &models.ClubClaim{ID: claimID, Status: enums.ClaimStatusApproved}
	repo := &fakeClaimRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.ClubClaim, error) {
			return claim, nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, status enums.ClaimStatus, reviewedAt time.Time) (resolveResult, error) {
			return resolveResult{Found: true, Updated: false}, nil
		},
	}
	svc := buildClaimService(t, repo, &fakeClubsRepo{}, nil)

	_, err := svc.ResolveClaim(context.Background(), claimID, enums.ModerationDecisionApprove)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestResolveClaimNotFound(t *testing.T) {
	svc := buildClaimService(t, &fakeClaimRepo{}, &fakeClubsRepo{}, nil)
	_, err := svc.ResolveClaim(context.Background(), uuid.New(), enums.ModerationDecisionApprove)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
