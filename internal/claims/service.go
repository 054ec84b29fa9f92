package claims

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/internal/clubs"
	"github.com/jmcalloway/motoclubs-backend/internal/notifications"
	"github.com/jmcalloway/motoclubs-backend/pkg/db"
	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
	"github.com/jmcalloway/motoclubs-backend/pkg/mailer"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Service governs the ownership-claim workflow.
type Service interface {
	SubmitClaim(ctx context.Context, userID, clubID uuid.UUID, input SubmitClaimInput) (*ClaimDTO, error)
	ListClaims(ctx context.Context, params ListParams) (*ListResult, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ClaimDTO, error)
	ResolveClaim(ctx context.Context, claimID uuid.UUID, decision enums.ModerationDecision) (*ClaimDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	db            txRunner
	repo          Repository
	clubs         clubs.Repository
	notifications notifications.Repository
	users         userFinder
	mail          mailer.Sender
	logg          *logger.Logger
}

// ServiceParams bundles the dependencies required to build the claims service.
type ServiceParams struct {
	DB            txRunner
	Repo          Repository
	Clubs         clubs.Repository
	Notifications notifications.Repository
	Users         userFinder
	Mailer        mailer.Sender
	Logger        *logger.Logger
}

// NewService wires claims dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("claims repository is required")
	}
	if params.Clubs == nil {
		return nil, fmt.Errorf("clubs repository is required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications repository is required")
	}
	return &service{
		db:            params.DB,
		repo:          params.Repo,
		clubs:         params.Clubs,
		notifications: params.Notifications,
		users:         params.Users,
		mail:          params.Mailer,
		logg:          params.Logger,
	}, nil
}

// ListParams filters the admin claim queue.
type ListParams struct {
	Status *enums.ClaimStatus
	Limit  int
	Cursor string
}

// ListResult wraps the joined claim rows and the next-page cursor.
type ListResult struct {
	Items  []ClaimDetail `json:"items"`
	Cursor string        `json:"cursor"`
}

// SubmitClaim checks the club's claimability and records a pending claim.
// Precondition order: club exists, club unclaimed, no duplicate pending claim.
func (s *service) SubmitClaim(ctx context.Context, userID, clubID uuid.UUID, input SubmitClaimInput) (*ClaimDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club id is required")
	}

	club, err := s.clubs.FindByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}
	if club.ClaimedByID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "club already claimed")
	}

	pendingExists, err := s.repo.HasPending(ctx, userID, clubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check pending claim")
	}
	if pendingExists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate pending claim")
	}

	claim := &models.ClubClaim{
		UserID:        userID,
		ClubID:        clubID,
		BusinessEmail: input.BusinessEmail,
		Message:       input.Message,
		Status:        enums.ClaimStatusPending,
	}
	if err := s.repo.Create(ctx, claim); err != nil {
		// the partial unique index backs the check-then-act race
		if db.IsUniqueViolation(err, "idx_club_claims_pending") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate pending claim")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create claim")
	}
	return FromModel(claim), nil
}

func (s *service) ListClaims(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listClaimsParams{
		Status: params.Status,
		Limit:  params.Limit,
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	query.Cursor = cursor

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list claims")
	}

	result := &ListResult{Items: rows}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ClaimDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list claims")
	}
	items := make([]ClaimDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return items, nil
}

// ResolveClaim finalizes a pending claim. Approval also flips the club's
// claimant and verification flag; both writes commit together or not at all.
func (s *service) ResolveClaim(ctx context.Context, claimID uuid.UUID, decision enums.ModerationDecision) (*ClaimDTO, error) {
	if claimID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "claim id is required")
	}
	if !decision.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid decision")
	}

	target := enums.ClaimStatusApproved
	if decision == enums.ModerationDecisionReject {
		target = enums.ClaimStatusRejected
	}

	var resolved *models.ClubClaim
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		claim, err := repo.FindByID(ctx, claimID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "claim not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load claim")
		}

		now := time.Now().UTC()
		result, err := repo.Resolve(ctx, claimID, target, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve claim")
		}
		if !result.Found {
			return pkgerrors.New(pkgerrors.CodeNotFound, "claim not found")
		}
		if !result.Updated {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "claim already resolved")
		}

		if target == enums.ClaimStatusApproved {
			assigned, err := s.clubs.WithTx(tx).AssignClaimant(ctx, claim.ClubID, claim.UserID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign claimant")
			}
			if !assigned {
				// another approval landed first; roll back the claim update
				return pkgerrors.New(pkgerrors.CodeConflict, "club already claimed")
			}
		}

		claim.Status = target
		claim.ReviewedAt = &now
		resolved = claim

		notification := &models.Notification{
			Audience: enums.NotificationAudiencePersonal,
			UserID:   &claim.UserID,
			Type:     enums.NotificationTypeClaimUpdate,
			Title:    "Claim " + string(target),
			Body:     fmt.Sprintf("Your ownership claim was %s.", target),
		}
		if err := s.notifications.WithTx(tx).Create(ctx, notification); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify claimant")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendDecisionEmail(ctx, resolved)

	return FromModel(resolved), nil
}

// sendDecisionEmail is best-effort; a mail failure never fails the resolution.
func (s *service) sendDecisionEmail(ctx context.Context, claim *models.ClubClaim) {
	if s.mail == nil || s.users == nil || claim == nil {
		return
	}
	user, err := s.users.FindByID(ctx, claim.UserID)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "load claimant for email", err)
		}
		return
	}
	subject := "Your club claim was " + string(claim.Status)
	body := fmt.Sprintf("Hi %s,\n\nYour ownership claim has been %s.", user.Name, claim.Status)
	if err := s.mail.Send(ctx, user.Email, subject, body, ""); err != nil && s.logg != nil {
		s.logg.Error(ctx, "send claim decision email", err)
	}
}
