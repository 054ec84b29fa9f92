package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/internal/clubs"
	"github.com/jmcalloway/motoclubs-backend/internal/notifications"
	"github.com/jmcalloway/motoclubs-backend/pkg/db"
	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Service governs review submission and the review moderation workflow.
type Service interface {
	SubmitReview(ctx context.Context, userID, clubID uuid.UUID, input SubmitReviewInput) (*ReviewDTO, error)
	ListForClubSlug(ctx context.Context, slug string, params ListParams) (*ListResult, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ReviewDTO, error)
	ListQueue(ctx context.Context, params QueueParams) (*ListResult, error)
	ResolveReview(ctx context.Context, reviewID uuid.UUID, decision enums.ModerationDecision) (*ReviewDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	db            txRunner
	repo          Repository
	clubs         clubs.Repository
	notifications notifications.Repository
}

// ServiceParams bundles the dependencies required to build the reviews service.
type ServiceParams struct {
	DB            txRunner
	Repo          Repository
	Clubs         clubs.Repository
	Notifications notifications.Repository
}

// NewService wires reviews dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("reviews repository is required")
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
	}, nil
}

// ListParams paginates a club's public review feed.
type ListParams struct {
	Limit  int
	Cursor string
}

// QueueParams filters the admin moderation queue.
type QueueParams struct {
	Status *enums.ReviewStatus
	Limit  int
	Cursor string
}

// ListResult wraps returned reviews and the next-page cursor.
type ListResult struct {
	Items  []ReviewDTO `json:"items"`
	Cursor string      `json:"cursor"`
}

// SubmitReview validates the rating range and the one-review-per-club rule.
func (s *service) SubmitReview(ctx context.Context, userID, clubID uuid.UUID, input SubmitReviewInput) (*ReviewDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}

	if _, err := s.clubs.FindByID(ctx, clubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}

	exists, err := s.repo.Exists(ctx, userID, clubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing review")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "review already submitted for this club")
	}

	review := &models.Review{
		UserID:  userID,
		ClubID:  clubID,
		Rating:  input.Rating,
		Title:   input.Title,
		Content: content,
		Status:  enums.ReviewStatusPending,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		// the unique index backs the check-then-act race
		if db.IsUniqueViolation(err, "idx_reviews_user_club") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "review already submitted for this club")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return FromModel(review), nil
}

// ListForClubSlug returns the approved reviews shown on a public club page.
func (s *service) ListForClubSlug(ctx context.Context, slug string, params ListParams) (*ListResult, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	club, err := s.clubs.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}
	if club.Status != enums.ClubStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, next, err := s.repo.ListByClub(ctx, listReviewsParams{
		ClubID:       club.ID,
		ApprovedOnly: true,
		Limit:        params.Limit,
		Cursor:       cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return buildListResult(rows, next), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ReviewDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	items := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return items, nil
}

func (s *service) ListQueue(ctx context.Context, params QueueParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListByStatus(ctx, params.Status, params.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return buildListResult(rows, next), nil
}

// ResolveReview finalizes a pending review. Approval recomputes the club's
// aggregate rating over the current approved set, inside the same transaction
// that flips the review's status.
func (s *service) ResolveReview(ctx context.Context, reviewID uuid.UUID, decision enums.ModerationDecision) (*ReviewDTO, error) {
	if reviewID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	if !decision.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid decision")
	}

	target := enums.ReviewStatusApproved
	if decision == enums.ModerationDecisionReject {
		target = enums.ReviewStatusRejected
	}

	var resolved *models.Review
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		review, err := repo.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
		}

		result, err := repo.Resolve(ctx, reviewID, target)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve review")
		}
		if !result.Found {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		if !result.Updated {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "review already resolved")
		}

		if target == enums.ReviewStatusApproved {
			if _, _, err := repo.RecomputeClubAggregates(ctx, review.ClubID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute club rating")
			}
		}

		review.Status = target
		resolved = review

		notification := &models.Notification{
			Audience: enums.NotificationAudiencePersonal,
			UserID:   &review.UserID,
			Type:     enums.NotificationTypeReviewUpdate,
			Title:    "Review " + string(target),
			Body:     fmt.Sprintf("Your review was %s.", target),
		}
		if err := s.notifications.WithTx(tx).Create(ctx, notification); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify reviewer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(resolved), nil
}

func buildListResult(rows []models.Review, next *pagination.Cursor) *ListResult {
	items := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: items, Cursor: cursor}
}
