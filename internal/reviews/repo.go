package reviews

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Repository exposes persistence helpers for reviews.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Exists(ctx context.Context, userID, clubID uuid.UUID) (bool, error)
	ListByClub(ctx context.Context, params listReviewsParams) ([]models.Review, *pagination.Cursor, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error)
	ListByStatus(ctx context.Context, status *enums.ReviewStatus, limit int, cursor *pagination.Cursor) ([]models.Review, *pagination.Cursor, error)
	Resolve(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) (resolveResult, error)
	RecomputeClubAggregates(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, int, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a reviews repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listReviewsParams struct {
	ClubID       uuid.UUID
	ApprovedOnly bool
	Limit        int
	Cursor       *pagination.Cursor
}

type resolveResult struct {
	Found   bool
	Updated bool
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// Exists reports whether the user has any review for the club, regardless of status.
func (r *repositoryImpl) Exists(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) ListByClub(ctx context.Context, params listReviewsParams) ([]models.Review, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Review{}).Where("club_id = ?", params.ClubID)
	if params.ApprovedOnly {
		query = query.Where("status = ?", enums.ReviewStatusApproved)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Review
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ListByStatus(ctx context.Context, status *enums.ReviewStatus, limit int, cursor *pagination.Cursor) ([]models.Review, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)
	query := r.db.WithContext(ctx).Model(&models.Review{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Review
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

// Resolve transitions a pending review to a terminal status.
func (r *repositoryImpl) Resolve(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) (resolveResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ? AND status = ?", id, enums.ReviewStatusPending).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return resolveResult{}, result.Error
	}
	if result.RowsAffected > 0 {
		return resolveResult{Found: true, Updated: true}, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return resolveResult{}, err
	}
	return resolveResult{Found: count > 0}, nil
}

// RecomputeClubAggregates reads the current approved set and rewrites the
// club's denormalized rating and review count. The mean is rounded to one
// decimal place, halves away from zero.
func (r *repositoryImpl) RecomputeClubAggregates(ctx context.Context, clubID uuid.UUID) (decimal.Decimal, int, error) {
	var agg struct {
		Count int64
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS total").
		Where("club_id = ? AND status = ?", clubID, enums.ReviewStatusApproved).
		Scan(&agg).Error
	if err != nil {
		return decimal.Zero, 0, err
	}

	rating := decimal.Zero
	if agg.Count > 0 {
		mean := float64(agg.Total) / float64(agg.Count)
		rating = decimal.NewFromFloat(math.Round(mean*10) / 10)
	}

	err = r.db.WithContext(ctx).
		Model(&models.Club{}).
		Where("id = ?", clubID).
		Updates(map[string]any{"rating": rating, "review_count": agg.Count}).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return rating, int(agg.Count), nil
}
