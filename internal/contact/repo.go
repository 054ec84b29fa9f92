package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Repository exposes persistence helpers for contact submissions.
type Repository interface {
	Create(ctx context.Context, submission *models.ContactSubmission) error
	List(ctx context.Context, params listSubmissionsParams) ([]models.ContactSubmission, *pagination.Cursor, error)
	Resolve(ctx context.Context, id uuid.UUID, now time.Time) (resolveResult, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a contact repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listSubmissionsParams struct {
	UnresolvedOnly bool
	Limit          int
	Cursor         *pagination.Cursor
}

type resolveResult struct {
	Found   bool
	Updated bool
}

func (r *repositoryImpl) Create(ctx context.Context, submission *models.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listSubmissionsParams) ([]models.ContactSubmission, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.ContactSubmission{})
	if params.UnresolvedOnly {
		query = query.Where("resolved_at IS NULL")
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.ContactSubmission
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

// Resolve stamps the submission once; re-resolution leaves the first stamp.
func (r *repositoryImpl) Resolve(ctx context.Context, id uuid.UUID, now time.Time) (resolveResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ContactSubmission{}).
		Where("id = ? AND resolved_at IS NULL", id).
		UpdateColumn("resolved_at", now)
	if result.Error != nil {
		return resolveResult{}, result.Error
	}
	if result.RowsAffected > 0 {
		return resolveResult{Found: true, Updated: true}, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContactSubmission{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return resolveResult{}, err
	}
	return resolveResult{Found: count > 0}, nil
}
