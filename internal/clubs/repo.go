package clubs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Repository exposes persistence helpers for clubs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, club *models.Club) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error)
	FindBySlug(ctx context.Context, slug string) (*models.Club, error)
	List(ctx context.Context, params listClubsParams) ([]models.Club, *pagination.Cursor, error)
	ResolveStatus(ctx context.Context, id uuid.UUID, status enums.ClubStatus) (resolveResult, error)
	AssignClaimant(ctx context.Context, clubID, userID uuid.UUID) (bool, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Club, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a clubs repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listClubsParams struct {
	Status *enums.ClubStatus
	State  string
	City   string
	Query  string
	Limit  int
	Cursor *pagination.Cursor
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

func (r *repositoryImpl) Create(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).First(&club, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *repositoryImpl) FindBySlug(ctx context.Context, slug string) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).First(&club, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listClubsParams) ([]models.Club, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Club{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.State != "" {
		query = query.Where("state = ?", params.State)
	}
	if params.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", params.City)
	}
	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(city) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Club
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

// ResolveStatus flips a pending club to a terminal status. The pending guard
// keeps re-resolution from re-applying a transition.
func (r *repositoryImpl) ResolveStatus(ctx context.Context, id uuid.UUID, status enums.ClubStatus) (resolveResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Club{}).
		Where("id = ? AND status = ?", id, enums.ClubStatusPending).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return resolveResult{}, result.Error
	}
	if result.RowsAffected > 0 {
		return resolveResult{Found: true, Updated: true}, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Club{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return resolveResult{}, err
	}
	return resolveResult{Found: count > 0}, nil
}

// AssignClaimant sets the club owner with a compare-and-swap on the unclaimed
// state. Returns false when another claim already landed.
func (r *repositoryImpl) AssignClaimant(ctx context.Context, clubID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Club{}).
		Where("id = ? AND claimed_by_id IS NULL", clubID).
		Updates(map[string]any{"claimed_by_id": userID, "is_verified": true})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Club, error) {
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Club{}).
			Where("id = ?", id).
			Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Club{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
