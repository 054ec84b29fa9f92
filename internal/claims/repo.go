package claims

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Repository exposes persistence helpers for club claims.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, claim *models.ClubClaim) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ClubClaim, error)
	HasPending(ctx context.Context, userID, clubID uuid.UUID) (bool, error)
	List(ctx context.Context, params listClaimsParams) ([]ClaimDetail, *pagination.Cursor, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ClubClaim, error)
	Resolve(ctx context.Context, id uuid.UUID, status enums.ClaimStatus, reviewedAt time.Time) (resolveResult, error)
	ExpirePendingBefore(ctx context.Context, cutoff time.Time, reviewedAt time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a claims repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listClaimsParams struct {
	Status *enums.ClaimStatus
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

func (r *repositoryImpl) Create(ctx context.Context, claim *models.ClubClaim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.ClubClaim, error) {
	var claim models.ClubClaim
	if err := r.db.WithContext(ctx).First(&claim, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *repositoryImpl) HasPending(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClubClaim{}).
		Where("user_id = ? AND club_id = ? AND status = ?", userID, clubID, enums.ClaimStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns claims joined with requester and club summaries, newest first.
func (r *repositoryImpl) List(ctx context.Context, params listClaimsParams) ([]ClaimDetail, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Table("club_claims").
		Select(`club_claims.id, club_claims.user_id, club_claims.club_id,
club_claims.business_email, club_claims.message, club_claims.status,
club_claims.created_at, club_claims.reviewed_at,
users.name AS requester_name, users.email AS requester_email,
clubs.name AS club_name, clubs.slug AS club_slug`).
		Joins("JOIN users ON users.id = club_claims.user_id").
		Joins("JOIN clubs ON clubs.id = club_claims.club_id")
	if params.Status != nil {
		query = query.Where("club_claims.status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(club_claims.created_at, club_claims.id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []ClaimDetail
	if err := query.Order("club_claims.created_at DESC, club_claims.id DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ClubClaim, error) {
	var rows []models.ClubClaim
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Resolve transitions a pending claim to a terminal status. The pending guard
// makes resolved claims immutable.
func (r *repositoryImpl) Resolve(ctx context.Context, id uuid.UUID, status enums.ClaimStatus, reviewedAt time.Time) (resolveResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ClubClaim{}).
		Where("id = ? AND status = ?", id, enums.ClaimStatusPending).
		Updates(map[string]any{"status": status, "reviewed_at": reviewedAt})
	if result.Error != nil {
		return resolveResult{}, result.Error
	}
	if result.RowsAffected > 0 {
		return resolveResult{Found: true, Updated: true}, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClubClaim{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return resolveResult{}, err
	}
	return resolveResult{Found: count > 0}, nil
}

// ExpirePendingBefore auto-rejects stale pending claims. No club fields change.
func (r *repositoryImpl) ExpirePendingBefore(ctx context.Context, cutoff time.Time, reviewedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ClubClaim{}).
		Where("status = ? AND created_at < ?", enums.ClaimStatusPending, cutoff).
		Updates(map[string]any{"status": enums.ClaimStatusRejected, "reviewed_at": reviewedAt})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
