package favorites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
)

// Repository exposes persistence helpers for favorites.
type Repository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	Exists(ctx context.Context, userID, clubID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]FavoriteDetail, error)
	Delete(ctx context.Context, userID, clubID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a favorites repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, favorite *models.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *repositoryImpl) Exists(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser returns the user's bookmarks joined with a club summary,
// newest bookmark first.
func (r *repositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]FavoriteDetail, error) {
	var rows []FavoriteDetail
	err := r.db.WithContext(ctx).
		Table("favorites").
		Select(`favorites.id, favorites.club_id, favorites.created_at,
			clubs.name AS club_name, clubs.slug AS club_slug,
			clubs.city AS club_city, clubs.state AS club_state,
			clubs.rating AS club_rating`).
		Joins("JOIN clubs ON clubs.id = favorites.club_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC, favorites.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repositoryImpl) Delete(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.Favorite{}, "user_id = ? AND club_id = ?", userID, clubID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
