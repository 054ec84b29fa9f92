package newsletter

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
)

// Repository exposes persistence helpers for newsletter signups.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error
	Resubscribe(ctx context.Context, email string) (bool, error)
	Unsubscribe(ctx context.Context, email string, now time.Time) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a newsletter repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	if err := r.db.WithContext(ctx).First(&subscriber, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *repositoryImpl) Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}

// Resubscribe clears the unsubscribe stamp on an existing row.
func (r *repositoryImpl) Resubscribe(ctx context.Context, email string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.NewsletterSubscriber{}).
		Where("email = ? AND unsubscribed_at IS NOT NULL", email).
		UpdateColumn("unsubscribed_at", nil)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) Unsubscribe(ctx context.Context, email string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.NewsletterSubscriber{}).
		Where("email = ? AND unsubscribed_at IS NULL", email).
		UpdateColumn("unsubscribed_at", now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
