package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

// Review holds a member's rating of a club. One review per (user, club),
// enforced by a unique index.
type Review struct {
	ID        uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID          `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_reviews_user_club"`
	ClubID    uuid.UUID          `gorm:"column:club_id;type:uuid;not null;uniqueIndex:idx_reviews_user_club"`
	Rating    int                `gorm:"column:rating;not null"`
	Title     *string            `gorm:"column:title;type:text"`
	Content   string             `gorm:"column:content;type:text;not null"`
	Status    enums.ReviewStatus `gorm:"column:status;type:review_status;not null;default:'pending'"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
