package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a user's bookmark of a club.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_favorites_user_club"`
	ClubID    uuid.UUID `gorm:"column:club_id;type:uuid;not null;uniqueIndex:idx_favorites_user_club"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
