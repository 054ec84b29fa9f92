package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

// ClubClaim records a user's assertion of ownership over a listing.
// Resolved claims are immutable.
type ClubClaim struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	ClubID        uuid.UUID         `gorm:"column:club_id;type:uuid;not null"`
	BusinessEmail *string           `gorm:"column:business_email;type:text"`
	Message       *string           `gorm:"column:message;type:text"`
	Status        enums.ClaimStatus `gorm:"column:status;type:claim_status;not null;default:'pending'"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	ReviewedAt    *time.Time        `gorm:"column:reviewed_at"`
}
