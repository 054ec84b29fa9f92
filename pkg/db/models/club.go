package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

// Club is a directory listing. Rating and ReviewCount are denormalized
// aggregates over the club's approved reviews.
type Club struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Slug          string           `gorm:"type:text;not null;uniqueIndex"`
	Name          string           `gorm:"type:text;not null"`
	Description   string           `gorm:"type:text;not null"`
	City          string           `gorm:"type:text;not null"`
	State         string           `gorm:"type:text;not null"`
	Website       *string          `gorm:"type:text"`
	Phone         *string          `gorm:"type:text"`
	Email         *string          `gorm:"type:text"`
	Tags          pq.StringArray   `gorm:"column:tags;type:text[]"`
	Status        enums.ClubStatus `gorm:"column:status;type:club_status;not null;default:'pending'"`
	IsVerified    bool             `gorm:"column:is_verified;not null;default:false"`
	ClaimedByID   *uuid.UUID       `gorm:"column:claimed_by_id;type:uuid"`
	SubmittedByID *uuid.UUID       `gorm:"column:submitted_by_id;type:uuid"`
	Rating        decimal.Decimal  `gorm:"column:rating;type:numeric(2,1);not null;default:0"`
	ReviewCount   int              `gorm:"column:review_count;not null;default:0"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
