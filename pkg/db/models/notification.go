package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

// Notification stores in-app notification payloads. Personal notifications
// carry a user id; broadcasts address every user and keep UserID nil.
type Notification struct {
	ID        uuid.UUID                  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Audience  enums.NotificationAudience `gorm:"column:audience;type:notification_audience;not null;default:'personal'"`
	UserID    *uuid.UUID                 `gorm:"column:user_id;type:uuid"`
	Type      enums.NotificationType     `gorm:"column:type;type:notification_type;not null"`
	Title     string                     `gorm:"type:text;not null"`
	Body      string                     `gorm:"type:text;not null"`
	Link      *string                    `gorm:"type:text"`
	ReadAt    *time.Time                 `gorm:"column:read_at"`
	CreatedAt time.Time                  `gorm:"column:created_at;autoCreateTime"`
}
