package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a private note delivered to a user's inbox. A nil SenderID
// marks a message sent by the site staff rather than another member.
type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SenderID    *uuid.UUID `gorm:"column:sender_id;type:uuid"`
	RecipientID uuid.UUID  `gorm:"column:recipient_id;type:uuid;not null"`
	Subject     string     `gorm:"type:text;not null"`
	Body        string     `gorm:"type:text;not null"`
	ReadAt      *time.Time `gorm:"column:read_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
