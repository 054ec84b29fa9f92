package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactSubmission is an entry from the public contact form.
type ContactSubmission struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string     `gorm:"type:text;not null"`
	Email      string     `gorm:"type:text;not null"`
	Subject    string     `gorm:"type:text;not null"`
	Body       string     `gorm:"type:text;not null"`
	ResolvedAt *time.Time `gorm:"column:resolved_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}
