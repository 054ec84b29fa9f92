package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber tracks a mailing-list signup. Unsubscribes keep the
// row and stamp UnsubscribedAt so a re-subscribe can clear it.
type NewsletterSubscriber struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string     `gorm:"type:text;not null;uniqueIndex"`
	UnsubscribedAt *time.Time `gorm:"column:unsubscribed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
