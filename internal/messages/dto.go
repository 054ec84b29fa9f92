package messages

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
)

// MessageDTO is the transport shape of an inbox message. A nil sender_id
// marks a staff message.
type MessageDTO struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    *uuid.UUID `json:"sender_id,omitempty"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromModel converts a persisted message into its transport shape.
func FromModel(m *models.Message) *MessageDTO {
	if m == nil {
		return nil
	}
	return &MessageDTO{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
		Body:        m.Body,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}

// SendMessageInput carries an outgoing message addressed to one recipient.
type SendMessageInput struct {
	RecipientID uuid.UUID
	Subject     string
	Body        string
}
