package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
)

// SubmissionDTO is the transport shape of a contact-form entry.
type SubmissionDTO struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// FromModel converts a persisted contact submission into its transport shape.
func FromModel(s *models.ContactSubmission) *SubmissionDTO {
	if s == nil {
		return nil
	}
	return &SubmissionDTO{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Subject:    s.Subject,
		Body:       s.Body,
		ResolvedAt: s.ResolvedAt,
		CreatedAt:  s.CreatedAt,
	}
}

// SubmitInput carries the public contact form fields.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}
