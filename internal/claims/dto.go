package claims

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

// ClaimDTO is the transport shape of an ownership claim.
type ClaimDTO struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	ClubID        uuid.UUID         `json:"club_id"`
	BusinessEmail *string           `json:"business_email,omitempty"`
	Message       *string           `json:"message,omitempty"`
	Status        enums.ClaimStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	ReviewedAt    *time.Time        `json:"reviewed_at,omitempty"`
}

// ClaimDetail joins the claim with requester and club summaries for the
// admin review queue.
type ClaimDetail struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	ClubID         uuid.UUID         `json:"club_id"`
	BusinessEmail  *string           `json:"business_email,omitempty"`
	Message        *string           `json:"message,omitempty"`
	Status         enums.ClaimStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	ReviewedAt     *time.Time        `json:"reviewed_at,omitempty"`
	RequesterName  string            `json:"requester_name"`
	RequesterEmail string            `json:"requester_email"`
	ClubName       string            `json:"club_name"`
	ClubSlug       string            `json:"club_slug"`
}

// FromModel converts a persisted claim into its transport shape.
func FromModel(c *models.ClubClaim) *ClaimDTO {
	if c == nil {
		return nil
	}
	return &ClaimDTO{
		ID:            c.ID,
		UserID:        c.UserID,
		ClubID:        c.ClubID,
		BusinessEmail: c.BusinessEmail,
		Message:       c.Message,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		ReviewedAt:    c.ReviewedAt,
	}
}

// SubmitClaimInput carries the optional evidence fields on a new claim.
type SubmitClaimInput struct {
	BusinessEmail *string
	Message       *string
}
