package clubs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

// ClubDTO is the transport shape of a directory listing.
type ClubDTO struct {
	ID          uuid.UUID        `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	City        string           `json:"city"`
	State       string           `json:"state"`
	Website     *string          `json:"website,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Tags        []string         `json:"tags"`
	Status      enums.ClubStatus `json:"status"`
	IsVerified  bool             `json:"is_verified"`
	Rating      decimal.Decimal  `json:"rating"`
	ReviewCount int              `json:"review_count"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// FromModel converts a persisted club into its transport shape.
func FromModel(c *models.Club) *ClubDTO {
	if c == nil {
		return nil
	}
	return &ClubDTO{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		City:        c.City,
		State:       c.State,
		Website:     c.Website,
		Phone:       c.Phone,
		Email:       c.Email,
		Tags:        append([]string(nil), c.Tags...),
		Status:      c.Status,
		IsVerified:  c.IsVerified,
		Rating:      c.Rating,
		ReviewCount: c.ReviewCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateClubInput carries the fields a rider submits for a new listing.
type CreateClubInput struct {
	Name        string
	Description string
	City        string
	State       string
	Website     *string
	Phone       *string
	Email       *string
	Tags        []string
}

// UpdateClubInput carries the descriptive fields an admin may edit.
// Nil pointers leave the stored value untouched.
type UpdateClubInput struct {
	Name        *string
	Description *string
	City        *string
	State       *string
	Website     *string
	Phone       *string
	Email       *string
	Tags        []string
}
