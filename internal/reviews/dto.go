package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

// ReviewDTO is the transport shape of a club review.
type ReviewDTO struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	ClubID    uuid.UUID          `json:"club_id"`
	Rating    int                `json:"rating"`
	Title     *string            `json:"title,omitempty"`
	Content   string             `json:"content"`
	Status    enums.ReviewStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// FromModel converts a persisted review into its transport shape.
func FromModel(r *models.Review) *ReviewDTO {
	if r == nil {
		return nil
	}
	return &ReviewDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		ClubID:    r.ClubID,
		Rating:    r.Rating,
		Title:     r.Title,
		Content:   r.Content,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// SubmitReviewInput carries the fields a rider posts with a review.
type SubmitReviewInput struct {
	Rating  int
	Title   *string
	Content string
}
