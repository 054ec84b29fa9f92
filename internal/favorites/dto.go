package favorites

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FavoriteDTO is the transport shape of a saved club bookmark.
type FavoriteDTO struct {
	ID        uuid.UUID `json:"id"`
	ClubID    uuid.UUID `json:"club_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteDetail joins the bookmark with the club summary shown in the
// user's saved-clubs list.
type FavoriteDetail struct {
	ID         uuid.UUID       `json:"id"`
	ClubID     uuid.UUID       `json:"club_id"`
	CreatedAt  time.Time       `json:"created_at"`
	ClubName   string          `json:"club_name"`
	ClubSlug   string          `json:"club_slug"`
	ClubCity   string          `json:"club_city"`
	ClubState  string          `json:"club_state"`
	ClubRating decimal.Decimal `json:"club_rating"`
}
