package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
)

func setupFavoritesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	for _, schema := range []string{`
CREATE TABLE IF NOT EXISTS favorites (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  club_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, club_id)
);`, `
CREATE TABLE IF NOT EXISTS clubs (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  website TEXT,
  phone TEXT,
  email TEXT,
  tags TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  is_verified INTEGER NOT NULL DEFAULT 0,
  claimed_by_id TEXT,
  submitted_by_id TEXT,
  rating TEXT NOT NULL DEFAULT '0',
  review_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`} {
		require.NoError(t, db.Exec(schema).Error)
	}
	return db
}

func seedFavoriteClub(t *testing.T, db *gorm.DB, name string) *models.Club {
	t.Helper()
	club := &models.Club{
		ID:     uuid.New(),
		Slug:   "club-" + uuid.NewString()[:8],
		Name:   name,
		City:   "Columbus",
		State:  "OH",
		Status: enums.ClubStatusActive,
	}
	require.NoError(t, db.Create(club).Error)
	return club
}

func TestFavoritesListJoinsClubSummary(t *testing.T) {
	db := setupFavoritesTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	first := seedFavoriteClub(t, db, "Night Owls MC")
	second := seedFavoriteClub(t, db, "River Rats MC")

	require.NoError(t, repo.Create(context.Background(), &models.Favorite{
		ID: uuid.New(), UserID: userID, ClubID: first.ID, CreatedAt: time.Now().UTC().Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(context.Background(), &models.Favorite{
		ID: uuid.New(), UserID: userID, ClubID: second.ID, CreatedAt: time.Now().UTC(),
	}))
	// another user's bookmark must not leak into the list
	require.NoError(t, repo.Create(context.Background(), &models.Favorite{
		ID: uuid.New(), UserID: uuid.New(), ClubID: first.ID, CreatedAt: time.Now().UTC(),
	}))

	rows, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "River Rats MC", rows[0].ClubName)
	assert.Equal(t, second.Slug, rows[0].ClubSlug)
	assert.Equal(t, "Night Owls MC", rows[1].ClubName)
	assert.Equal(t, "OH", rows[1].ClubState)
}

func TestFavoritesUniquePerUserAndClub(t *testing.T) {
	db := setupFavoritesTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()
	club := seedFavoriteClub(t, db, "Dup Club MC")

	require.NoError(t, repo.Create(context.Background(), &models.Favorite{
		ID: uuid.New(), UserID: userID, ClubID: club.ID,
	}))
	err := repo.Create(context.Background(), &models.Favorite{
		ID: uuid.New(), UserID: userID, ClubID: club.ID,
	})
	require.Error(t, err)

	exists, err := repo.Exists(context.Background(), userID, club.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFavoritesDelete(t *testing.T) {
	db := setupFavoritesTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()
	club := seedFavoriteClub(t, db, "Gone Club MC")

	require.NoError(t, repo.Create(context.Background(), &models.Favorite{
		ID: uuid.New(), UserID: userID, ClubID: club.ID,
	}))

	removed, err := repo.Delete(context.Background(), userID, club.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(context.Background(), userID, club.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
