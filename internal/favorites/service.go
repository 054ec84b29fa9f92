package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/internal/clubs"
	"github.com/jmcalloway/motoclubs-backend/pkg/db"
	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
)

// Service manages a user's saved clubs.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]FavoriteDetail, error)
	Add(ctx context.Context, userID, clubID uuid.UUID) (*FavoriteDTO, error)
	Remove(ctx context.Context, userID, clubID uuid.UUID) error
}

type service struct {
	repo  Repository
	clubs clubs.Repository
}

// ServiceParams bundles the dependencies required to build the favorites service.
type ServiceParams struct {
	Repo  Repository
	Clubs clubs.Repository
}

// NewService wires favorites dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("favorites repository is required")
	}
	if params.Clubs == nil {
		return nil, fmt.Errorf("clubs repository is required")
	}
	return &service{repo: params.Repo, clubs: params.Clubs}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]FavoriteDetail, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}
	return rows, nil
}

// Add bookmarks an active club. Saving the same club twice is a conflict.
func (s *service) Add(ctx context.Context, userID, clubID uuid.UUID) (*FavoriteDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club id is required")
	}

	club, err := s.clubs.FindByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}
	if club.Status != enums.ClubStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
	}

	exists, err := s.repo.Exists(ctx, userID, clubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "club already favorited")
	}

	favorite := &models.Favorite{UserID: userID, ClubID: clubID}
	if err := s.repo.Create(ctx, favorite); err != nil {
		// the unique index backs the check-then-act race
		if db.IsUniqueViolation(err, "idx_favorites_user_club") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "club already favorited")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create favorite")
	}
	return &FavoriteDTO{ID: favorite.ID, ClubID: favorite.ClubID, CreatedAt: favorite.CreatedAt}, nil
}

func (s *service) Remove(ctx context.Context, userID, clubID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	if clubID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "club id is required")
	}
	removed, err := s.repo.Delete(ctx, userID, clubID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete favorite")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "favorite not found")
	}
	return nil
}
