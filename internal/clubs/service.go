package clubs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/internal/notifications"
	"github.com/jmcalloway/motoclubs-backend/pkg/db"
	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Service covers public browsing, listing submission, and the admin
// submission workflow.
type Service interface {
	List(ctx context.Context, params PublicListParams) (*ListResult, error)
	GetBySlug(ctx context.Context, slug string) (*ClubDTO, error)
	Submit(ctx context.Context, userID uuid.UUID, input CreateClubInput) (*ClubDTO, error)
	ListSubmissions(ctx context.Context, params SubmissionListParams) (*ListResult, error)
	ResolveSubmission(ctx context.Context, clubID uuid.UUID, decision enums.ModerationDecision) (*ClubDTO, error)
	AdminUpdate(ctx context.Context, clubID uuid.UUID, input UpdateClubInput) (*ClubDTO, error)
	AdminDelete(ctx context.Context, clubID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	db            txRunner
	repo          Repository
	notifications notifications.Repository
}

// ServiceParams bundles the dependencies required to build the clubs service.
type ServiceParams struct {
	DB            txRunner
	Repo          Repository
	Notifications notifications.Repository
}

// NewService wires clubs dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("clubs repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications repository is required")
	}
	return &service{
		db:            params.DB,
		repo:          params.Repo,
		notifications: params.Notifications,
	}, nil
}

// PublicListParams filters the public directory. Only active listings are shown.
type PublicListParams struct {
	State  string
	City   string
	Query  string
	Limit  int
	Cursor string
}

// SubmissionListParams filters the admin submission queue.
type SubmissionListParams struct {
	Status *enums.ClubStatus
	Limit  int
	Cursor string
}

// ListResult wraps returned clubs and the cursor for the next page.
type ListResult struct {
	Items  []ClubDTO `json:"items"`
	Cursor string    `json:"cursor"`
}

func (s *service) List(ctx context.Context, params PublicListParams) (*ListResult, error) {
	active := enums.ClubStatusActive
	query := listClubsParams{
		Status: &active,
		State:  strings.ToUpper(strings.TrimSpace(params.State)),
		City:   strings.TrimSpace(params.City),
		Query:  strings.TrimSpace(params.Query),
		Limit:  params.Limit,
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	query.Cursor = cursor

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clubs")
	}
	return buildListResult(rows, next), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*ClubDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	club, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}
	if club.Status != enums.ClubStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
	}
	return FromModel(club), nil
}

// Submit creates a pending listing on behalf of the authenticated user.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, input CreateClubInput) (*ClubDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	state := strings.ToUpper(strings.TrimSpace(input.State))
	if state == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state is required")
	}
	city := strings.TrimSpace(input.City)
	if city == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}

	base := slugify(name)
	if base == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must contain letters or digits")
	}

	club := &models.Club{
		Slug:          base,
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		City:          city,
		State:         state,
		Website:       input.Website,
		Phone:         input.Phone,
		Email:         input.Email,
		Tags:          input.Tags,
		Status:        enums.ClubStatusPending,
		SubmittedByID: &userID,
	}

	if err := s.repo.Create(ctx, club); err != nil {
		if !db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create club")
		}
		// slug taken, retry once with a random suffix
		club.ID = uuid.Nil
		club.Slug = slugWithSuffix(base)
		if err := s.repo.Create(ctx, club); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create club")
		}
	}
	return FromModel(club), nil
}

func (s *service) ListSubmissions(ctx context.Context, params SubmissionListParams) (*ListResult, error) {
	query := listClubsParams{
		Status: params.Status,
		Limit:  params.Limit,
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	query.Cursor = cursor

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list submissions")
	}
	return buildListResult(rows, next), nil
}

// ResolveSubmission transitions a pending listing to active or rejected.
// Terminal listings cannot be re-resolved.
func (s *service) ResolveSubmission(ctx context.Context, clubID uuid.UUID, decision enums.ModerationDecision) (*ClubDTO, error) {
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club id is required")
	}
	if !decision.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid decision")
	}

	target := enums.ClubStatusActive
	if decision == enums.ModerationDecisionReject {
		target = enums.ClubStatusRejected
	}

	var resolved *models.Club
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		result, err := repo.ResolveStatus(ctx, clubID, target)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve submission")
		}
		if !result.Found {
			return pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		if !result.Updated {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "submission already resolved")
		}

		club, err := repo.FindByID(ctx, clubID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
		}
		resolved = club

		if club.SubmittedByID != nil {
			notification := &models.Notification{
				Audience: enums.NotificationAudiencePersonal,
				UserID:   club.SubmittedByID,
				Type:     enums.NotificationTypeSubmissionUpdate,
				Title:    "Listing " + string(target),
				Body:     fmt.Sprintf("Your listing %q was %s.", club.Name, submissionOutcome(decision)),
			}
			if err := s.notifications.WithTx(tx).Create(ctx, notification); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify submitter")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(resolved), nil
}

func (s *service) AdminUpdate(ctx context.Context, clubID uuid.UUID, input UpdateClubInput) (*ClubDTO, error) {
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club id is required")
	}

	fields := map[string]any{}
	setString := func(column string, value *string) {
		if value != nil {
			fields[column] = strings.TrimSpace(*value)
		}
	}
	setString("name", input.Name)
	setString("description", input.Description)
	setString("city", input.City)
	if input.State != nil {
		fields["state"] = strings.ToUpper(strings.TrimSpace(*input.State))
	}
	if input.Website != nil {
		fields["website"] = input.Website
	}
	if input.Phone != nil {
		fields["phone"] = input.Phone
	}
	if input.Email != nil {
		fields["email"] = input.Email
	}
	if input.Tags != nil {
		fields["tags"] = pq.StringArray(input.Tags)
	}

	club, err := s.repo.Update(ctx, clubID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update club")
	}
	return FromModel(club), nil
}

func (s *service) AdminDelete(ctx context.Context, clubID uuid.UUID) error {
	if clubID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "club id is required")
	}
	deleted, err := s.repo.Delete(ctx, clubID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete club")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
	}
	return nil
}

func buildListResult(rows []models.Club, next *pagination.Cursor) *ListResult {
	items := make([]ClubDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: items, Cursor: cursor}
}

func submissionOutcome(decision enums.ModerationDecision) string {
	if decision == enums.ModerationDecisionApprove {
		return "approved"
	}
	return "rejected"
}
