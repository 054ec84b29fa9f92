package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Service handles the public contact form and its admin review queue.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmissionDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// ServiceParams bundles the dependencies required to build the contact service.
type ServiceParams struct {
	Repo Repository
}

// NewService wires contact dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("contact repository is required")
	}
	return &service{repo: params.Repo}, nil
}

// ListParams paginates the admin queue.
type ListParams struct {
	UnresolvedOnly bool
	Limit          int
	Cursor         string
}

// ListResult wraps returned submissions and the next-page cursor.
type ListResult struct {
	Items  []SubmissionDTO `json:"items"`
	Cursor string          `json:"cursor"`
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmissionDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	subject := strings.TrimSpace(input.Subject)
	body := strings.TrimSpace(input.Body)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	}
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "body is required")
	}

	submission := &models.ContactSubmission{
		Name:    name,
		Email:   email,
		Subject: subject,
		Body:    body,
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact submission")
	}
	return FromModel(submission), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.List(ctx, listSubmissionsParams{
		UnresolvedOnly: params.UnresolvedOnly,
		Limit:          params.Limit,
		Cursor:         cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contact submissions")
	}

	items := make([]SubmissionDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	result := &ListResult{Items: items}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) Resolve(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "submission id is required")
	}
	result, err := s.repo.Resolve(ctx, id, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve contact submission")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "contact submission not found")
	}
	if !result.Updated {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "contact submission already resolved")
	}
	return nil
}
