package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/internal/notifications"
	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/motoclubs-backend/pkg/errors"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Service handles the private inbox: member-to-member notes and staff messages.
type Service interface {
	ListInbox(ctx context.Context, userID uuid.UUID, params ListParams) (*ListResult, error)
	Send(ctx context.Context, senderID uuid.UUID, input SendMessageInput) (*MessageDTO, error)
	SendFromStaff(ctx context.Context, input SendMessageInput) (*MessageDTO, error)
	MarkRead(ctx context.Context, userID, messageID uuid.UUID) error
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo          Repository
	users         userFinder
	notifications notifications.Repository
}

// ServiceParams bundles the dependencies required to build the messages service.
type ServiceParams struct {
	Repo          Repository
	Users         userFinder
	Notifications notifications.Repository
}

// NewService wires messages dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("messages repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications repository is required")
	}
	return &service{
		repo:          params.Repo,
		users:         params.Users,
		notifications: params.Notifications,
	}, nil
}

// ListParams paginates the inbox.
type ListParams struct {
	UnreadOnly bool
	Limit      int
	Cursor     string
}

// ListResult wraps returned messages and the next-page cursor.
type ListResult struct {
	Items  []MessageDTO `json:"items"`
	Cursor string       `json:"cursor"`
}

func (s *service) ListInbox(ctx context.Context, userID uuid.UUID, params ListParams) (*ListResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListByRecipient(ctx, listMessagesParams{
		RecipientID: userID,
		UnreadOnly:  params.UnreadOnly,
		Limit:       params.Limit,
		Cursor:      cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}

	items := make([]MessageDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	result := &ListResult{Items: items}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

// Send delivers a member-to-member message.
func (s *service) Send(ctx context.Context, senderID uuid.UUID, input SendMessageInput) (*MessageDTO, error) {
	if senderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	if senderID == input.RecipientID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot message yourself")
	}
	return s.deliver(ctx, &senderID, input)
}

// SendFromStaff delivers a message from the site staff. The stored row
// carries no sender.
func (s *service) SendFromStaff(ctx context.Context, input SendMessageInput) (*MessageDTO, error) {
	return s.deliver(ctx, nil, input)
}

func (s *service) deliver(ctx context.Context, senderID *uuid.UUID, input SendMessageInput) (*MessageDTO, error) {
	if input.RecipientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient id is required")
	}
	subject := strings.TrimSpace(input.Subject)
	body := strings.TrimSpace(input.Body)
	if subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	}
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "body is required")
	}

	recipient, err := s.users.FindByID(ctx, input.RecipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipient")
	}
	if !recipient.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipient not found")
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: input.RecipientID,
		Subject:     subject,
		Body:        body,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create message")
	}

	notification := &models.Notification{
		Audience: enums.NotificationAudiencePersonal,
		UserID:   &message.RecipientID,
		Type:     enums.NotificationTypeMessage,
		Title:    "New message",
		Body:     subject,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify recipient")
	}
	return FromModel(message), nil
}

func (s *service) MarkRead(ctx context.Context, userID, messageID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	if messageID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "message id is required")
	}
	result, err := s.repo.MarkRead(ctx, userID, messageID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark message read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
	}
	return nil
}
