package messages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/motoclubs-backend/pkg/db/models"
	"github.com/jmcalloway/motoclubs-backend/pkg/pagination"
)

// Repository exposes persistence helpers for private messages.
type Repository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByRecipient(ctx context.Context, params listMessagesParams) ([]models.Message, *pagination.Cursor, error)
	MarkRead(ctx context.Context, recipientID, messageID uuid.UUID, now time.Time) (markResult, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a messages repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listMessagesParams struct {
	RecipientID uuid.UUID
	UnreadOnly  bool
	Limit       int
	Cursor      *pagination.Cursor
}

type markResult struct {
	Found   bool
	Updated bool
}

func (r *repositoryImpl) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *repositoryImpl) ListByRecipient(ctx context.Context, params listMessagesParams) ([]models.Message, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ?", params.RecipientID)
	if params.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Message
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

// MarkRead only lets the recipient flip the read marker.
func (r *repositoryImpl) MarkRead(ctx context.Context, recipientID, messageID uuid.UUID, now time.Time) (markResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ? AND recipient_id = ? AND read_at IS NULL", messageID, recipientID).
		UpdateColumn("read_at", now)
	if result.Error != nil {
		return markResult{}, result.Error
	}
	if result.RowsAffected > 0 {
		return markResult{Found: true, Updated: true}, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ? AND recipient_id = ?", messageID, recipientID).
		Count(&count).Error; err != nil {
		return markResult{}, err
	}
	return markResult{Found: count > 0}, nil
}
