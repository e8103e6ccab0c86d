package repository

import (
	"context"

	"medagent/backend/internal/models"

	"gorm.io/gorm"
)

// MessageRepository persists session transcripts. Messages are
// append-only; there is no update or delete.
type MessageRepository interface {
	Append(ctx context.Context, message *models.Message) error
	// ListBySession returns the full transcript in ascending timestamp order.
	ListBySession(ctx context.Context, sessionID string) ([]models.Message, error)
	// ListRecent returns up to limit messages, newest first.
	ListRecent(ctx context.Context, sessionID string, limit int) ([]models.Message, error)
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Append(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *GormMessageRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&messages).Error
	return messages, err
}

func (r *GormMessageRepository) ListRecent(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
