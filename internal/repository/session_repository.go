package repository

import (
	"context"
	"time"

	"medagent/backend/internal/models"

	"gorm.io/gorm"
)

// SessionRepository persists triage sessions. Pure data access, no policy.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	SetProfileID(ctx context.Context, id, profileID string) error
	// RecordTurn overwrites the current urgency level with the latest
	// classification and atomically increments the message counter.
	RecordTurn(ctx context.Context, id string, level models.UrgencyLevel) error
	// Close marks the session closed. The end time is set only on the
	// first close so repeated closes are idempotent.
	Close(ctx context.Context, id string, endTime time.Time) error
}

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *GormSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepository) SetProfileID(ctx context.Context, id, profileID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Update("profile_id", profileID).Error
}

func (r *GormSessionRepository) RecordTurn(ctx context.Context, id string, level models.UrgencyLevel) error {
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"current_urgency_level": level,
			"message_count":         gorm.Expr("message_count + 1"),
		}).Error
}

func (r *GormSessionRepository) Close(ctx context.Context, id string, endTime time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":   models.SessionClosed,
			"end_time": gorm.Expr("COALESCE(end_time, ?)", endTime),
		}).Error
}
