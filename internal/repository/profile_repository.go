package repository

import (
	"context"

	"medagent/backend/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository persists session profiles. At most one profile
// exists per session id, enforced by a unique index.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindBySession(ctx context.Context, sessionID string) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *GormProfileRepository) FindBySession(ctx context.Context, sessionID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormProfileRepository) Save(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
