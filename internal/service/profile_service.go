package service

import (
	"context"
	stderrors "errors"
	"time"

	"medagent/backend/internal/models"
	"medagent/backend/internal/repository"
	"medagent/backend/pkg/errors"
	"medagent/backend/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileService applies partial profile updates. The profile is
// created lazily on the first write for a session and linked back to it.
type ProfileService struct {
	sessions repository.SessionRepository
	profiles repository.ProfileRepository
	log      *logger.Logger
}

func NewProfileService(
	sessions repository.SessionRepository,
	profiles repository.ProfileRepository,
	log *logger.Logger,
) *ProfileService {
	return &ProfileService{sessions: sessions, profiles: profiles, log: log}
}

// Upsert validates and applies a partial update. Only fields present in
// the update are touched; everything else keeps its stored value. The
// returned bool reports whether the profile was created by this call.
func (s *ProfileService) Upsert(ctx context.Context, sessionID string, update models.ProfileUpdate) (*models.Profile, bool, error) {
	if err := validateProfileUpdate(update); err != nil {
		return nil, false, err
	}

	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, false, sessionLookupError(err, sessionID)
	}

	now := time.Now().UTC()

	existing, err := s.profiles.FindBySession(ctx, sessionID)
	if err != nil {
		if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}

		profile := &models.Profile{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		update.Apply(profile)

		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, false, err
		}
		if err := s.sessions.SetProfileID(ctx, sessionID, profile.ID); err != nil {
			return nil, false, err
		}
		return profile, true, nil
	}

	update.Apply(existing)
	existing.UpdatedAt = now
	if err := s.profiles.Save(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Get returns the profile for a session, or nil when none exists yet.
func (s *ProfileService) Get(ctx context.Context, sessionID string) (*models.Profile, error) {
	profile, err := s.profiles.FindBySession(ctx, sessionID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// validateProfileUpdate rejects malformed fields before any persistence.
func validateProfileUpdate(update models.ProfileUpdate) error {
	if update.Intensity != nil && (*update.Intensity < 1 || *update.Intensity > 10) {
		return errors.NewBadRequestError("INVALID_PROFILE", "intensita must be between 1 and 10")
	}
	return nil
}
