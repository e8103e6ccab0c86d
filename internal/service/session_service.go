package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"medagent/backend/internal/models"
	"medagent/backend/internal/repository"
	"medagent/backend/internal/triage"
	"medagent/backend/pkg/cache"
	"medagent/backend/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionInfo is the session block of a summary.
type SessionInfo struct {
	SessionID       string               `json:"session_id"`
	StartTime       time.Time            `json:"start_time"`
	DurationMinutes float64              `json:"duration_minutes"`
	Status          models.SessionStatus `json:"status"`
}

// ConversationStats aggregates the transcript of a session.
type ConversationStats struct {
	TotalMessages     int                 `json:"total_messages"`
	UserMessages      int                 `json:"user_messages"`
	AssistantMessages int                 `json:"assistant_messages"`
	MaxUrgencyLevel   models.UrgencyLevel `json:"max_urgency_level"`
}

// Recommendations carries the next-steps advice for a session.
type Recommendations struct {
	UrgencyLevel models.UrgencyLevel `json:"urgency_level"`
	NextSteps    string              `json:"next_steps"`
}

// SessionSummary is the reporting view of a session. Unlike the live
// session state, which tracks the latest classification, the summary
// reports the worst urgency ever observed.
type SessionSummary struct {
	SessionInfo       SessionInfo       `json:"session_info"`
	ConversationStats ConversationStats `json:"conversation_stats"`
	ProfileSummary    *models.Profile   `json:"profile_summary"`
	Recommendations   Recommendations   `json:"recommendations"`
}

// SessionService manages the session lifecycle: creation, lookup,
// idempotent close, transcript retrieval and summary reporting.
type SessionService struct {
	sessions repository.SessionRepository
	profiles repository.ProfileRepository
	messages repository.MessageRepository
	cache    cache.Store
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewSessionService(
	sessions repository.SessionRepository,
	profiles repository.ProfileRepository,
	messages repository.MessageRepository,
	cache cache.Store,
	cacheTTL time.Duration,
	log *logger.Logger,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		profiles: profiles,
		messages: messages,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Create starts a new active session with a generated id.
func (s *SessionService) Create(ctx context.Context) (*models.Session, error) {
	session := &models.Session{
		ID:                  uuid.New().String(),
		StartTime:           time.Now().UTC(),
		MessageCount:        0,
		CurrentUrgencyLevel: models.UrgencyLow,
		Status:              models.SessionActive,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns a session and its profile, if one exists.
func (s *SessionService) Get(ctx context.Context, id string) (*models.Session, *models.Profile, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, nil, sessionLookupError(err, id)
	}

	profile, err := s.profiles.FindBySession(ctx, id)
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	return session, profile, nil
}

// Close marks the session closed. Closing is idempotent: repeating the
// call leaves the status closed and keeps the original end time.
func (s *SessionService) Close(ctx context.Context, id string) error {
	if _, err := s.sessions.GetByID(ctx, id); err != nil {
		return sessionLookupError(err, id)
	}
	return s.sessions.Close(ctx, id, time.Now().UTC())
}

// History returns the full transcript in timestamp order.
func (s *SessionService) History(ctx context.Context, id string) ([]models.Message, error) {
	if _, err := s.sessions.GetByID(ctx, id); err != nil {
		return nil, sessionLookupError(err, id)
	}
	return s.messages.ListBySession(ctx, id)
}

// Summary builds the reporting view of a session. Summaries of closed
// sessions no longer change, so those are served from the cache.
func (s *SessionService) Summary(ctx context.Context, id string) (*SessionSummary, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, sessionLookupError(err, id)
	}

	cacheKey := "summary:" + id
	if s.cache != nil && session.Status == models.SessionClosed {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			var summary SessionSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	profile, err := s.profiles.FindBySession(ctx, id)
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	messages, err := s.messages.ListBySession(ctx, id)
	if err != nil {
		return nil, err
	}

	var userCount, assistantCount int
	var levels []models.UrgencyLevel
	for _, m := range messages {
		switch m.Role {
		case models.RoleUser:
			userCount++
		case models.RoleAssistant:
			assistantCount++
		}
		if m.UrgencyLevel != "" {
			levels = append(levels, m.UrgencyLevel)
		}
	}
	maxUrgency := models.MaxUrgency(levels)

	nextSteps := triage.NextStepsMonitor
	if maxUrgency != models.UrgencyLow {
		nextSteps = triage.NextStepsConsult
	}

	end := time.Now().UTC()
	if session.EndTime != nil {
		end = *session.EndTime
	}

	summary := &SessionSummary{
		SessionInfo: SessionInfo{
			SessionID:       id,
			StartTime:       session.StartTime,
			DurationMinutes: end.Sub(session.StartTime).Minutes(),
			Status:          session.Status,
		},
		ConversationStats: ConversationStats{
			TotalMessages:     len(messages),
			UserMessages:      userCount,
			AssistantMessages: assistantCount,
			MaxUrgencyLevel:   maxUrgency,
		},
		ProfileSummary:  profile,
		Recommendations: Recommendations{UrgencyLevel: maxUrgency, NextSteps: nextSteps},
	}

	if s.cache != nil && session.Status == models.SessionClosed {
		if payload, err := json.Marshal(summary); err == nil {
			s.cache.Set(ctx, cacheKey, string(payload), s.cacheTTL)
		}
	}

	return summary, nil
}
