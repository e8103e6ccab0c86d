package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"medagent/backend/internal/models"

	"gorm.io/gorm"
)

// In-memory repository fakes mirroring the store contracts, including
// gorm.ErrRecordNotFound on misses.

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) SetProfileID(_ context.Context, id, profileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[id]; ok {
		session.ProfileID = profileID
	}
	return nil
}

func (r *fakeSessionRepo) RecordTurn(_ context.Context, id string, level models.UrgencyLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[id]; ok {
		session.CurrentUrgencyLevel = level
		session.MessageCount++
	}
	return nil
}

func (r *fakeSessionRepo) Close(_ context.Context, id string, endTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[id]; ok {
		session.Status = models.SessionClosed
		if session.EndTime == nil {
			session.EndTime = &endTime
		}
	}
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile // keyed by session id
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *profile
	r.profiles[profile.SessionID] = &copied
	return nil
}

func (r *fakeProfileRepo) FindBySession(_ context.Context, sessionID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *profile
	r.profiles[profile.SessionID] = &copied
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Append(_ context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) ListBySession(_ context.Context, sessionID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *fakeMessageRepo) ListRecent(_ context.Context, sessionID string, limit int) ([]models.Message, error) {
	all, _ := r.ListBySession(context.Background(), sessionID)
	// newest first, capped at limit
	var out []models.Message
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

type fakeGateway struct {
	mu         sync.Mutex
	response   string
	err        error
	calls      int
	lastSystem string
	lastInput  string
}

func (g *fakeGateway) Complete(_ context.Context, systemPrompt, userContext string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastSystem = systemPrompt
	g.lastInput = userContext
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}
