package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"medagent/backend/internal/llm"
	"medagent/backend/internal/models"
	"medagent/backend/internal/service"
	"medagent/backend/internal/triage"
	"medagent/backend/pkg/errors"
	"medagent/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Minimal in-memory stores backing the controllers under test.

type memSessions struct{ data map[string]*models.Session }

func (r *memSessions) Create(_ context.Context, s *models.Session) error {
	copied := *s
	r.data[s.ID] = &copied
	return nil
}

func (r *memSessions) GetByID(_ context.Context, id string) (*models.Session, error) {
	s, ok := r.data[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSessions) SetProfileID(_ context.Context, id, profileID string) error {
	if s, ok := r.data[id]; ok {
		s.ProfileID = profileID
	}
	return nil
}

func (r *memSessions) RecordTurn(_ context.Context, id string, level models.UrgencyLevel) error {
	if s, ok := r.data[id]; ok {
		s.CurrentUrgencyLevel = level
		s.MessageCount++
	}
	return nil
}

func (r *memSessions) Close(_ context.Context, id string, endTime time.Time) error {
	if s, ok := r.data[id]; ok {
		s.Status = models.SessionClosed
		if s.EndTime == nil {
			s.EndTime = &endTime
		}
	}
	return nil
}

type memProfiles struct{ data map[string]*models.Profile }

func (r *memProfiles) Create(_ context.Context, p *models.Profile) error {
	copied := *p
	r.data[p.SessionID] = &copied
	return nil
}

func (r *memProfiles) FindBySession(_ context.Context, sessionID string) (*models.Profile, error) {
	p, ok := r.data[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memProfiles) Save(_ context.Context, p *models.Profile) error {
	copied := *p
	r.data[p.SessionID] = &copied
	return nil
}

type memMessages struct{ data []models.Message }

func (r *memMessages) Append(_ context.Context, m *models.Message) error {
	r.data = append(r.data, *m)
	return nil
}

func (r *memMessages) ListBySession(_ context.Context, sessionID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.data {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *memMessages) ListRecent(_ context.Context, sessionID string, limit int) ([]models.Message, error) {
	all, _ := r.ListBySession(context.Background(), sessionID)
	var out []models.Message
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

type scriptedGateway struct{ response string }

func (g *scriptedGateway) Complete(_ context.Context, _, _ string) (string, error) {
	return g.response, nil
}

var _ llm.Client = (*scriptedGateway)(nil)

// newTestRouter wires the controllers to in-memory stores behind the
// same middleware chain the server uses.
func newTestRouter(gateway llm.Client) (*gin.Engine, *memSessions) {
	gin.SetMode(gin.TestMode)

	log := logger.New(logger.Config{Level: "error", Output: io.Discard})
	sessions := &memSessions{data: make(map[string]*models.Session)}
	profiles := &memProfiles{data: make(map[string]*models.Profile)}
	messages := &memMessages{}

	sessionSvc := service.NewSessionService(sessions, profiles, messages, nil, 0, log)
	profileSvc := service.NewProfileService(sessions, profiles, log)
	chatSvc := service.NewChatService(sessions, profiles, messages, gateway, triage.DefaultConfig(), log)

	r := gin.New()
	r.Use(errors.ErrorHandler())

	chat := r.Group("/api/chat")
	NewSessionController(sessionSvc).RegisterRoutes(chat)
	NewProfileController(profileSvc).RegisterRoutes(chat)
	NewChatController(chatSvc, sessionSvc).RegisterRoutes(chat)

	return r, sessions
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/chat/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string `json:"session_id"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "created", resp.Status)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	r, _ := newTestRouter(&scriptedGateway{response: "Riposa e bevi acqua."})
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/chat/session/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id)

	w = doJSON(t, r, http.MethodPost, "/api/chat/close/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"closed"`)

	// Closing again succeeds in the same way.
	w = doJSON(t, r, http.MethodPost, "/api/chat/close/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionNotFound(t *testing.T) {
	r, _ := newTestRouter(&scriptedGateway{})

	w := doJSON(t, r, http.MethodGet, "/api/chat/session/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_NOT_FOUND")
}

func TestMessageTurnEndpoint(t *testing.T) {
	r, sessions := newTestRouter(&scriptedGateway{response: "La febbre alta va monitorata."})
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/chat/message", gin.H{
		"session_id": id,
		"message":    "Ho la febbre da ieri",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Response      string   `json:"response"`
		UrgencyLevel  string   `json:"urgency_level"`
		NextQuestions []string `json:"next_questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "La febbre alta va monitorata.", resp.Response)
	assert.Equal(t, "medium", resp.UrgencyLevel)
	assert.Len(t, resp.NextQuestions, 3)

	assert.Equal(t, models.UrgencyMedium, sessions.data[id].CurrentUrgencyLevel)
	assert.Equal(t, 1, sessions.data[id].MessageCount)
}

func TestMessageEndpointValidation(t *testing.T) {
	r, _ := newTestRouter(&scriptedGateway{})

	// Missing message field.
	w := doJSON(t, r, http.MethodPost, "/api/chat/message", gin.H{"session_id": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")

	// Unknown session.
	w = doJSON(t, r, http.MethodPost, "/api/chat/message", gin.H{
		"session_id": "missing",
		"message":    "Ciao",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_NOT_FOUND")
}

func TestProfileEndpoints(t *testing.T) {
	r, _ := newTestRouter(&scriptedGateway{})
	id := createSession(t, r)

	// No profile yet.
	w := doJSON(t, r, http.MethodGet, "/api/chat/profile/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profile":null`)

	w = doJSON(t, r, http.MethodPost, "/api/chat/profile/"+id, gin.H{
		"eta":       "34",
		"intensita": 6,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"created"`)
	assert.Contains(t, w.Body.String(), `"eta":"34"`)

	// Second write is a partial update.
	w = doJSON(t, r, http.MethodPost, "/api/chat/profile/"+id, gin.H{
		"sintomo_principale": "mal di testa",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"updated"`)
	assert.Contains(t, w.Body.String(), `"eta":"34"`)
	assert.Contains(t, w.Body.String(), `"sintomo_principale":"mal di testa"`)

	// Out-of-range intensity is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/chat/profile/"+id, gin.H{"intensita": 12})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PROFILE")
}

func TestWelcomeAndHistoryEndpoints(t *testing.T) {
	r, _ := newTestRouter(&scriptedGateway{response: "Capisco, dimmi di più."})
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/chat/welcome/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MedAgent")

	w = doJSON(t, r, http.MethodPost, "/api/chat/message", gin.H{
		"session_id": id,
		"message":    "Ho mal di gola",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/chat/history/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Welcome, user turn, assistant reply.
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, models.RoleAssistant, resp.Messages[0].Role)
	assert.Equal(t, models.RoleUser, resp.Messages[1].Role)
	assert.Equal(t, "Ho mal di gola", resp.Messages[1].Content)
}

func TestSummaryEndpoint(t *testing.T) {
	r, _ := newTestRouter(&scriptedGateway{response: "Chiama subito il 118, possibile emorragia."})
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/chat/message", gin.H{
		"session_id": id,
		"message":    "Sto sanguinando molto",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/chat/summary/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary service.SessionSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, models.UrgencyHigh, summary.ConversationStats.MaxUrgencyLevel)
	assert.Equal(t, id, summary.SessionInfo.SessionID)
	assert.Equal(t, 2, summary.ConversationStats.TotalMessages)
}
