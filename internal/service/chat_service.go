package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"medagent/backend/internal/llm"
	"medagent/backend/internal/models"
	"medagent/backend/internal/repository"
	"medagent/backend/internal/triage"
	"medagent/backend/pkg/errors"
	"medagent/backend/pkg/logger"
	"medagent/backend/pkg/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// ChatTurnResult is the outcome of one processed chat turn.
type ChatTurnResult struct {
	Response      string              `json:"response"`
	UrgencyLevel  models.UrgencyLevel `json:"urgency_level"`
	NextQuestions []string            `json:"next_questions"`
	Timestamp     time.Time           `json:"timestamp"`
}

// WelcomeResult is the greeting produced when a conversation starts.
type WelcomeResult struct {
	Message       string              `json:"message"`
	NextQuestions []string            `json:"next_questions"`
	UrgencyLevel  models.UrgencyLevel `json:"urgency_level"`
}

// ChatService runs the triage turn pipeline: persist the user message,
// assemble bounded context, call the model gateway, interpret the reply
// and fold the result back into session state.
type ChatService struct {
	sessions   repository.SessionRepository
	profiles   repository.ProfileRepository
	messages   repository.MessageRepository
	gateway    llm.Client
	classifier *triage.Classifier
	questions  *triage.QuestionGenerator
	log        *logger.Logger
	tracer     trace.Tracer
}

// NewChatService constructs the chat pipeline from its collaborators.
func NewChatService(
	sessions repository.SessionRepository,
	profiles repository.ProfileRepository,
	messages repository.MessageRepository,
	gateway llm.Client,
	cfg triage.Config,
	log *logger.Logger,
) *ChatService {
	return &ChatService{
		sessions:   sessions,
		profiles:   profiles,
		messages:   messages,
		gateway:    gateway,
		classifier: triage.NewClassifier(cfg.Urgency),
		questions:  triage.NewQuestionGenerator(cfg.FollowUps, cfg.FallbackQuestions),
		log:        log,
		tracer:     otel.Tracer("medagent/chat"),
	}
}

// Welcome generates and persists the opening assistant message for a
// session. A profile that already names a primary symptom gets a
// personalized greeting mentioning it.
func (s *ChatService) Welcome(ctx context.Context, sessionID string) (*WelcomeResult, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, sessionLookupError(err, sessionID)
	}

	profile, err := s.findProfile(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	welcome := triage.WelcomeGeneric
	if profile != nil {
		switch {
		case profile.PrimarySymptom != "":
			welcome = fmt.Sprintf(triage.WelcomeWithSymptomFormat, profile.PrimarySymptom)
		case profile.Age != "":
			welcome = triage.WelcomeWithProfile
		}
	}

	msg := &models.Message{
		ID:            uuid.New().String(),
		SessionID:     sessionID,
		Role:          models.RoleAssistant,
		Content:       welcome,
		NextQuestions: triage.WelcomeQuestions,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, err
	}

	return &WelcomeResult{
		Message:       welcome,
		NextQuestions: triage.WelcomeQuestions,
		UrgencyLevel:  models.UrgencyLow,
	}, nil
}

// ProcessMessage handles one user turn. The user message is persisted
// before the gateway call; if the call fails the message stays recorded
// and the failure is surfaced once, without retries.
func (s *ChatService) ProcessMessage(ctx context.Context, sessionID, text string) (*ChatTurnResult, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, sessionLookupError(err, sessionID)
	}

	userMsg := &models.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now().UTC(),
	}
	if err := s.messages.Append(ctx, userMsg); err != nil {
		return nil, err
	}

	// Bounded context: fetch the last 6, the assembler keeps the last 4
	recent, err := s.messages.ListRecent(ctx, sessionID, triage.HistoryFetchLimit)
	if err != nil {
		return nil, err
	}
	history := reverseChronological(recent)

	profile, err := s.findProfile(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	promptContext := triage.BuildContext(profile, history, text)

	gwCtx, span := s.tracer.Start(ctx, "model.complete")
	response, err := s.gateway.Complete(gwCtx, triage.SystemPrompt, promptContext)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gateway call failed")
		span.End()
		observability.GatewayFailuresTotal.Inc()
		s.log.LogError(err, "model gateway call failed", "session_id", sessionID)
		return nil, errors.NewBadGatewayError("MODEL_GATEWAY_ERROR", "Error processing message")
	}
	span.End()

	level := s.classifier.Classify(response)
	nextQuestions := s.questions.Questions(text)

	assistantMsg := &models.Message{
		ID:            uuid.New().String(),
		SessionID:     sessionID,
		Role:          models.RoleAssistant,
		Content:       response,
		UrgencyLevel:  level,
		NextQuestions: nextQuestions,
		Metadata: map[string]any{
			"context_used":      true,
			"profile_available": profile != nil,
		},
		Timestamp: time.Now().UTC(),
	}
	if err := s.messages.Append(ctx, assistantMsg); err != nil {
		return nil, err
	}

	if err := s.sessions.RecordTurn(ctx, sessionID, level); err != nil {
		return nil, err
	}

	observability.ChatTurnsTotal.Inc()
	observability.UrgencyClassificationsTotal.WithLabelValues(string(level)).Inc()

	return &ChatTurnResult{
		Response:      response,
		UrgencyLevel:  level,
		NextQuestions: nextQuestions,
		Timestamp:     time.Now().UTC(),
	}, nil
}

func (s *ChatService) findProfile(ctx context.Context, sessionID string) (*models.Profile, error) {
	profile, err := s.profiles.FindBySession(ctx, sessionID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// reverseChronological flips a newest-first slice into transcript order.
func reverseChronological(messages []models.Message) []models.Message {
	out := make([]models.Message, len(messages))
	for i, m := range messages {
		out[len(messages)-1-i] = m
	}
	return out
}

// sessionLookupError maps a store miss to the client-facing NotFound error.
func sessionLookupError(err error, sessionID string) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NewNotFoundError("SESSION_NOT_FOUND", "Session not found").
			WithDetails(map[string]string{"session_id": sessionID})
	}
	return err
}
