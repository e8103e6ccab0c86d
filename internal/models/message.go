package models

import (
	"time"
)

// MessageRole identifies the author of a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single turn in a session transcript. Messages are
// append-only; they are never updated or deleted. UrgencyLevel and
// NextQuestions are set only on assistant messages.
type Message struct {
	ID        string      `json:"id" gorm:"primaryKey"`
	SessionID string      `json:"session_id" gorm:"index"`
	Role      MessageRole `json:"message_type"`
	Content   string      `json:"content"`

	UrgencyLevel  UrgencyLevel   `json:"urgency_level,omitempty"`
	NextQuestions []string       `json:"next_questions" gorm:"serializer:json"`
	Metadata      map[string]any `json:"metadata" gorm:"serializer:json"`

	Timestamp time.Time `json:"timestamp" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
