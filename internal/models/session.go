package models

import (
	"time"
)

// SessionStatus is the lifecycle state of a triage session.
type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionClosed SessionStatus = "closed"
)

// Session is the root aggregate of a conversation. Profile and Messages
// reference it by session id, never the reverse.
type Session struct {
	ID        string `json:"session_id" gorm:"primaryKey"`
	ProfileID string `json:"user_profile_id,omitempty" gorm:"index"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// MessageCount is maintained with a real SQL increment, not a field
	// overwrite, so concurrent turns cannot lose counts.
	MessageCount int `json:"message_count"`

	// CurrentUrgencyLevel tracks the latest classification, not the
	// maximum. The worst-ever level is computed by the summary instead.
	CurrentUrgencyLevel UrgencyLevel  `json:"current_urgency_level"`
	Status              SessionStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
