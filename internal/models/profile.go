package models

import (
	"time"
)

// Profile holds the demographic and symptom facts collected for a
// session. One profile per session, created lazily on the first write.
// JSON field names keep the Italian API contract of the service.
type Profile struct {
	ID        string `json:"id" gorm:"primaryKey"`
	SessionID string `json:"session_id" gorm:"uniqueIndex"`

	Age            string `json:"eta,omitempty"`
	Gender         string `json:"genere,omitempty"`
	PrimarySymptom string `json:"sintomo_principale,omitempty"`
	Duration       string `json:"durata,omitempty"`
	Intensity      int    `json:"intensita,omitempty"`

	AssociatedSymptoms []string `json:"sintomi_associati" gorm:"serializer:json"`
	KnownConditions    []string `json:"condizioni_note" gorm:"serializer:json"`
	FamilyHistory      string   `json:"familiarita,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial update: only non-nil fields are applied.
type ProfileUpdate struct {
	Age                *string  `json:"eta"`
	Gender             *string  `json:"genere"`
	PrimarySymptom     *string  `json:"sintomo_principale"`
	Duration           *string  `json:"durata"`
	Intensity          *int     `json:"intensita"`
	AssociatedSymptoms []string `json:"sintomi_associati"`
	KnownConditions    []string `json:"condizioni_note"`
	FamilyHistory      *string  `json:"familiarita"`
}

// Apply copies the set fields of the update onto the profile, leaving
// every other field untouched.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.PrimarySymptom != nil {
		p.PrimarySymptom = *u.PrimarySymptom
	}
	if u.Duration != nil {
		p.Duration = *u.Duration
	}
	if u.Intensity != nil {
		p.Intensity = *u.Intensity
	}
	if u.AssociatedSymptoms != nil {
		p.AssociatedSymptoms = u.AssociatedSymptoms
	}
	if u.KnownConditions != nil {
		p.KnownConditions = u.KnownConditions
	}
	if u.FamilyHistory != nil {
		p.FamilyHistory = *u.FamilyHistory
	}
}
