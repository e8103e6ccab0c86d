package triage

import (
	"medagent/backend/internal/models"
)

// LevelKeywords binds an urgency level to the keywords that signal it.
// The order of a []LevelKeywords slice is the classification priority.
type LevelKeywords struct {
	Level    models.UrgencyLevel
	Keywords []string
}

// FollowUpRule selects a fixed question set when any of its triggers
// appears in the raw user message.
type FollowUpRule struct {
	Triggers  []string
	Questions []string
}

// Config carries the domain-tuning tables of the triage pipeline:
// urgency keywords, follow-up rules and the fallback question set.
// They are data, not code, and are expected to be revised by clinical
// reviewers without touching classifier or generator logic.
type Config struct {
	Urgency           []LevelKeywords
	FollowUps         []FollowUpRule
	FallbackQuestions []string
}

// DefaultConfig returns the Italian triage tables the service ships with.
func DefaultConfig() Config {
	return Config{
		Urgency: []LevelKeywords{
			{
				Level: models.UrgencyHigh,
				Keywords: []string{
					"dolore toracico",
					"difficoltà respiratorie",
					"perdita coscienza",
					"emorragia",
					"trauma",
					"avvelenamento",
					"118",
				},
			},
			{
				Level: models.UrgencyMedium,
				Keywords: []string{
					"febbre alta",
					"dolore intenso",
					"vomito persistente",
					"difficoltà",
					"preoccupante",
				},
			},
			{
				Level: models.UrgencyLow,
				Keywords: []string{
					"lieve",
					"normale",
					"comune",
					"non preoccupante",
				},
			},
		},
		FollowUps: []FollowUpRule{
			{
				Triggers: []string{"dolore"},
				Questions: []string{
					"Il dolore è costante o intermittente?",
					"Su una scala da 1 a 10, quanto è intenso?",
					"Hai preso qualche farmaco per il dolore?",
				},
			},
			{
				Triggers: []string{"febbre"},
				Questions: []string{
					"Hai misurato la temperatura?",
					"Da quanto tempo hai la febbre?",
					"Hai altri sintomi come mal di testa o debolezza?",
				},
			},
		},
		FallbackQuestions: []string{
			"Puoi dirmi di più su questo sintomo?",
			"È la prima volta che ti succede?",
			"C'è qualcos'altro che ti preoccupa?",
		},
	}
}
