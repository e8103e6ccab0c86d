package triage

import (
	"fmt"
	"strings"

	"medagent/backend/internal/models"
)

const (
	// HistoryFetchLimit is how many recent messages are loaded from the
	// store for a turn.
	HistoryFetchLimit = 6
	// contextWindow is how many of those actually enter the prompt.
	// Bounding the window keeps prompt size (and model cost/latency)
	// flat; long conversations progressively lose older detail.
	contextWindow = 4
)

// BuildContext renders the prompt context for one turn: an optional
// profile summary, the tail of the transcript, and the new user
// message. Pure projection over its inputs; given the same stored
// state it always produces the same text.
//
// history must be in chronological order. profile may be nil, in which
// case the profile section is omitted entirely.
func BuildContext(profile *models.Profile, history []models.Message, userMessage string) string {
	var parts []string

	if profile != nil {
		parts = append(parts, fmt.Sprintf("Profilo utente: Età: %s, Genere: %s",
			orUnspecified(profile.Age), orUnspecified(profile.Gender)))
		if profile.PrimarySymptom != "" {
			parts = append(parts, "Sintomo principale: "+profile.PrimarySymptom)
		}
		if len(profile.KnownConditions) > 0 {
			parts = append(parts, "Condizioni note: "+strings.Join(profile.KnownConditions, ", "))
		}
	}

	if len(history) > contextWindow {
		history = history[len(history)-contextWindow:]
	}
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		label := "Utente"
		if msg.Role == models.RoleAssistant {
			label = "Assistente"
		}
		lines = append(lines, label+": "+msg.Content)
	}
	parts = append(parts, "\nConversazione recente:\n"+strings.Join(lines, "\n"))

	return strings.Join(parts, "\n") + "\n\nNuovo messaggio utente: " + userMessage
}

// orUnspecified fills the two always-present profile fields; fields
// that are omitted when absent never go through this.
func orUnspecified(value string) string {
	if value == "" {
		return "Non specificato"
	}
	return value
}
