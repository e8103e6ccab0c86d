package triage

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"medagent/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func transcript(contents ...string) []models.Message {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	msgs := make([]models.Message, len(contents))
	for i, content := range contents {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		msgs[i] = models.Message{
			Role:      role,
			Content:   content,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return msgs
}

func TestBuildContextWithoutProfile(t *testing.T) {
	got := BuildContext(nil, transcript("Ciao", "Buongiorno, come posso aiutarti?"), "Ho mal di testa")

	assert.NotContains(t, got, "Profilo utente")
	assert.Contains(t, got, "Conversazione recente:")
	assert.Contains(t, got, "Utente: Ciao")
	assert.Contains(t, got, "Assistente: Buongiorno, come posso aiutarti?")
	assert.True(t, strings.HasSuffix(got, "\n\nNuovo messaggio utente: Ho mal di testa"))
}

func TestBuildContextProfileFields(t *testing.T) {
	profile := &models.Profile{
		Age:             "34",
		PrimarySymptom:  "mal di testa",
		KnownConditions: []string{"ipertensione", "diabete"},
	}

	got := BuildContext(profile, nil, "Il dolore continua")

	// Missing gender is filled in, present fields are rendered as-is.
	assert.Contains(t, got, "Profilo utente: Età: 34, Genere: Non specificato")
	assert.Contains(t, got, "Sintomo principale: mal di testa")
	assert.Contains(t, got, "Condizioni note: ipertensione, diabete")
}

func TestBuildContextOmitsEmptyProfileLines(t *testing.T) {
	got := BuildContext(&models.Profile{Age: "50", Gender: "F"}, nil, "Ciao")

	assert.Contains(t, got, "Profilo utente: Età: 50, Genere: F")
	assert.NotContains(t, got, "Sintomo principale")
	assert.NotContains(t, got, "Condizioni note")
}

func TestBuildContextWindowKeepsLastFour(t *testing.T) {
	history := transcript("m1", "m2", "m3", "m4", "m5", "m6")

	got := BuildContext(nil, history, "nuovo")

	assert.NotContains(t, got, "m1")
	assert.NotContains(t, got, "m2")
	for _, want := range []string{"m3", "m4", "m5", "m6"} {
		assert.Contains(t, got, want)
	}

	// Window order is chronological.
	assert.Less(t, strings.Index(got, "m3"), strings.Index(got, "m6"))
}

func TestBuildContextDeterministic(t *testing.T) {
	profile := &models.Profile{Age: "34", PrimarySymptom: "febbre"}
	history := transcript("Ho la febbre", "Da quanto tempo?")

	first := BuildContext(profile, history, "Da ieri sera")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildContext(profile, history, "Da ieri sera"))
	}
}

func TestBuildContextExactShape(t *testing.T) {
	profile := &models.Profile{Age: "34", Gender: "M"}
	history := transcript("Ho mal di testa", "Da quanto tempo?")

	want := fmt.Sprintf(
		"Profilo utente: Età: 34, Genere: M\n\nConversazione recente:\nUtente: Ho mal di testa\nAssistente: Da quanto tempo?\n\nNuovo messaggio utente: %s",
		"Da due giorni")
	assert.Equal(t, want, BuildContext(profile, history, "Da due giorni"))
}
