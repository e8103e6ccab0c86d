package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionsTriggerSelection(t *testing.T) {
	cfg := DefaultConfig()
	g := NewQuestionGenerator(cfg.FollowUps, cfg.FallbackQuestions)

	pain := g.Questions("Ho un forte dolore alla schiena")
	assert.Equal(t, []string{
		"Il dolore è costante o intermittente?",
		"Su una scala da 1 a 10, quanto è intenso?",
		"Hai preso qualche farmaco per il dolore?",
	}, pain)

	fever := g.Questions("Da ieri ho la febbre")
	assert.Equal(t, []string{
		"Hai misurato la temperatura?",
		"Da quanto tempo hai la febbre?",
		"Hai altri sintomi come mal di testa o debolezza?",
	}, fever)
}

func TestQuestionsFallback(t *testing.T) {
	cfg := DefaultConfig()
	g := NewQuestionGenerator(cfg.FollowUps, cfg.FallbackQuestions)

	got := g.Questions("Mi sento stanco ultimamente")
	assert.Equal(t, cfg.FallbackQuestions, got)
}

func TestQuestionsAlwaysThree(t *testing.T) {
	cfg := DefaultConfig()
	g := NewQuestionGenerator(cfg.FollowUps, cfg.FallbackQuestions)

	inputs := []string{
		"dolore al petto",
		"febbre e brividi",
		"mal di testa",
		"",
		"DOLORE FORTISSIMO",
	}
	for _, input := range inputs {
		assert.Len(t, g.Questions(input), 3, "input: %q", input)
	}
}

func TestQuestionsFirstRuleWins(t *testing.T) {
	cfg := DefaultConfig()
	g := NewQuestionGenerator(cfg.FollowUps, cfg.FallbackQuestions)

	// Both triggers present: the first configured rule decides.
	got := g.Questions("Ho dolore e febbre da stamattina")
	assert.Equal(t, cfg.FollowUps[0].Questions, got)
}
