package triage

import (
	"strings"
)

// QuestionGenerator derives follow-up questions from the raw user
// message, not from the model response; the classifier and the
// generator consume different sources on purpose. The first rule whose
// trigger matches selects its question set; otherwise the fallback set
// is used. The result always contains exactly three questions.
type QuestionGenerator struct {
	rules    []FollowUpRule
	fallback []string
}

func NewQuestionGenerator(rules []FollowUpRule, fallback []string) *QuestionGenerator {
	return &QuestionGenerator{rules: rules, fallback: fallback}
}

// Questions returns the follow-up set for the given user message.
func (g *QuestionGenerator) Questions(userMessage string) []string {
	lower := strings.ToLower(userMessage)
	for _, rule := range g.rules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(lower, strings.ToLower(trigger)) {
				return rule.Questions
			}
		}
	}
	return g.fallback
}
