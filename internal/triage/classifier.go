package triage

import (
	"strings"

	"medagent/backend/internal/models"
)

// Classifier assigns an urgency level to a model response by scanning
// for configured keywords. Levels are checked in the configured order
// (high before medium before low), and the first level with any
// case-insensitive substring hit wins; keyword counting plays no role.
// Classification never fails: no match means low.
type Classifier struct {
	levels []LevelKeywords
}

func NewClassifier(levels []LevelKeywords) *Classifier {
	return &Classifier{levels: levels}
}

// Classify returns exactly one of low, medium or high for the given
// response text.
func (c *Classifier) Classify(response string) models.UrgencyLevel {
	lower := strings.ToLower(response)
	for _, lk := range c.levels {
		for _, kw := range lk.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return lk.Level
			}
		}
	}
	return models.UrgencyLow
}
