package llm

import (
	"context"
)

// Config is the model configuration value object passed to a client.
type Config struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4o-mini",
		MaxTokens:   1500,
		Temperature: 0.2,
	}
}

// Client is the single capability the triage pipeline needs from a
// language model: plain text in, plain text out. No streaming, no
// structured output; interpretation of the reply happens downstream by
// keyword scanning. Alternate providers implement this interface
// without the pipeline noticing.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userContext string) (string, error)
}
