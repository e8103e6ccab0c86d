package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient calls the OpenAI chat completion API. One completion per
// turn, awaited by the caller; failures propagate unretried.
type OpenAIClient struct {
	client *openai.Client
	config Config
}

// NewOpenAIClient constructs an OpenAI-backed client with the given key
// and model configuration.
func NewOpenAIClient(apiKey string, config Config) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		config: config,
	}
}

// Complete sends the system prompt and assembled user context and
// returns the model's reply text.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userContext string) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userContext},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
