// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/idea-engine/pkg/types"
)

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "llama-3.1-8b-instant"
	defaultTemperature = 0.7
	defaultMaxTokens   = 4096
)

// GroqClient calls an OpenAI-compatible chat-completion endpoint. The
// default base URL targets Groq; OpenAI itself or any compatible proxy
// works by overriding ModelConfig.BaseURL.
type GroqClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewGroqClient builds a completion client from config, applying defaults
// for the model identifier, endpoint, sampling temperature, and token cap.
func NewGroqClient(cfg types.ModelConfig) *GroqClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = baseURL

	return &GroqClient{
		client:      openai.NewClientWithConfig(oc),
		model:       model,
		temperature: float32(temperature),
		maxTokens:   maxTokens,
	}
}

// Name returns the model identifier requests are sent with.
func (c *GroqClient) Name() string { return c.model }

// Complete submits the prompt as a single user message and returns the
// completion text unchanged.
func (c *GroqClient) Complete(ctx context.Context, promptText string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: promptText},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
