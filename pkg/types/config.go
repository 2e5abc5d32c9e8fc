package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "idea-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// WebSearchConfig holds settings for the web-search client.
type WebSearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the SerpAPI authentication key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Engine is the SerpAPI engine parameter (default "google").
	Engine string `json:"engine" yaml:"engine"`

	// MaxSnippets is the number of organic-result snippets folded into the
	// summary when the response carries no answer box (default 3).
	MaxSnippets int `json:"max_snippets" yaml:"max_snippets"`
}

// PapersConfig holds settings for the academic-paper client.
type PapersConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxPapers is the maximum number of paper entries kept from a
	// response (default 5).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`
}

// ModelConfig holds settings for the chat-completion client.
type ModelConfig struct {
	// Model is the model identifier (e.g. "llama-3.1-8b-instant").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the completion API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL is the OpenAI-compatible API root. The default points at
	// Groq; any compatible endpoint works.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens caps the completion length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// MaxAttempts is the total number of completion attempts before a
	// request is reported as failed (default 2).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// RetryBackoff is the base delay between completion attempts.
	RetryBackoff time.Duration `json:"retry_backoff" yaml:"retry_backoff"`
}

// HistoryConfig holds settings for the generation history store.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default "history").
	Dir string `json:"dir" yaml:"dir"`

	// MaxList is the default maximum number of entries returned by list
	// operations (default 20).
	MaxList int `json:"max_list" yaml:"max_list"`
}

// Config groups all component configurations.
type Config struct {
	WebSearch WebSearchConfig `json:"web_search" yaml:"web_search"`
	Papers    PapersConfig    `json:"papers" yaml:"papers"`
	Model     ModelConfig     `json:"model" yaml:"model"`
	History   HistoryConfig   `json:"history" yaml:"history"`
}
