// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/idea-engine/pkg/types"
)

func init() {
	viper.SetDefault("web_search.timeout", 10*time.Second)
	viper.SetDefault("web_search.user_agent", "idea-engine/0.1")
	viper.SetDefault("web_search.engine", "google")
	viper.SetDefault("web_search.max_snippets", 3)

	viper.SetDefault("papers.timeout", 10*time.Second)
	viper.SetDefault("papers.user_agent", "idea-engine/0.1")
	viper.SetDefault("papers.max_papers", 5)

	viper.SetDefault("model.model", "llama-3.1-8b-instant")
	viper.SetDefault("model.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("model.temperature", 0.7)
	viper.SetDefault("model.max_tokens", 4096)
	viper.SetDefault("model.max_attempts", 2)
	viper.SetDefault("model.retry_backoff", time.Second)

	viper.SetDefault("history.dir", "history")
	viper.SetDefault("history.max_list", 20)
}

// loadConfig materializes the typed configuration from viper, then fills
// API keys from their conventional environment variables and the .secrets/
// directory. Precedence: config file, environment, secret file.
func loadConfig() types.Config {
	cfg := types.Config{
		WebSearch: types.WebSearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("web_search.timeout"),
				UserAgent: viper.GetString("web_search.user_agent"),
			},
			APIKey:      viper.GetString("web_search.api_key"),
			Engine:      viper.GetString("web_search.engine"),
			MaxSnippets: viper.GetInt("web_search.max_snippets"),
		},
		Papers: types.PapersConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("papers.timeout"),
				UserAgent: viper.GetString("papers.user_agent"),
			},
			MaxPapers: viper.GetInt("papers.max_papers"),
		},
		Model: types.ModelConfig{
			Model:        viper.GetString("model.model"),
			APIKey:       viper.GetString("model.api_key"),
			BaseURL:      viper.GetString("model.base_url"),
			Temperature:  viper.GetFloat64("model.temperature"),
			MaxTokens:    viper.GetInt("model.max_tokens"),
			MaxAttempts:  viper.GetInt("model.max_attempts"),
			RetryBackoff: viper.GetDuration("model.retry_backoff"),
		},
		History: types.HistoryConfig{
			Dir:     viper.GetString("history.dir"),
			MaxList: viper.GetInt("history.max_list"),
		},
	}

	if cfg.WebSearch.APIKey == "" {
		cfg.WebSearch.APIKey = keyFallback("SERPAPI_API_KEY", "serpapi-api-key")
	}
	if cfg.Model.APIKey == "" {
		cfg.Model.APIKey = keyFallback("GROQ_API_KEY", "groq-api-key")
	}

	return cfg
}

// keyFallback returns the environment variable's value when set, then the
// loaded secret of the given name.
func keyFallback(envVar, secretName string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return loadedSecrets[secretName]
}
