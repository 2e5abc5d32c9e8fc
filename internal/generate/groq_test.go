// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/idea-engine/pkg/types"
)

func TestNewGroqClientDefaults(t *testing.T) {
	c := NewGroqClient(types.ModelConfig{})
	if c.Name() != "llama-3.1-8b-instant" {
		t.Errorf("default model = %q", c.Name())
	}
	if c.temperature != 0.7 {
		t.Errorf("default temperature = %v, want 0.7", c.temperature)
	}
	if c.maxTokens != 4096 {
		t.Errorf("default maxTokens = %d, want 4096", c.maxTokens)
	}
}

func TestGroqComplete(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "## Idea 1"}, "finish_reason": "stop"}]
		}`)
	}))
	defer ts.Close()

	c := NewGroqClient(types.ModelConfig{
		APIKey:      "test-key",
		BaseURL:     ts.URL,
		Model:       "llama-3.1-8b-instant",
		Temperature: 0.7,
	})

	got, err := c.Complete(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "## Idea 1" {
		t.Errorf("completion = %q", got)
	}

	if gotBody["model"] != "llama-3.1-8b-instant" {
		t.Errorf("request model = %v", gotBody["model"])
	}
	msgs, _ := gotBody["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("messages = %v, want a single user message", gotBody["messages"])
	}
	msg, _ := msgs[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "the prompt" {
		t.Errorf("message = %v", msg)
	}
}

func TestGroqCompleteUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error": {"message": "overloaded", "type": "server_error"}}`)
	}))
	defer ts.Close()

	c := NewGroqClient(types.ModelConfig{APIKey: "k", BaseURL: ts.URL})
	if _, err := c.Complete(context.Background(), "p"); err == nil {
		t.Fatal("upstream 503 accepted")
	}
}

func TestGroqCompleteNoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "cmpl-2", "object": "chat.completion", "choices": []}`)
	}))
	defer ts.Close()

	c := NewGroqClient(types.ModelConfig{APIKey: "k", BaseURL: ts.URL})
	if _, err := c.Complete(context.Background(), "p"); err == nil {
		t.Fatal("empty choices accepted")
	}
}
