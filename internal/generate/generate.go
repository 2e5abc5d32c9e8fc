// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate orchestrates the idea-generation pipeline: gather
// search context, assemble the prompt, and call the completion API.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/idea-engine/internal/papers"
	"github.com/pdiddy/idea-engine/internal/prompt"
	"github.com/pdiddy/idea-engine/pkg/types"
)

// ErrInvalidInput marks requests rejected before any external call:
// an empty topic or a non-positive idea count.
var ErrInvalidInput = errors.New("invalid input")

// ErrGenerationFailed marks a request whose completion attempts were all
// exhausted. No partial or fabricated idea list accompanies it.
var ErrGenerationFailed = errors.New("generation failed")

// WebSearcher gathers a topic summary from a web-search provider.
type WebSearcher interface {
	Search(ctx context.Context, topic string) (types.WebSummary, error)
}

// PaperSearcher gathers academic-paper entries for a topic.
type PaperSearcher interface {
	Search(ctx context.Context, topic string) (types.PaperFeed, error)
}

// ModelClient submits a rendered prompt to a hosted completion endpoint.
type ModelClient interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// RetryPolicy bounds the completion attempts. It is injected rather than
// hardcoded so tests can substitute a single-attempt policy.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Backoff is the delay before the second attempt; it doubles for
	// each attempt after that.
	Backoff time.Duration
}

// DefaultRetryPolicy matches the completion API's library-default retry
// count: two attempts with a one-second base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 2, Backoff: time.Second}
}

// Service is the single public entry point of the pipeline. All state is
// per-call; a Service carries only its collaborators and may be shared
// freely across requests.
type Service struct {
	Web    WebSearcher
	Papers PaperSearcher
	Model  ModelClient
	Retry  RetryPolicy
}

// Generate runs one idea-generation request end to end. Warnings about
// degraded providers go to w. The two search lookups are independent and
// run concurrently; correctness does not depend on their ordering since
// each feeds a fixed slot.
//
// A failed web search degrades to an empty context slot — never to
// fabricated content. A failed paper lookup degrades to a notice feed.
// A failed completion, after the retry budget is spent, surfaces as
// ErrGenerationFailed; a cancelled context surfaces as ctx.Err().
func (s *Service) Generate(ctx context.Context, req types.Request, w io.Writer) (types.GenerationRecord, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return types.GenerationRecord{}, fmt.Errorf("%w: topic is empty", ErrInvalidInput)
	}
	if req.NumIdeas <= 0 {
		return types.GenerationRecord{}, fmt.Errorf("%w: idea count must be positive, got %d", ErrInvalidInput, req.NumIdeas)
	}

	web, feed := s.gatherResources(ctx, topic, w)

	contextBlock := prompt.AssembleContext(web)
	promptText, err := prompt.BuildPrompt(topic, contextBlock, req.NumIdeas, req.Complexity)
	if err != nil {
		return types.GenerationRecord{}, err
	}

	ideas, err := s.completeWithRetry(ctx, promptText)
	if err != nil {
		return types.GenerationRecord{}, err
	}

	return types.GenerationRecord{
		Topic:      topic,
		NumIdeas:   req.NumIdeas,
		Complexity: req.Complexity,
		Model:      s.Model.Name(),
		Ideas:      ideas,
		Web:        web,
		Papers:     feed,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// gatherResources runs the two provider lookups concurrently and applies
// each one's degradation policy.
func (s *Service) gatherResources(ctx context.Context, topic string, w io.Writer) (types.WebSummary, types.PaperFeed) {
	var (
		wg      sync.WaitGroup
		web     types.WebSummary
		webErr  error
		feed    types.PaperFeed
		feedErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		web, webErr = s.Web.Search(ctx, topic)
	}()
	go func() {
		defer wg.Done()
		feed, feedErr = s.Papers.Search(ctx, topic)
	}()
	wg.Wait()

	if webErr != nil {
		fmt.Fprintf(w, "warning: web search degraded: %v\n", webErr)
		web = types.WebSummary{}
	}
	if feedErr != nil {
		fmt.Fprintf(w, "warning: paper lookup degraded: %v\n", feedErr)
	}
	feed = papers.Degrade(feed, feedErr)

	return web, feed
}

// completeWithRetry calls the completion API within the retry budget,
// backing off exponentially between attempts.
func (s *Service) completeWithRetry(ctx context.Context, promptText string) (string, error) {
	policy := s.Retry
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if attempt > 1 && policy.Backoff > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-2))) * policy.Backoff
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		ideas, err := s.Model.Complete(ctx, promptText)
		if err == nil {
			return ideas, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err
	}
	return "", fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, policy.MaxAttempts, lastErr)
}
