// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/idea-engine/internal/papers"
	"github.com/pdiddy/idea-engine/pkg/types"
)

// --- Test doubles ---

type stubWeb struct {
	summary types.WebSummary
	err     error
	calls   int32
}

func (s *stubWeb) Search(ctx context.Context, topic string) (types.WebSummary, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.summary, s.err
}

type stubPapers struct {
	feed  types.PaperFeed
	err   error
	calls int32
}

func (s *stubPapers) Search(ctx context.Context, topic string) (types.PaperFeed, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.feed, s.err
}

type stubModel struct {
	response   string
	failFirst  int // fail this many leading attempts
	err        error
	calls      int
	lastPrompt string
	onCall     func(ctx context.Context)
}

func (s *stubModel) Name() string { return "stub-model" }

func (s *stubModel) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.onCall != nil {
		s.onCall(ctx)
	}
	if s.calls <= s.failFirst {
		err := s.err
		if err == nil {
			err = errors.New("model unavailable")
		}
		return "", err
	}
	return s.response, nil
}

func testService(web *stubWeb, paperStub *stubPapers, model *stubModel) *Service {
	return &Service{
		Web:    web,
		Papers: paperStub,
		Model:  model,
		Retry:  RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond},
	}
}

// --- Input validation ---

func TestGenerateInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  types.Request
	}{
		{"empty topic", types.Request{Topic: "", NumIdeas: 5}},
		{"whitespace topic", types.Request{Topic: "   \t", NumIdeas: 5}},
		{"zero ideas", types.Request{Topic: "robotics", NumIdeas: 0}},
		{"negative ideas", types.Request{Topic: "robotics", NumIdeas: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			web := &stubWeb{}
			paperStub := &stubPapers{}
			model := &stubModel{response: "ideas"}
			svc := testService(web, paperStub, model)

			_, err := svc.Generate(context.Background(), tt.req, &bytes.Buffer{})
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("error = %v, want ErrInvalidInput", err)
			}

			// Rejection happens before any external call.
			if web.calls != 0 || paperStub.calls != 0 || model.calls != 0 {
				t.Errorf("external calls made on invalid input: web=%d papers=%d model=%d",
					web.calls, paperStub.calls, model.calls)
			}
		})
	}
}

// --- End-to-end happy path ---

func TestGenerateHappyPath(t *testing.T) {
	web := &stubWeb{summary: types.WebSummary{Query: "project ideas for AI for sustainable agriculture", Text: "X"}}
	paperStub := &stubPapers{feed: types.PaperFeed{Notice: papers.NoPapersNotice}}
	model := &stubModel{response: "## Idea 1\nRaw model output"}
	svc := testService(web, paperStub, model)

	req := types.Request{Topic: "AI for sustainable agriculture", NumIdeas: 5, Complexity: types.Intermediate}
	rec, err := svc.Generate(context.Background(), req, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// The rendered prompt carries the literal topic, count, and web text.
	for _, want := range []string{"AI for sustainable agriculture", "Generate 5 unique", "X"} {
		if !strings.Contains(model.lastPrompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, model.lastPrompt)
		}
	}
	// The empty-paper sentinel stays out of the context block.
	if strings.Contains(model.lastPrompt, papers.NoPapersNotice) {
		t.Error("prompt contains paper notice; papers are not part of the context block")
	}

	// Model output is returned unchanged.
	if rec.Ideas != "## Idea 1\nRaw model output" {
		t.Errorf("Ideas = %q, want the raw model text", rec.Ideas)
	}
	if rec.Model != "stub-model" {
		t.Errorf("Model = %q", rec.Model)
	}
	if rec.Papers.Notice != papers.NoPapersNotice {
		t.Errorf("Papers.Notice = %q, want sentinel", rec.Papers.Notice)
	}
	if rec.Topic != "AI for sustainable agriculture" || rec.NumIdeas != 5 {
		t.Errorf("record params = %q/%d", rec.Topic, rec.NumIdeas)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if web.calls != 1 || paperStub.calls != 1 || model.calls != 1 {
		t.Errorf("call counts: web=%d papers=%d model=%d", web.calls, paperStub.calls, model.calls)
	}
}

// --- Provider degradation ---

func TestGenerateWebFailureDegradesToEmptySlot(t *testing.T) {
	web := &stubWeb{err: &types.ProviderError{Provider: "serpapi", StatusCode: 401}}
	paperStub := &stubPapers{feed: types.PaperFeed{Papers: []types.Paper{{Title: "T", URL: "U"}}}}
	model := &stubModel{response: "ideas"}
	svc := testService(web, paperStub, model)

	var warnings bytes.Buffer
	rec, err := svc.Generate(context.Background(), types.Request{Topic: "robotics", NumIdeas: 3, Complexity: types.Beginner}, &warnings)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(warnings.String(), "web search degraded") {
		t.Errorf("no degradation warning, got %q", warnings.String())
	}
	// Degradation means an empty slot, never fabricated or error text.
	if strings.Contains(model.lastPrompt, "401") || strings.Contains(model.lastPrompt, "serpapi") {
		t.Errorf("provider error leaked into the prompt:\n%s", model.lastPrompt)
	}
	if rec.Web.Text != "" {
		t.Errorf("Web.Text = %q, want empty after degradation", rec.Web.Text)
	}
}

func TestGeneratePapersFailureDegradesToNotice(t *testing.T) {
	web := &stubWeb{summary: types.WebSummary{Text: "context"}}
	paperStub := &stubPapers{err: &types.ProviderError{Provider: "paperswithcode", StatusCode: 500}}
	model := &stubModel{response: "ideas"}
	svc := testService(web, paperStub, model)

	rec, err := svc.Generate(context.Background(), types.Request{Topic: "robotics", NumIdeas: 3, Complexity: types.Advanced}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if rec.Papers.Notice != "API error with status code 500" {
		t.Errorf("Papers.Notice = %q, want degraded status text", rec.Papers.Notice)
	}
	if len(rec.Papers.Papers) != 0 {
		t.Errorf("Papers = %v, want none after degradation", rec.Papers.Papers)
	}
}

// --- Retry budget ---

func TestGenerateModelFailsAllAttempts(t *testing.T) {
	web := &stubWeb{}
	paperStub := &stubPapers{feed: types.PaperFeed{Notice: papers.NoPapersNotice}}
	model := &stubModel{failFirst: 10, err: errors.New("upstream 503")}
	svc := testService(web, paperStub, model)

	rec, err := svc.Generate(context.Background(), types.Request{Topic: "robotics", NumIdeas: 3, Complexity: types.Intermediate}, &bytes.Buffer{})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("error = %v, want ErrGenerationFailed", err)
	}
	if model.calls != 2 {
		t.Errorf("model calls = %d, want the 2-attempt budget", model.calls)
	}
	// No partial or fabricated result accompanies the failure.
	if rec.Ideas != "" {
		t.Errorf("Ideas = %q, want empty on failure", rec.Ideas)
	}
}

func TestGenerateRetrySucceedsOnSecondAttempt(t *testing.T) {
	web := &stubWeb{}
	paperStub := &stubPapers{feed: types.PaperFeed{Notice: papers.NoPapersNotice}}
	model := &stubModel{failFirst: 1, response: "recovered"}
	svc := testService(web, paperStub, model)

	rec, err := svc.Generate(context.Background(), types.Request{Topic: "robotics", NumIdeas: 3, Complexity: types.Intermediate}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if model.calls != 2 {
		t.Errorf("model calls = %d, want 2", model.calls)
	}
	if rec.Ideas != "recovered" {
		t.Errorf("Ideas = %q", rec.Ideas)
	}
}

func TestGenerateCancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	web := &stubWeb{}
	paperStub := &stubPapers{feed: types.PaperFeed{Notice: papers.NoPapersNotice}}
	model := &stubModel{
		failFirst: 10,
		err:       context.Canceled,
		onCall:    func(context.Context) { cancel() },
	}
	svc := testService(web, paperStub, model)

	_, err := svc.Generate(ctx, types.Request{Topic: "robotics", NumIdeas: 3, Complexity: types.Intermediate}, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrGenerationFailed) {
		t.Error("cancellation reported as generation failure")
	}
	if model.calls != 1 {
		t.Errorf("model calls = %d, want no retry after cancellation", model.calls)
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	if p.MaxAttempts != 2 {
		t.Errorf("MaxAttempts = %d, want 2", p.MaxAttempts)
	}
}
