// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the idea-engine pipeline.
package types

import "time"

// WebSummary is the digest of a web-search lookup for a topic. It is a
// distinct type rather than a bare string so later structured use of the
// provider response does not require re-parsing free text.
type WebSummary struct {
	// Query is the provider query that produced the summary
	// (e.g. "project ideas for urban farming").
	Query string `json:"query" yaml:"query"`

	// Text is the provider-opaque summary. Empty when the provider had
	// nothing useful to say; never carries fabricated content.
	Text string `json:"text" yaml:"text"`
}

// Paper is one academic-paper entry returned by the metadata provider.
// Missing provider fields are substituted with explicit placeholders at
// the client boundary, so both fields are always non-empty.
type Paper struct {
	// Title is the paper title, or "No Title" when the provider omits it.
	Title string `json:"title" yaml:"title"`

	// URL is the paper abstract URL, or "No URL" when the provider omits it.
	URL string `json:"url" yaml:"url"`
}

// PaperFeed holds the outcome of an academic-paper lookup. Exactly one of
// Papers or Notice is populated: a successful lookup with matches fills
// Papers in provider relevance order, while an intentional no-result state
// or a degraded provider fills Notice with renderable text. An empty
// Papers slice is never silently treated as a result set.
type PaperFeed struct {
	Papers []Paper `json:"papers,omitempty" yaml:"papers,omitempty"`
	Notice string  `json:"notice,omitempty" yaml:"notice,omitempty"`
}

// IsEmpty reports whether the feed carries neither papers nor a notice.
func (f PaperFeed) IsEmpty() bool {
	return len(f.Papers) == 0 && f.Notice == ""
}

// Complexity is the desired project complexity tier. It is conveyed to the
// model as descriptive text, not enforced structurally.
type Complexity string

const (
	Beginner     Complexity = "Beginner"
	Intermediate Complexity = "Intermediate"
	Advanced     Complexity = "Advanced"
)

// Request holds the parameters of one idea-generation run.
type Request struct {
	// Topic is the user-supplied topic of interest. Trimmed, otherwise opaque.
	Topic string `json:"topic" yaml:"topic"`

	// NumIdeas is the number of project ideas to request (must be positive).
	NumIdeas int `json:"num_ideas" yaml:"num_ideas"`

	// Complexity is the desired complexity tier.
	Complexity Complexity `json:"complexity" yaml:"complexity"`
}

// GenerationRecord is the result of one idea-generation run: the model's
// raw output plus the gathered resources that informed it. Records are
// created fresh per request; persistence is the history store's concern.
type GenerationRecord struct {
	// ID is assigned by the history store on save; zero until then.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	Topic      string     `json:"topic" yaml:"topic"`
	NumIdeas   int        `json:"num_ideas" yaml:"num_ideas"`
	Complexity Complexity `json:"complexity" yaml:"complexity"`

	// Model is the model identifier that produced the ideas.
	Model string `json:"model" yaml:"model"`

	// Ideas is the model's free-text completion, unchanged.
	Ideas string `json:"ideas" yaml:"ideas"`

	// Web is the web-search digest used to build the context block.
	Web WebSummary `json:"web" yaml:"web"`

	// Papers is the academic-paper feed gathered alongside.
	Papers PaperFeed `json:"papers" yaml:"papers"`

	// CreatedAt is the completion time of the run.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
