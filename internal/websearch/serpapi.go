// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch queries a general web-search provider (SerpAPI) and
// digests the response into a single topic summary.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/idea-engine/internal/httputil"
	"github.com/pdiddy/idea-engine/pkg/types"
)

// serpAPIBase is the SerpAPI search endpoint. Declared as a var so tests
// can substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search.json"

// NoResultText is the sentinel summary used when the provider responds
// successfully but has nothing useful to say.
const NoResultText = "No good search result found."

const defaultMaxSnippets = 3

// Client queries SerpAPI for a topic-derived query string.
type Client struct {
	Client *http.Client
	Config types.WebSearchConfig
}

// Search queries the provider with "project ideas for {topic}" and digests
// the response into a WebSummary. The digest prefers the answer-box answer,
// then the answer-box snippet, then up to MaxSnippets organic-result
// snippets. A reachable provider always yields a well-formed summary; any
// transport failure or non-200 status yields a *types.ProviderError and no
// summary.
func (c *Client) Search(ctx context.Context, topic string) (types.WebSummary, error) {
	query := "project ideas for " + topic

	engine := c.Config.Engine
	if engine == "" {
		engine = "google"
	}

	params := url.Values{
		"engine":  {engine},
		"q":       {query},
		"api_key": {c.Config.APIKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return types.WebSummary{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	httpClient := c.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, httpClient, req, 0)
	if err != nil {
		return types.WebSummary{}, &types.ProviderError{Provider: "serpapi", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.WebSummary{}, &types.ProviderError{Provider: "serpapi", StatusCode: resp.StatusCode}
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return types.WebSummary{}, &types.ProviderError{
			Provider: "serpapi",
			Err:      fmt.Errorf("parsing response: %w", err),
		}
	}

	maxSnippets := c.Config.MaxSnippets
	if maxSnippets <= 0 {
		maxSnippets = defaultMaxSnippets
	}

	return types.WebSummary{Query: query, Text: digest(sr, maxSnippets)}, nil
}

// digest reduces a SerpAPI response to one text blob. SerpAPI reports
// "no results" as an error field on a 200 response, which counts as a
// successful lookup with the sentinel text.
func digest(sr serpResponse, maxSnippets int) string {
	if a := strings.TrimSpace(sr.AnswerBox.Answer); a != "" {
		return a
	}
	if s := strings.TrimSpace(sr.AnswerBox.Snippet); s != "" {
		return s
	}

	var snippets []string
	for _, r := range sr.OrganicResults {
		if len(snippets) >= maxSnippets {
			break
		}
		if s := strings.TrimSpace(r.Snippet); s != "" {
			snippets = append(snippets, s)
		}
	}
	if len(snippets) > 0 {
		return strings.Join(snippets, "\n")
	}

	return NoResultText
}

// SerpAPI JSON structures (subset).
type serpResponse struct {
	Error          string        `json:"error"`
	AnswerBox      serpAnswerBox `json:"answer_box"`
	OrganicResults []serpOrganic `json:"organic_results"`
}

type serpAnswerBox struct {
	Answer  string `json:"answer"`
	Snippet string `json:"snippet"`
}

type serpOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
