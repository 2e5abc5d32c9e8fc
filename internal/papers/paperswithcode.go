// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers queries the PapersWithCode metadata API for papers
// matching a topic keyword.
package papers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/idea-engine/internal/httputil"
	"github.com/pdiddy/idea-engine/pkg/types"
)

// papersAPIBase is the PapersWithCode search endpoint. Declared as a var
// so tests can substitute an httptest server.
var papersAPIBase = "https://paperswithcode.com/api/v1/search/"

// NoPapersNotice is the sentinel feed text for an intentional no-result state.
const NoPapersNotice = "No papers found for the given topic."

// Placeholders substituted for missing provider fields. Each substitution
// is independent: a missing title does not suppress a present URL.
const (
	placeholderTitle = "No Title"
	placeholderURL   = "No URL"
)

const defaultMaxPapers = 5

// Client queries the PapersWithCode API by topic keyword.
type Client struct {
	Client *http.Client
	Config types.PapersConfig
}

// Search queries the provider and returns up to MaxPapers entries in the
// provider's relevance order. Only HTTP 200 counts as success; any other
// status yields a *types.ProviderError carrying the status code — a
// recoverable condition the caller may degrade via Degrade. An empty
// results array yields the no-papers sentinel feed, never an empty list
// silently treated as papers.
func (c *Client) Search(ctx context.Context, topic string) (types.PaperFeed, error) {
	params := url.Values{"q": {topic}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, papersAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return types.PaperFeed{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	httpClient := c.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, httpClient, req, 0)
	if err != nil {
		return types.PaperFeed{}, &types.ProviderError{Provider: "paperswithcode", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.PaperFeed{}, &types.ProviderError{Provider: "paperswithcode", StatusCode: resp.StatusCode}
	}

	var pr papersResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return types.PaperFeed{}, &types.ProviderError{
			Provider: "paperswithcode",
			Err:      fmt.Errorf("parsing response: %w", err),
		}
	}

	if len(pr.Results) == 0 {
		return types.PaperFeed{Notice: NoPapersNotice}, nil
	}

	maxPapers := c.Config.MaxPapers
	if maxPapers <= 0 {
		maxPapers = defaultMaxPapers
	}

	var feed types.PaperFeed
	for i, entry := range pr.Results {
		if i >= maxPapers {
			break
		}
		feed.Papers = append(feed.Papers, convertEntry(entry))
	}
	return feed, nil
}

// Degrade converts a failed lookup into a renderable notice feed. A
// provider failure becomes "API error with status code N" (or the error
// text when no status was received); a successful feed passes through
// unchanged. The typed error stays available to callers that need to
// distinguish degraded output from legitimate content.
func Degrade(feed types.PaperFeed, err error) types.PaperFeed {
	if err == nil {
		return feed
	}
	var pe *types.ProviderError
	if errors.As(err, &pe) && pe.StatusCode != 0 {
		return types.PaperFeed{Notice: fmt.Sprintf("API error with status code %d", pe.StatusCode)}
	}
	return types.PaperFeed{Notice: fmt.Sprintf("API error: %v", err)}
}

// convertEntry maps one provider entry to a Paper, substituting
// placeholders for missing fields.
func convertEntry(entry papersResult) types.Paper {
	p := types.Paper{
		Title: entry.Paper.Title,
		URL:   entry.Paper.URLAbs,
	}
	if p.Title == "" {
		p.Title = placeholderTitle
	}
	if p.URL == "" {
		p.URL = placeholderURL
	}
	return p
}

// PapersWithCode API JSON structures (subset).
type papersResponse struct {
	Count   int            `json:"count"`
	Results []papersResult `json:"results"`
}

type papersResult struct {
	Paper papersPaper `json:"paper"`
}

type papersPaper struct {
	Title  string `json:"title"`
	URLAbs string `json:"url_abs"`
}
