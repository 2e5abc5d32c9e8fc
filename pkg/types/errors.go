// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ProviderError reports that a third-party provider call could not complete.
// It is recoverable: callers decide per provider whether to degrade or abort.
// StatusCode is zero when the failure happened before an HTTP status was
// received (transport error, request construction).
type ProviderError struct {
	// Provider names the failing service (e.g. "serpapi", "paperswithcode").
	Provider string

	// StatusCode is the non-success HTTP status, if one was received.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: API error with status code %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
