// Package lookup serves the city/street autocomplete behind the registration
// form. It fronts an open-data datastore with a cache, a circuit breaker, and
// request collapsing; every failure mode degrades to an empty candidate list
// so the form keeps working while the provider does not.
package lookup

import "context"

// Candidate is one autocomplete suggestion. Code is the stable key used for
// deduplication and later submission; Name is for display only.
type Candidate struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Provider queries the upstream datastore. Implementations must honor
// context cancellation.
type Provider interface {
	Cities(ctx context.Context, query string, limit int) ([]Candidate, error)
	Streets(ctx context.Context, query, cityCode string, limit int) ([]Candidate, error)
}
