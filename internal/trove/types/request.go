package types

import "strings"

const (
	// DefaultLimit is the page size used when the caller does not ask for one.
	DefaultLimit = 20
	// MaxLimit is the hard ceiling the Trove API accepts for a single page.
	MaxLimit = 100
)

// SearchRequest represents one incoming search request. It lives for the
// duration of a single HTTP request and is never persisted.
type SearchRequest struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`  // results per page, clamped to [1,100]
	Offset int    `json:"offset,omitempty"` // start offset, >= 0
}

// Normalize trims the query and clamps pagination into the ranges the
// upstream API accepts.
func (r *SearchRequest) Normalize() {
	r.Query = strings.TrimSpace(r.Query)

	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}
