package search

import (
	"context"
)

// Result represents a single search hit from any provider.
type Result struct {
	Title   string
	URL     string
	Snippet string
	// Date is the provider-reported publication hint when available, either
	// relative ("3 days ago") or absolute ("Jan 15, 2025"). Used only for
	// snippet recency ordering, never to alter content.
	Date   string
	Source string // provider name for observability
}

// Provider is a minimal interface for search providers.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}
