package search

import (
	"context"
)

// Result represents a single search hit from any provider.
type Result struct {
	Title   string
	URL     string
	Snippet string
	Source  string // provider name for observability
}

// Provider is a minimal interface for search providers. A provider consumes
// one quota unit per call; the orchestrator treats an error as zero hits.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}
