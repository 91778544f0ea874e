package search

import (
	"context"

	"github.com/kailas-cloud/socratic/internal/domain/document"
	"github.com/kailas-cloud/socratic/internal/usecase/embedding"
)

// Collector builds the per-query corpus of a user.
type Collector interface {
	Collect(ctx context.Context, user string) ([]document.Document, error)
}

// DenseEngine embeds the query and corpus in one batch.
type DenseEngine interface {
	Embed(ctx context.Context, texts []string) embedding.Outcome
}
