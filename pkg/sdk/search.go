package socratic

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/socratic/internal/domain/search/mode"
	"github.com/kailas-cloud/socratic/internal/domain/search/request"
)

// SearchBuilder builds and runs one search. Zero values mean hybrid mode and the default limit.
type SearchBuilder struct {
	user  string
	svc   searchUseCase
	obs   *observer
	query string
	mode  SearchMode
	limit int
}

// Query sets the search text.
func (b *SearchBuilder) Query(q string) *SearchBuilder {
	b.query = q
	return b
}

// Mode sets the scoring strategy.
func (b *SearchBuilder) Mode(m SearchMode) *SearchBuilder {
	b.mode = m
	return b
}

// Limit caps the number of results.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Do runs the search.
func (b *SearchBuilder) Do(ctx context.Context) (_ SearchResponse, err error) {
	start := time.Now()
	defer func() { b.obs.observe("search", start, err) }()

	m, err := mode.Parse(string(b.mode))
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	req, err := request.New(b.query, m, b.limit)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	resp, err := b.svc.Search(ctx, b.user, &req)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	return fromInternalResponse(resp), nil
}
