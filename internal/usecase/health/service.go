package health

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component failed; search falls back to lexical scoring.
	Degraded Status = "degraded"
	// Unhealthy indicates the conversation store is unusable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentStorage   = "storage"
	ComponentCache     = "cache"
	ComponentEmbedding = "embedding"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	storage   StoragePinger
	cache     CachePinger
	embedding EmbeddingChecker
}

// New creates a Service. cache and embedding can be nil.
func New(storage StoragePinger, cache CachePinger, embedding EmbeddingChecker) *Service {
	return &Service{storage: storage, cache: cache, embedding: embedding}
}

// Check runs all component checks in parallel.
func (s *Service) Check(ctx context.Context) Report {
	var mu sync.Mutex
	checks := make(map[string]CheckResult)
	record := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			checks[name] = CheckError
		} else {
			checks[name] = CheckOK
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		record(ComponentStorage, s.storage.Ping(gctx))
		return nil
	})
	if s.cache != nil {
		g.Go(func() error {
			record(ComponentCache, s.cache.Ping(gctx))
			return nil
		})
	}
	if s.embedding != nil {
		g.Go(func() error {
			record(ComponentEmbedding, s.embedding.HealthCheck(gctx))
			return nil
		})
	}
	_ = g.Wait()

	status := Healthy
	for name, v := range checks {
		if v != CheckError {
			continue
		}
		if name == ComponentStorage {
			status = Unhealthy
			break
		}
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
