package embedding

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/domain"
)

// Status reports how the dense component of a search was produced.
type Status string

// Dense outcome states. The wire values appear as dense_status in search responses.
const (
	StatusScored      Status = "ok"
	StatusUnavailable Status = "unavailable"
	StatusFailed      Status = "error"
	// StatusSkipped marks searches whose mode does not use the dense engine.
	StatusSkipped Status = "skipped"
)

// Loader builds the embedding provider. It is called at most once per Dense.
type Loader func(ctx context.Context) (domain.Embedder, error)

// Outcome is the result of one dense batch.
// Vectors are L2-normalized and index-aligned with the input texts when Status is StatusScored.
type Outcome struct {
	Status      Status
	Vectors     [][]float32
	TotalTokens int
	Err         error
}

// Scored reports whether vectors are present.
func (o Outcome) Scored() bool { return o.Status == StatusScored }

// Dense is the lazily initialized dense similarity engine.
// A failed initialization leaves the engine permanently unavailable for the process lifetime.
type Dense struct {
	load   Loader
	logger *zap.Logger

	mu       sync.Mutex
	ready    atomic.Bool
	embedder domain.Embedder
}

// NewDense creates a dense engine. A nil loader yields an engine that is always unavailable.
func NewDense(load Loader, logger *zap.Logger) *Dense {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dense{load: load, logger: logger}
}

// Available initializes the provider if needed and reports whether it is usable.
func (d *Dense) Available(ctx context.Context) bool {
	return d.provider(ctx) != nil
}

// HealthCheck reports provider availability. Unavailable engines are an error.
func (d *Dense) HealthCheck(ctx context.Context) error {
	e := d.provider(ctx)
	if e == nil {
		return domain.ErrEmbeddingUnavailable
	}
	if hc, ok := e.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // pass-through
	}
	return nil
}

func (d *Dense) provider(ctx context.Context) domain.Embedder {
	if d.ready.Load() {
		return d.embedder
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ready.Load() {
		return d.embedder
	}

	if d.load == nil {
		d.logger.Info("Dense embedding disabled")
	} else {
		// Initialization outlives the request that triggered it.
		e, err := d.load(context.WithoutCancel(ctx))
		if err != nil {
			d.logger.Warn("Dense embedding unavailable", zap.Error(err))
		} else {
			d.embedder = e
			d.logger.Info("Dense embedding initialized")
		}
	}
	d.ready.Store(true)

	return d.embedder
}

// Embed vectorizes texts in one batch and L2-normalizes every vector.
// It never returns an error; failures are reported through Outcome.Status.
func (d *Dense) Embed(ctx context.Context, texts []string) Outcome {
	e := d.provider(ctx)
	if e == nil {
		return Outcome{Status: StatusUnavailable}
	}
	if len(texts) == 0 {
		return Outcome{Status: StatusScored}
	}

	res, err := domain.BatchEmbed(ctx, e, texts)
	if err != nil {
		d.logger.Warn("Dense embedding failed", zap.Int("texts", len(texts)), zap.Error(err))
		return Outcome{Status: StatusFailed, Err: err}
	}
	if len(res.Embeddings) != len(texts) {
		err = fmt.Errorf("expected %d embeddings, got %d: %w",
			len(texts), len(res.Embeddings), domain.ErrEmbeddingProviderError)
		d.logger.Warn("Dense embedding failed", zap.Error(err))
		return Outcome{Status: StatusFailed, Err: err}
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, v := range res.Embeddings {
		vectors[i] = Normalize(v)
	}

	return Outcome{Status: StatusScored, Vectors: vectors, TotalTokens: res.TotalTokens}
}

// Normalize returns a unit-length copy of v. A zero vector is returned as zeros.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// Similarity is the dot product of two normalized vectors clamped at zero.
// Vectors of different length score 0.
func Similarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return math.Max(0, dot)
}

// ProbeLoader returns a Loader that accepts e once it answers a probe embedding within timeout.
func ProbeLoader(e domain.Embedder, timeout time.Duration) Loader {
	return func(ctx context.Context) (domain.Embedder, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		res, err := e.Embed(ctx, "ping")
		if err != nil {
			return nil, fmt.Errorf("probe embedding: %w", err)
		}
		if len(res.Embedding) == 0 {
			return nil, fmt.Errorf("probe embedding: empty vector: %w", domain.ErrEmbeddingProviderError)
		}
		return e, nil
	}
}
