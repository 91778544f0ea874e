package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/domain"
	"github.com/kailas-cloud/socratic/internal/domain/document"
	"github.com/kailas-cloud/socratic/internal/domain/search/mode"
	"github.com/kailas-cloud/socratic/internal/domain/search/request"
	"github.com/kailas-cloud/socratic/internal/domain/search/result"
	"github.com/kailas-cloud/socratic/internal/domain/search/tfidf"
	"github.com/kailas-cloud/socratic/internal/metrics"
	"github.com/kailas-cloud/socratic/internal/usecase/embedding"
)

// Fusion constants.
const (
	LexicalWeight = 0.4
	DenseWeight   = 0.6
	// KeywordBoost is added to the lexical score once per distinct query token found in the document.
	KeywordBoost = 0.1
	// ScoreThreshold drops documents whose fused score is not strictly above it.
	ScoreThreshold = 0.01
)

// Response is a ranked result list plus how the dense component was produced.
type Response struct {
	Mode        mode.Mode
	DenseStatus embedding.Status
	Results     []result.Result
}

// Service is the hybrid ranker over a user's conversations and memory notes.
// It is stateless: every call collects the corpus and rebuilds lexical weights.
type Service struct {
	collector Collector
	dense     DenseEngine
	logger    *zap.Logger
}

// New creates a search service.
func New(collector Collector, dense DenseEngine, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{collector: collector, dense: dense, logger: logger}
}

// Search ranks every document of user against the request's query.
func (s *Service) Search(ctx context.Context, user string, req *request.Request) (Response, error) {
	m := req.Mode()
	if !m.IsValid() {
		return Response{}, fmt.Errorf("mode %q: %w", m, domain.ErrInvalidMode)
	}

	start := time.Now()
	docs, err := s.collector.Collect(ctx, user)
	if err != nil {
		return Response{}, fmt.Errorf("collect corpus: %w", err)
	}
	metrics.SearchCorpusSize.Observe(float64(len(docs)))

	resp := Response{Mode: m, DenseStatus: embedding.StatusSkipped}
	if len(docs) == 0 {
		s.observe(resp, start)
		return resp, nil
	}

	var lexical, dense []float64
	if m.UsesLexical() {
		lexical = lexicalScores(req.Query(), docs)
	}
	if m.UsesDense() {
		dense, resp.DenseStatus = s.denseScores(ctx, req.Query(), docs)
	}

	resp.Results = rank(docs, m, lexical, dense, req.Limit())
	s.observe(resp, start)

	s.logger.Debug("Search completed",
		zap.String("mode", string(m)),
		zap.String("dense_status", string(resp.DenseStatus)),
		zap.Int("corpus", len(docs)),
		zap.Int("results", len(resp.Results)),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

func (s *Service) observe(resp Response, start time.Time) {
	metrics.SearchRequestsTotal.WithLabelValues(string(resp.Mode), string(resp.DenseStatus)).Inc()
	metrics.SearchDuration.WithLabelValues(string(resp.Mode)).Observe(time.Since(start).Seconds())
}

// denseScores embeds the query (index 0) and every document in one batch.
// Non-scored outcomes contribute zeros.
func (s *Service) denseScores(
	ctx context.Context, query string, docs []document.Document,
) ([]float64, embedding.Status) {
	scores := make([]float64, len(docs))
	if s.dense == nil {
		return scores, embedding.StatusUnavailable
	}

	texts := make([]string, 0, len(docs)+1)
	texts = append(texts, query)
	for i := range docs {
		texts = append(texts, docs[i].Text())
	}

	out := s.dense.Embed(ctx, texts)
	if !out.Scored() || len(out.Vectors) != len(texts) {
		if out.Status == embedding.StatusScored {
			return scores, embedding.StatusFailed
		}
		return scores, out.Status
	}

	q := out.Vectors[0]
	for i := range docs {
		scores[i] = embedding.Similarity(q, out.Vectors[i+1])
	}
	return scores, embedding.StatusScored
}

// lexicalScores is TF-IDF cosine plus keyword boost. The query is the first
// pseudo-document of the batch, so it contributes to document frequencies.
func lexicalScores(query string, docs []document.Document) []float64 {
	texts := make([]string, 0, len(docs)+1)
	texts = append(texts, query)
	for i := range docs {
		texts = append(texts, docs[i].Text())
	}

	tokenized := make([][]string, len(texts))
	for i, t := range texts {
		tokenized[i] = tfidf.Tokenize(t)
	}
	vectors := tfidf.ComputeTokens(tokenized)
	queryTokens := tfidf.Distinct(tokenized[0])

	scores := make([]float64, len(docs))
	for i := range docs {
		scores[i] = tfidf.Cosine(vectors[0], vectors[i+1]) + keywordBoost(queryTokens, docs[i].Text())
	}
	return scores
}

// keywordBoost adds KeywordBoost per distinct query token occurring anywhere in text,
// case-insensitively. Repeated occurrences do not add more.
func keywordBoost(queryTokens []string, text string) float64 {
	lower := strings.ToLower(text)
	var boost float64
	for _, tok := range queryTokens {
		if strings.Contains(lower, tok) {
			boost += KeywordBoost
		}
	}
	return boost
}

// fuse combines the component scores for m.
func fuse(m mode.Mode, lexical, dense float64) float64 {
	switch m {
	case mode.Lexical:
		return lexical
	case mode.Dense:
		return dense
	default:
		return LexicalWeight*lexical + DenseWeight*dense
	}
}

func passesThreshold(score float64) bool { return score > ScoreThreshold }

type scored struct {
	idx     int
	score   float64
	lexical float64
	dense   float64
}

// rank fuses, filters, stably sorts by score descending and truncates to limit.
func rank(docs []document.Document, m mode.Mode, lexical, dense []float64, limit int) []result.Result {
	candidates := make([]scored, 0, len(docs))
	for i := range docs {
		var lex, den float64
		if lexical != nil {
			lex = lexical[i]
		}
		if dense != nil {
			den = dense[i]
		}
		score := fuse(m, lex, den)
		if !passesThreshold(score) {
			continue
		}
		candidates = append(candidates, scored{idx: i, score: score, lexical: lex, dense: den})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]result.Result, len(candidates))
	for i, c := range candidates {
		results[i] = result.New(&docs[c.idx], c.score, c.lexical, c.dense)
	}
	return results
}
