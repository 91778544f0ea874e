package search

import (
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/domain"
	"github.com/kailas-cloud/socratic/internal/domain/document"
	"github.com/kailas-cloud/socratic/internal/domain/search/mode"
	"github.com/kailas-cloud/socratic/internal/domain/search/request"
	"github.com/kailas-cloud/socratic/internal/metrics"
	"github.com/kailas-cloud/socratic/internal/usecase/embedding"
)

const eps = 1e-9

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockCollector struct {
	docs []document.Document
	err  error
}

func (m *mockCollector) Collect(_ context.Context, _ string) ([]document.Document, error) {
	return m.docs, m.err
}

type mockDense struct {
	outcome embedding.Outcome
	texts   []string
	called  bool
}

func (m *mockDense) Embed(_ context.Context, texts []string) embedding.Outcome {
	m.called = true
	m.texts = texts
	return m.outcome
}

func unavailableDense() *mockDense {
	return &mockDense{outcome: embedding.Outcome{Status: embedding.StatusUnavailable}}
}

func conv(text string) document.Document {
	return document.NewConversation("p", 0, "user", "", text)
}

func newRequest(t *testing.T, query string, m mode.Mode, limit int) *request.Request {
	t.Helper()
	req, err := request.New(query, m, limit)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

// --- Tests ---

func TestSearch_EndToEndLexical(t *testing.T) {
	dense := unavailableDense()
	svc := New(&mockCollector{docs: []document.Document{conv("인공지능 스타트업 아이디어")}}, dense, zap.NewNop())

	resp, err := svc.Search(context.Background(), "alice", newRequest(t, "인공지능", mode.Lexical, 20))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	r := resp.Results[0]
	if r.TFIDFScore() <= 0 {
		t.Errorf("tfidf_score = %v, want > 0", r.TFIDFScore())
	}
	if r.Score() != r.TFIDFScore() {
		t.Errorf("score %v != tfidf_score %v", r.Score(), r.TFIDFScore())
	}
	if r.VectorScore() != 0 {
		t.Errorf("vector_score = %v, want 0", r.VectorScore())
	}
	if r.Content() != "인공지능 스타트업 아이디어" {
		t.Errorf("content = %q", r.Content())
	}
	if dense.called {
		t.Error("dense engine must not be called in lexical mode")
	}
	if resp.DenseStatus != embedding.StatusSkipped {
		t.Errorf("dense_status = %q, want skipped", resp.DenseStatus)
	}
}

func TestSearch_HybridDegradesToLexical(t *testing.T) {
	docs := []document.Document{
		conv("카페 창업 준비"),
		conv("카페 메뉴 개발"),
		conv("창업 자금 계획"),
	}
	query := "카페 창업"

	lexical := lexicalScores(query, docs)
	dense := unavailableDense()
	svc := New(&mockCollector{docs: docs}, dense, zap.NewNop())

	resp, err := svc.Search(context.Background(), "alice", newRequest(t, query, mode.Hybrid, 20))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.DenseStatus != embedding.StatusUnavailable {
		t.Errorf("dense_status = %q, want unavailable", resp.DenseStatus)
	}
	if len(resp.Results) != len(docs) {
		t.Fatalf("expected %d results, got %d", len(docs), len(resp.Results))
	}

	want := make(map[string]float64, len(docs))
	for i := range docs {
		want[docs[i].Text()] = LexicalWeight * lexical[i]
	}
	for _, r := range resp.Results {
		exp := want[r.Content()]
		if math.Abs(r.Score()-math.Round(exp*1e4)/1e4) > eps {
			t.Errorf("%q: score = %v, want 0.4*lexical = %v", r.Content(), r.Score(), exp)
		}
		if r.VectorScore() != 0 {
			t.Errorf("%q: vector_score = %v", r.Content(), r.VectorScore())
		}
	}
}

func TestSearch_FailedDenseReported(t *testing.T) {
	dense := &mockDense{outcome: embedding.Outcome{Status: embedding.StatusFailed, Err: domain.ErrEmbeddingProviderError}}
	svc := New(&mockCollector{docs: []document.Document{conv("카페 창업")}}, dense, zap.NewNop())

	resp, err := svc.Search(context.Background(), "alice", newRequest(t, "카페", mode.Hybrid, 20))
	if err != nil {
		t.Fatalf("dense failure must not fail the search: %v", err)
	}
	if resp.DenseStatus != embedding.StatusFailed {
		t.Errorf("dense_status = %q, want error", resp.DenseStatus)
	}
	if len(resp.Results) != 1 {
		t.Errorf("lexical signal must still rank: %d results", len(resp.Results))
	}
}

func TestSearch_DenseMode(t *testing.T) {
	docs := []document.Document{conv("alpha"), conv("beta"), conv("gamma")}
	dense := &mockDense{outcome: embedding.Outcome{
		Status: embedding.StatusScored,
		Vectors: [][]float32{
			{1, 0},     // query
			{0.6, 0.8}, // 0.6
			{1, 0},     // 1.0
			{-1, 0},    // clamped to 0
		},
	}}
	svc := New(&mockCollector{docs: docs}, dense, zap.NewNop())

	resp, err := svc.Search(context.Background(), "alice", newRequest(t, "alpha", mode.Dense, 20))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(dense.texts) != 4 || dense.texts[0] != "alpha" || dense.texts[1] != "alpha" {
		t.Errorf("batch must be query followed by documents: %v", dense.texts)
	}
	if resp.DenseStatus != embedding.StatusScored {
		t.Errorf("dense_status = %q", resp.DenseStatus)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Content() != "beta" || resp.Results[1].Content() != "alpha" {
		t.Errorf("order = %q, %q", resp.Results[0].Content(), resp.Results[1].Content())
	}
	for _, r := range resp.Results {
		if r.TFIDFScore() != 0 {
			t.Errorf("tfidf_score must be 0 in dense mode, got %v", r.TFIDFScore())
		}
		if r.Score() != r.VectorScore() {
			t.Errorf("score %v != vector_score %v", r.Score(), r.VectorScore())
		}
	}
}

func TestSearch_HybridFusion(t *testing.T) {
	docs := []document.Document{conv("unrelated words here")}
	dense := &mockDense{outcome: embedding.Outcome{
		Status:  embedding.StatusScored,
		Vectors: [][]float32{{1, 0}, {1, 0}},
	}}
	svc := New(&mockCollector{docs: docs}, dense, zap.NewNop())

	resp, err := svc.Search(context.Background(), "alice", newRequest(t, "카페", mode.Hybrid, 20))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	if got := resp.Results[0].Score(); math.Abs(got-DenseWeight) > eps {
		t.Errorf("score = %v, want %v", got, DenseWeight)
	}
}

func TestSearch_EmptyCorpus(t *testing.T) {
	dense := unavailableDense()
	svc := New(&mockCollector{}, dense, zap.NewNop())

	resp, err := svc.Search(context.Background(), "alice", newRequest(t, "카페", mode.Hybrid, 20))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected no results, got %d", len(resp.Results))
	}
	if dense.called {
		t.Error("dense engine must not be called for an empty corpus")
	}
}

func TestSearch_CollectorError(t *testing.T) {
	svc := New(&mockCollector{err: domain.ErrInvalidName}, nil, zap.NewNop())
	_, err := svc.Search(context.Background(), "../x", newRequest(t, "q", mode.Lexical, 20))
	if !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestSearch_LimitAndOrder(t *testing.T) {
	docs := []document.Document{
		conv("카페"),
		conv("카페 창업"),
		conv("카페 창업 준비 카페"),
		conv("무관한 문장"),
	}
	svc := New(&mockCollector{docs: docs}, nil, zap.NewNop())

	resp, err := svc.Search(context.Background(), "alice", newRequest(t, "카페 창업", mode.Lexical, 2))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Score() < resp.Results[1].Score() {
		t.Errorf("results not sorted: %v < %v", resp.Results[0].Score(), resp.Results[1].Score())
	}
}

func TestKeywordBoost_Cap(t *testing.T) {
	tokens := []string{"카페"}
	once := keywordBoost(tokens, "카페")
	many := keywordBoost(tokens, strings.Repeat("카페 ", 50))

	if math.Abs(once-KeywordBoost) > eps {
		t.Errorf("single occurrence boost = %v, want %v", once, KeywordBoost)
	}
	if once != many {
		t.Errorf("boost must be capped per token: once=%v many=%v", once, many)
	}
}

func TestKeywordBoost_CaseInsensitiveSubstring(t *testing.T) {
	got := keywordBoost([]string{"startup", "ai"}, "My STARTUPS need AIR")
	if math.Abs(got-2*KeywordBoost) > eps {
		t.Errorf("boost = %v, want %v", got, 2*KeywordBoost)
	}
}

func TestPassesThreshold(t *testing.T) {
	if passesThreshold(0.01) {
		t.Error("score exactly 0.01 must be excluded")
	}
	if !passesThreshold(0.0101) {
		t.Error("score 0.0101 must be included")
	}
	if passesThreshold(0) {
		t.Error("zero score must be excluded")
	}
}

func TestRank_StableForTies(t *testing.T) {
	docs := []document.Document{conv("first"), conv("second"), conv("third")}
	lexical := []float64{0.5, 0.5, 0.5}

	results := rank(docs, mode.Lexical, lexical, nil, 10)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"first", "second", "third"} {
		if results[i].Content() != want {
			t.Errorf("result %d = %q, want %q", i, results[i].Content(), want)
		}
	}
}

func TestRank_ThresholdOnFusedScore(t *testing.T) {
	docs := []document.Document{conv("a"), conv("b")}
	// 0.4*0.02 = 0.008 is dropped, 0.4*0.026 = 0.0104 is kept.
	results := rank(docs, mode.Hybrid, []float64{0.02, 0.026}, []float64{0, 0}, 10)
	if len(results) != 1 || results[0].Content() != "b" {
		t.Fatalf("results = %d", len(results))
	}
}

func TestFuse(t *testing.T) {
	if got := fuse(mode.Lexical, 0.5, 0.9); got != 0.5 {
		t.Errorf("lexical fuse = %v", got)
	}
	if got := fuse(mode.Dense, 0.5, 0.9); got != 0.9 {
		t.Errorf("dense fuse = %v", got)
	}
	if got := fuse(mode.Hybrid, 0.5, 1); math.Abs(got-0.8) > eps {
		t.Errorf("hybrid fuse = %v, want 0.8", got)
	}
}
