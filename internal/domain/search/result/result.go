package result

import (
	"math"
	"strings"

	"github.com/kailas-cloud/socratic/internal/domain/document"
)

// Excerpt lengths in runes.
const (
	PreviewLength = 200
	ContentLength = 500
)

// Result is a single search hit. Component scores are kept so a caller can
// explain why a document ranked where it did.
type Result struct {
	score       float64
	tfidfScore  float64
	vectorScore float64
	preview     string
	content     string
	metadata    document.Metadata
}

// New creates a search result for doc. Scores are rounded to 4 decimal digits.
func New(doc *document.Document, score, tfidfScore, vectorScore float64) Result {
	text := doc.Text()
	return Result{
		score:       Round4(score),
		tfidfScore:  Round4(tfidfScore),
		vectorScore: Round4(vectorScore),
		preview:     strings.ReplaceAll(truncate(text, PreviewLength), "\n", " "),
		content:     truncate(text, ContentLength),
		metadata:    doc.Metadata(),
	}
}

// Score returns the fused relevance score.
func (r *Result) Score() float64 { return r.score }

// TFIDFScore returns the lexical component including the keyword boost.
func (r *Result) TFIDFScore() float64 { return r.tfidfScore }

// VectorScore returns the dense component.
func (r *Result) VectorScore() float64 { return r.vectorScore }

// Preview returns the first 200 characters with newlines collapsed to spaces.
func (r *Result) Preview() string { return r.preview }

// Content returns the first 500 characters.
func (r *Result) Content() string { return r.content }

// Metadata returns the source document metadata.
func (r *Result) Metadata() document.Metadata { return r.metadata }

// Round4 rounds v to 4 decimal digits.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
