package mode

import (
	"fmt"

	"github.com/kailas-cloud/socratic/internal/domain"
)

// Mode is the search scoring strategy.
type Mode string

// Search mode constants. Wire values match the original web client.
const (
	// Hybrid fuses lexical and dense scores (0.4 / 0.6).
	Hybrid Mode = "hybrid"
	// Lexical scores by TF-IDF cosine plus keyword boost.
	Lexical Mode = "tfidf"
	// Dense scores by embedding similarity.
	Dense Mode = "vector"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Hybrid || m == Lexical || m == Dense
}

// UsesLexical reports whether the mode computes TF-IDF scores and keyword boosts.
func (m Mode) UsesLexical() bool { return m == Lexical || m == Hybrid }

// UsesDense reports whether the mode needs embeddings.
func (m Mode) UsesDense() bool { return m == Dense || m == Hybrid }

// Parse converts a wire value to a Mode. Empty means Hybrid.
func Parse(s string) (Mode, error) {
	if s == "" {
		return Hybrid, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidMode, s)
	}
	return m, nil
}
