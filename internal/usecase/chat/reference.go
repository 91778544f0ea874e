package chat

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/socratic/internal/domain/document"
	"github.com/kailas-cloud/socratic/internal/domain/search/result"
)

var referencePhrases = []string{
	"이전에", "지난번", "저번에", "예전에", "기억나", "전에 말한", "전에 얘기한",
	"last time", "previously", "earlier conversation",
}

// DetectPreviousReference reports whether message refers to an earlier conversation.
func DetectPreviousReference(message string) bool {
	lower := strings.ToLower(message)
	for _, p := range referencePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// formatReferences renders search hits as a system prompt appendix.
func formatReferences(results []result.Result) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(referenceHeader)
	for i := range results {
		r := &results[i]
		m := r.Metadata()
		source := m.Project
		if m.Type == document.Memory {
			source += "/" + m.File
		} else if m.Role != "" {
			source += "/" + m.Role
		}
		fmt.Fprintf(&b, "- [%s] %s\n", source, r.Preview())
	}
	return b.String()
}
