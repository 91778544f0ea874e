// Package tfidf implements the lexical half of conversation search:
// a Hangul/Latin/digit tokenizer, batch TF-IDF weighting and sparse cosine similarity.
package tfidf

import (
	"strings"
	"unicode/utf8"
)

type runeClass int

const (
	classOther runeClass = iota
	classHangul
	classLatin
	classDigit
)

func classify(r rune) runeClass {
	switch {
	case r >= 0xAC00 && r <= 0xD7A3:
		return classHangul
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return classLatin
	case r >= '0' && r <= '9':
		return classDigit
	default:
		return classOther
	}
}

// Tokenize splits text into index terms.
// Terms are maximal runs of Hangul syllables, Latin letters or digits; a run never
// mixes classes. Latin is lower-cased. Stop words and single-character terms are
// dropped. Order and duplicates are preserved.
func Tokenize(text string) []string {
	tokens := make([]string, 0, len(text)/4)

	start := -1
	cur := classOther
	flush := func(end int) {
		if start < 0 {
			return
		}
		if tok := normalize(text[start:end]); tok != "" {
			tokens = append(tokens, tok)
		}
		start = -1
	}

	for i, r := range text {
		c := classify(r)
		if c != cur {
			flush(i)
			cur = c
			if c != classOther {
				start = i
			}
		}
	}
	flush(len(text))

	return tokens
}

func normalize(raw string) string {
	tok := strings.ToLower(raw)
	if utf8.RuneCountInString(tok) <= 1 {
		return ""
	}
	if IsStopWord(tok) {
		return ""
	}
	return tok
}

// Distinct returns tokens with duplicates removed, keeping first occurrence order.
func Distinct(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
