package tfidf

import "math"

// Vector is a sparse term-weight vector. Absent terms weigh 0.
type Vector map[string]float64

// Compute returns one TF-IDF vector per document, index-aligned with docs.
//
// tf is the raw term count divided by the document's token count, idf is the
// smoothed ln((N+1)/(df+1)) + 1. Callers that pass the query as one of docs
// get it counted in N and df; search relies on that for stable rankings.
func Compute(docs []string) []Vector {
	tokenized := make([][]string, len(docs))
	for i, d := range docs {
		tokenized[i] = Tokenize(d)
	}
	return ComputeTokens(tokenized)
}

// ComputeTokens is Compute over already tokenized documents.
func ComputeTokens(tokenized [][]string) []Vector {
	n := float64(len(tokenized))

	df := make(map[string]int)
	for _, tokens := range tokenized {
		for _, t := range Distinct(tokens) {
			df[t]++
		}
	}

	idf := make(map[string]float64, len(df))
	for t, c := range df {
		idf[t] = math.Log((n+1)/(float64(c)+1)) + 1
	}

	vectors := make([]Vector, len(tokenized))
	for i, tokens := range tokenized {
		counts := make(map[string]int, len(tokens))
		for _, t := range tokens {
			counts[t]++
		}

		total := float64(len(tokens))
		if total == 0 {
			total = 1
		}

		vec := make(Vector, len(counts))
		for t, c := range counts {
			vec[t] = float64(c) / total * idf[t]
		}
		vectors[i] = vec
	}

	return vectors
}

// Cosine returns the cosine similarity of two sparse vectors.
// The dot product runs over shared terms, norms over each full vector.
// No shared terms or a zero norm yields 0.
func Cosine(v1, v2 Vector) float64 {
	small, large := v1, v2
	if len(small) > len(large) {
		small, large = large, small
	}

	var dot float64
	shared := false
	for t, w := range small {
		if w2, ok := large[t]; ok {
			dot += w * w2
			shared = true
		}
	}
	if !shared {
		return 0
	}

	n1, n2 := norm(v1), norm(v2)
	if n1 == 0 || n2 == 0 {
		return 0
	}
	return dot / (n1 * n2)
}

func norm(v Vector) float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}
