package tfidf

// stopWords holds Korean particles, copulas and connectives plus English function words.
// Matching is exact on the lower-cased token.
var stopWords = buildStopWordSet([]string{
	// Korean particles and copulas
	"은", "는", "이", "가", "을", "를", "에", "에서", "의", "와", "과", "도", "로", "으로",
	"만", "까지", "부터", "에게", "한테", "께", "보다", "처럼", "이나", "나", "랑", "이랑",
	"하고", "이다", "입니다", "있다", "있어", "있는", "없다", "하다", "해요", "합니다", "했다",
	"되다", "된다", "같은", "그", "저", "이런", "그런", "저런", "것", "수", "등", "및",
	// Korean connectives
	"그리고", "그러나", "하지만", "그래서", "그런데", "또는", "또", "그러면", "그럼",
	// English function words
	"the", "a", "an", "is", "are", "was", "were", "be", "been", "being", "am",
	"to", "of", "in", "on", "at", "for", "by", "from", "with", "as", "into", "about",
	"and", "or", "but", "nor", "so", "if", "then", "than",
	"it", "its", "this", "that", "these", "those",
	"do", "does", "did", "have", "has", "had", "will", "would", "can", "could", "should",
})

func buildStopWordSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// IsStopWord reports whether token is dropped by Tokenize.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
