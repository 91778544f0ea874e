package domain

// EmbeddingDefaults holds vectorization settings used when the config leaves them empty.
type EmbeddingDefaults struct {
	Provider       string
	Model          string
	BaseURL        string
	InitTimeoutSec int
}

// DefaultEmbeddingConfig returns defaults tuned for a multilingual (Korean + English) model.
func DefaultEmbeddingConfig() EmbeddingDefaults {
	return EmbeddingDefaults{
		Provider:       "openai",
		Model:          "text-embedding-3-small",
		BaseURL:        "https://api.openai.com/v1",
		InitTimeoutSec: 10,
	}
}

// ChatDefaults holds LLM settings used when the config leaves them empty.
type ChatDefaults struct {
	Model      string
	BaseURL    string
	MaxTokens  int
	TimeoutSec int
}

// DefaultChatConfig returns defaults for the OpenAI-compatible Anthropic endpoint.
func DefaultChatConfig() ChatDefaults {
	return ChatDefaults{
		Model:      "claude-sonnet-4-20250514",
		BaseURL:    "https://api.anthropic.com/v1",
		MaxTokens:  2048,
		TimeoutSec: 60,
	}
}
