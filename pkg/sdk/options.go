package socratic

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	root string

	embedder          Embedder
	embeddingModel    string
	instruction       string
	embedInitTimeout  time.Duration
	cacheDriver       string // "memory" or "redis"
	cacheSize         int
	cacheTTL          time.Duration
	redisAddrs        []string
	redisPassword     string
	redisReadyTimeout time.Duration

	completer      Completer
	referenceLimit int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRoot sets the conversation directory. Default: ./conversations.
func WithRoot(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.root = dir
	})
}

// WithEmbedder enables the dense search component.
// model names the embedding space and is part of every cache key.
func WithEmbedder(e Embedder, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
		c.embeddingModel = model
	})
}

// WithEmbeddingInstruction prepends a fixed instruction (e.g. "passage: " for e5 models)
// to every text before it is embedded.
func WithEmbeddingInstruction(instruction string) Option {
	return optionFunc(func(c *clientConfig) {
		c.instruction = instruction
	})
}

// WithEmbeddingInitTimeout bounds the probe call made before the first dense search.
// Default: 10s.
func WithEmbeddingInitTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedInitTimeout = d
	})
}

// WithMemoryCache caches embeddings in-process in an LRU of size entries (default).
func WithMemoryCache(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "memory"
		c.cacheSize = size
	})
}

// WithRedisCache caches embeddings in Redis so several processes share them.
func WithRedisCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "redis"
		c.redisAddrs = []string{addr}
		c.redisPassword = password
	})
}

// WithCacheTTL expires cached embeddings after d. Zero keeps them forever.
func WithCacheTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = d
	})
}

// WithCompleter sets the LLM used by the dialogue. Without it Chat returns
// static test replies.
func WithCompleter(comp Completer) Option {
	return optionFunc(func(c *clientConfig) {
		c.completer = comp
	})
}

// WithReferenceLimit sets how many past hits are attached when a message refers
// to an earlier conversation. Default: 3.
func WithReferenceLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.referenceLimit = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
