package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/config"
	"github.com/kailas-cloud/socratic/internal/db"
	dbMemory "github.com/kailas-cloud/socratic/internal/db/memory"
	dbRedis "github.com/kailas-cloud/socratic/internal/db/redis"
	"github.com/kailas-cloud/socratic/internal/domain"
	logpkg "github.com/kailas-cloud/socratic/internal/logger"
	"github.com/kailas-cloud/socratic/internal/metrics"
	"github.com/kailas-cloud/socratic/internal/repository/embcache"
	"github.com/kailas-cloud/socratic/internal/repository/workspace"
	chiTransport "github.com/kailas-cloud/socratic/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/socratic/internal/transport/openai"
	chatuc "github.com/kailas-cloud/socratic/internal/usecase/chat"
	collectoruc "github.com/kailas-cloud/socratic/internal/usecase/collector"
	embeddinguc "github.com/kailas-cloud/socratic/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/socratic/internal/usecase/health"
	projectuc "github.com/kailas-cloud/socratic/internal/usecase/project"
	searchuc "github.com/kailas-cloud/socratic/internal/usecase/search"
	"github.com/kailas-cloud/socratic/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting socratic API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_root", cfg.Storage.Root),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Bool("embedding_enabled", cfg.Embedding.Enabled),
		zap.Bool("chat_test_mode", cfg.Chat.TestMode),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	ws := workspace.New(cfg.Storage.Root, logger)
	ctx := context.Background()
	if err := ws.Ping(ctx); err != nil {
		logger.Fatal("Conversation storage unusable", zap.Error(err))
	}

	cache, err := newCacheStore(cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer cache.Close()

	if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Cache not ready", zap.Error(err))
	}
	logger.Info("Cache ready", zap.String("driver", cfg.Cache.Driver))

	// Dense engine: provider -> cache -> instrumentation -> instruction, probed lazily on first search.
	var loader embeddinguc.Loader
	if cfg.Embedding.Enabled {
		embedder := buildEmbedder(cfg.Embedding, cfg.Cache, cache, logger)
		loader = embeddinguc.ProbeLoader(embedder, time.Duration(cfg.Embedding.InitTimeoutSec)*time.Second)
		logger.Info("Embedder configured",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	}
	dense := embeddinguc.NewDense(loader, logger)

	collector := collectoruc.New(ws, logger)
	searchSvc := searchuc.New(collector, dense, logger)
	chatSvc := chatuc.New(ws, buildCompleter(cfg.Chat, logger), searchSvc, cfg.Chat.ReferenceLimit, logger)
	projectSvc := projectuc.New(ws)

	// Nil interfaces (not typed nil pointers) switch optional checks off.
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Driver == config.CacheDriverRedis {
		cachePinger = cache
	}
	var embeddingChecker healthuc.EmbeddingChecker
	if cfg.Embedding.Enabled {
		embeddingChecker = dense
	}
	healthSvc := healthuc.New(ws, cachePinger, embeddingChecker)

	server := chiTransport.NewServer(projectSvc, chatSvc, searchSvc, healthSvc, chiTransport.SearchLimits{
		Default: cfg.Search.DefaultLimit,
		Max:     cfg.Search.MaxLimit,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func newCacheStore(cfg config.CacheConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.CacheDriverRedis:
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	case config.CacheDriverMemory:
		return dbMemory.NewStore(cfg.Size)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction.
func buildEmbedder(
	embCfg config.EmbeddingConfig,
	cacheCfg config.CacheConfig,
	store db.KVStore,
	logger *zap.Logger,
) domain.Embedder {
	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     embCfg.APIKey,
		BaseURL:    embCfg.BaseURL,
		Model:      embCfg.Model,
		Dimensions: embCfg.Dimensions,
		Provider:   embCfg.Provider,
		Logger:     logger,
	})
	return decorateEmbedder(base, embCfg, cacheCfg, store, logger)
}

func decorateEmbedder(
	base domain.Embedder,
	embCfg config.EmbeddingConfig,
	cacheCfg config.CacheConfig,
	store db.KVStore,
	logger *zap.Logger,
) domain.Embedder {
	cached := embcache.New(base, store, embcache.Options{
		Model:      embCfg.Model,
		TTL:        time.Duration(cacheCfg.TTLSec) * time.Second,
		CacheTotal: metrics.EmbeddingCacheTotal,
		Logger:     logger,
	})

	embedder := embeddinguc.NewInstrumentedEmbedder(cached, embCfg.Provider, embCfg.Model, logger)

	// Instruction prefix (outermost, cache key includes instruction)
	if embCfg.Instruction != "" {
		return domain.NewInstructionEmbedder(embedder, embCfg.Instruction)
	}
	return embedder
}

func buildCompleter(cfg config.ChatConfig, logger *zap.Logger) chatuc.Completer {
	if cfg.TestMode {
		logger.Warn("Chat test mode: replies are static, no LLM calls are made")
		return chatuc.StaticCompleter{}
	}
	return openaiTransport.NewChatCompleter(&openaiTransport.ChatConfig{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
		Logger:    logger,
	})
}
