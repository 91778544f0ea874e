package socratic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/db"
	dbMemory "github.com/kailas-cloud/socratic/internal/db/memory"
	dbRedis "github.com/kailas-cloud/socratic/internal/db/redis"
	"github.com/kailas-cloud/socratic/internal/domain"
	"github.com/kailas-cloud/socratic/internal/domain/conversation"
	"github.com/kailas-cloud/socratic/internal/domain/search/request"
	"github.com/kailas-cloud/socratic/internal/repository/embcache"
	"github.com/kailas-cloud/socratic/internal/repository/workspace"
	chatuc "github.com/kailas-cloud/socratic/internal/usecase/chat"
	collectoruc "github.com/kailas-cloud/socratic/internal/usecase/collector"
	embeddinguc "github.com/kailas-cloud/socratic/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/socratic/internal/usecase/health"
	projectuc "github.com/kailas-cloud/socratic/internal/usecase/project"
	searchuc "github.com/kailas-cloud/socratic/internal/usecase/search"
)

const (
	defaultRoot             = "./conversations"
	defaultReadinessTimeout = 10 * time.Second
	defaultEmbedInitTimeout = 10 * time.Second
	defaultReferenceLimit   = 3
)

// Внутренние интерфейсы для подмены в тестах.
type projectUseCase interface {
	Create(ctx context.Context, user, name string) (conversation.Project, error)
	Get(ctx context.Context, user, name string) (conversation.Project, error)
	List(ctx context.Context, user string) ([]conversation.Project, error)
	Delete(ctx context.Context, user, name string) error
	Notes(ctx context.Context, user, name string) ([]conversation.Note, error)
}

type chatUseCase interface {
	Send(ctx context.Context, user, project, message string) (chatuc.Reply, error)
	NextStep(ctx context.Context, user, project string, step int) (chatuc.Reply, error)
	Summarize(ctx context.Context, user, project string) (chatuc.Reply, error)
	Report(ctx context.Context, user, project string, force bool) (chatuc.Reply, error)
	Reset(ctx context.Context, user, project string) error
	History(ctx context.Context, user, project string) ([]conversation.Turn, error)
}

type searchUseCase interface {
	Search(ctx context.Context, user string, req *request.Request) (searchuc.Response, error)
}

// Client is the socratic SDK entry point. It works directly on a conversation
// directory, without the HTTP server.
type Client struct {
	storage    db.Pinger
	cache      db.Store
	projectSvc projectUseCase
	chatSvc    chatUseCase
	searchSvc  searchUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client over the configured conversation directory.
// The provided context is used for the initial readiness checks.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		root:              defaultRoot,
		cacheDriver:       "memory",
		embedInitTimeout:  defaultEmbedInitTimeout,
		redisReadyTimeout: defaultReadinessTimeout,
		referenceLimit:    defaultReferenceLimit,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	ws := workspace.New(cfg.root, zap.NewNop())
	if err := ws.Ping(ctx); err != nil {
		return nil, fmt.Errorf("socratic: conversation root: %w", err)
	}

	var cache db.Store
	if cfg.embedder != nil {
		var err error
		cache, err = createCache(cfg)
		if err != nil {
			return nil, err
		}
		if err := cache.WaitForReady(ctx, cfg.redisReadyTimeout); err != nil {
			cache.Close()
			return nil, fmt.Errorf("socratic: embedding cache not ready: %w", err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		return nil, err
	}
	return wireClient(ws, cache, cfg, obs), nil
}

func createCache(cfg *clientConfig) (db.Store, error) {
	switch cfg.cacheDriver {
	case "memory":
		s, err := dbMemory.NewStore(cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("socratic: create memory cache: %w", err)
		}
		return s, nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("socratic: create redis cache: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("socratic: unknown cache driver %q", cfg.cacheDriver)
	}
}

// buildEmbedder assembles caller embedder -> cache -> instrumentation -> instruction.
// The instruction is outermost so cache keys include it.
func buildEmbedder(cfg *clientConfig, cache db.KVStore, logger *zap.Logger) domain.Embedder {
	var emb domain.Embedder = adaptEmbedder(cfg.embedder)
	emb = embcache.New(emb, cache, embcache.Options{
		Model: cfg.embeddingModel,
		TTL:   cfg.cacheTTL,
	})
	emb = embeddinguc.NewInstrumentedEmbedder(emb, "sdk", cfg.embeddingModel, logger)
	if cfg.instruction != "" {
		emb = domain.NewInstructionEmbedder(emb, cfg.instruction)
	}
	return emb
}

func wireClient(ws *workspace.Store, cache db.Store, cfg *clientConfig, obs *observer) *Client {
	logger := zap.NewNop()

	var loader embeddinguc.Loader
	if cfg.embedder != nil {
		loader = embeddinguc.ProbeLoader(buildEmbedder(cfg, cache, logger), cfg.embedInitTimeout)
	}
	dense := embeddinguc.NewDense(loader, logger)

	var completer chatuc.Completer = chatuc.StaticCompleter{}
	if cfg.completer != nil {
		completer = &completerAdapter{inner: cfg.completer}
	}

	searchSvc := searchuc.New(collectoruc.New(ws, logger), dense, logger)

	// Nil interfaces (not typed nil pointers) switch optional checks off.
	var cachePinger healthuc.CachePinger
	if cache != nil && cfg.cacheDriver == "redis" {
		cachePinger = cache
	}
	var embeddingChecker healthuc.EmbeddingChecker
	if cfg.embedder != nil {
		embeddingChecker = dense
	}

	return &Client{
		storage:    ws,
		cache:      cache,
		projectSvc: projectuc.New(ws),
		chatSvc:    chatuc.New(ws, completer, searchSvc, cfg.referenceLimit, logger),
		searchSvc:  searchSvc,
		healthSvc:  healthuc.New(ws, cachePinger, embeddingChecker),
		obs:        obs,
	}
}

// Close releases the embedding cache.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// Ping checks that the conversation directory is usable.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.storage == nil {
		return errors.New("socratic: client not initialized")
	}
	if err = c.storage.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Projects returns the project service for a user.
func (c *Client) Projects(user string) *ProjectService {
	return &ProjectService{user: user, svc: c.projectSvc, obs: c.obs}
}

// Chat returns the dialogue service for one project of a user.
func (c *Client) Chat(user, project string) *ChatService {
	return &ChatService{user: user, project: project, svc: c.chatSvc, obs: c.obs}
}

// Search starts a search over every conversation and memory note of a user.
func (c *Client) Search(user string) *SearchBuilder {
	return &SearchBuilder{user: user, svc: c.searchSvc, obs: c.obs}
}
