package app

import (
	"bemanai/internal/cache"
	"bemanai/internal/catalog"
	"bemanai/internal/classify"
	"bemanai/internal/config"
	"bemanai/internal/repository"
	"bemanai/internal/service"
	"bemanai/internal/tokenize"
	"bemanai/internal/transport/rest"
	"bemanai/internal/transport/ws"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pingTimeout = 5 * time.Second

// App holds the wired services and the stores behind them
type App struct {
	Config  *config.Config
	Catalog *catalog.Catalog

	Emotion    *service.EmotionService
	Decoder    *service.DecoderService
	Sandbox    *service.SandboxService
	Dialogue   *service.DialogueService
	Moderation *service.ModerationService
	Auth       *service.AuthService
	Archive    *service.ArchiveService

	Trends      cache.TrendCache  // nil without Redis
	RateLimiter cache.RateLimiter // nil without Redis or a limit
	ChatHistory cache.ChatCache   // nil without Redis
	Hub         *ws.Hub

	redis *redis.Client
	mongo *mongo.Client
}

// ServiceOptions translates the process configuration into service options
func ServiceOptions(cfg *config.Config) (service.Options, error) {
	builder, err := tokenize.NewBuilder(cfg.Tokenizer)
	if err != nil {
		return service.Options{}, fmt.Errorf("failed to build tokenizer: %w", err)
	}
	return service.Options{
		Limits: service.Limits{
			MaxTextLength:     cfg.MaxTextLength,
			MaxDialogueLength: cfg.MaxDialogueLength,
			MaxBatchAnalyze:   cfg.MaxBatchAnalyze,
			MaxBatchDecode:    cfg.MaxBatchDecode,
			MaxBatchSkills:    cfg.MaxBatchSkills,
		},
		Intensity: classify.Intensity{Scale: cfg.IntensityScale, Offset: cfg.IntensityOffset},
		Workers:   cfg.BatchWorkers,
		Debug:     cfg.Debug(),
		CacheTTL:  cfg.CacheTTL,
		Tokenizer: builder,
	}, nil
}

// New loads the catalog, connects the optional stores and builds every
// service. Stores that are not configured leave their features disabled.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	opts, err := ServiceOptions(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Catalog: cat}

	// Initialize services
	if a.Emotion, err = service.NewEmotionService(cat, opts); err != nil {
		return nil, fmt.Errorf("failed to create emotion service: %w", err)
	}
	if a.Decoder, err = service.NewDecoderService(cat, opts); err != nil {
		return nil, fmt.Errorf("failed to create decoder service: %w", err)
	}
	if a.Sandbox, err = service.NewSandboxService(cat, opts); err != nil {
		return nil, fmt.Errorf("failed to create sandbox service: %w", err)
	}
	if a.Dialogue, err = service.NewDialogueService(cat, opts); err != nil {
		return nil, fmt.Errorf("failed to create dialogue service: %w", err)
	}
	if a.Moderation, err = service.NewModerationService(cat, opts); err != nil {
		return nil, fmt.Errorf("failed to create moderation service: %w", err)
	}
	a.Auth = service.NewAuthService(cfg.AuthUsername, cfg.AuthPassword, cfg.JWTSecret, cfg.JWTTTL)

	// Redis backed caches
	if cfg.RedisEnabled() {
		rdb, err := connectRedis(ctx, cfg.RedisURI)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.redis = rdb
		log.Println("Connected to Redis")

		a.Emotion.SetCache(cache.NewResultCache(rdb, cfg.CacheTTL))
		a.Decoder.SetCache(cache.NewResultCache(rdb, cfg.CacheTTL))
		a.Trends = cache.NewTrendCache(rdb)
		a.Emotion.SetTrends(a.Trends)
		a.ChatHistory = cache.NewChatCache(rdb)
		if cfg.RateLimitPerMinute > 0 {
			a.RateLimiter = cache.NewRateLimiter(rdb, cfg.RateLimitPerMinute)
		}
	}

	// MongoDB archive
	var records repository.RecordRepo
	if cfg.MongoEnabled() {
		client, err := connectMongo(ctx, cfg.MongoURI)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.mongo = client
		log.Println("Connected to MongoDB")
		records = repository.NewRecordRepo(client.Database(cfg.MongoDatabase))
	}
	a.Archive = service.NewArchiveService(records, a.Emotion, a.Decoder, a.Moderation)

	// Inject broadcaster (hub implements service.Broadcaster)
	a.Hub = ws.NewHub()
	a.Archive.SetBroadcaster(a.Hub)

	return a, nil
}

// Router builds the HTTP handler for every REST and websocket endpoint
func (a *App) Router(version string) http.Handler {
	return rest.NewRouter(&rest.Container{
		EmotionService:    a.Emotion,
		DecoderService:    a.Decoder,
		SandboxService:    a.Sandbox,
		DialogueService:   a.Dialogue,
		ModerationService: a.Moderation,
		AuthService:       a.Auth,
		ArchiveService:    a.Archive,
		Trends:            a.Trends,
		RateLimiter:       a.RateLimiter,
		ChatHistory:       a.ChatHistory,
		WSHub:             a.Hub,
		APIKeyHeader:      a.Config.APIKeyHeader,
		APIKeys:           a.Config.APIKeys,
		CORS: rest.CORSConfig{
			Origins: a.Config.CORSAllowedOrigins,
			Methods: a.Config.CORSAllowedMethods,
			Headers: a.Config.CORSAllowedHeaders,
		},
		Version: version,
	})
}

// Close disconnects the stores that were opened
func (a *App) Close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			log.Printf("Failed to disconnect MongoDB: %v", err)
		}
	}
}

func connectRedis(ctx context.Context, uri string) (*redis.Client, error) {
	if !strings.Contains(uri, "://") {
		uri = "redis://" + uri
	}
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis uri: %w", err)
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}
