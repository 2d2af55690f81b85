package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindcheck/internal/cache"
	"mindcheck/internal/config"
	"mindcheck/internal/metrics"
	"mindcheck/internal/repository"
	"mindcheck/internal/service"
	"mindcheck/internal/transport/rest"
	"mindcheck/internal/transport/rest/middleware"
)

// App holds the process-wide clients, repositories and services
type App struct {
	Config *config.Config
	Logger *slog.Logger

	mongo *mongo.Client
	redis *redis.Client

	QuestionRepo repository.QuestionRepo
	EntryRepo    repository.EntryRepo
	AdminRepo    repository.AdminRepo

	QuestionCache cache.QuestionCache
	StatsCache    cache.StatsCache

	Metrics   *metrics.Metrics
	Questions *service.QuestionService
	Surveys   *service.SurveyService
	Auth      *service.AuthService
	Admins    *service.AdminService
}

// New connects to MongoDB and, when configured, Redis, then wires the rest
// of the application on top of them.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		mongoClient.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB", "db", cfg.MongoDB)

	db := mongoClient.Database(cfg.MongoDB)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		mongoClient.Disconnect(context.Background())
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		opts := *cfg.Redis
		rdb = redis.NewClient(&opts)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			mongoClient.Disconnect(context.Background())
			return nil, fmt.Errorf("ping Redis at %s: %w", opts.Addr, err)
		}
		logger.Info("connected to Redis", "addr", opts.Addr, "db", opts.DB)
	} else {
		logger.Warn("REDIS_URI not set, caches disabled")
	}

	a := Build(cfg, logger, db, rdb)
	a.mongo = mongoClient
	return a, nil
}

// Build wires repositories, caches and services over existing clients.
// A nil rdb leaves both caches disabled.
func Build(cfg *config.Config, logger *slog.Logger, db *mongo.Database, rdb *redis.Client) *App {
	a := &App{
		Config:       cfg,
		Logger:       logger,
		redis:        rdb,
		QuestionRepo: repository.NewQuestionRepo(db),
		EntryRepo:    repository.NewEntryRepo(db),
		AdminRepo:    repository.NewAdminRepo(db),
		Metrics:      metrics.New(),
	}

	// interfaces stay nil, not typed-nil, when Redis is off
	if rdb != nil {
		a.QuestionCache = cache.NewQuestionCache(rdb, cfg.QuestionCacheTTL)
		a.StatsCache = cache.NewStatsCache(rdb, cfg.StatsCacheTTL)
	}

	a.Questions = service.NewQuestionService(a.QuestionRepo, a.QuestionCache, logger)
	a.Surveys = service.NewSurveyService(a.Questions, a.EntryRepo, a.StatsCache, a.Metrics, logger)
	a.Auth = service.NewAuthService(a.AdminRepo, cfg.JWTSecret, cfg.TokenTTL)
	a.Admins = service.NewAdminService(a.AdminRepo, a.Auth, a.Metrics, logger)
	return a
}

// Router builds the HTTP handler for the API
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		QuestionService: a.Questions,
		SurveyService:   a.Surveys,
		AdminService:    a.Admins,
		AuthService:     a.Auth,
		Metrics:         a.Metrics,
		Logger:          a.Logger,
		RateLimiter:     middleware.NewRateLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst, a.Config.TrustProxy),
		AllowedOrigins:  a.Config.CORSAllowedOrigins,
	})
}

// BootstrapAdmin makes sure the configured admin exists and is approved.
// It does nothing unless both ADMIN_EMAIL and ADMIN_PASSWORD are set.
func (a *App) BootstrapAdmin(ctx context.Context) error {
	if a.Config.AdminEmail == "" || a.Config.AdminPassword == "" {
		return nil
	}
	admin, err := a.Admins.Bootstrap(ctx, a.Config.AdminEmail, a.Config.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin %s: %w", a.Config.AdminEmail, err)
	}
	a.Logger.Info("bootstrap admin ready", "adminId", admin.ID, "email", admin.Email)
	return nil
}

// Close releases the Redis and MongoDB clients
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("close Redis", "error", err)
		}
	}
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.Logger.Warn("disconnect MongoDB", "error", err)
		}
	}
}
