package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// ErrMissingSecret is returned when JWT_SECRET is not set
var ErrMissingSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	MongoURI string
	MongoDB  string

	// Redis is nil when REDIS_URI is unset, which disables the caches
	Redis *redis.Options

	JWTSecret string
	TokenTTL  time.Duration

	Port               string
	CORSAllowedOrigins []string
	TrustProxy         bool
	RateLimitRPS       float64
	RateLimitBurst     int
	QuestionCacheTTL   time.Duration
	StatsCacheTTL      time.Duration

	LogLevel  slog.Level
	LogFormat string

	AdminEmail    string
	AdminPassword string
}

// LoadDotEnv reads a .env file into the environment when one exists.
// Variables already set are left alone.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("failed to load env file", "path", p, "error", err)
		}
	}
}

// MongoConfig is the subset of settings needed to reach the database
type MongoConfig struct {
	URI string
	DB  string
}

// LoadMongo reads MONGO_URI and MONGO_DB. Commands that only touch the
// database use it instead of Load, which also demands JWT_SECRET.
func LoadMongo() MongoConfig {
	return MongoConfig{
		URI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DB:  getEnv("MONGO_DB", "mindcheck"),
	}
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	mongoCfg := LoadMongo()
	cfg := &Config{
		MongoURI:           mongoCfg.URI,
		MongoDB:            mongoCfg.DB,
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Port:               getEnv("PORT", "8080"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "json")),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}

	var err error
	if cfg.Redis, err = redisOptions(os.Getenv("REDIS_URI")); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 8*time.Hour); err != nil {
		return nil, err
	}
	if cfg.QuestionCacheTTL, err = getDuration("QUESTION_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.StatsCacheTTL, err = getDuration("STATS_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 2); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.TrustProxy, err = getBool("TRUST_PROXY", false); err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// RedisEnabled reports whether a Redis server was configured
func (c *Config) RedisEnabled() bool {
	return c.Redis != nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// redisOptions accepts a redis:// or rediss:// URL, with optional
// credentials and db index, or a bare host:port.
func redisOptions(uri string) (*redis.Options, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, nil
	}
	if !strings.Contains(uri, "://") {
		return &redis.Options{Addr: uri}, nil
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URI: %w", err)
	}
	return opts, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getFloat(key string, defaultVal float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
