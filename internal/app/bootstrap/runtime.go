// Package bootstrap wires the process-level dependencies shared by the
// API binary: redis, postgres, and the interaction audit trail.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/carebook/carebook-platform/internal/config"
	"github.com/carebook/carebook-platform/internal/events"
	"github.com/carebook/carebook-platform/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildEventStore returns the toggle audit store, or nil when no
// database is configured. The pool is pinged so a bad DATABASE_URL
// surfaces at startup rather than on the first settled toggle.
func BuildEventStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*events.Store, *pgxpool.Pool) {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("postgres not available, toggle audit disabled", "error", err)
		return nil, nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("postgres ping failed, toggle audit disabled", "error", err)
		pool.Close()
		return nil, nil
	}
	return events.NewStore(pool), pool
}
