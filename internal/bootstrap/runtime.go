// Package bootstrap brings up the process-wide runtime shared by the commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"peached/internal/cache"
	"peached/internal/config"
	"peached/internal/database"
	"peached/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SkipSchema leaves the schema untouched regardless of DB_SCHEMA_MODE.
	SkipSchema bool
	// SkipRedis runs without the profile cache.
	SkipRedis bool
}

// Runtime holds the handles created by InitRuntime.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	// ShutdownTracing flushes and stops the tracer provider.
	ShutdownTracing func(context.Context) error
}

// InitRuntime starts tracing, connects to the database, applies the schema and
// connects to Redis. An unreachable Redis is not an error: the cache is bypassed.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		Enabled:      cfg.TracingEnabled,
		ServiceName:  observability.ServiceName,
		Environment:  cfg.Env,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSamplerRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if !opts.SkipSchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return nil, fmt.Errorf("schema setup failed: %w", err)
		}
	}

	var rdb *redis.Client
	if !opts.SkipRedis {
		rdb = cache.InitRedis(cfg.RedisURL)
		if rdb == nil {
			observability.Logger.WarnContext(ctx, "redis unavailable, profile cache disabled",
				slog.String("addr", cfg.RedisURL))
		}
	}

	return &Runtime{DB: db, Redis: rdb, ShutdownTracing: shutdownTracing}, nil
}
