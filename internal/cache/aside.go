package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"peached/internal/middleware"
	"peached/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside loads key into dest, calling fetch to fill dest on a miss and storing
// the result for ttl. fetch errors are returned and never cached. Redis
// failures degrade to calling fetch.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		observability.ProfileCacheLookups.WithLabelValues("bypass").Inc()
		return fetch()
	}

	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		jsonErr := json.Unmarshal(raw, dest)
		if jsonErr == nil {
			observability.ProfileCacheLookups.WithLabelValues("hit").Inc()
			return nil
		}
		middleware.Logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key, "error", jsonErr)
	case !errors.Is(err, redis.Nil):
		middleware.Logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	observability.ProfileCacheLookups.WithLabelValues("miss").Inc()
	if err := fetch(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return nil
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
	return nil
}
