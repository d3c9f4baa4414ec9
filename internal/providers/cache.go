package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carebook/carebook-platform/pkg/logging"
)

// DirectoryAPI is the fetch surface of the directory client, abstracted
// for testing.
type DirectoryAPI interface {
	GetProvider(ctx context.Context, providerID string) (*Provider, error)
}

// CachedDirectory fronts the directory client with a short-lived redis
// cache so calendar navigation doesn't refetch the schedule on every
// view switch. A nil redis client degrades to direct fetches.
type CachedDirectory struct {
	api    DirectoryAPI
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCachedDirectory creates a caching wrapper around a directory client.
func NewCachedDirectory(api DirectoryAPI, redisClient *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedDirectory {
	if api == nil {
		panic("providers: directory api required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedDirectory{api: api, redis: redisClient, ttl: ttl, logger: logger}
}

func (d *CachedDirectory) key(providerID string) string {
	return fmt.Sprintf("provider:record:%s", providerID)
}

// Provider returns the provider record, from cache when fresh.
func (d *CachedDirectory) Provider(ctx context.Context, providerID string) (*Provider, error) {
	if d.redis != nil {
		data, err := d.redis.Get(ctx, d.key(providerID)).Bytes()
		if err == nil {
			var p Provider
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
			// Corrupt cache entry; fall through to a fresh fetch.
			d.logger.Warn("dropping unreadable provider cache entry", "provider_id", providerID)
		} else if err != redis.Nil {
			d.logger.Warn("provider cache read failed", "provider_id", providerID, "error", err)
		}
	}

	p, err := d.api.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if d.redis != nil {
		if data, err := json.Marshal(p); err == nil {
			if err := d.redis.Set(ctx, d.key(providerID), data, d.ttl).Err(); err != nil {
				d.logger.Warn("provider cache write failed", "provider_id", providerID, "error", err)
			}
		}
	}

	return p, nil
}

// Invalidate drops the cached record for a provider.
func (d *CachedDirectory) Invalidate(ctx context.Context, providerID string) error {
	if d.redis == nil {
		return nil
	}
	if err := d.redis.Del(ctx, d.key(providerID)).Err(); err != nil {
		return fmt.Errorf("providers: invalidate cache: %w", err)
	}
	return nil
}
