// Package routecache caches serialized technician routes.
package routecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix        = "fieldservice:route:"
	generationPrefix = "fieldservice:route-generation:"
)

// errStaleGeneration aborts a Store whose route was read before the last
// invalidation.
var errStaleGeneration = errors.New("route generation changed")

func routeKey(technicianID kernel.UUID) string {
	return keyPrefix + technicianID.String()
}

func generationKey(technicianID kernel.UUID) string {
	return generationPrefix + technicianID.String()
}

// RedisRouteCache implements ports.RouteCache on Redis strings with a TTL.
// Generation counters carry no TTL; there is one per technician.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: ttl}
}

func (c *RedisRouteCache) Load(ctx context.Context, technicianID kernel.UUID) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, routeKey(technicianID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RouteCacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.RouteCacheRequestsTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("redis get route: %w", err)
	}
	metrics.RouteCacheRequestsTotal.WithLabelValues("hit").Inc()
	return data, true, nil
}

// Generation returns the technician's invalidation counter, 0 before the
// first invalidation.
func (c *RedisRouteCache) Generation(ctx context.Context, technicianID kernel.UUID) (int64, error) {
	return readGeneration(ctx, c.client, technicianID)
}

// Store writes payload under WATCH of the generation key. A generation that
// moved since the caller read it skips the write without an error.
func (c *RedisRouteCache) Store(ctx context.Context, technicianID kernel.UUID, generation int64, payload []byte) error {
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, technicianID)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, routeKey(technicianID), payload, c.ttl)
			return nil
		})
		return err
	}, generationKey(technicianID))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		metrics.RouteCacheRequestsTotal.WithLabelValues("stale").Inc()
		return nil
	default:
		return fmt.Errorf("redis set route: %w", err)
	}
}

// Invalidate bumps the generation and drops the cached route of every
// technician in one MULTI/EXEC.
func (c *RedisRouteCache) Invalidate(ctx context.Context, technicianIDs ...kernel.UUID) error {
	if len(technicianIDs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range technicianIDs {
			pipe.Incr(ctx, generationKey(id))
			pipe.Del(ctx, routeKey(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis del routes: %w", err)
	}
	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, client getter, technicianID kernel.UUID) (int64, error) {
	generation, err := client.Get(ctx, generationKey(technicianID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get route generation: %w", err)
	}
	return generation, nil
}

// NoopRouteCache always misses. It is used when Redis is not configured.
type NoopRouteCache struct{}

func (NoopRouteCache) Load(context.Context, kernel.UUID) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopRouteCache) Generation(context.Context, kernel.UUID) (int64, error) {
	return 0, nil
}

func (NoopRouteCache) Store(context.Context, kernel.UUID, int64, []byte) error {
	return nil
}

func (NoopRouteCache) Invalidate(context.Context, ...kernel.UUID) error {
	return nil
}
