// Package cache implements the cache-aside layer in front of the stat
// services: Redis holds fully computed values keyed by entity identity,
// method and arguments, and singleflight keeps concurrent requests for
// the same key from recomputing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RedisClient defines the interface for the Redis client.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Store is a Redis-backed cache-aside store. Redis failures are logged
// and degrade to a direct compute; compute errors are returned as-is
// and never cached.
type Store struct {
	rdb    RedisClient
	logger *zap.SugaredLogger
	group  singleflight.Group
}

func New(rdb RedisClient, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, logger: logger.Sugar()}
}

// GetOrCompute fills dest from the cache when the key is present,
// otherwise runs compute (which must fill dest), stores the result
// under key for ttl, and leaves dest holding the computed value.
// Values cross the singleflight boundary as JSON so every caller gets
// its own copy.
func (s *Store) GetOrCompute(ctx context.Context, key string, ttl time.Duration, dest any, compute func() error) error {
	if s.rdb != nil {
		data, err := s.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if err := json.Unmarshal(data, dest); err == nil {
				return nil
			}
			// Fall through and recompute over a corrupt entry.
			s.logger.Warnw("discarding undecodable cache entry", "key", key)
		case !errors.Is(err, redis.Nil):
			s.logger.Warnw("cache read failed", "key", key, "error", err)
		}
	}

	payload, err, _ := s.group.Do(key, func() (interface{}, error) {
		if err := compute(); err != nil {
			return nil, err
		}
		data, err := json.Marshal(dest)
		if err != nil {
			return nil, fmt.Errorf("encode cache value: %w", err)
		}
		if s.rdb != nil {
			if err := s.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
				s.logger.Warnw("cache write failed", "key", key, "error", err)
			}
		}
		return data, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(payload.([]byte), dest)
}

// Key builds a cache key from entity kind, identity, method and
// arguments. Arguments are sorted so equivalent calls share an entry
// regardless of argument order.
func Key(kind, identity, method string, args ...any) string {
	parts := []string{"stats", kind, identity, method}
	strArgs := make([]string, len(args))
	for i, a := range args {
		strArgs[i] = fmt.Sprint(a)
	}
	sort.Strings(strArgs)
	return strings.Join(append(parts, strArgs...), ":")
}
