package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/Gunvolt24/logistics/pkg/metrics"
	goredis "github.com/redis/go-redis/v9"
)

var _ ports.CacheStore = (*Store)(nil)

const scanBatch = 500

// Store — кэш ключ/значение в Redis, значения в JSON.
type Store struct {
	client     goredis.UniversalClient
	defaultTTL time.Duration
	log        ports.Logger
}

func NewStore(client goredis.UniversalClient, defaultTTL time.Duration, log ports.Logger) *Store {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Store{client: client, defaultTTL: defaultTTL, log: log}
}

// Get — промах, ошибка Redis и битый payload одинаково дают false.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return false
	case err != nil:
		metrics.CacheOps.WithLabelValues("error").Inc()
		s.log.Warnf(ctx, "cache get failed key=%s err=%v", key, err)
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.CacheOps.WithLabelValues("error").Inc()
		s.log.Warnf(ctx, "cache payload malformed key=%s err=%v", key, err)
		return false
	}
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return true
}

func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		metrics.CacheOps.WithLabelValues("error").Inc()
		return domain.StoreUnavailable("cache set", err)
	}
	metrics.CacheOps.WithLabelValues("set").Inc()
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		metrics.CacheOps.WithLabelValues("error").Inc()
		return domain.StoreUnavailable("cache delete", err)
	}
	metrics.CacheOps.WithLabelValues("delete").Add(float64(len(keys)))
	return nil
}

// DeleteMatching — SCAN по шаблону и DEL пачками (KEYS не используется).
func (s *Store) DeleteMatching(ctx context.Context, pattern string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return deleted, domain.StoreUnavailable("cache scan", err)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, domain.StoreUnavailable("cache delete", err)
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	metrics.CacheOps.WithLabelValues("delete").Add(float64(deleted))
	return deleted, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return domain.StoreUnavailable("cache ping", err)
	}
	return nil
}
