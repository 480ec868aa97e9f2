// Package cache — общие помощники поверх ports.CacheStore.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/logistics/internal/ports"
)

// GetOrPopulate — read-through: значение из кэша, иначе factory + запись с ttl.
//
// Ошибка factory возвращается как есть, в кэш ничего не пишется (отрицательный результат
// не кэшируется). Ошибка записи после успешной factory тоже возвращается.
// Два одновременных промаха могут оба вызвать factory: factory здесь — чистое чтение.
func GetOrPopulate[T any](
	ctx context.Context,
	store ports.CacheStore,
	key string,
	ttl time.Duration,
	factory func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	if store.Get(ctx, key, &cached) {
		return cached, nil
	}

	value, err := factory(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := store.Set(ctx, key, value, ttl); err != nil {
		var zero T
		return zero, fmt.Errorf("populate %s: %w", key, err)
	}
	return value, nil
}
