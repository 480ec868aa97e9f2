package ports

import (
	"context"
	"time"
)

// CacheStore — TTL-хранилище ключ/значение без доменной семантики.
// Значения сериализуются в JSON; отсутствующий и истёкший ключ неразличимы.
type CacheStore interface {
	// Get — декодировать значение в dst; false при промахе, ошибке транспорта или битом payload.
	Get(ctx context.Context, key string, dst any) bool

	// Set — записать значение с TTL; ttl <= 0 — TTL хранилища по умолчанию.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete — удалить ключи; отсутствие ключа ошибкой не считается.
	Delete(ctx context.Context, keys ...string) error

	// DeleteMatching — удалить все ключи по glob-шаблону в семантике Redis MATCH
	// ('*' совпадает с любыми байтами, включая '/'), вернуть число удалённых.
	// Только для массовой инвалидации, не для горячего пути.
	DeleteMatching(ctx context.Context, pattern string) (int, error)

	// Ping — доступность хранилища.
	Ping(ctx context.Context) error
}
