// Package ctxmeta — метаданные запроса в context.Context: request_id, user_id и trace/span id из otel.
// Транспорт их кладёт, логгер читает; друг о друге они не знают.
package ctxmeta

import "context"

type key int

const (
	requestIDKey key = iota
	userIDKey
)

// WithRequestID — пустой id контекст не меняет.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) { return get(ctx, requestIDKey) }

// WithUserID — id аутентифицированного пользователя; ставит шлюз аутентификации.
func WithUserID(ctx context.Context, userID string) context.Context {
	return with(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) { return get(ctx, userIDKey) }

func with(ctx context.Context, k key, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, k, v)
}

func get(ctx context.Context, k key) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(k).(string)
	return v, ok && v != ""
}
