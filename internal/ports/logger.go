package ports

import "context"

// Logger — логгер сервиса. Реализация сама достаёт из ctx request_id, user_id и trace_id,
// поэтому вызывающий код передаёт контекст запроса, а не собирает поля вручную.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
