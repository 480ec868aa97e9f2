package ports

import "context"

// Pinger — проверка доступности внешней зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}
