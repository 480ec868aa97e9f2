package ports

import "context"

// MessageConsumer — фоновый читатель ленты статусов перевозчиков.
// Run блокируется до отмены ctx или фатальной ошибки; Close идемпотентен.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
