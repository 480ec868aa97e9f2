package ports

import (
	"context"

	"github.com/Gunvolt24/logistics/internal/domain"
)

// OrderEventPublisher — публикация событий жизненного цикла заказа.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}
