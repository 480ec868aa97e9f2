package ports

import (
	"context"

	"github.com/Gunvolt24/logistics/internal/domain"
)

// OrderRepository — реляционное хранилище заказов.
// Get* возвращают (nil, nil), если записи нет.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest) ([]*domain.Order, error)
	Count(ctx context.Context, filter domain.OrderFilter) (int, error)

	// UpdateStatus — сменить статус, только если текущий равен from.
	// (nil, nil) — строки нет или статус уже изменён конкурентно.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error)
}
