package ports

import (
	"context"

	"github.com/Gunvolt24/logistics/internal/domain"
)

// UserRepository — реляционное хранилище пользователей.
type UserRepository interface {
	// Create — domain.ErrConflict, если email занят.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)

	// Delete — false, если записи не было; domain.ErrConflict, если на пользователя ссылаются заказы.
	Delete(ctx context.Context, id string) (bool, error)
}
