package ports

import (
	"context"

	"github.com/Gunvolt24/logistics/internal/domain"
)

// OrderService — операции над заказами, доступные транспорту.
type OrderService interface {
	Create(ctx context.Context, input domain.CreateOrderInput, ownerID string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest, principal domain.Principal) (*domain.Page[*domain.Order], error)
	GetByID(ctx context.Context, id string, principal domain.Principal) (*domain.Order, error)
	TrackByNumber(ctx context.Context, trackingNumber string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, principal domain.Principal) (*domain.Order, error)
	Cancel(ctx context.Context, id string, principal domain.Principal) (*domain.Order, error)
}

// AuthService — регистрация, вход и шлюз аутентификации.
type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

// UserService — управление пользователями и их сессиями.
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Sessions(ctx context.Context, userID string) (*domain.SessionsSummary, error)
	RevokeSessions(ctx context.Context, userID string) error
}

// HealthService — состояние зависимостей.
type HealthService interface {
	Check(ctx context.Context) domain.HealthReport
}
