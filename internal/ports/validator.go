package ports

import (
	"context"

	"github.com/Gunvolt24/logistics/internal/domain"
)

type OrderValidator interface {
	ValidateCreate(ctx context.Context, input *domain.CreateOrderInput) error
}

type CredentialsValidator interface {
	ValidateRegister(ctx context.Context, input *domain.RegisterInput) error
	ValidateLogin(ctx context.Context, input *domain.LoginInput) error
}
