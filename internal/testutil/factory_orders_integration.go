//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/google/uuid"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeUser — пользователь с уникальным email.
func MakeUser(opts ...func(*domain.User)) domain.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        "user-" + UniqSuffix() + "@example.com",
		Name:         "Test User",
		Role:         domain.RoleUser,
		PasswordHash: "$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinv",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, fn := range opts {
		fn(&u)
	}
	return u
}

// MakeOrder — мини-генератор валидного заказа владельца ownerID.
func MakeOrder(ownerID string, opts ...func(*domain.Order)) domain.Order {
	now := time.Now().UTC().Truncate(time.Millisecond)
	o := domain.Order{
		ID:             uuid.NewString(),
		TrackingNumber: "TRK-TEST-" + UniqSuffix(),
		SenderName:     "John Smith",
		RecipientName:  "Jane Doe",
		Origin:         "Metropolis",
		Destination:    "Gotham",
		Status:         domain.OrderStatusPending,
		UserID:         ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithCreatedAt(t time.Time) func(*domain.Order) {
	return func(o *domain.Order) { o.CreatedAt, o.UpdatedAt = t, t }
}

func WithSender(name string) func(*domain.Order) {
	return func(o *domain.Order) { o.SenderName = name }
}

func WithStatus(s domain.OrderStatus) func(*domain.Order) {
	return func(o *domain.Order) { o.Status = s }
}
