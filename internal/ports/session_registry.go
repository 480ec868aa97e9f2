package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
)

// SessionRegistry — реестр сессий и отозванных токенов.
// Недоступность хранилища возвращается как ошибка из любой операции (domain.ErrStoreUnavailable).
type SessionRegistry interface {
	CreateSession(ctx context.Context, token, userID, email string, role domain.Role) error
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	ValidateSession(ctx context.Context, token string) (bool, error)
	InvalidateSession(ctx context.Context, token string) error
	InvalidateAllUserSessions(ctx context.Context, userID string) error
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	GetActiveSessionCount(ctx context.Context, userID string) (int64, error)
	GetUserActiveSessions(ctx context.Context, userID string) ([]domain.Session, error)
}
