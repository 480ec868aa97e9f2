package ports

import (
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
)

// TokenManager — выпуск и разбор bearer-токенов.
type TokenManager interface {
	Issue(principal domain.Principal) (token string, expiresAt time.Time, err error)
	// Parse — domain.ErrUnauthenticated для подделанного, просроченного или битого токена.
	Parse(token string) (domain.Principal, time.Time, error)
}
