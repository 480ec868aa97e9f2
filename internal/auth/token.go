// Package auth — выпуск и проверка bearer-токенов (JWT, HS256).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ ports.TokenManager = (*TokenManager)(nil)

// Claims — полезная нагрузка токена. jti уникален, поэтому у каждого входа свой ключ сессии.
type Claims struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: empty jwt secret")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, issuer: "logistics", now: time.Now}, nil
}

// Issue — подписанный токен и момент его истечения.
func (m *TokenManager) Issue(p domain.Principal) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			Issuer:    m.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse — принципал и момент истечения. Любая проблема с токеном — domain.ErrUnauthenticated.
func (m *TokenManager) Parse(token string) (domain.Principal, time.Time, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Principal{}, time.Time{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return domain.Principal{}, time.Time{}, fmt.Errorf("%w: incomplete claims", domain.ErrUnauthenticated)
	}

	principal := domain.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}
	return principal, claims.ExpiresAt.Time, nil
}
