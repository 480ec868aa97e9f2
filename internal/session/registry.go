// Package session — реестр сессий поверх Redis: запись сессии по токену,
// множество активных токенов пользователя и чёрный список отозванных токенов.
//
// Любая ошибка Redis возвращается вызывающему (domain.ErrStoreUnavailable), локальных
// повторов нет: шлюз аутентификации трактует её как «не могу аутентифицировать».
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/logistics/internal/cachekeys"
	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/Gunvolt24/logistics/pkg/metrics"
	goredis "github.com/redis/go-redis/v9"
)

var _ ports.SessionRegistry = (*Registry)(nil)

const blacklistMarker = "1"

type Registry struct {
	client goredis.UniversalClient
	log    ports.Logger
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Registry)

// WithClock — подмена часов (тесты).
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(client goredis.UniversalClient, log ports.Logger, opts ...Option) *Registry {
	r := &Registry{
		client: client,
		log:    log,
		ttl:    cachekeys.SessionTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateSession — запись сессии и токен в множестве пользователя одной транзакцией MULTI/EXEC.
func (r *Registry) CreateSession(ctx context.Context, token, userID, email string, role domain.Role) (err error) {
	defer func() { observe("create", err) }()

	now := r.now()
	payload, err := json.Marshal(domain.Session{
		UserID:       userID,
		Email:        email,
		Role:         role,
		CreatedAt:    now,
		LastActivity: now,
	})
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}

	userKey := cachekeys.UserSessions(userID)
	_, err = r.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, cachekeys.Session(token), payload, r.ttl)
		p.SAdd(ctx, userKey, token)
		p.Expire(ctx, userKey, r.ttl)
		return nil
	})
	return domain.StoreUnavailable("session create", err)
}

// GetSession — запись сессии или (nil, nil). При попадании обновляет lastActivity и TTL записи
// и множества user_sessions. Обновление идёт через SET XX: сессию, удалённую между GET и SET, не воскрешаем.
func (r *Registry) GetSession(ctx context.Context, token string) (_ *domain.Session, err error) {
	defer func() { observe("get", err) }()

	key := cachekeys.Session(token)
	rec, err := r.load(ctx, key)
	if err != nil || rec == nil {
		return nil, err
	}

	rec.LastActivity = r.now()
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("session encode: %w", err)
	}

	// множество владельца продлеваем вместе с записью, иначе живая сессия выпадет из него
	var refresh *goredis.BoolCmd
	_, err = r.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		refresh = p.SetXX(ctx, key, payload, r.ttl)
		p.Expire(ctx, cachekeys.UserSessions(rec.UserID), r.ttl)
		return nil
	})
	if err != nil {
		return nil, domain.StoreUnavailable("session refresh", err)
	}
	if !refresh.Val() {
		return nil, nil
	}
	return rec, nil
}

// ValidateSession — чёрный список проверяется строго до записи сессии.
func (r *Registry) ValidateSession(ctx context.Context, token string) (bool, error) {
	blacklisted, err := r.IsTokenBlacklisted(ctx, token)
	if err != nil {
		return false, err
	}
	if blacklisted {
		return false, nil
	}

	rec, err := r.GetSession(ctx, token)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// InvalidateSession — удаляет запись и токен из множества владельца. Без записи — no-op.
func (r *Registry) InvalidateSession(ctx context.Context, token string) (err error) {
	defer func() { observe("invalidate", err) }()

	key := cachekeys.Session(token)
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil
	}
	if err != nil {
		return domain.StoreUnavailable("session get", err)
	}

	var rec domain.Session
	if decodeErr := json.Unmarshal(raw, &rec); decodeErr != nil {
		// владельца не узнать: удаляем хотя бы саму запись
		r.log.Warnf(ctx, "session payload malformed, dropping key only err=%v", decodeErr)
		return domain.StoreUnavailable("session delete", r.client.Del(ctx, key).Err())
	}

	_, err = r.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, key)
		p.SRem(ctx, cachekeys.UserSessions(rec.UserID), token)
		return nil
	})
	return domain.StoreUnavailable("session invalidate", err)
}

// InvalidateAllUserSessions — удаляет все записи сессий пользователя и само множество.
func (r *Registry) InvalidateAllUserSessions(ctx context.Context, userID string) (err error) {
	defer func() { observe("invalidate_all", err) }()

	userKey := cachekeys.UserSessions(userID)
	tokens, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return domain.StoreUnavailable("session members", err)
	}

	_, err = r.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		for _, token := range tokens {
			p.Del(ctx, cachekeys.Session(token))
		}
		p.Del(ctx, userKey)
		return nil
	})
	if err != nil {
		return domain.StoreUnavailable("session invalidate all", err)
	}
	r.log.Infof(ctx, "sessions invalidated user_id=%s count=%d", userID, len(tokens))
	return nil
}

// BlacklistToken — метка отзыва с ttl (<= 0 — TTL сессии). Запись сессии не трогает.
func (r *Registry) BlacklistToken(ctx context.Context, token string, ttl time.Duration) (err error) {
	defer func() { observe("blacklist", err) }()

	if ttl <= 0 {
		ttl = r.ttl
	}
	err = r.client.Set(ctx, cachekeys.Blacklist(token), blacklistMarker, ttl).Err()
	return domain.StoreUnavailable("session blacklist", err)
}

func (r *Registry) IsTokenBlacklisted(ctx context.Context, token string) (_ bool, err error) {
	defer func() { observe("blacklist_check", err) }()

	n, err := r.client.Exists(ctx, cachekeys.Blacklist(token)).Result()
	if err != nil {
		return false, domain.StoreUnavailable("session blacklist check", err)
	}
	return n == 1, nil
}

func (r *Registry) GetActiveSessionCount(ctx context.Context, userID string) (int64, error) {
	n, err := r.client.SCard(ctx, cachekeys.UserSessions(userID)).Result()
	if err != nil {
		return 0, domain.StoreUnavailable("session count", err)
	}
	return n, nil
}

// GetUserActiveSessions — записи по всем токенам пользователя.
// Каждое чтение продлевает активность сессии, как и GetSession.
func (r *Registry) GetUserActiveSessions(ctx context.Context, userID string) ([]domain.Session, error) {
	tokens, err := r.client.SMembers(ctx, cachekeys.UserSessions(userID)).Result()
	if err != nil {
		return nil, domain.StoreUnavailable("session members", err)
	}

	sessions := make([]domain.Session, 0, len(tokens))
	for _, token := range tokens {
		rec, err := r.GetSession(ctx, token)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			sessions = append(sessions, *rec)
		}
	}
	return sessions, nil
}

// load — запись по ключу; битый payload логируется и считается отсутствующим.
func (r *Registry) load(ctx context.Context, key string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.StoreUnavailable("session get", err)
	}

	var rec domain.Session
	if err := json.Unmarshal(raw, &rec); err != nil {
		r.log.Warnf(ctx, "session payload malformed err=%v", err)
		return nil, nil
	}
	return &rec, nil
}

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.SessionOps.WithLabelValues(op, result).Inc()
}
