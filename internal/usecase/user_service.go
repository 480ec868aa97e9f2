package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/logistics/internal/cache"
	"github.com/Gunvolt24/logistics/internal/cachekeys"
	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/Gunvolt24/logistics/pkg/validate"
)

var _ ports.UserService = (*UserService)(nil)

// UserService — учётные записи и их сессии. Чтения профилей идут через кэш.
type UserService struct {
	users    ports.UserRepository
	sessions ports.SessionRegistry
	cache    ports.CacheStore
	log      ports.Logger
}

func NewUserService(users ports.UserRepository, sessions ports.SessionRegistry, cache ports.CacheStore, log ports.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, cache: cache, log: log}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return cache.GetOrPopulate(ctx, s.cache, cachekeys.UserByID(id), cachekeys.TTLLong,
		func(ctx context.Context) (*domain.User, error) {
			user, err := s.users.GetByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("get user: %w", err)
			}
			if user == nil {
				return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
			}
			return user, nil
		})
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return cache.GetOrPopulate(ctx, s.cache, cachekeys.UsersList(), cachekeys.TTLShort,
		func(ctx context.Context) ([]*domain.User, error) {
			users, err := s.users.List(ctx)
			if err != nil {
				return nil, fmt.Errorf("list users: %w", err)
			}
			if users == nil {
				users = []*domain.User{}
			}
			return users, nil
		})
}

// UpdateRole — роль хранится в токене, поэтому после смены все сессии пользователя закрываются:
// старые токены со старой ролью перестают проходить аутентификацию.
func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if err := validate.ValidateRole(role); err != nil {
		return nil, err
	}
	user, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	s.invalidate(ctx, id)
	if err := s.sessions.InvalidateAllUserSessions(ctx, id); err != nil {
		return nil, fmt.Errorf("revoke sessions after role change: %w", err)
	}
	s.log.Infof(ctx, "user role changed id=%s role=%s", id, role)
	return user, nil
}

// Delete — сначала закрываются все сессии, затем удаляется запись.
// Пользователь с заказами не удаляется (domain.ErrConflict), но его сессии к этому моменту
// уже закрыты: повторный вход после отказа в удалении возможен.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.sessions.InvalidateAllUserSessions(ctx, id); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	s.invalidate(ctx, id)
	s.log.Infof(ctx, "user deleted id=%s", id)
	return nil
}

func (s *UserService) Sessions(ctx context.Context, userID string) (*domain.SessionsSummary, error) {
	count, err := s.sessions.GetActiveSessionCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.GetUserActiveSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return &domain.SessionsSummary{Count: count, Sessions: sessions}, nil
}

func (s *UserService) RevokeSessions(ctx context.Context, userID string) error {
	if err := s.sessions.InvalidateAllUserSessions(ctx, userID); err != nil {
		return err
	}
	s.log.Infof(ctx, "sessions revoked user=%s", userID)
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cachekeys.UserByID(id), cachekeys.UsersList()); err != nil {
		s.log.Warnf(ctx, "user cache invalidation failed id=%s err=%v", id, err)
	}
}
