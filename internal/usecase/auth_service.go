package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/logistics/internal/cachekeys"
	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthService — регистрация, вход, выход и проверка bearer-токена.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionRegistry
	tokens    ports.TokenManager
	cache     ports.CacheStore
	validator ports.CredentialsValidator
	log       ports.Logger
	now       func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRegistry,
	tokens ports.TokenManager,
	cache ports.CacheStore,
	validator ports.CredentialsValidator,
	log ports.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		cache:     cache,
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

// Register — новый пользователь с ролью USER и сразу открытая сессия.
func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	if err := s.validator.ValidateRegister(ctx, &input); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", input.Email, domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.Name,
		Role:         domain.RoleUser,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := s.cache.Delete(ctx, cachekeys.UsersList()); err != nil {
		s.log.Warnf(ctx, "users list invalidation failed err=%v", err)
	}

	s.log.Infof(ctx, "user registered id=%s", user.ID)
	return s.openSession(ctx, user)
}

// Login — неверный email и неверный пароль неразличимы снаружи.
func (s *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	if err := s.validator.ValidateLogin(ctx, &input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.log.Warnf(ctx, "login failed user=%s", user.ID)
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthenticated)
	}

	return s.openSession(ctx, user)
}

// Logout — закрыть сессию и занести токен в чёрный список до истечения его срока.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	principal, expiresAt, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}

	if err := s.sessions.InvalidateSession(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if ttl := expiresAt.Sub(s.now()); ttl > 0 {
		if err := s.sessions.BlacklistToken(ctx, token, ttl); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}

	s.log.Infof(ctx, "user logged out id=%s", principal.ID)
	return nil
}

// Authenticate — шлюз аутентификации: подпись и срок токена, затем живая сессия.
// Недоступность реестра сессий отдаётся как domain.ErrStoreUnavailable, а не как 401.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	principal, _, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, err
	}

	ok, err := s.sessions.ValidateSession(ctx, token)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			err = domain.StoreUnavailable("validate session", err)
		}
		s.log.Errorf(ctx, "cannot authenticate user=%s err=%v", principal.ID, err)
		return domain.Principal{}, err
	}
	if !ok {
		return domain.Principal{}, fmt.Errorf("session expired or revoked: %w", domain.ErrUnauthenticated)
	}
	return principal, nil
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	token, _, err := s.tokens.Issue(domain.Principal{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	if err := s.sessions.CreateSession(ctx, token, user.ID, user.Email, user.Role); err != nil {
		s.log.Errorf(ctx, "create session failed user=%s err=%v", user.ID, err)
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &domain.AuthResult{AccessToken: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
