package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/logistics/internal/cache/memory"
	"github.com/Gunvolt24/logistics/internal/cachekeys"
	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports/mocks"
	"github.com/Gunvolt24/logistics/internal/usecase"
	"github.com/Gunvolt24/logistics/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc      *usecase.AuthService
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRegistry
	tokens   *mocks.MockTokenManager
	cache    *memory.Store
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := authFixture{
		users:    mocks.NewMockUserRepository(ctrl),
		sessions: mocks.NewMockSessionRegistry(ctrl),
		tokens:   mocks.NewMockTokenManager(ctrl),
		cache:    memory.NewStore(10, time.Minute),
	}
	f.svc = usecase.NewAuthService(f.users, f.sessions, f.tokens, f.cache, validate.NewValidator(), noopLogger{})
	return f
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_OpensSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cache.Set(ctx, cachekeys.UsersList(), []string{"stale"}, time.Minute))

	var created *domain.User
	f.users.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(nil, nil)
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
		created = u
		return nil
	})
	f.tokens.EXPECT().Issue(gomock.Any()).DoAndReturn(func(p domain.Principal) (string, time.Time, error) {
		assert.Equal(t, domain.RoleUser, p.Role)
		assert.Equal(t, "new@example.com", p.Email)
		return "tok", time.Now().Add(time.Hour), nil
	})
	f.sessions.EXPECT().CreateSession(gomock.Any(), "tok", gomock.Any(), "new@example.com", domain.RoleUser).Return(nil)

	res, err := f.svc.Register(ctx, domain.RegisterInput{Email: " New@Example.com ", Password: "secret1", Name: "Newbie"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.AccessToken)
	require.NotNil(t, created)
	assert.NotEqual(t, "secret1", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))

	var dst []string
	assert.False(t, f.cache.Get(ctx, cachekeys.UsersList(), &dst), "users list must be invalidated")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().GetByEmail(gomock.Any(), "taken@example.com").Return(&domain.User{ID: "u1"}, nil)

	_, err := f.svc.Register(context.Background(), domain.RegisterInput{Email: "taken@example.com", Password: "secret1", Name: "Dup"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_Invalid(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), domain.RegisterInput{Email: "bad", Password: "1", Name: "X"})
	require.ErrorIs(t, err, validate.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "u1@example.com", Name: "U", Role: domain.RoleAdmin}

	t.Run("ok", func(t *testing.T) {
		f := newAuthFixture(t)
		u := *user
		u.PasswordHash = hashed(t, "secret1")
		f.users.EXPECT().GetByEmail(gomock.Any(), u.Email).Return(&u, nil)
		f.tokens.EXPECT().Issue(domain.Principal{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}).
			Return("tok", time.Now().Add(time.Hour), nil)
		f.sessions.EXPECT().CreateSession(gomock.Any(), "tok", u.ID, u.Email, domain.RoleAdmin).Return(nil)

		res, err := f.svc.Login(context.Background(), domain.LoginInput{Email: u.Email, Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "tok", res.AccessToken)
		assert.Equal(t, u.ID, res.User.ID)
	})

	t.Run("wrong_password", func(t *testing.T) {
		f := newAuthFixture(t)
		u := *user
		u.PasswordHash = hashed(t, "secret1")
		f.users.EXPECT().GetByEmail(gomock.Any(), u.Email).Return(&u, nil)

		_, err := f.svc.Login(context.Background(), domain.LoginInput{Email: u.Email, Password: "secret2"})
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("unknown_email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, nil)

		_, err := f.svc.Login(context.Background(), domain.LoginInput{Email: "ghost@example.com", Password: "secret1"})
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("session_store_down", func(t *testing.T) {
		f := newAuthFixture(t)
		u := *user
		u.PasswordHash = hashed(t, "secret1")
		f.users.EXPECT().GetByEmail(gomock.Any(), u.Email).Return(&u, nil)
		f.tokens.EXPECT().Issue(gomock.Any()).Return("tok", time.Now().Add(time.Hour), nil)
		f.sessions.EXPECT().CreateSession(gomock.Any(), "tok", u.ID, u.Email, u.Role).
			Return(domain.StoreUnavailable("redis", errors.New("refused")))

		_, err := f.svc.Login(context.Background(), domain.LoginInput{Email: u.Email, Password: "secret1"})
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestLogout_BlacklistsForRemainingLifetime(t *testing.T) {
	f := newAuthFixture(t)
	exp := time.Now().Add(30 * time.Minute)

	f.tokens.EXPECT().Parse("tok").Return(owner, exp, nil)
	f.sessions.EXPECT().InvalidateSession(gomock.Any(), "tok").Return(nil)
	f.sessions.EXPECT().BlacklistToken(gomock.Any(), "tok", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, ttl time.Duration) error {
			assert.InDelta(t, float64(30*time.Minute), float64(ttl), float64(5*time.Second))
			return nil
		})

	require.NoError(t, f.svc.Logout(context.Background(), "tok"))
}

func TestLogout_BadToken(t *testing.T) {
	f := newAuthFixture(t)
	f.tokens.EXPECT().Parse("junk").Return(domain.Principal{}, time.Time{}, domain.ErrUnauthenticated)

	require.ErrorIs(t, f.svc.Logout(context.Background(), "junk"), domain.ErrUnauthenticated)
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := newAuthFixture(t)
		f.tokens.EXPECT().Parse("tok").Return(owner, time.Now().Add(time.Hour), nil)
		f.sessions.EXPECT().ValidateSession(gomock.Any(), "tok").Return(true, nil)

		got, err := f.svc.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, owner, got)
	})

	t.Run("revoked", func(t *testing.T) {
		f := newAuthFixture(t)
		f.tokens.EXPECT().Parse("tok").Return(owner, time.Now().Add(time.Hour), nil)
		f.sessions.EXPECT().ValidateSession(gomock.Any(), "tok").Return(false, nil)

		_, err := f.svc.Authenticate(context.Background(), "tok")
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("store_unavailable", func(t *testing.T) {
		f := newAuthFixture(t)
		f.tokens.EXPECT().Parse("tok").Return(owner, time.Now().Add(time.Hour), nil)
		f.sessions.EXPECT().ValidateSession(gomock.Any(), "tok").Return(false, errors.New("dial tcp: refused"))

		_, err := f.svc.Authenticate(context.Background(), "tok")
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
		require.NotErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("forged", func(t *testing.T) {
		f := newAuthFixture(t)
		f.tokens.EXPECT().Parse("forged").Return(domain.Principal{}, time.Time{}, domain.ErrUnauthenticated)

		_, err := f.svc.Authenticate(context.Background(), "forged")
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
