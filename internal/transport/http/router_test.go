package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports/mocks"
	rest "github.com/Gunvolt24/logistics/internal/transport/http"
	"github.com/Gunvolt24/logistics/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var (
	user  = domain.Principal{ID: "u1", Email: "u1@example.com", Name: "User", Role: domain.RoleUser}
	admin = domain.Principal{ID: "a1", Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}
)

type fixture struct {
	router *gin.Engine
	orders *mocks.MockOrderService
	auth   *mocks.MockAuthService
	users  *mocks.MockUserService
	health *mocks.MockHealthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	f := &fixture{
		orders: mocks.NewMockOrderService(ctrl),
		auth:   mocks.NewMockAuthService(ctrl),
		users:  mocks.NewMockUserService(ctrl),
		health: mocks.NewMockHealthService(ctrl),
	}
	h := rest.NewHandler(rest.Services{Orders: f.orders, Auth: f.auth, Users: f.users, Health: f.health}, noopLogger{}, time.Second)
	f.router = rest.NewRouter(h, "")
	return f
}

// as — ожидать аутентификацию токена "tok-<id>" как principal.
func (f *fixture) as(p domain.Principal) string {
	token := "tok-" + p.ID
	f.auth.EXPECT().Authenticate(gomock.Any(), token).Return(p, nil).AnyTimes()
	return token
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var r io.Reader = http.NoBody
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body["error"]
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:             "o1",
		TrackingNumber: "TRK-LOYW3V28-ABC123",
		SenderName:     "Alice",
		RecipientName:  "Bob",
		Origin:         "Moscow",
		Destination:    "Kazan",
		Status:         domain.OrderStatusPending,
		UserID:         "u1",
	}
}

func TestTrack_PublicWithoutToken(t *testing.T) {
	f := newFixture(t)
	f.orders.EXPECT().TrackByNumber(gomock.Any(), "TRK-LOYW3V28-ABC123").Return(sampleOrder(), nil)

	w := f.do(http.MethodGet, "/api/v1/orders/track/TRK-LOYW3V28-ABC123", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "TRK-LOYW3V28-ABC123", got["trackingNumber"])
	assert.NotContains(t, got, "userId")
}

func TestTrack_NotFound(t *testing.T) {
	f := newFixture(t)
	f.orders.EXPECT().TrackByNumber(gomock.Any(), "nope").Return(nil, fmt.Errorf("tracking nope: %w", domain.ErrNotFound))

	w := f.do(http.MethodGet, "/api/v1/orders/track/nope", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", errorOf(t, w))
}

func TestAuthGate(t *testing.T) {
	t.Run("missing_token", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodGet, "/api/v1/orders", "", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked_token", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any(), "revoked").Return(domain.Principal{}, domain.ErrUnauthenticated)
		w := f.do(http.MethodGet, "/api/v1/orders", "revoked", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("session_store_down", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any(), "tok").
			Return(domain.Principal{}, domain.StoreUnavailable("validate session", errors.New("refused")))
		w := f.do(http.MethodGet, "/api/v1/orders", "tok", "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(user)
		input := domain.CreateOrderInput{SenderName: "Alice", RecipientName: "Bob", Origin: "Moscow", Destination: "Kazan"}
		f.orders.EXPECT().Create(gomock.Any(), input, user.ID).Return(sampleOrder(), nil)

		w := f.do(http.MethodPost, "/api/v1/orders", token,
			`{"senderName":"Alice","recipientName":"Bob","origin":"Moscow","destination":"Kazan"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(user)
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any(), user.ID).
			Return(nil, fmt.Errorf("%w: senderName обязателен", validate.ErrInvalidInput))

		w := f.do(http.MethodPost, "/api/v1/orders", token, `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "senderName обязателен", errorOf(t, w))
	})

	t.Run("malformed_json", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(user)
		w := f.do(http.MethodPost, "/api/v1/orders", token, `{`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListOrders_PassesQuery(t *testing.T) {
	f := newFixture(t)
	token := f.as(user)

	filter := domain.OrderFilter{Status: domain.OrderStatusPending, SenderName: "ali"}
	req := domain.PageRequest{Page: 2, Limit: 100}
	page := &domain.Page[*domain.Order]{Data: []*domain.Order{}, Meta: domain.NewPageMeta(0, req)}
	f.orders.EXPECT().List(gomock.Any(), filter, req, user).Return(page, nil)

	w := f.do(http.MethodGet, "/api/v1/orders?status=PENDING&senderName=ali&page=2&limit=500", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Data []any          `json:"data"`
		Meta domain.PageMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotNil(t, got.Data)
	assert.Equal(t, 2, got.Meta.Page)
}

func TestGetOrder_ForeignIsNotFound(t *testing.T) {
	f := newFixture(t)
	token := f.as(user)
	f.orders.EXPECT().GetByID(gomock.Any(), "o2", user).Return(nil, fmt.Errorf("order o2: %w", domain.ErrNotFound))

	w := f.do(http.MethodGet, "/api/v1/orders/o2", token, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("user_forbidden", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(user)
		w := f.do(http.MethodPatch, "/api/v1/orders/o1/status", token, `{"status":"IN_TRANSIT"}`)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin_ok", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(admin)
		updated := sampleOrder()
		updated.Status = domain.OrderStatusInTransit
		f.orders.EXPECT().UpdateStatus(gomock.Any(), "o1", domain.OrderStatusInTransit, admin).Return(updated, nil)

		w := f.do(http.MethodPatch, "/api/v1/orders/o1/status", token, `{"status":"IN_TRANSIT"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("admin_invalid_transition", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(admin)
		f.orders.EXPECT().UpdateStatus(gomock.Any(), "o1", domain.OrderStatusPending, admin).
			Return(nil, fmt.Errorf("%w: DELIVERED -> PENDING", domain.ErrInvalidTransition))

		w := f.do(http.MethodPatch, "/api/v1/orders/o1/status", token, `{"status":"PENDING"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelOrder_InvalidTransition(t *testing.T) {
	f := newFixture(t)
	token := f.as(user)
	f.orders.EXPECT().Cancel(gomock.Any(), "o1", user).
		Return(nil, fmt.Errorf("%w: only pending orders can be canceled", domain.ErrInvalidTransition))

	w := f.do(http.MethodPatch, "/api/v1/orders/o1/cancel", token, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("register_conflict", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Register(gomock.Any(), domain.RegisterInput{Email: "a@b.c", Password: "secret1", Name: "Al"}).
			Return(nil, fmt.Errorf("email a@b.c: %w", domain.ErrConflict))

		w := f.do(http.MethodPost, "/api/v1/auth/register", "", `{"email":"a@b.c","password":"secret1","name":"Al"}`)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login_ok", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Login(gomock.Any(), domain.LoginInput{Email: "a@b.c", Password: "secret1"}).
			Return(&domain.AuthResult{AccessToken: "tok", User: &domain.User{ID: "u1", PasswordHash: "hash"}}, nil)

		w := f.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.c","password":"secret1"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"accessToken":"tok"`)
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("login_bad_credentials", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, domain.ErrUnauthenticated)

		w := f.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.c","password":"wrong12"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout_uses_bearer", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(user)
		f.auth.EXPECT().Logout(gomock.Any(), token).Return(nil)

		w := f.do(http.MethodPost, "/api/v1/auth/logout", token, "")
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUsersEndpoints(t *testing.T) {
	t.Run("me", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(user)

		w := f.do(http.MethodGet, "/api/v1/users/me", token, "")
		require.Equal(t, http.StatusOK, w.Code)
		var got domain.Principal
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, user, got)
	})

	t.Run("my_sessions", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(user)
		f.users.EXPECT().Sessions(gomock.Any(), user.ID).Return(&domain.SessionsSummary{Count: 0, Sessions: []domain.Session{}}, nil)

		w := f.do(http.MethodGet, "/api/v1/users/me/sessions", token, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"count":0,"sessions":[]}`, w.Body.String())
	})

	t.Run("list_requires_admin", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(user)
		w := f.do(http.MethodGet, "/api/v1/users", token, "")
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("delete_with_orders_conflict", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(admin)
		f.users.EXPECT().Delete(gomock.Any(), "u9").Return(domain.ErrConflict)

		w := f.do(http.MethodDelete, "/api/v1/users/u9", token, "")
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("update_role", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(admin)
		f.users.EXPECT().UpdateRole(gomock.Any(), "u9", domain.RoleAdmin).Return(&domain.User{ID: "u9", Role: domain.RoleAdmin}, nil)

		w := f.do(http.MethodPatch, "/api/v1/users/u9/role", token, `{"role":"ADMIN"}`)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("revoke_sessions", func(t *testing.T) {
		f := newFixture(t)
		token := f.as(admin)
		f.users.EXPECT().RevokeSessions(gomock.Any(), "u9").Return(nil)

		w := f.do(http.MethodDelete, "/api/v1/users/u9/sessions", token, "")
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	down := domain.HealthReport{
		Status: "unhealthy",
		Services: map[string]domain.ServiceStatus{
			"database": {Status: domain.HealthUp},
			"cache":    {Status: domain.HealthDown, Error: "refused"},
		},
	}

	f := newFixture(t)
	f.health.EXPECT().Check(gomock.Any()).Return(down).Times(2)

	w := f.do(http.MethodGet, "/api/v1/health", "", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = f.do(http.MethodGet, "/api/v1/health/ready", "", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not ready"}`, w.Body.String())

	w = f.do(http.MethodGet, "/api/v1/health/live", "", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestNoRoute(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/no/such/route", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route not found", errorOf(t, w))
}

func TestHandlerTimeout_500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderService(ctrl)
	orders.EXPECT().TrackByNumber(gomock.Any(), "slow").DoAndReturn(func(ctx context.Context, _ string) (*domain.Order, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	h := rest.NewHandler(rest.Services{Orders: orders}, noopLogger{}, 10*time.Millisecond)
	r := rest.NewRouter(h, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/track/slow", http.NoBody))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", errorOf(t, w))
}
