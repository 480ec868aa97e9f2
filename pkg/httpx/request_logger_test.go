package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/logistics/internal/ports/mocks"
	"github.com/Gunvolt24/logistics/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
)

func newLoggedRouter(t *testing.T) (*gin.Engine, *mocks.MockLogger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := mocks.NewMockLogger(gomock.NewController(t))
	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/api/v1/health/ready", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r, log
}

func serve(r http.Handler, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	r, log := newLoggedRouter(t)

	gomock.InOrder(
		log.EXPECT().Infof(gomock.Any(), gomock.Any(), "GET", "/ok", http.StatusOK, gomock.Any(), gomock.Any(), gomock.Any()),
		log.EXPECT().Warnf(gomock.Any(), gomock.Any(), "GET", "/bad", http.StatusBadRequest, gomock.Any(), gomock.Any(), gomock.Any()),
		log.EXPECT().Errorf(gomock.Any(), gomock.Any(), "GET", "/boom", http.StatusInternalServerError, gomock.Any(), gomock.Any(), gomock.Any()),
	)

	serve(r, "/ok")
	serve(r, "/bad")
	serve(r, "/boom")
}

// Пробы и /ping не логируются даже с ошибочным статусом.
func TestRequestLogger_SkipsProbes(t *testing.T) {
	r, _ := newLoggedRouter(t)

	serve(r, "/ping")
	serve(r, "/api/v1/health/ready")
}

// Для неизвестного маршрута в лог попадает путь запроса.
func TestRequestLogger_UnmatchedRouteUsesPath(t *testing.T) {
	r, log := newLoggedRouter(t)

	log.EXPECT().Warnf(gomock.Any(), gomock.Any(), "GET", "/nowhere", http.StatusNotFound, gomock.Any(), gomock.Any(), gomock.Any())

	serve(r, "/nowhere")
}
