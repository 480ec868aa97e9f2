package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/Gunvolt24/logistics/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Services — прикладные сервисы, которые обслуживает транспорт.
type Services struct {
	Orders ports.OrderService
	Auth   ports.AuthService
	Users  ports.UserService
	Health ports.HealthService
}

type Handler struct {
	orders     ports.OrderService
	auth       ports.AuthService
	users      ports.UserService
	health     ports.HealthService
	log        ports.Logger
	reqTimeout time.Duration
}

// NewHandler — reqTimeout <= 0 означает 5s.
func NewHandler(services Services, log ports.Logger, reqTimeout time.Duration) *Handler {
	if reqTimeout <= 0 {
		reqTimeout = 5 * time.Second
	}
	return &Handler{
		orders:     services.Orders,
		auth:       services.Auth,
		users:      services.Users,
		health:     services.Health,
		log:        log,
		reqTimeout: reqTimeout,
	}
}

// NewRouter — gin-роутер; otelServiceName пустой — без otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.POST("/logout", h.authRequired(), h.logout)

	orders := api.Group("/orders")
	orders.GET("/track/:trackingNumber", h.trackOrder)
	orders.Use(h.authRequired())
	orders.POST("", h.createOrder)
	orders.GET("", h.listOrders)
	orders.GET("/:id", h.getOrder)
	orders.PATCH("/:id/status", requireRole(domain.RoleAdmin), h.updateOrderStatus)
	orders.PATCH("/:id/cancel", h.cancelOrder)

	users := api.Group("/users", h.authRequired())
	users.GET("/me", h.me)
	users.GET("/me/sessions", h.mySessions)
	admin := users.Group("", requireRole(domain.RoleAdmin))
	admin.GET("", h.listUsers)
	admin.GET("/:id", h.getUser)
	admin.PATCH("/:id/role", h.updateUserRole)
	admin.DELETE("/:id", h.deleteUser)
	admin.DELETE("/:id/sessions", h.revokeUserSessions)

	health := api.Group("/health")
	health.GET("", h.healthCheck)
	health.GET("/live", h.liveness)
	health.GET("/ready", h.readiness)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return r
}

// requestContext — контекст запроса с таймаутом обработчика.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.reqTimeout)
}
