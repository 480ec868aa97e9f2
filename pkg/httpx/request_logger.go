package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/gin-gonic/gin"
)

// quietRoutes — служебные маршруты, которые опрашиваются постоянно.
var quietRoutes = map[string]struct{}{
	"/metrics":             {},
	"/ping":                {},
	"/api/v1/health/live":  {},
	"/api/v1/health/ready": {},
}

// RequestLogger — одна строка на запрос. Уровень по статусу ответа: 5xx — error, 4xx — warn.
// request_id, user_id и trace_id логгер берёт из контекста запроса сам.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, quiet := quietRoutes[route]; quiet {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		status := c.Writer.Status()
		logf := log.Infof
		switch {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status >= http.StatusBadRequest:
			logf = log.Warnf
		}

		// c.Request уже содержит user_id, если запрос прошёл шлюз аутентификации
		logf(c.Request.Context(),
			"request method=%s route=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method, route, status, c.ClientIP(), time.Since(start), c.Writer.Size(),
		)
	}
}
