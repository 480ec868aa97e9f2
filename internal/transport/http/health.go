package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) healthCheck(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	report := h.health.Check(ctx)
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

func (h *Handler) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readiness — готов, если доступны и БД, и кэш.
func (h *Handler) readiness(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if !h.health.Check(ctx).Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
