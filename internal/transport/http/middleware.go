package rest

import (
	"net/http"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/pkg/ctxmeta"
	"github.com/Gunvolt24/logistics/pkg/httpx"
	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	tokenKey     = "access_token"
)

// authRequired — шлюз аутентификации: bearer-токен, живая сессия, не в чёрном списке.
// Недоступность реестра сессий — 503, а не 401.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := httpx.BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		ctx, cancel := h.requestContext(c)
		principal, err := h.auth.Authenticate(ctx, token)
		cancel()
		if err != nil {
			h.writeError(c, err)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Set(tokenKey, token)
		c.Request = c.Request.WithContext(ctxmeta.WithUserID(c.Request.Context(), principal.ID))
		c.Next()
	}
}

// requireRole — ролевой шлюз; единственное место, где отдаётся 403.
func requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principalFrom(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) domain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}
