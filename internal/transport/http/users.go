package rest

import (
	"net/http"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/gin-gonic/gin"
)

type updateRoleRequest struct {
	Role domain.Role `json:"role"`
}

// me — текущий субъект запроса.
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, principalFrom(c))
}

func (h *Handler) mySessions(c *gin.Context) {
	h.sessionsOf(c, principalFrom(c).ID)
}

func (h *Handler) listUsers(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	users, err := h.users.List(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) getUser(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.users.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) updateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.users.UpdateRole(ctx, c.Param("id"), req.Role)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.users.Delete(ctx, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *Handler) revokeUserSessions(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.users.RevokeSessions(ctx, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sessions revoked"})
}

func (h *Handler) sessionsOf(c *gin.Context, userID string) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	summary, err := h.users.Sessions(ctx, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
