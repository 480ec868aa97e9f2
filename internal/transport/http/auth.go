package rest

import (
	"net/http"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) register(c *gin.Context) {
	var input domain.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.auth.Register(ctx, input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) login(c *gin.Context) {
	var input domain.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.auth.Login(ctx, input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) logout(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.auth.Logout(ctx, c.GetString(tokenKey)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
