package rest

import (
	"net/http"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/pkg/httpx"
	"github.com/gin-gonic/gin"
)

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) createOrder(c *gin.Context) {
	var input domain.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.orders.Create(ctx, input, principalFrom(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) listOrders(c *gin.Context) {
	page, limit := httpx.ParsePage(c, domain.DefaultPageLimit, domain.MaxPageLimit)
	filter := domain.OrderFilter{
		Status:        domain.OrderStatus(c.Query("status")),
		SenderName:    c.Query("senderName"),
		RecipientName: c.Query("recipientName"),
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.orders.List(ctx, filter, domain.PageRequest{Page: page, Limit: limit}, principalFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// trackOrder — публичный трекинг без аутентификации.
func (h *Handler) trackOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.orders.TrackByNumber(ctx, c.Param("trackingNumber"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) getOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.orders.GetByID(ctx, c.Param("id"), principalFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.orders.UpdateStatus(ctx, c.Param("id"), req.Status, principalFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) cancelOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.orders.Cancel(ctx, c.Param("id"), principalFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
