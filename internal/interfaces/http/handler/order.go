package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/Tiago-beta/sabor-d-minas-sub002/internal/application/order"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/interfaces/http/middleware"
)

// OrderHandler handles wholesale order submission and lookup
type OrderHandler struct {
	BaseHandler
	checkoutService *orderapp.CheckoutService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkoutService *orderapp.CheckoutService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/atacado/pedidos")
	{
		orders.POST("", h.Submit)
		orders.GET("/:link", h.GetByLink)
	}
}

// Submit turns the session cart into a persisted order and returns the
// order with its WhatsApp deep link
func (h *OrderHandler) Submit(c *gin.Context) {
	var req orderapp.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.checkoutService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByLink fetches an order by its share link token
func (h *OrderHandler) GetByLink(c *gin.Context) {
	resp, err := h.checkoutService.GetByLink(c.Request.Context(), c.Param("link"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
