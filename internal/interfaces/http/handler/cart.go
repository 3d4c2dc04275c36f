package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/Tiago-beta/sabor-d-minas-sub002/internal/application/order"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/interfaces/http/middleware"
)

// CartHandler handles the session cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *orderapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *orderapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/atacado/carrinho/:sessao")
	{
		cart.GET("", h.Get)
		cart.DELETE("", h.Clear)
		cart.POST("/itens", h.AddItem)
		cart.DELETE("/itens/:codigo", h.RemoveItem)
	}
}

// Get returns the session cart
func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.cartService.Get(c.Request.Context(), c.Param("sessao"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds units of a product to the session cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req orderapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), c.Param("sessao"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem removes one unit of a product from the session cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	resp, err := h.cartService.RemoveItem(c.Request.Context(), c.Param("sessao"), c.Param("codigo"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear discards the session cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), c.Param("sessao")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
