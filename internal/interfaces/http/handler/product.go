package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/Tiago-beta/sabor-d-minas-sub002/internal/application/catalog"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/interfaces/http/dto"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/interfaces/http/middleware"
)

// ProductHandler handles the admin product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers the product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/produtos")
	{
		products.GET("", h.List)
		products.POST("", h.Create)
		products.GET("/:id", h.GetByID)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.POST("/:id/ativar", h.Activate)
		products.POST("/:id/desativar", h.Deactivate)
		products.PUT("/:id/estoque", h.SetEstoque)
		products.PUT("/:id/promocao", h.SetPromocao)
		products.DELETE("/:id/promocao", h.ClearPromocao)
		products.PUT("/:id/catalogo", h.SetCatalogVisibility)
	}
}

// Create registers a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns products newest first
func (h *ProductHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := catalogapp.ProductListFilter{
		Page:      listReq.Page,
		PageSize:  listReq.PageSize,
		Search:    listReq.Search,
		Categoria: c.Query("categoria"),
	}
	if ativo := c.Query("ativo"); ativo != "" {
		value := ativo == "true"
		filter.Ativo = &value
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies partial changes to a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate reactivates a product
func (h *ProductHandler) Activate(c *gin.Context) {
	h.lifecycle(c, h.productService.Activate)
}

// Deactivate deactivates a product and hides it from the catalog
func (h *ProductHandler) Deactivate(c *gin.Context) {
	h.lifecycle(c, h.productService.Deactivate)
}

// SetEstoque replaces the stock of a simple product
func (h *ProductHandler) SetEstoque(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.SetEstoqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.productService.SetEstoque(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetPromocao marks a product as promotional
func (h *ProductHandler) SetPromocao(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.SetPromocaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.productService.SetPromocao(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ClearPromocao removes the promotional flag
func (h *ProductHandler) ClearPromocao(c *gin.Context) {
	h.lifecycle(c, h.productService.ClearPromocao)
}

// SetCatalogVisibilityRequest toggles storefront visibility
type SetCatalogVisibilityRequest struct {
	Visivel *bool `json:"visivel" binding:"required"`
}

// SetCatalogVisibility toggles whether a product shows on the storefront
func (h *ProductHandler) SetCatalogVisibility(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req SetCatalogVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.productService.SetCatalogVisibility(c.Request.Context(), id, *req.Visivel)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ProductHandler) lifecycle(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ProductHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}
