package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/Tiago-beta/sabor-d-minas-sub002/internal/application/catalog"
)

// CatalogHandler handles the public wholesale storefront endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers the storefront catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/atacado/catalogo", h.Load)
}

// Load returns the visible catalog, partitioned into sections and shuffled
func (h *CatalogHandler) Load(c *gin.Context) {
	busca := c.Query("busca")
	categoria := c.Query("categoria")

	resp, err := h.catalogService.LoadCatalog(c.Request.Context(), busca, categoria)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
