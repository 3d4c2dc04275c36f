package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/catalog"
)

// CreateProductRequest is the payload for registering a new product.
// Sku is optional; when omitted a sequential code is generated.
type CreateProductRequest struct {
	Nome      string  `json:"nome" binding:"required,min=1,max=200"`
	Preco     float64 `json:"preco" binding:"min=0"`
	Sku       string  `json:"sku" binding:"omitempty,max=50"`
	Categoria string  `json:"categoria" binding:"omitempty,max=100"`
	ImagemURL string  `json:"imagem_url" binding:"omitempty,max=500"`
}

// UpdateProductRequest carries partial updates; nil fields are left untouched.
type UpdateProductRequest struct {
	Nome      *string  `json:"nome" binding:"omitempty,min=1,max=200"`
	Preco     *float64 `json:"preco" binding:"omitempty,min=0"`
	Categoria *string  `json:"categoria" binding:"omitempty,max=100"`
	ImagemURL *string  `json:"imagem_url" binding:"omitempty,max=500"`
	IsAssado  *bool    `json:"is_assado"`
}

// SetPromocaoRequest activates a promotional price display. The current
// wholesale price becomes the promotional price and PrecoOriginal is shown
// struck through on the storefront.
type SetPromocaoRequest struct {
	PrecoOriginal float64 `json:"preco_original" binding:"required,gt=0"`
}

// SetEstoqueRequest replaces the absolute stock of a simple product.
type SetEstoqueRequest struct {
	Estoque int `json:"estoque" binding:"min=0"`
}

// KitComponentResponse describes one BOM row of a kit.
type KitComponentResponse struct {
	ComponentID         uuid.UUID `json:"component_id"`
	Codigo              string    `json:"codigo,omitempty"`
	QuantidadeUtilizada int       `json:"quantidade_utilizada"`
}

// ProductResponse is the admin-facing view of a product. Estoque carries the
// resolved stock, so kits report the value derived from their components.
type ProductResponse struct {
	ID                 uuid.UUID              `json:"id"`
	Codigo             string                 `json:"codigo"`
	Descricao          string                 `json:"descricao"`
	Categoria          string                 `json:"categoria,omitempty"`
	Ativo              bool                   `json:"ativo"`
	ApareceCatalogo    bool                   `json:"aparece_catalogo"`
	PrecoAtacado       float64                `json:"preco_atacado"`
	PrecoOriginalPromo float64                `json:"preco_original_promocao,omitempty"`
	PrecoPromocional   bool                   `json:"preco_promocional"`
	IsAssado           bool                   `json:"is_assado"`
	TipoProduto        string                 `json:"tipo_produto"`
	ComponentesKit     []KitComponentResponse `json:"componentes_kit,omitempty"`
	Estoque            int                    `json:"estoque"`
	ImagemURL          string                 `json:"imagem_url,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// CatalogItemResponse is the storefront view of a visible product.
type CatalogItemResponse struct {
	Codigo             string  `json:"codigo"`
	Descricao          string  `json:"descricao"`
	Categoria          string  `json:"categoria,omitempty"`
	PrecoAtacado       float64 `json:"preco_atacado"`
	PrecoOriginalPromo float64 `json:"preco_original_promocao,omitempty"`
	PrecoPromocional   bool    `json:"preco_promocional"`
	IsAssado           bool    `json:"is_assado"`
	Estoque            int     `json:"estoque"`
	ImagemURL          string  `json:"imagem_url,omitempty"`
}

// CatalogResponse groups the visible products into the storefront sections.
type CatalogResponse struct {
	Assados   []CatalogItemResponse `json:"assados"`
	Promocoes []CatalogItemResponse `json:"promocoes"`
	Gerais    []CatalogItemResponse `json:"gerais"`
	Total     int                   `json:"total"`
}

// ProductListFilter captures admin listing parameters.
type ProductListFilter struct {
	Page      int
	PageSize  int
	Search    string
	Categoria string
	Ativo     *bool
}

// ToProductResponse maps a domain product to its admin view. The resolved
// stock must be computed by the caller so kits are reported correctly.
func ToProductResponse(p *catalog.Product, resolvedStock int) ProductResponse {
	resp := ProductResponse{
		ID:               p.ID,
		Codigo:           p.Codigo,
		Descricao:        p.Descricao,
		Categoria:        p.Categoria,
		Ativo:            p.Ativo,
		ApareceCatalogo:  p.ApareceCatalogo,
		PrecoAtacado:     p.PrecoAtacado.InexactFloat64(),
		PrecoPromocional: p.PrecoPromocional,
		IsAssado:         p.IsAssado,
		TipoProduto:      string(p.TipoProduto),
		Estoque:          resolvedStock,
		ImagemURL:        p.ImagemURL,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.PrecoPromocional {
		resp.PrecoOriginalPromo = p.PrecoOriginalPromo.InexactFloat64()
	}
	for _, comp := range p.ComponentesKit {
		resp.ComponentesKit = append(resp.ComponentesKit, KitComponentResponse{
			ComponentID:         comp.ComponentID,
			QuantidadeUtilizada: comp.QuantidadeUtilizada,
		})
	}
	return resp
}

// ToCatalogItemResponse maps a visible product to its storefront view.
func ToCatalogItemResponse(p *catalog.Product, resolvedStock int) CatalogItemResponse {
	item := CatalogItemResponse{
		Codigo:           p.Codigo,
		Descricao:        p.Descricao,
		Categoria:        p.Categoria,
		PrecoAtacado:     p.PrecoAtacado.InexactFloat64(),
		PrecoPromocional: p.PrecoPromocional,
		IsAssado:         p.IsAssado,
		Estoque:          resolvedStock,
		ImagemURL:        p.ImagemURL,
	}
	if p.PrecoPromocional {
		item.PrecoOriginalPromo = p.PrecoOriginalPromo.InexactFloat64()
	}
	return item
}
