package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared/valueobject"
)

// TipoProduto distinguishes simple products from kits assembled out of
// other products
type TipoProduto string

const (
	TipoProdutoSimple TipoProduto = "simple"
	TipoProdutoKit    TipoProduto = "kit"
)

// KitComponent is one entry of a kit's bill of materials
type KitComponent struct {
	shared.BaseEntity
	ProductID           uuid.UUID `gorm:"type:uuid;not null;index"`
	ComponentID         uuid.UUID `gorm:"type:uuid;not null;index"`
	QuantidadeUtilizada int       `gorm:"not null"`
	SortOrder           int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (KitComponent) TableName() string {
	return "kit_components"
}

// Product represents a product/SKU in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	Codigo             string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Descricao          string          `gorm:"type:varchar(200);not null"`
	Categoria          string          `gorm:"type:varchar(100);index"`
	Ativo              bool            `gorm:"not null;default:true"`
	ApareceCatalogo    bool            `gorm:"not null;default:false;index"`
	PrecoAtacado       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PrecoOriginalPromo decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // 0 = no promotion reference price
	PrecoPromocional   bool            `gorm:"not null;default:false"`
	IsAssado           bool            `gorm:"not null;default:false"`
	TipoProduto        TipoProduto     `gorm:"type:varchar(20);not null;default:'simple'"`
	ComponentesKit     []KitComponent  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Estoque            int             `gorm:"not null;default:0"`
	ImagemURL          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new simple product
func NewProduct(codigo, descricao string, precoAtacado decimal.Decimal) (*Product, error) {
	if err := validateCodigo(codigo); err != nil {
		return nil, err
	}
	if err := validateDescricao(descricao); err != nil {
		return nil, err
	}
	if precoAtacado.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Wholesale price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Codigo:             strings.ToUpper(codigo),
		Descricao:          descricao,
		Ativo:              true,
		PrecoAtacado:       precoAtacado,
		PrecoOriginalPromo: decimal.Zero,
		TipoProduto:        TipoProdutoSimple,
	}, nil
}

// NewKit creates a new kit product with the given bill of materials.
// A kit must have at least one component; its stock is derived from
// component stock and never stored.
func NewKit(codigo, descricao string, precoAtacado decimal.Decimal, components []KitComponent) (*Product, error) {
	product, err := NewProduct(codigo, descricao, precoAtacado)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, shared.NewDomainError("INVALID_KIT", "Kit must have at least one component")
	}
	for _, c := range components {
		if c.QuantidadeUtilizada <= 0 {
			return nil, shared.NewDomainError("INVALID_KIT", "Kit component quantity must be positive")
		}
	}

	product.TipoProduto = TipoProdutoKit
	product.ComponentesKit = components
	product.Estoque = 0
	return product, nil
}

// IsKit returns true if this product's stock is derived from components
func (p *Product) IsKit() bool {
	return p.TipoProduto == TipoProdutoKit
}

// Update updates the product's basic information
func (p *Product) Update(descricao, categoria string) error {
	if err := validateDescricao(descricao); err != nil {
		return err
	}

	p.Descricao = descricao
	p.Categoria = strings.TrimSpace(categoria)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// UpdatePrecoAtacado updates the wholesale price
func (p *Product) UpdatePrecoAtacado(preco decimal.Decimal) error {
	if preco.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Wholesale price cannot be negative")
	}

	p.PrecoAtacado = preco
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPromocao puts the product on promotion, keeping the original price
// for display. A zero original price clears the promotion reference.
func (p *Product) SetPromocao(precoOriginal decimal.Decimal) error {
	if precoOriginal.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Original price cannot be negative")
	}

	p.PrecoOriginalPromo = precoOriginal
	p.PrecoPromocional = !precoOriginal.IsZero()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ClearPromocao removes the promotion flag and reference price
func (p *Product) ClearPromocao() {
	p.PrecoOriginalPromo = decimal.Zero
	p.PrecoPromocional = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetEstoque sets the stored stock level.
// Kits have no stored stock of their own.
func (p *Product) SetEstoque(estoque int) error {
	if p.IsKit() {
		return shared.NewDomainError("INVALID_STOCK", "Kit stock is derived from components and cannot be set")
	}
	if estoque < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Estoque = estoque
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCatalogVisibility toggles whether the product appears in the
// wholesale catalog
func (p *Product) SetCatalogVisibility(visible bool) {
	p.ApareceCatalogo = visible
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetImagemURL sets the product image URL
func (p *Product) SetImagemURL(url string) {
	p.ImagemURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetIsAssado marks the product as a baked good, which places it in the
// assados catalog section
func (p *Product) SetIsAssado(assado bool) {
	p.IsAssado = assado
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Ativo {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Ativo = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the product and hides it from the catalog
func (p *Product) Deactivate() error {
	if !p.Ativo {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.Ativo = false
	p.ApareceCatalogo = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// GetPrecoAtacadoMoney returns the wholesale price as a Money value object
func (p *Product) GetPrecoAtacadoMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.PrecoAtacado)
}

// validateCodigo validates the product code (SKU)
func validateCodigo(codigo string) error {
	if codigo == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(codigo) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range codigo {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateDescricao validates the product description
func validateDescricao(descricao string) error {
	if descricao == "" {
		return shared.NewDomainError("INVALID_NAME", "Product description cannot be empty")
	}
	if len(descricao) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product description cannot exceed 200 characters")
	}
	return nil
}
