package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/catalog"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared"
)

// ProductService handles the admin-facing product lifecycle.
type ProductService struct {
	productRepo catalog.ProductRepository
	resolver    *catalog.StockResolver
	logger      *zap.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		resolver:    catalog.NewStockResolver(),
		logger:      logger,
	}
}

// Create registers a new product. When no SKU is supplied a sequential
// code is generated.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	codigo := req.Sku
	if codigo == "" {
		generated, err := s.generateCodigo(ctx)
		if err != nil {
			return nil, err
		}
		codigo = generated
	} else {
		exists, err := s.productRepo.ExistsByCodigo(ctx, codigo)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Product with code %s already exists", codigo))
		}
	}

	product, err := catalog.NewProduct(codigo, req.Nome, decimal.NewFromFloat(req.Preco))
	if err != nil {
		return nil, err
	}
	if req.Categoria != "" {
		if err := product.Update(req.Nome, req.Categoria); err != nil {
			return nil, err
		}
	}
	if req.ImagemURL != "" {
		product.SetImagemURL(req.ImagemURL)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("codigo", product.Codigo),
		zap.String("product_id", product.ID.String()))

	response := ToProductResponse(product, product.Estoque)
	return &response, nil
}

// GetByID retrieves a product by ID.
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.toResponseWithStock(ctx, product)
}

// GetByCodigo retrieves a product by its code.
func (s *ProductService) GetByCodigo(ctx context.Context, codigo string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	return s.toResponseWithStock(ctx, product)
}

// List retrieves products with filtering and pagination, newest first.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Categoria != "" {
		domainFilter.Filters["categoria"] = filter.Categoria
	}
	if filter.Ativo != nil {
		domainFilter.Filters["ativo"] = *filter.Ativo
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	index, err := s.stockIndex(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		responses = append(responses, ToProductResponse(p, s.resolver.Resolve(p, index)))
	}
	return responses, total, nil
}

// Update applies the non-nil fields of the request to a product.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	descricao := product.Descricao
	if req.Nome != nil {
		descricao = *req.Nome
	}
	categoria := product.Categoria
	if req.Categoria != nil {
		categoria = *req.Categoria
	}
	if err := product.Update(descricao, categoria); err != nil {
		return nil, err
	}

	if req.Preco != nil {
		if err := product.UpdatePrecoAtacado(decimal.NewFromFloat(*req.Preco)); err != nil {
			return nil, err
		}
	}
	if req.ImagemURL != nil {
		product.SetImagemURL(*req.ImagemURL)
	}
	if req.IsAssado != nil {
		product.SetIsAssado(*req.IsAssado)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.toResponseWithStock(ctx, product)
}

// SetEstoque replaces the absolute stock of a simple product.
func (s *ProductService) SetEstoque(ctx context.Context, productID uuid.UUID, req SetEstoqueRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.SetEstoque(req.Estoque); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product, product.Estoque)
	return &response, nil
}

// SetPromocao marks a product as promotional, recording the original price
// shown struck through on the storefront.
func (s *ProductService) SetPromocao(ctx context.Context, productID uuid.UUID, req SetPromocaoRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.SetPromocao(decimal.NewFromFloat(req.PrecoOriginal)); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.toResponseWithStock(ctx, product)
}

// ClearPromocao removes the promotional flag.
func (s *ProductService) ClearPromocao(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.ClearPromocao()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.toResponseWithStock(ctx, product)
}

// SetCatalogVisibility toggles whether the product appears on the storefront.
func (s *ProductService) SetCatalogVisibility(ctx context.Context, productID uuid.UUID, visible bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.SetCatalogVisibility(visible)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.toResponseWithStock(ctx, product)
}

// Activate reactivates a product.
func (s *ProductService) Activate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Activate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.toResponseWithStock(ctx, product)
}

// Deactivate deactivates a product and removes it from the storefront.
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.toResponseWithStock(ctx, product)
}

// Delete removes a product permanently.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", productID.String()))
	return nil
}

func (s *ProductService) toResponseWithStock(ctx context.Context, product *catalog.Product) (*ProductResponse, error) {
	stock := product.Estoque
	if product.IsKit() {
		index, err := s.stockIndex(ctx)
		if err != nil {
			return nil, err
		}
		stock = s.resolver.Resolve(product, index)
	}
	response := ToProductResponse(product, stock)
	return &response, nil
}

func (s *ProductService) stockIndex(ctx context.Context) (catalog.ProductIndex, error) {
	candidates, err := s.productRepo.FindCatalogCandidates(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.BuildProductIndex(productPointers(candidates)), nil
}

func productPointers(products []catalog.Product) []*catalog.Product {
	pointers := make([]*catalog.Product, len(products))
	for i := range products {
		pointers[i] = &products[i]
	}
	return pointers
}

// generateCodigo produces the next free sequential product code.
func (s *ProductService) generateCodigo(ctx context.Context) (string, error) {
	count, err := s.productRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return "", err
	}
	for next := count + 1; next < count+1000; next++ {
		codigo := fmt.Sprintf("P%05d", next)
		exists, err := s.productRepo.ExistsByCodigo(ctx, codigo)
		if err != nil {
			return "", err
		}
		if !exists {
			return codigo, nil
		}
	}
	return "", shared.NewDomainError("INVALID_STATE", "Unable to generate a product code")
}
