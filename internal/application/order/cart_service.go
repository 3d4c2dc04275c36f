package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/catalog"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/cache"
)

// CartService manages session carts. Stock is re-checked against the
// current catalog snapshot on every add.
type CartService struct {
	productRepo catalog.ProductRepository
	cartStore   cache.CartStore
	resolver    *catalog.StockResolver
	logger      *zap.Logger
}

// NewCartService creates a new cart service.
func NewCartService(productRepo catalog.ProductRepository, cartStore cache.CartStore, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		productRepo: productRepo,
		cartStore:   cartStore,
		resolver:    catalog.NewStockResolver(),
		logger:      logger,
	}
}

// Get returns the session cart, creating an empty one when absent.
func (s *CartService) Get(ctx context.Context, sessionID string) (*CartResponse, error) {
	cart, err := cache.GetOrCreate(ctx, s.cartStore, sessionID)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(cart)
	return &resp, nil
}

// AddItem adds (or, with a negative quantity, removes) units of a product
// to the session cart. The whole delta is rejected when it would exceed
// the product's resolved stock.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByCodigo(ctx, req.Codigo)
	if err != nil {
		return nil, err
	}
	if !product.Ativo {
		return nil, shared.NewDomainError("NOT_FOUND", "Product is not available")
	}

	resolvedStock, err := s.resolveStock(ctx, product)
	if err != nil {
		return nil, err
	}

	cart, err := cache.GetOrCreate(ctx, s.cartStore, sessionID)
	if err != nil {
		return nil, err
	}
	if err := cart.AddItem(product, req.Quantidade, resolvedStock); err != nil {
		return nil, err
	}
	if err := s.cartStore.Put(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Debug("cart updated",
		zap.String("session_id", sessionID),
		zap.String("codigo", product.Codigo),
		zap.Int("delta", req.Quantidade))

	resp := ToCartResponse(cart)
	return &resp, nil
}

// RemoveItem decrements the line for the given product code by one unit,
// deleting the line when it reaches zero.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, codigo string) (*CartResponse, error) {
	cart, err := s.cartStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Cart not found")
	}

	line, ok := cart.FindLineByCodigo(codigo)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Item not found in cart")
	}
	if err := cart.RemoveOne(line.ID); err != nil {
		return nil, err
	}
	if err := s.cartStore.Put(ctx, cart); err != nil {
		return nil, err
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// Clear discards the session cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.cartStore.Delete(ctx, sessionID)
}

// resolveStock computes the purchasable quantity of a product against the
// current catalog snapshot, so kits derive stock from their components.
func (s *CartService) resolveStock(ctx context.Context, product *catalog.Product) (int, error) {
	if !product.IsKit() {
		return s.resolver.Resolve(product, nil), nil
	}
	candidates, err := s.productRepo.FindCatalogCandidates(ctx)
	if err != nil {
		return 0, err
	}
	pointers := make([]*catalog.Product, len(candidates))
	for i := range candidates {
		pointers[i] = &candidates[i]
	}
	return s.resolver.Resolve(product, catalog.BuildProductIndex(pointers)), nil
}
