package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/catalog"
)

// CatalogService builds the public storefront view: visibility filtering,
// stock resolution, search, sectioning and shuffling.
type CatalogService struct {
	productRepo   catalog.ProductRepository
	resolver      *catalog.StockResolver
	filter        *catalog.CatalogFilter
	hideBatchSize int
	logger        *zap.Logger
}

// NewCatalogService creates a new catalog service. hideBatchSize bounds how
// many out-of-stock products are hidden per reconciliation batch.
func NewCatalogService(productRepo catalog.ProductRepository, hideBatchSize int, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hideBatchSize <= 0 {
		hideBatchSize = 10
	}
	resolver := catalog.NewStockResolver()
	return &CatalogService{
		productRepo:   productRepo,
		resolver:      resolver,
		filter:        catalog.NewCatalogFilter(resolver),
		hideBatchSize: hideBatchSize,
		logger:        logger,
	}
}

// LoadCatalog returns the storefront catalog, optionally narrowed by a
// search term and a category. Section order is shuffled on every call.
func (s *CatalogService) LoadCatalog(ctx context.Context, busca, categoria string) (*CatalogResponse, error) {
	candidates, err := s.productRepo.FindCatalogCandidates(ctx)
	if err != nil {
		return nil, err
	}
	all := productPointers(candidates)
	index := catalog.BuildProductIndex(all)

	visible, toHide := s.filter.Visible(all)
	if len(toHide) > 0 {
		go s.reconcileHidden(toHide)
	}

	visible = s.filter.Search(visible, busca)
	sections := s.filter.Partition(visible, categoria)
	s.filter.Shuffle(sections.Assados)
	s.filter.Shuffle(sections.Promocoes)
	s.filter.Shuffle(sections.Gerais)

	response := &CatalogResponse{
		Assados:   s.toItems(sections.Assados, index),
		Promocoes: s.toItems(sections.Promocoes, index),
		Gerais:    s.toItems(sections.Gerais, index),
	}
	response.Total = len(response.Assados) + len(response.Promocoes) + len(response.Gerais)
	return response, nil
}

func (s *CatalogService) toItems(products []*catalog.Product, index catalog.ProductIndex) []CatalogItemResponse {
	items := make([]CatalogItemResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ToCatalogItemResponse(p, s.resolver.Resolve(p, index)))
	}
	return items
}

// reconcileHidden clears the catalog flag of products whose only visibility
// failure is lack of stock. Runs detached from the request; failures are
// logged and retried on the next catalog load.
func (s *CatalogService) reconcileHidden(toHide []*catalog.Product) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for start := 0; start < len(toHide); start += s.hideBatchSize {
		end := start + s.hideBatchSize
		if end > len(toHide) {
			end = len(toHide)
		}
		for _, p := range toHide[start:end] {
			if err := s.productRepo.HideFromCatalog(ctx, p.ID); err != nil {
				s.logger.Warn("failed to hide out-of-stock product",
					zap.String("codigo", p.Codigo),
					zap.String("product_id", p.ID.String()),
					zap.Error(err))
				continue
			}
			s.logger.Info("hid out-of-stock product from catalog",
				zap.String("codigo", p.Codigo))
		}
	}
}
