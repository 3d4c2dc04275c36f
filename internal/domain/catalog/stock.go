package catalog

import (
	"github.com/google/uuid"
)

// ProductIndex is a snapshot of all products keyed by ID, used to
// resolve kit component references. Kit components may reference
// products that are themselves hidden from the catalog, so the index
// must always be built from the full product list, never a filtered
// subset.
type ProductIndex map[uuid.UUID]*Product

// BuildProductIndex builds an index from a product snapshot
func BuildProductIndex(products []*Product) ProductIndex {
	index := make(ProductIndex, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// StockResolver computes the effective purchasable quantity of a
// product. For kits the result is derived from component stock using
// the bill-of-materials constraint: each component supports
// floor(componentStock / quantidadeUtilizada) kits, and the kit's
// stock is the minimum across components.
type StockResolver struct{}

// NewStockResolver creates a new StockResolver
func NewStockResolver() *StockResolver {
	return &StockResolver{}
}

// Resolve returns the effective stock of a product against the given
// snapshot index. Pure: neither the product nor the index is mutated.
func (r *StockResolver) Resolve(p *Product, index ProductIndex) int {
	if p == nil {
		return 0
	}

	if !p.IsKit() {
		if p.Estoque < 0 {
			return 0
		}
		return p.Estoque
	}

	if len(p.ComponentesKit) == 0 {
		return 0
	}

	minBuildable := -1
	for _, component := range p.ComponentesKit {
		buildable := r.resolveComponent(component, index)
		if minBuildable < 0 || buildable < minBuildable {
			minBuildable = buildable
		}
		if minBuildable == 0 {
			return 0
		}
	}
	return minBuildable
}

// resolveComponent returns how many kits a single component can supply.
// A missing component product or non-positive usage quantity makes the
// component contribute zero buildable units.
func (r *StockResolver) resolveComponent(component KitComponent, index ProductIndex) int {
	if component.QuantidadeUtilizada <= 0 {
		return 0
	}

	product, ok := index[component.ComponentID]
	if !ok || product == nil {
		return 0
	}
	if product.Estoque <= 0 {
		return 0
	}

	return product.Estoque / component.QuantidadeUtilizada
}
