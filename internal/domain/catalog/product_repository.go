package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCodigo finds a product by its unique code
	FindByCodigo(ctx context.Context, codigo string) (*Product, error)

	// FindAll finds all products matching the filter, newest created first
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindCatalogCandidates loads every product with its kit components
	// preloaded. Implementations must not filter by activity or
	// visibility: kit stock resolves against the full snapshot.
	FindCatalogCandidates(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// HideFromCatalog clears the catalog flag of a single product.
	// Used by the out-of-stock reconciliation pass.
	HideFromCatalog(ctx context.Context, id uuid.UUID) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCodigo checks if a product with the given code exists
	ExistsByCodigo(ctx context.Context, codigo string) (bool, error)
}
