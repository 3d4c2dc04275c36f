package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumeroPedido finds an order by its order number
	FindByNumeroPedido(ctx context.Context, numeroPedido string) (*Order, error)

	// FindByLinkUnico finds an order by its share link token
	FindByLinkUnico(ctx context.Context, linkUnico string) (*Order, error)

	// FindAll finds all orders matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save persists a new order with its items
	Save(ctx context.Context, order *Order) error

	// GenerateNumeroPedido generates the next sequential order number
	// for the current year
	GenerateNumeroPedido(ctx context.Context) (string, error)
}
