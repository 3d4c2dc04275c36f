package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared/valueobject"
)

// OrderItem is a persisted snapshot of one cart line at submission time
type OrderItem struct {
	shared.BaseEntity
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Codigo        string          `gorm:"type:varchar(50);not null"`
	Descricao     string          `gorm:"type:varchar(200);not null"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ImagemURL     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is a submitted wholesale order. It is created once from a cart
// snapshot and immutable thereafter.
type Order struct {
	shared.BaseAggregateRoot
	NumeroPedido string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	LinkUnico    string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Itens        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Economia     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OperatorCode string          `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderFromCart snapshots a cart into a new order. The cart itself
// is left untouched; clearing it is the caller's decision after the
// order is safely persisted.
func NewOrderFromCart(numeroPedido, linkUnico string, cart *Cart, operatorCode string) (*Order, error) {
	if numeroPedido == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number is required")
	}
	if linkUnico == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Share link token is required")
	}
	if cart == nil || cart.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot submit an empty cart")
	}

	ord := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		NumeroPedido:      numeroPedido,
		LinkUnico:         linkUnico,
		Economia:          decimal.Zero,
		OperatorCode:      operatorCode,
	}

	total := valueobject.ZeroBRL()
	for _, line := range cart.Lines {
		item := OrderItem{
			BaseEntity:    shared.NewBaseEntity(),
			OrderID:       ord.ID,
			Codigo:        line.Codigo,
			Descricao:     line.Descricao,
			Quantidade:    line.Quantidade,
			PrecoUnitario: line.PrecoUnitario,
			Subtotal:      line.Subtotal,
			ImagemURL:     line.ImagemURL,
		}
		ord.Itens = append(ord.Itens, item)
		total = total.MustAdd(valueobject.NewMoneyBRL(line.Subtotal))
	}
	ord.Total = total.Amount()

	return ord, nil
}
