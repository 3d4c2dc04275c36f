package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/catalog"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared/valueobject"
)

// CartLine is one aggregated entry per product code in an in-progress
// order. PrecoUnitario is a snapshot of the wholesale price at the
// moment the product was first added.
type CartLine struct {
	ID            uuid.UUID       `json:"id"`
	Codigo        string          `json:"codigo"`
	Descricao     string          `json:"descricao"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ImagemURL     string          `json:"imagem_url"`
}

// UnitPrice returns the snapshotted unit price as BRL money
func (l CartLine) UnitPrice() valueobject.Money {
	return valueobject.NewMoneyBRL(l.PrecoUnitario)
}

// Cart holds the in-progress wholesale order of one session. Lines keep
// insertion order and there is at most one line per product code.
// Carts live in the session store, not the database.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for a session
func NewCart(sessionID string) *Cart {
	now := time.Now()
	return &Cart{
		SessionID: sessionID,
		Lines:     []CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns an independent copy of the cart. Stores hand clones to
// callers so that concurrent handlers never mutate lines another
// request is reading.
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Lines = make([]CartLine, len(c.Lines))
	copy(clone.Lines, c.Lines)
	return &clone
}

// AddItem adjusts the cart by delta units of the given product.
// resolvedStock is the product's effective stock at call time; the
// resulting quantity may never exceed it. An add that would exceed
// stock is rejected whole, leaving the cart unchanged.
func (c *Cart) AddItem(product *catalog.Product, delta int, resolvedStock int) error {
	if product == nil {
		return shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if delta == 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity change cannot be zero")
	}

	idx := c.lineIndexByCodigo(product.Codigo)

	if idx < 0 {
		if delta < 0 {
			return shared.NewDomainError("NOT_FOUND", "Product is not in the cart")
		}
		if delta > resolvedStock {
			return insufficientStock(resolvedStock)
		}
		preco := product.GetPrecoAtacadoMoney()
		c.Lines = append(c.Lines, CartLine{
			ID:            uuid.New(),
			Codigo:        product.Codigo,
			Descricao:     product.Descricao,
			Quantidade:    delta,
			PrecoUnitario: preco.Amount(),
			Subtotal:      preco.MultiplyByInt(int64(delta)).Amount(),
			ImagemURL:     product.ImagemURL,
		})
		c.UpdatedAt = time.Now()
		return nil
	}

	newQty := c.Lines[idx].Quantidade + delta
	if newQty <= 0 {
		c.removeLineAt(idx)
		c.UpdatedAt = time.Now()
		return nil
	}
	if delta > 0 && newQty > resolvedStock {
		return insufficientStock(resolvedStock)
	}

	c.Lines[idx].Quantidade = newQty
	c.Lines[idx].Subtotal = c.Lines[idx].UnitPrice().MultiplyByInt(int64(newQty)).Amount()
	c.UpdatedAt = time.Now()
	return nil
}

// RemoveOne decrements the quantity of a line by one unit, deleting the
// line when it reaches zero
func (c *Cart) RemoveOne(lineID uuid.UUID) error {
	for i := range c.Lines {
		if c.Lines[i].ID != lineID {
			continue
		}
		c.Lines[i].Quantidade--
		if c.Lines[i].Quantidade <= 0 {
			c.removeLineAt(i)
		} else {
			c.Lines[i].Subtotal = c.Lines[i].UnitPrice().MultiplyByInt(int64(c.Lines[i].Quantidade)).Amount()
		}
		c.UpdatedAt = time.Now()
		return nil
	}
	return shared.NewDomainError("NOT_FOUND", "Cart line not found")
}

// FindLineByCodigo returns the line for a product code, if present
func (c *Cart) FindLineByCodigo(codigo string) (*CartLine, bool) {
	idx := c.lineIndexByCodigo(codigo)
	if idx < 0 {
		return nil, false
	}
	return &c.Lines[idx], true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalMoney returns the sum of line subtotals as BRL money, always
// recomputed. Every line carries BRL, so the additions cannot fail.
func (c *Cart) TotalMoney() valueobject.Money {
	total := valueobject.ZeroBRL()
	for i := range c.Lines {
		total = total.MustAdd(valueobject.NewMoneyBRL(c.Lines[i].Subtotal))
	}
	return total
}

// Total returns the sum of line subtotals as a bare decimal
func (c *Cart) Total() decimal.Decimal {
	return c.TotalMoney().Amount()
}

// ItemCount returns the total number of units across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Lines {
		count += c.Lines[i].Quantidade
	}
	return count
}

func (c *Cart) lineIndexByCodigo(codigo string) int {
	for i := range c.Lines {
		if c.Lines[i].Codigo == codigo {
			return i
		}
	}
	return -1
}

func (c *Cart) removeLineAt(i int) {
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

func insufficientStock(available int) error {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("insufficient stock: available = %d", available))
}
