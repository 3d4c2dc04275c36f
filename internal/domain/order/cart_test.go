package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/catalog"
)

func testProduct(t *testing.T, codigo string, preco float64, estoque int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(codigo, "Produto "+codigo, decimal.NewFromFloat(preco))
	require.NoError(t, err)
	require.NoError(t, product.SetEstoque(estoque))
	return product
}

func assertCartInvariants(t *testing.T, cart *Cart) {
	t.Helper()
	seen := make(map[string]bool)
	for _, line := range cart.Lines {
		assert.Greater(t, line.Quantidade, 0)
		expected := line.PrecoUnitario.Mul(decimal.NewFromInt(int64(line.Quantidade)))
		assert.True(t, line.Subtotal.Equal(expected), "subtotal of %s must equal quantidade x preco_unitario", line.Codigo)
		assert.False(t, seen[line.Codigo], "duplicate line for %s", line.Codigo)
		seen[line.Codigo] = true
	}
}

func TestCartAddItem(t *testing.T) {
	t.Run("adds new line with price snapshot", func(t *testing.T) {
		cart := NewCart("sess-1")
		p := testProduct(t, "PQ-001", 25.90, 10)

		require.NoError(t, cart.AddItem(p, 2, 10))
		require.Len(t, cart.Lines, 1)

		line := cart.Lines[0]
		assert.Equal(t, "PQ-001", line.Codigo)
		assert.Equal(t, 2, line.Quantidade)
		assert.True(t, line.PrecoUnitario.Equal(decimal.NewFromFloat(25.90)))
		assert.True(t, line.Subtotal.Equal(decimal.NewFromFloat(51.80)))
		assertCartInvariants(t, cart)
	})

	t.Run("adjusts existing line instead of duplicating", func(t *testing.T) {
		cart := NewCart("sess-1")
		p := testProduct(t, "PQ-001", 10, 10)

		require.NoError(t, cart.AddItem(p, 2, 10))
		require.NoError(t, cart.AddItem(p, 3, 10))

		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 5, cart.Lines[0].Quantidade)
		assertCartInvariants(t, cart)
	})

	t.Run("rejects add exceeding resolved stock leaving cart unchanged", func(t *testing.T) {
		cart := NewCart("sess-1")
		p := testProduct(t, "PQ-001", 10, 3)

		err := cart.AddItem(p, 5, 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "available = 3")
		assert.True(t, cart.IsEmpty())
	})

	t.Run("rejects increment that would exceed stock", func(t *testing.T) {
		cart := NewCart("sess-1")
		p := testProduct(t, "PQ-001", 10, 3)

		require.NoError(t, cart.AddItem(p, 3, 3))
		err := cart.AddItem(p, 1, 3)
		require.Error(t, err)
		assert.Equal(t, 3, cart.Lines[0].Quantidade)
		assertCartInvariants(t, cart)
	})

	t.Run("negative delta shrinks line and removes at zero", func(t *testing.T) {
		cart := NewCart("sess-1")
		p := testProduct(t, "PQ-001", 10, 10)

		require.NoError(t, cart.AddItem(p, 2, 10))
		require.NoError(t, cart.AddItem(p, -1, 10))
		assert.Equal(t, 1, cart.Lines[0].Quantidade)

		require.NoError(t, cart.AddItem(p, -1, 10))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("negative delta on absent product fails", func(t *testing.T) {
		cart := NewCart("sess-1")
		p := testProduct(t, "PQ-001", 10, 10)

		err := cart.AddItem(p, -1, 10)
		require.Error(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("price change after add does not touch snapshot", func(t *testing.T) {
		cart := NewCart("sess-1")
		p := testProduct(t, "PQ-001", 10, 10)

		require.NoError(t, cart.AddItem(p, 1, 10))
		require.NoError(t, p.UpdatePrecoAtacado(decimal.NewFromInt(99)))
		require.NoError(t, cart.AddItem(p, 1, 10))

		assert.True(t, cart.Lines[0].PrecoUnitario.Equal(decimal.NewFromInt(10)))
		assert.True(t, cart.Lines[0].Subtotal.Equal(decimal.NewFromInt(20)))
	})
}

func TestCartRemoveOne(t *testing.T) {
	t.Run("decrements quantity", func(t *testing.T) {
		cart := NewCart("sess-1")
		p := testProduct(t, "PQ-001", 10, 10)
		require.NoError(t, cart.AddItem(p, 3, 10))

		require.NoError(t, cart.RemoveOne(cart.Lines[0].ID))
		assert.Equal(t, 2, cart.Lines[0].Quantidade)
		assertCartInvariants(t, cart)
	})

	t.Run("deletes line at quantidade one", func(t *testing.T) {
		cart := NewCart("sess-1")
		p := testProduct(t, "PQ-001", 10, 10)
		require.NoError(t, cart.AddItem(p, 1, 10))

		require.NoError(t, cart.RemoveOne(cart.Lines[0].ID))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("unknown line fails", func(t *testing.T) {
		cart := NewCart("sess-1")

		err := cart.RemoveOne(uuid.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestCartTotals(t *testing.T) {
	cart := NewCart("sess-1")
	a := testProduct(t, "A-001", 10, 10)
	b := testProduct(t, "B-001", 5, 10)

	require.NoError(t, cart.AddItem(a, 2, 10))
	require.NoError(t, cart.AddItem(b, 1, 10))

	assert.True(t, cart.Total().Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 3, cart.ItemCount())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())
}

func TestCartClone(t *testing.T) {
	cart := NewCart("sess-1")
	p := testProduct(t, "PQ-001", 25.90, 10)
	require.NoError(t, cart.AddItem(p, 2, 10))

	clone := cart.Clone()
	require.Len(t, clone.Lines, 1)
	assert.Equal(t, cart.SessionID, clone.SessionID)
	assert.True(t, clone.Lines[0].Subtotal.Equal(cart.Lines[0].Subtotal))

	// Mutating the clone must not reach the original and vice versa
	clone.Lines[0].Quantidade = 99
	assert.Equal(t, 2, cart.Lines[0].Quantidade)

	require.NoError(t, cart.AddItem(testProduct(t, "BR-001", 5, 10), 1, 10))
	require.Len(t, clone.Lines, 1)
}

func TestCartInsertionOrder(t *testing.T) {
	cart := NewCart("sess-1")
	a := testProduct(t, "A-001", 10, 10)
	b := testProduct(t, "B-001", 5, 10)
	c := testProduct(t, "C-001", 3, 10)

	require.NoError(t, cart.AddItem(a, 1, 10))
	require.NoError(t, cart.AddItem(b, 1, 10))
	require.NoError(t, cart.AddItem(c, 1, 10))
	// Re-adding an existing product keeps its original position
	require.NoError(t, cart.AddItem(a, 1, 10))

	assert.Equal(t, "A-001", cart.Lines[0].Codigo)
	assert.Equal(t, "B-001", cart.Lines[1].Codigo)
	assert.Equal(t, "C-001", cart.Lines[2].Codigo)
}
