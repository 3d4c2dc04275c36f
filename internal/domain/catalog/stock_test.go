package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleProduct(t *testing.T, codigo string, estoque int) *Product {
	t.Helper()
	product, err := NewProduct(codigo, "Produto "+codigo, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, product.SetEstoque(estoque))
	return product
}

func TestStockResolverSimpleProduct(t *testing.T) {
	resolver := NewStockResolver()

	t.Run("returns stored stock", func(t *testing.T) {
		p := simpleProduct(t, "PQ-001", 7)
		assert.Equal(t, 7, resolver.Resolve(p, BuildProductIndex([]*Product{p})))
	})

	t.Run("zero stock resolves to zero", func(t *testing.T) {
		p := simpleProduct(t, "PQ-001", 0)
		assert.Equal(t, 0, resolver.Resolve(p, BuildProductIndex([]*Product{p})))
	})

	t.Run("negative stored stock is clamped to zero", func(t *testing.T) {
		p := simpleProduct(t, "PQ-001", 3)
		p.Estoque = -2
		assert.Equal(t, 0, resolver.Resolve(p, BuildProductIndex([]*Product{p})))
	})

	t.Run("nil product resolves to zero", func(t *testing.T) {
		assert.Equal(t, 0, resolver.Resolve(nil, ProductIndex{}))
	})
}

func TestStockResolverKit(t *testing.T) {
	resolver := NewStockResolver()

	t.Run("kit stock is minimum over component capacity", func(t *testing.T) {
		queijo := simpleProduct(t, "QUE-001", 10)
		doce := simpleProduct(t, "DOC-001", 9)

		kit, err := NewKit("CESTA-01", "Cesta Mineira", decimal.NewFromInt(80), []KitComponent{
			{ComponentID: queijo.ID, QuantidadeUtilizada: 2}, // floor(10/2) = 5
			{ComponentID: doce.ID, QuantidadeUtilizada: 3},   // floor(9/3) = 3
		})
		require.NoError(t, err)

		index := BuildProductIndex([]*Product{queijo, doce, kit})
		assert.Equal(t, 3, resolver.Resolve(kit, index))
	})

	t.Run("missing component makes kit unbuildable", func(t *testing.T) {
		queijo := simpleProduct(t, "QUE-001", 10)

		kit, err := NewKit("CESTA-01", "Cesta Mineira", decimal.NewFromInt(80), []KitComponent{
			{ComponentID: queijo.ID, QuantidadeUtilizada: 1},
			{ComponentID: uuid.New(), QuantidadeUtilizada: 1},
		})
		require.NoError(t, err)

		index := BuildProductIndex([]*Product{queijo, kit})
		assert.Equal(t, 0, resolver.Resolve(kit, index))
	})

	t.Run("non-positive usage quantity makes kit unbuildable", func(t *testing.T) {
		queijo := simpleProduct(t, "QUE-001", 10)

		kit, err := NewKit("CESTA-01", "Cesta Mineira", decimal.NewFromInt(80), []KitComponent{
			{ComponentID: queijo.ID, QuantidadeUtilizada: 1},
		})
		require.NoError(t, err)
		kit.ComponentesKit[0].QuantidadeUtilizada = 0

		index := BuildProductIndex([]*Product{queijo, kit})
		assert.Equal(t, 0, resolver.Resolve(kit, index))
	})

	t.Run("component with zero stock makes kit unbuildable", func(t *testing.T) {
		queijo := simpleProduct(t, "QUE-001", 10)
		doce := simpleProduct(t, "DOC-001", 0)

		kit, err := NewKit("CESTA-01", "Cesta Mineira", decimal.NewFromInt(80), []KitComponent{
			{ComponentID: queijo.ID, QuantidadeUtilizada: 1},
			{ComponentID: doce.ID, QuantidadeUtilizada: 1},
		})
		require.NoError(t, err)

		index := BuildProductIndex([]*Product{queijo, doce, kit})
		assert.Equal(t, 0, resolver.Resolve(kit, index))
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		queijo := simpleProduct(t, "QUE-001", 10)
		kit, err := NewKit("CESTA-01", "Cesta Mineira", decimal.NewFromInt(80), []KitComponent{
			{ComponentID: queijo.ID, QuantidadeUtilizada: 2},
		})
		require.NoError(t, err)

		index := BuildProductIndex([]*Product{queijo, kit})
		before := queijo.Estoque
		_ = resolver.Resolve(kit, index)
		_ = resolver.Resolve(kit, index)

		assert.Equal(t, before, queijo.Estoque)
		assert.Equal(t, 0, kit.Estoque)
		assert.Equal(t, 5, resolver.Resolve(kit, index))
	})
}
