package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogProduct(t *testing.T, codigo, descricao string, estoque int) *Product {
	t.Helper()
	product, err := NewProduct(codigo, descricao, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, product.SetEstoque(estoque))
	product.SetCatalogVisibility(true)
	return product
}

func TestCatalogFilterVisible(t *testing.T) {
	filter := NewCatalogFilter(NewStockResolver())

	t.Run("keeps only qualifying products", func(t *testing.T) {
		ok := catalogProduct(t, "PQ-001", "Pão de Queijo", 5)

		inactive := catalogProduct(t, "PQ-002", "Inativo", 5)
		require.NoError(t, inactive.Deactivate())

		hidden := catalogProduct(t, "PQ-003", "Fora do catálogo", 5)
		hidden.SetCatalogVisibility(false)

		free := catalogProduct(t, "PQ-004", "Sem preço", 5)
		require.NoError(t, free.UpdatePrecoAtacado(decimal.Zero))

		visible, toHide := filter.Visible([]*Product{ok, inactive, hidden, free})
		require.Len(t, visible, 1)
		assert.Equal(t, "PQ-001", visible[0].Codigo)
		assert.Empty(t, toHide)
	})

	t.Run("flags stockless visible products for hiding", func(t *testing.T) {
		ok := catalogProduct(t, "PQ-001", "Pão de Queijo", 5)
		stockless := catalogProduct(t, "PQ-002", "Esgotado", 0)

		visible, toHide := filter.Visible([]*Product{ok, stockless})
		require.Len(t, visible, 1)
		require.Len(t, toHide, 1)
		assert.Equal(t, "PQ-002", toHide[0].Codigo)
	})

	t.Run("resolves kit stock against the full list", func(t *testing.T) {
		// Component is hidden from the catalog but still supplies the kit
		queijo := catalogProduct(t, "QUE-001", "Queijo Canastra", 4)
		queijo.SetCatalogVisibility(false)

		kit, err := NewKit("CESTA-01", "Cesta Mineira", decimal.NewFromInt(80), []KitComponent{
			{ComponentID: queijo.ID, QuantidadeUtilizada: 2},
		})
		require.NoError(t, err)
		kit.SetCatalogVisibility(true)

		visible, toHide := filter.Visible([]*Product{queijo, kit})
		require.Len(t, visible, 1)
		assert.Equal(t, "CESTA-01", visible[0].Codigo)
		assert.Empty(t, toHide)
	})
}

func TestCatalogFilterSearch(t *testing.T) {
	filter := NewCatalogFilter(NewStockResolver())
	products := []*Product{
		catalogProduct(t, "PQ-001", "Pão de Queijo", 5),
		catalogProduct(t, "DOC-001", "Doce de Leite", 5),
	}

	t.Run("blank term is identity", func(t *testing.T) {
		assert.Equal(t, products, filter.Search(products, "   "))
	})

	t.Run("matches ignoring accents and case", func(t *testing.T) {
		matched := filter.Search(products, "pao")
		require.Len(t, matched, 1)
		assert.Equal(t, "PQ-001", matched[0].Codigo)
	})

	t.Run("matches on codigo", func(t *testing.T) {
		matched := filter.Search(products, "doc-0")
		require.Len(t, matched, 1)
		assert.Equal(t, "DOC-001", matched[0].Codigo)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, filter.Search(products, "xyz"))
	})
}

func TestCatalogFilterPartition(t *testing.T) {
	filter := NewCatalogFilter(NewStockResolver())

	assado := catalogProduct(t, "AS-001", "Frango Assado", 5)
	assado.SetIsAssado(true)

	promo := catalogProduct(t, "PR-001", "Doce em Promoção", 5)
	require.NoError(t, promo.SetPromocao(decimal.NewFromInt(15)))

	// Assado wins over promotion when both flags are set
	assadoPromo := catalogProduct(t, "AS-002", "Costela Assada", 5)
	assadoPromo.SetIsAssado(true)
	require.NoError(t, assadoPromo.SetPromocao(decimal.NewFromInt(20)))

	geral := catalogProduct(t, "GE-001", "Queijo Canastra", 5)
	require.NoError(t, geral.Update("Queijo Canastra", "queijos"))

	outraCategoria := catalogProduct(t, "GE-002", "Café Torrado", 5)
	require.NoError(t, outraCategoria.Update("Café Torrado", "cafés"))

	all := []*Product{assado, promo, assadoPromo, geral, outraCategoria}

	t.Run("buckets are mutually exclusive", func(t *testing.T) {
		sections := filter.Partition(all, CategoriaAll)
		assert.Len(t, sections.Assados, 2)
		assert.Len(t, sections.Promocoes, 1)
		assert.Len(t, sections.Gerais, 2)
	})

	t.Run("gerais narrowed by exact categoria", func(t *testing.T) {
		sections := filter.Partition(all, "queijos")
		require.Len(t, sections.Gerais, 1)
		assert.Equal(t, "GE-001", sections.Gerais[0].Codigo)
		// Assados and promotions ignore the category filter
		assert.Len(t, sections.Assados, 2)
		assert.Len(t, sections.Promocoes, 1)
	})

	t.Run("empty categoria behaves as wildcard", func(t *testing.T) {
		sections := filter.Partition(all, "  ")
		assert.Len(t, sections.Gerais, 2)
	})
}

func TestCatalogFilterShuffle(t *testing.T) {
	filter := NewCatalogFilter(NewStockResolver())

	var products []*Product
	for _, codigo := range []string{"A-1", "B-1", "C-1", "D-1", "E-1"} {
		products = append(products, catalogProduct(t, codigo, "Produto "+codigo, 5))
	}

	before := make(map[string]bool, len(products))
	for _, p := range products {
		before[p.Codigo] = true
	}

	filter.Shuffle(products)

	assert.Len(t, products, len(before))
	for _, p := range products {
		assert.True(t, before[p.Codigo])
	}
}

func TestNormalizeSearchTerm(t *testing.T) {
	assert.Equal(t, "pao de queijo", NormalizeSearchTerm("Pão de Queijo"))
	assert.Equal(t, "cafe", NormalizeSearchTerm("CAFÉ"))
	assert.Equal(t, "acucar", NormalizeSearchTerm("Açúcar"))
}
