package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/catalog"
)

func catalogCandidates(products ...*catalog.Product) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		out = append(out, *p)
	}
	return out
}

func allItems(resp *CatalogResponse) []CatalogItemResponse {
	var items []CatalogItemResponse
	items = append(items, resp.Assados...)
	items = append(items, resp.Promocoes...)
	items = append(items, resp.Gerais...)
	return items
}

func TestCatalogService_LoadCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("partitions visible products into sections", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewCatalogService(repo, 10, nil)

		assado := mustProduct(t, "AS001", "Frango Assado", 35, 4)
		assado.SetIsAssado(true)
		promo := mustProduct(t, "PR001", "Broa de Milho", 6, 8)
		require.NoError(t, promo.SetPromocao(decimal.NewFromFloat(8)))
		geral := mustProduct(t, "GE001", "Pão de Queijo", 12.5, 10)

		repo.On("FindCatalogCandidates", ctx).Return(catalogCandidates(assado, promo, geral), nil)

		resp, err := svc.LoadCatalog(ctx, "", "")

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Total)
		require.Len(t, resp.Assados, 1)
		require.Len(t, resp.Promocoes, 1)
		require.Len(t, resp.Gerais, 1)
		assert.Equal(t, "AS001", resp.Assados[0].Codigo)
		assert.Equal(t, "PR001", resp.Promocoes[0].Codigo)
		assert.Equal(t, "GE001", resp.Gerais[0].Codigo)
	})

	t.Run("excludes hidden and unpriced products", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewCatalogService(repo, 10, nil)

		visible := mustProduct(t, "GE001", "Pão de Queijo", 12.5, 10)
		hidden := mustProduct(t, "GE002", "Biscoito", 5, 10)
		hidden.SetCatalogVisibility(false)
		unpriced := mustProduct(t, "GE003", "Doce de Leite", 0, 10)

		repo.On("FindCatalogCandidates", ctx).Return(catalogCandidates(visible, hidden, unpriced), nil)

		resp, err := svc.LoadCatalog(ctx, "", "")

		require.NoError(t, err)
		items := allItems(resp)
		require.Len(t, items, 1)
		assert.Equal(t, "GE001", items[0].Codigo)
	})

	t.Run("hides out-of-stock products in the background", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewCatalogService(repo, 10, nil)

		inStock := mustProduct(t, "GE001", "Pão de Queijo", 12.5, 10)
		outOfStock := mustProduct(t, "GE002", "Biscoito", 5, 0)

		hidden := make(chan struct{})
		repo.On("FindCatalogCandidates", ctx).Return(catalogCandidates(inStock, outOfStock), nil)
		repo.On("HideFromCatalog", mock.Anything, outOfStock.ID).
			Run(func(mock.Arguments) { close(hidden) }).
			Return(nil)

		resp, err := svc.LoadCatalog(ctx, "", "")

		require.NoError(t, err)
		items := allItems(resp)
		require.Len(t, items, 1)
		assert.Equal(t, "GE001", items[0].Codigo)

		select {
		case <-hidden:
		case <-time.After(2 * time.Second):
			t.Fatal("expected out-of-stock product to be hidden")
		}
	})

	t.Run("kit stock derived from components", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewCatalogService(repo, 10, nil)

		comp := mustProduct(t, "PQ001", "Pão de Queijo", 12.5, 9)
		comp.SetCatalogVisibility(false)
		kit, err := catalog.NewKit("KIT01", "Kit Festa", decimal.NewFromFloat(40),
			[]catalog.KitComponent{{ComponentID: comp.ID, QuantidadeUtilizada: 3}})
		require.NoError(t, err)
		kit.SetCatalogVisibility(true)

		repo.On("FindCatalogCandidates", ctx).Return(catalogCandidates(comp, kit), nil)

		resp, err := svc.LoadCatalog(ctx, "", "")

		require.NoError(t, err)
		items := allItems(resp)
		require.Len(t, items, 1)
		assert.Equal(t, "KIT01", items[0].Codigo)
		assert.Equal(t, 3, items[0].Estoque)
	})

	t.Run("inactive component still supplies its kit", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewCatalogService(repo, 10, nil)

		comp := mustProduct(t, "PQ001", "Pão de Queijo", 12.5, 10)
		comp.SetCatalogVisibility(false)
		require.NoError(t, comp.Deactivate())
		kit, err := catalog.NewKit("KIT01", "Kit Festa", decimal.NewFromFloat(40),
			[]catalog.KitComponent{{ComponentID: comp.ID, QuantidadeUtilizada: 2}})
		require.NoError(t, err)
		kit.SetCatalogVisibility(true)

		repo.On("FindCatalogCandidates", ctx).Return(catalogCandidates(comp, kit), nil)

		resp, err := svc.LoadCatalog(ctx, "", "")

		require.NoError(t, err)
		items := allItems(resp)
		require.Len(t, items, 1)
		assert.Equal(t, "KIT01", items[0].Codigo)
		assert.Equal(t, 5, items[0].Estoque)
		repo.AssertNotCalled(t, "HideFromCatalog", mock.Anything, mock.Anything)
	})

	t.Run("search is accent and case insensitive", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewCatalogService(repo, 10, nil)

		match := mustProduct(t, "GE001", "Pão de Queijo", 12.5, 10)
		other := mustProduct(t, "GE002", "Broa de Milho", 6, 10)

		repo.On("FindCatalogCandidates", ctx).Return(catalogCandidates(match, other), nil)

		resp, err := svc.LoadCatalog(ctx, "PAO", "")

		require.NoError(t, err)
		items := allItems(resp)
		require.Len(t, items, 1)
		assert.Equal(t, "GE001", items[0].Codigo)
	})

	t.Run("category narrows the general section only", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewCatalogService(repo, 10, nil)

		salgado := mustProduct(t, "GE001", "Pão de Queijo", 12.5, 10)
		require.NoError(t, salgado.Update("Pão de Queijo", "salgados"))
		doce := mustProduct(t, "GE002", "Doce de Leite", 9, 10)
		require.NoError(t, doce.Update("Doce de Leite", "doces"))
		assado := mustProduct(t, "AS001", "Frango Assado", 35, 4)
		assado.SetIsAssado(true)

		repo.On("FindCatalogCandidates", ctx).Return(catalogCandidates(salgado, doce, assado), nil)

		resp, err := svc.LoadCatalog(ctx, "", "salgados")

		require.NoError(t, err)
		require.Len(t, resp.Gerais, 1)
		assert.Equal(t, "GE001", resp.Gerais[0].Codigo)
		// the roasted section ignores the category filter
		require.Len(t, resp.Assados, 1)
	})
}
