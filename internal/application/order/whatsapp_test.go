package order

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/order"
)

func TestTruncateDescription(t *testing.T) {
	t.Run("short text is untouched", func(t *testing.T) {
		assert.Equal(t, "Pão de Queijo", TruncateDescription("Pão de Queijo", 40))
	})

	t.Run("cuts at the last word boundary", func(t *testing.T) {
		got := TruncateDescription("Pão de Queijo Tradicional Congelado Pacote Grande", 20)
		assert.Equal(t, "Pão de Queijo", got)
		assert.LessOrEqual(t, len([]rune(got)), 20)
	})

	t.Run("single long word is cut hard", func(t *testing.T) {
		got := TruncateDescription("Superdescricaosemespacos", 10)
		assert.Equal(t, 10, len([]rune(got)))
	})

	t.Run("non-positive limit disables truncation", func(t *testing.T) {
		assert.Equal(t, "qualquer coisa", TruncateDescription("qualquer coisa", 0))
	})
}

func TestBuildWhatsAppMessage(t *testing.T) {
	cart := order.NewCart("sess-1")
	p1 := cartTestProduct(t, "PQ001", "Pão de Queijo", 10, 10)
	p2 := cartTestProduct(t, "BR001", "Broa de Milho", 5, 10)
	require.NoError(t, cart.AddItem(p1, 2, 10))
	require.NoError(t, cart.AddItem(p2, 1, 10))

	ord, err := order.NewOrderFromCart("PA-2026-00001", "link-abc", cart, "OP01")
	require.NoError(t, err)

	message := BuildWhatsAppMessage(ord, 40)

	assert.Contains(t, message, "*Pedido PA-2026-00001*")
	assert.Contains(t, message, "2x Pão de Queijo - R$ 20.00")
	assert.Contains(t, message, "1x Broa de Milho - R$ 5.00")
	assert.Contains(t, message, "*Total: R$ 25.00*")
}

func TestBuildWhatsAppLink(t *testing.T) {
	cart := order.NewCart("sess-1")
	p := cartTestProduct(t, "PQ001", "Pão de Queijo", 10, 10)
	require.NoError(t, cart.AddItem(p, 1, 10))

	ord, err := order.NewOrderFromCart("PA-2026-00001", "link-abc", cart, "OP01")
	require.NoError(t, err)

	link := BuildWhatsAppLink("5531999999999", ord, 40)

	require.True(t, strings.HasPrefix(link, "https://wa.me/5531999999999?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, "Pedido PA-2026-00001")
	assert.Contains(t, text, "Pão de Queijo")
}
