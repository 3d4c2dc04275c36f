package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/order"
)

// TruncateDescription bounds a description to maxLen runes, cutting at the
// last word boundary that fits. When no boundary fits the text is cut hard.
func TruncateDescription(descricao string, maxLen int) string {
	if maxLen <= 0 {
		return descricao
	}
	runes := []rune(descricao)
	if len(runes) <= maxLen {
		return descricao
	}
	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

// BuildWhatsAppMessage renders the order summary sent as the pre-filled
// WhatsApp text.
func BuildWhatsAppMessage(ord *order.Order, maxDescriptionLen int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Pedido %s*\n\n", ord.NumeroPedido)
	for _, item := range ord.Itens {
		fmt.Fprintf(&b, "%dx %s - R$ %s\n",
			item.Quantidade,
			TruncateDescription(item.Descricao, maxDescriptionLen),
			item.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n*Total: R$ %s*", ord.Total.StringFixed(2))
	return b.String()
}

// BuildWhatsAppLink builds the wa.me deep link carrying the URL-encoded
// order summary.
func BuildWhatsAppLink(number string, ord *order.Order, maxDescriptionLen int) string {
	message := BuildWhatsAppMessage(ord, maxDescriptionLen)
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}
