package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/order"
)

// AddItemRequest adds (or removes, with a negative quantity) units of a
// product to a session cart.
type AddItemRequest struct {
	Codigo     string `json:"codigo" binding:"required,min=1,max=50"`
	Quantidade int    `json:"quantidade" binding:"required"`
}

// SubmitOrderRequest turns a session cart into a persisted order.
type SubmitOrderRequest struct {
	Sessao string `json:"sessao" binding:"required,min=1,max=100"`
}

// CartLineResponse is one line of a session cart.
type CartLineResponse struct {
	ID            uuid.UUID `json:"id"`
	Codigo        string    `json:"codigo"`
	Descricao     string    `json:"descricao"`
	Quantidade    int       `json:"quantidade"`
	PrecoUnitario float64   `json:"preco_unitario"`
	Subtotal      float64   `json:"subtotal"`
	ImagemURL     string    `json:"imagem_url,omitempty"`
}

// CartResponse is the full view of a session cart.
type CartResponse struct {
	Sessao          string             `json:"sessao"`
	Itens           []CartLineResponse `json:"itens"`
	Total           float64            `json:"total"`
	QuantidadeItens int                `json:"quantidade_itens"`
}

// OrderItemResponse is one snapshotted line of a submitted order.
type OrderItemResponse struct {
	Codigo        string  `json:"codigo"`
	Descricao     string  `json:"descricao"`
	Quantidade    int     `json:"quantidade"`
	PrecoUnitario float64 `json:"preco_unitario"`
	Subtotal      float64 `json:"subtotal"`
}

// OrderResponse is the view of a persisted order. WhatsAppLink is only
// populated on submission.
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	NumeroPedido string              `json:"numero_pedido"`
	LinkUnico    string              `json:"link_unico"`
	Itens        []OrderItemResponse `json:"itens"`
	Total        float64             `json:"total"`
	Economia     float64             `json:"economia"`
	OperatorCode string              `json:"operador,omitempty"`
	DataCriacao  time.Time           `json:"data_criacao"`
	WhatsAppLink string              `json:"whatsapp_link,omitempty"`
}

// ToCartResponse maps a cart to its wire view.
func ToCartResponse(cart *order.Cart) CartResponse {
	resp := CartResponse{
		Sessao:          cart.SessionID,
		Itens:           make([]CartLineResponse, 0, len(cart.Lines)),
		Total:           cart.Total().InexactFloat64(),
		QuantidadeItens: cart.ItemCount(),
	}
	for _, line := range cart.Lines {
		resp.Itens = append(resp.Itens, CartLineResponse{
			ID:            line.ID,
			Codigo:        line.Codigo,
			Descricao:     line.Descricao,
			Quantidade:    line.Quantidade,
			PrecoUnitario: line.PrecoUnitario.InexactFloat64(),
			Subtotal:      line.Subtotal.InexactFloat64(),
			ImagemURL:     line.ImagemURL,
		})
	}
	return resp
}

// ToOrderResponse maps a persisted order to its wire view.
func ToOrderResponse(ord *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:           ord.ID,
		NumeroPedido: ord.NumeroPedido,
		LinkUnico:    ord.LinkUnico,
		Itens:        make([]OrderItemResponse, 0, len(ord.Itens)),
		Total:        ord.Total.InexactFloat64(),
		Economia:     ord.Economia.InexactFloat64(),
		OperatorCode: ord.OperatorCode,
		DataCriacao:  ord.CreatedAt,
	}
	for _, item := range ord.Itens {
		resp.Itens = append(resp.Itens, OrderItemResponse{
			Codigo:        item.Codigo,
			Descricao:     item.Descricao,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario.InexactFloat64(),
			Subtotal:      item.Subtotal.InexactFloat64(),
		})
	}
	return resp
}
