package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/identity"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/order"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared/valueobject"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/cache"
)

// CheckoutConfig carries the tunables of order submission.
type CheckoutConfig struct {
	MinimumOrderValue float64
	WhatsAppNumber    string
	MaxDescriptionLen int
}

// CheckoutService turns session carts into persisted orders and builds
// the WhatsApp deep link handed back to the storefront.
type CheckoutService struct {
	orderRepo order.OrderRepository
	cartStore cache.CartStore
	operators identity.OperatorProvider
	config    CheckoutConfig
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo order.OrderRepository,
	cartStore cache.CartStore,
	operators identity.OperatorProvider,
	config CheckoutConfig,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if operators == nil {
		operators = identity.DefaultMockProvider()
	}
	return &CheckoutService{
		orderRepo: orderRepo,
		cartStore: cartStore,
		operators: operators,
		config:    config,
		logger:    logger,
	}
}

// Submit persists the session cart as an order. Persistence failure aborts
// the whole submission; the cart stays intact and no link is produced.
// On success the cart is cleared and the response carries the wa.me link.
func (s *CheckoutService) Submit(ctx context.Context, req SubmitOrderRequest) (*OrderResponse, error) {
	cart, err := s.cartStore.Get(ctx, req.Sessao)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot submit an empty cart")
	}

	minimum := valueobject.NewMoneyBRLFromFloat(s.config.MinimumOrderValue)
	if minimum.IsPositive() {
		below, err := cart.TotalMoney().LessThan(minimum)
		if err != nil {
			return nil, err
		}
		if below {
			return nil, shared.NewDomainError("MINIMUM_ORDER",
				"Order total is below the minimum of R$ "+minimum.StringFixed(2))
		}
	}

	numeroPedido, err := s.orderRepo.GenerateNumeroPedido(ctx)
	if err != nil {
		return nil, err
	}
	linkUnico := uuid.NewString()

	operator, err := s.operators.Current(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := order.NewOrderFromCart(numeroPedido, linkUnico, cart, operator.Code)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, ord); err != nil {
		s.logger.Error("order persistence failed",
			zap.String("numero_pedido", numeroPedido),
			zap.Error(err))
		return nil, shared.NewDomainError("ORDER_FAILED", "Order submission failed")
	}

	if err := s.cartStore.Delete(ctx, req.Sessao); err != nil {
		// The order is already persisted; a stale cart only means the
		// customer sees old items until the TTL expires.
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("session_id", req.Sessao),
			zap.Error(err))
	}

	s.logger.Info("order submitted",
		zap.String("numero_pedido", ord.NumeroPedido),
		zap.String("link_unico", ord.LinkUnico),
		zap.String("operador", operator.Code),
		zap.String("total", ord.Total.StringFixed(2)))

	response := ToOrderResponse(ord)
	response.WhatsAppLink = BuildWhatsAppLink(s.config.WhatsAppNumber, ord, s.config.MaxDescriptionLen)
	return &response, nil
}

// GetByLink fetches a persisted order by its share link token.
func (s *CheckoutService) GetByLink(ctx context.Context, linkUnico string) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByLinkUnico(ctx, linkUnico)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(ord)
	return &response, nil
}
