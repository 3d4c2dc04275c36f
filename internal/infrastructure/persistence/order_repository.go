package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/order"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var ord order.Order
	if err := r.db.WithContext(ctx).
		Preload("Itens").
		First(&ord, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ord, nil
}

// FindByNumeroPedido finds an order by its order number
func (r *GormOrderRepository) FindByNumeroPedido(ctx context.Context, numeroPedido string) (*order.Order, error) {
	var ord order.Order
	if err := r.db.WithContext(ctx).
		Preload("Itens").
		Where("numero_pedido = ?", numeroPedido).
		First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ord, nil
}

// FindByLinkUnico finds an order by its share link token
func (r *GormOrderRepository) FindByLinkUnico(ctx context.Context, linkUnico string) (*order.Order, error) {
	var ord order.Order
	if err := r.db.WithContext(ctx).
		Preload("Itens").
		Where("link_unico = ?", linkUnico).
		First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ord, nil
}

// FindAll finds all orders matching the filter, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).Model(&order.Order{}).Preload("Itens")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	sortField := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists a new order with its items in a single transaction
func (r *GormOrderRepository) Save(ctx context.Context, ord *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(ord).Error
	})
}

// GenerateNumeroPedido generates the next sequential order number for
// the current year, format PA-<year>-NNNNN
func (r *GormOrderRepository) GenerateNumeroPedido(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("PA-%d-", year)

	// Get the highest order number for this year
	var lastOrder order.Order
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("numero_pedido LIKE ?", prefix+"%").
		Order("numero_pedido DESC").
		First(&lastOrder).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.NumeroPedido != "" {
		parts := strings.Split(lastOrder.NumeroPedido, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	numeroPedido := fmt.Sprintf("%s%05d", prefix, nextNum)

	// Verify uniqueness, incrementing on collision
	for i := 0; i < 100; i++ {
		exists, err := r.existsByNumeroPedido(ctx, numeroPedido)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		nextNum++
		numeroPedido = fmt.Sprintf("%s%05d", prefix, nextNum)
	}

	return numeroPedido, nil
}

func (r *GormOrderRepository) existsByNumeroPedido(ctx context.Context, numeroPedido string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("numero_pedido = ?", numeroPedido).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ order.OrderRepository = (*GormOrderRepository)(nil)
