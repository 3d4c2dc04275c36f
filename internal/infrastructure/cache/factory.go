package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/config"
)

// CartStoreFactory creates cart stores based on configuration
type CartStoreFactory struct {
	cartConfig    config.CartConfig
	redisConfig   config.RedisConfig
	logger        *zap.Logger
	allowFallback bool
}

// CartStoreFactoryOption is a functional option for configuring the factory
type CartStoreFactoryOption func(*CartStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// store when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.allowFallback = allow
	}
}

// NewCartStoreFactory creates a new factory
func NewCartStoreFactory(cartCfg config.CartConfig, redisCfg config.RedisConfig, opts ...CartStoreFactoryOption) *CartStoreFactory {
	f := &CartStoreFactory{
		cartConfig:    cartCfg,
		redisConfig:   redisCfg,
		logger:        zap.NewNop(),
		allowFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore creates the cart store configured by cart.store.
// When Redis is configured but unreachable, it falls back to the
// in-memory store unless fallback is disabled.
func (f *CartStoreFactory) CreateStore() (CartStore, error) {
	if f.cartConfig.Store != "redis" {
		f.logger.Info("using in-memory cart store")
		return NewInMemoryCartStore(f.cartConfig.TTL), nil
	}

	store, err := NewRedisCartStore(RedisCartStoreConfig{
		Addr:     f.redisConfig.RedisAddr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
		TTL:      f.cartConfig.TTL,
	})
	if err == nil {
		f.logger.Info("using Redis cart store")
		return store, nil
	}

	if !f.allowFallback {
		return nil, fmt.Errorf("Redis required for cart store but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cart store. "+
		"Carts will not be shared across instances.",
		zap.Error(err),
	)
	return NewInMemoryCartStore(f.cartConfig.TTL), nil
}
