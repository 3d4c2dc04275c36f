package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/Tiago-beta/sabor-d-minas-sub002/internal/application/catalog"
	orderapp "github.com/Tiago-beta/sabor-d-minas-sub002/internal/application/order"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/identity"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/cache"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/config"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/logger"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/persistence"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/interfaces/http/handler"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/interfaces/http/middleware"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Sabor de Minas API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Session cart store (memory or redis per config)
	cartStoreFactory := cache.NewCartStoreFactory(cfg.Cart, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	cartStore, err := cartStoreFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create cart store", zap.Error(err))
	}
	defer func() {
		if err := cartStore.Close(); err != nil {
			log.Error("Error closing cart store", zap.Error(err))
		}
	}()

	// Application services
	productService := catalogapp.NewProductService(productRepo, log)
	catalogService := catalogapp.NewCatalogService(productRepo, cfg.Checkout.HideBatchSize, log)
	cartService := orderapp.NewCartService(productRepo, cartStore, log)
	checkoutService := orderapp.NewCheckoutService(orderRepo, cartStore,
		identity.DefaultMockProvider(),
		orderapp.CheckoutConfig{
			MinimumOrderValue: cfg.Checkout.MinimumOrderValue,
			WhatsAppNumber:    cfg.Checkout.WhatsAppNumber,
			MaxDescriptionLen: cfg.Checkout.MaxDescriptionLen,
		}, log)

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(checkoutService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	r := router.NewRouter(engine)
	r.Register(productHandler).
		Register(catalogHandler).
		Register(cartHandler).
		Register(orderHandler)
	r.RegisterRoot(func(e *gin.Engine) {
		e.GET("/", systemHandler.Info)
		e.GET("/health", systemHandler.Health)
	})
	r.Setup()

	// Health and metadata inside the API prefix
	engine.GET("/api/health", systemHandler.APIHealth)
	engine.GET("/api", systemHandler.Info)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
