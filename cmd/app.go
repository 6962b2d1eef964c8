// Package cmd assembles the application: configuration, logger,
// storage backend, event wiring, services and the HTTP server.
package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ordermanagement/api"
	apicustomer "ordermanagement/api/customer"
	"ordermanagement/api/health"
	apiorder "ordermanagement/api/order"
	apiproduct "ordermanagement/api/product"
	customerapp "ordermanagement/application/customer"
	orderapp "ordermanagement/application/order"
	productapp "ordermanagement/application/product"
	"ordermanagement/config"
	customerdomain "ordermanagement/domain/customer"
	orderdomain "ordermanagement/domain/order"
	productdomain "ordermanagement/domain/product"
	"ordermanagement/domain/shared"
	"ordermanagement/infrastructure/notification"
	"ordermanagement/infrastructure/persistence/memory"
	"ordermanagement/infrastructure/persistence/mysql"
	"ordermanagement/infrastructure/persistence/retry"
	"ordermanagement/pkg/logger"
)

// App is the composed application ready to serve.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// NewApp wires the full application from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("database", cfg.Database.Type))

	bus := notification.NewEventBus(logger.Get())

	backend, err := buildBackend(cfg, bus)
	if err != nil {
		return nil, err
	}

	customerService := customerapp.NewService(backend.customers, backend.uowFactory)
	productService := productapp.NewService(backend.products, backend.uowFactory)
	orderService := orderapp.NewService(backend.orders, backend.customers, backend.products, backend.uowFactory)

	subscribeHandlers(bus, backend)

	healthController := health.NewController(cfg, backend.sqlDB)
	customerController := apicustomer.NewController(customerService)
	productController := apiproduct.NewController(productService)
	orderController := apiorder.NewController(orderService)

	router := api.NewRouter(cfg, healthController, customerController, productController, orderController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
		db:     backend.db,
	}, nil
}

// backend bundles the storage-specific dependencies the rest of the
// wiring is indifferent to.
type backend struct {
	customers  customerdomain.Repository
	products   productdomain.Repository
	orders     orderdomain.Repository
	uowFactory shared.UnitOfWorkFactory
	db         *gorm.DB
	sqlDB      *sql.DB
}

func buildBackend(cfg *config.Config, bus *notification.EventBus) (*backend, error) {
	switch cfg.Database.Type {
	case "mysql":
		return buildMySQLBackend(cfg, bus)
	case "memory", "":
		logger.Info("Using in-memory persistence layer")
		store := memory.NewStore()
		return &backend{
			customers:  memory.NewCustomerRepository(store),
			products:   memory.NewProductRepository(store),
			orders:     memory.NewOrderRepository(store),
			uowFactory: memory.NewUnitOfWorkFactory(store, bus, logger.Get()),
		}, nil
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.Database.Type)
	}
}

func buildMySQLBackend(cfg *config.Config, bus *notification.EventBus) (*backend, error) {
	logger.Info("Using MySQL/GORM persistence layer")

	mysqlConfig := &mysql.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}

	db, err := mysqlConfig.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}
	logger.Info("Connected to MySQL successfully")

	if cfg.App.Env == "development" {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	retryConfig := retry.Config{
		Enabled:            cfg.Database.Retry.Enabled,
		MaxAttempts:        cfg.Database.Retry.MaxAttempts,
		InitialDelay:       cfg.Database.Retry.InitialDelay,
		MaxDelay:           cfg.Database.Retry.MaxDelay,
		BackoffFactor:      cfg.Database.Retry.BackoffFactor,
		JitterEnabled:      cfg.Database.Retry.JitterEnabled,
		RetryOnDeadlock:    cfg.Database.Retry.RetryOnDeadlock,
		RetryOnLockTimeout: cfg.Database.Retry.RetryOnLockTimeout,
	}

	return &backend{
		customers:  mysql.NewCustomerRepository(db),
		products:   mysql.NewProductRepository(db),
		orders:     mysql.NewOrderRepository(db),
		uowFactory: mysql.NewUnitOfWorkFactory(db, bus, retryConfig, logger.Get()),
		db:         db,
		sqlDB:      sqlDB,
	}, nil
}

// subscribeHandlers attaches the post-commit event handlers. Handler
// failures are logged by the bus and never reach the committed
// operation.
func subscribeHandlers(bus *notification.EventBus, b *backend) {
	email := notification.NewLoggingEmailService(logger.Get())

	bus.Subscribe(orderdomain.EventOrderCreated, orderapp.NewCreatedLogHandler(logger.Get()))
	bus.Subscribe(orderdomain.EventOrderCreated, orderapp.NewInventoryAlertHandler(b.orders, b.products, logger.Get()))
	bus.Subscribe(orderdomain.EventOrderCreated, orderapp.NewConfirmationEmailHandler(b.orders, b.customers, email, logger.Get()))
	bus.Subscribe(orderdomain.EventOrderStatusChanged, orderapp.NewStatusChangedLogHandler(logger.Get()))
	bus.Subscribe(orderdomain.EventOrderStatusChanged, orderapp.NewStatusEmailHandler(b.orders, b.customers, email))
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully
// within the configured timeout.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	logger.Info("Server stopped")
	_ = logger.Sync()
	return nil
}

// Engine exposes the gin engine for tests.
func (a *App) Engine() http.Handler {
	return a.router.Engine()
}
