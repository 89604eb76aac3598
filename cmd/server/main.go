package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/ordena/backend/internal/application/catalog"
	identityapp "github.com/ordena/backend/internal/application/identity"
	inventoryapp "github.com/ordena/backend/internal/application/inventory"
	locationapp "github.com/ordena/backend/internal/application/location"
	notificationapp "github.com/ordena/backend/internal/application/notification"
	ordersapp "github.com/ordena/backend/internal/application/orders"
	partnerapp "github.com/ordena/backend/internal/application/partner"
	"github.com/ordena/backend/internal/domain/shared"
	"github.com/ordena/backend/internal/infrastructure/auth"
	"github.com/ordena/backend/internal/infrastructure/cache"
	"github.com/ordena/backend/internal/infrastructure/config"
	"github.com/ordena/backend/internal/infrastructure/event"
	"github.com/ordena/backend/internal/infrastructure/logger"
	"github.com/ordena/backend/internal/infrastructure/persistence"
	"github.com/ordena/backend/internal/infrastructure/telemetry"
	"github.com/ordena/backend/internal/interfaces/http/handler"
	"github.com/ordena/backend/internal/interfaces/http/middleware"
	"github.com/ordena/backend/internal/interfaces/http/router"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

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

	log.Info("Starting Ordena Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled
	dbTracing.DBName = cfg.Database.DBName
	dbTracing.LogFullSQL = cfg.App.Env == "development"
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	deliveryPersonRepo := persistence.NewGormDeliveryPersonRepository(db.DB)
	stockRecordRepo := persistence.NewGormStockRecordRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	transferRequestRepo := persistence.NewGormTransferRequestRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Token blacklist backed by Redis, falling back to an in-process store
	// when Redis is not reachable at startup
	var tokenBlacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		_ = redisClient.Close()
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		defer func() {
			_ = redisClient.Close()
		}()
	}
	cancelPing()

	jwtService := auth.NewJWTService(cfg.JWT)

	// Idempotency store for mutation replay protection
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Initialize application services
	txScope := persistence.NewGormTransactionScope(db.DB)
	stockReconciler := inventoryapp.NewStockReconciler(txScope, log)
	stockReconciler.SetEventPublisher(eventBus)

	stockService := inventoryapp.NewStockService(stockRecordRepo, stockMovementRepo)

	ingestionService := inventoryapp.NewSupplierIngestionService(productRepo, supplierRepo, orderRepo, stockReconciler, log)
	ingestionService.SetEventPublisher(eventBus)

	productService := catalogapp.NewProductService(productRepo, brandRepo, categoryRepo, log)
	productService.SetEventPublisher(eventBus)
	brandService := catalogapp.NewBrandService(brandRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)

	orderService := ordersapp.NewOrderService(orderRepo, warehouseRepo, branchRepo, stockReconciler, log)
	orderService.SetEventPublisher(eventBus)
	transferRequestService := ordersapp.NewTransferRequestService(transferRequestRepo, orderRepo, branchRepo, log)
	transferRequestService.SetEventPublisher(eventBus)

	notificationService := notificationapp.NewNotificationService(notificationRepo, log)

	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist, log)
	userService := identityapp.NewUserService(userRepo, warehouseRepo, branchRepo, tokenBlacklist, jwtService, log)

	warehouseService := locationapp.NewWarehouseService(warehouseRepo, log)
	branchService := locationapp.NewBranchService(branchRepo, warehouseRepo, log)

	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	deliveryPersonService := partnerapp.NewDeliveryPersonService(deliveryPersonRepo, log)

	// Register event handlers for cross-context integration
	// Stock threshold crossings -> notifications
	thresholdNotifier := inventoryapp.NewThresholdNotifier(userRepo, notificationRepo, log)
	eventBus.Subscribe(thresholdNotifier)

	// Transfer order status changes -> notifications
	orderStatusNotifier := notificationapp.NewOrderStatusNotifier(orderRepo, userRepo, notificationRepo, log)
	eventBus.Subscribe(orderStatusNotifier)

	log.Info("Event handlers registered",
		zap.Strings("threshold_events", thresholdNotifier.EventTypes()),
		zap.Strings("order_status_events", orderStatusNotifier.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	handlers := router.Handlers{
		System:          handler.NewSystemHandler(db, version),
		Auth:            handler.NewAuthHandler(authService),
		User:            handler.NewUserHandler(userService),
		Product:         handler.NewProductHandler(productService),
		Brand:           handler.NewBrandHandler(brandService),
		Category:        handler.NewCategoryHandler(categoryService),
		Stock:           handler.NewStockHandler(stockService, stockReconciler),
		Order:           handler.NewOrderHandler(orderService, ingestionService),
		TransferRequest: handler.NewTransferRequestHandler(transferRequestService),
		Notification:    handler.NewNotificationHandler(notificationService),
		Warehouse:       handler.NewWarehouseHandler(warehouseService),
		Branch:          handler.NewBranchHandler(branchService),
		Supplier:        handler.NewSupplierHandler(supplierService),
		DeliveryPerson:  handler.NewDeliveryPersonHandler(deliveryPersonService),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	router.Setup(engine, router.Config{
		JWTService:       jwtService,
		TokenBlacklist:   tokenBlacklist,
		IdempotencyStore: idempotencyStore,
		Idempotency:      shared.DefaultIdempotencyConfig(),
		CORS:             corsConfig,
		MaxBodyBytes:     cfg.HTTP.MaxBodySize,
		TracingEnabled:   cfg.Telemetry.Enabled,
		Logger:           log,
	}, handlers)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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
