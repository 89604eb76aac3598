package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/identity"
	"github.com/ordena/backend/internal/domain/shared"
	"github.com/ordena/backend/internal/infrastructure/auth"
	"github.com/ordena/backend/internal/infrastructure/logger"
	"github.com/ordena/backend/internal/interfaces/http/handler"
	"github.com/ordena/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler wired into the API
type Handlers struct {
	System          *handler.SystemHandler
	Auth            *handler.AuthHandler
	User            *handler.UserHandler
	Product         *handler.ProductHandler
	Brand           *handler.BrandHandler
	Category        *handler.CategoryHandler
	Stock           *handler.StockHandler
	Order           *handler.OrderHandler
	TransferRequest *handler.TransferRequestHandler
	Notification    *handler.NotificationHandler
	Warehouse       *handler.WarehouseHandler
	Branch          *handler.BranchHandler
	Supplier        *handler.SupplierHandler
	DeliveryPerson  *handler.DeliveryPersonHandler
}

// Config holds the cross-cutting dependencies of the HTTP layer
type Config struct {
	JWTService       *auth.JWTService
	TokenBlacklist   auth.TokenBlacklist
	IdempotencyStore shared.IdempotencyStore
	Idempotency      shared.IdempotencyConfig
	CORS             middleware.CORSConfig
	MaxBodyBytes     int64
	TracingEnabled   bool
	Logger           *zap.Logger
}

// Setup installs the middleware chain and registers all API routes on the
// engine. Routes live under /api/v1; health endpoints stay unversioned so
// probes survive an API version bump.
func Setup(engine *gin.Engine, cfg Config, h Handlers) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	engine.Use(middleware.Secure())
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}
	if cfg.TracingEnabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: "ordena-backend",
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	jwtConfig := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtConfig.TokenBlacklist = cfg.TokenBlacklist
	jwtConfig.Logger = log
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths, "/api/v1/system/ping", "/api/v1/system/info")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	api.Use(middleware.Idempotency(cfg.IdempotencyStore, cfg.Idempotency, log))

	registerSystemRoutes(api, h)
	registerAuthRoutes(api, h)
	registerUserRoutes(api, h)
	registerCatalogRoutes(api, h)
	registerInventoryRoutes(api, h)
	registerOrderRoutes(api, h)
	registerTransferRequestRoutes(api, h)
	registerNotificationRoutes(api, h)
	registerLocationRoutes(api, h)
	registerPartnerRoutes(api, h)
}

func registerSystemRoutes(api *gin.RouterGroup, h Handlers) {
	system := api.Group("/system")
	{
		system.GET("/ping", h.System.Ping)
		system.GET("/info", h.System.Info)
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h Handlers) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
		auth.PUT("/password", h.Auth.ChangePassword)
	}
}

// User management is admin-only.
func registerUserRoutes(api *gin.RouterGroup, h Handlers) {
	users := api.Group("/users", middleware.RequireRole(string(identity.RoleAdmin)))
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.GetByID)
		users.PUT("/:id/warehouse", h.User.AssignWarehouse)
		users.PUT("/:id/branch", h.User.AssignBranch)
		users.POST("/:id/deactivate", h.User.Deactivate)
	}
}

func registerCatalogRoutes(api *gin.RouterGroup, h Handlers) {
	catalog := api.Group("/catalog")
	{
		products := catalog.Group("/products")
		{
			products.POST("", h.Product.Create)
			products.GET("", h.Product.List)
			products.GET("/:id", h.Product.GetByID)
			products.GET("/code/:code", h.Product.GetByInternalCode)
			products.PUT("/:id", h.Product.Update)
			products.POST("/:id/deactivate", h.Product.Deactivate)
			products.POST("/:id/reactivate", h.Product.Reactivate)
		}

		brands := catalog.Group("/brands")
		{
			brands.POST("", h.Brand.Create)
			brands.GET("", h.Brand.List)
			brands.GET("/:id", h.Brand.GetByID)
			brands.PUT("/:id", h.Brand.Update)
			brands.DELETE("/:id", h.Brand.Delete)
		}

		categories := catalog.Group("/categories")
		{
			categories.POST("", h.Category.Create)
			categories.GET("", h.Category.List)
			categories.GET("/:id", h.Category.GetByID)
			categories.PUT("/:id", h.Category.Update)
			categories.DELETE("/:id", h.Category.Delete)
		}
	}
}

func registerInventoryRoutes(api *gin.RouterGroup, h Handlers) {
	inventory := api.Group("/inventory")
	{
		inventory.GET("/stock", h.Stock.List)
		inventory.GET("/stock/record", h.Stock.GetRecord)
		inventory.POST("/stock/record", h.Stock.EnsureRecord)
		inventory.PUT("/stock/thresholds", h.Stock.SetThresholds)
		inventory.PUT("/stock/supplier", h.Stock.AssignSupplier)
		inventory.POST("/adjustments", h.Stock.Adjust)
		inventory.POST("/adjustments/batch", h.Stock.AdjustBatch)
		inventory.GET("/movements", h.Stock.Movements)
		inventory.GET("/availability", h.Stock.Availability)
		inventory.GET("/products/:id/quantity", h.Stock.TotalQuantity)
	}
}

func registerOrderRoutes(api *gin.RouterGroup, h Handlers) {
	orders := api.Group("/orders")
	{
		orders.POST("", h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.GetByID)
		orders.POST("/:id/items", h.Order.AddItem)
		orders.PUT("/:id/delivery-person", h.Order.AssignDeliveryPerson)
		orders.POST("/:id/dispatch",
			middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleWarehouse)),
			h.Order.Dispatch)
		orders.POST("/:id/complete", h.Order.Complete)
		orders.POST("/:id/reject",
			middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleWarehouse)),
			h.Order.Reject)
		orders.POST("/supplier-ingestions",
			middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleWarehouse)),
			h.Order.IngestSupplierDelivery)
		orders.POST("/supplier-ingestions/csv",
			middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleWarehouse)),
			h.Order.IngestSupplierDeliveryCSV)
	}
}

func registerTransferRequestRoutes(api *gin.RouterGroup, h Handlers) {
	requests := api.Group("/transfer-requests")
	{
		requests.POST("", h.TransferRequest.Create)
		requests.GET("", h.TransferRequest.List)
		requests.GET("/:id", h.TransferRequest.GetByID)
		requests.POST("/:id/approve",
			middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleWarehouse)),
			h.TransferRequest.Approve)
		requests.POST("/:id/reject",
			middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleWarehouse)),
			h.TransferRequest.Reject)
	}
}

func registerNotificationRoutes(api *gin.RouterGroup, h Handlers) {
	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.POST("/:id/read", h.Notification.MarkRead)
		notifications.POST("/read-all", h.Notification.MarkAllRead)
		notifications.POST("/:id/archive", h.Notification.Archive)
	}
}

func registerLocationRoutes(api *gin.RouterGroup, h Handlers) {
	locations := api.Group("/locations")
	{
		warehouses := locations.Group("/warehouses", middleware.RequireRole(string(identity.RoleAdmin)))
		{
			warehouses.POST("", h.Warehouse.Create)
			warehouses.PUT("/:id", h.Warehouse.Update)
		}
		locations.GET("/warehouses", h.Warehouse.List)
		locations.GET("/warehouses/:id", h.Warehouse.GetByID)

		branches := locations.Group("/branches", middleware.RequireRole(string(identity.RoleAdmin)))
		{
			branches.POST("", h.Branch.Create)
			branches.PUT("/:id", h.Branch.Update)
			branches.PUT("/:id/warehouse", h.Branch.ReassignWarehouse)
		}
		locations.GET("/branches", h.Branch.List)
		locations.GET("/branches/:id", h.Branch.GetByID)
	}
}

func registerPartnerRoutes(api *gin.RouterGroup, h Handlers) {
	partners := api.Group("/partners")
	{
		suppliers := partners.Group("/suppliers")
		{
			suppliers.POST("", h.Supplier.Create)
			suppliers.GET("", h.Supplier.List)
			suppliers.GET("/:id", h.Supplier.GetByID)
			suppliers.PUT("/:id", h.Supplier.Update)
		}

		deliveryPersons := partners.Group("/delivery-persons")
		{
			deliveryPersons.POST("", h.DeliveryPerson.Create)
			deliveryPersons.GET("", h.DeliveryPerson.List)
			deliveryPersons.GET("/:id", h.DeliveryPerson.GetByID)
			deliveryPersons.PUT("/:id", h.DeliveryPerson.Update)
			deliveryPersons.DELETE("/:id", h.DeliveryPerson.Delete)
		}
	}
}
