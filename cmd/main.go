package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"inventory-service/internal/handler"
	mid "inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/pkg/storage"
	"inventory-service/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Connect the database; the handle is injected below, never held globally
	db, err := database.Connect(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Asset storage for product images
	assetStore, err := storage.New(&appConfig.Storage)
	if err != nil {
		log.Fatal("Failed to initialize asset storage", zap.Error(err))
	}
	log.Info("Asset storage initialized", zap.String("driver", appConfig.Storage.Driver))

	// Wire services and handlers
	tenants := service.NewTenantService(db, log)
	catalog := service.NewCatalogService(db, tenants, log)
	ledger := service.NewLedgerService(db, tenants, log)
	stats := service.NewStatsService(db, tenants, log)

	tenantHandler := handler.NewTenantHandler(tenants)
	categoryHandler := handler.NewCategoryHandler(catalog)
	productHandler := handler.NewProductHandler(catalog)
	stockHandler := handler.NewStockHandler(ledger)
	statsHandler := handler.NewStatsHandler(stats)
	uploadHandler := handler.NewUploadHandler(assetStore)
	healthHandler := handler.NewHealthHandler(db)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", healthHandler.Check)

	// Tenant API routes
	tenantAPI := e.Group("/api/tenants", mid.AuthMiddleware)
	tenantAPI.POST("", tenantHandler.Onboard)
	tenantAPI.GET("/me", tenantHandler.Me)

	// Category API routes
	categoryAPI := e.Group("/api/categories", mid.AuthMiddleware)
	categoryAPI.GET("", categoryHandler.List)
	categoryAPI.POST("", categoryHandler.Create)
	categoryAPI.PUT("/:id", categoryHandler.Update)
	categoryAPI.DELETE("/:id", categoryHandler.Delete)

	// Product API routes
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", productHandler.List)
	productAPI.GET("/:id", productHandler.Get)
	productAPI.POST("", productHandler.Create)
	productAPI.PUT("/:id", productHandler.Update)
	productAPI.DELETE("/:id", productHandler.Delete)

	// Stock ledger API routes
	stockAPI := e.Group("/api/stock", mid.AuthMiddleware)
	stockAPI.POST("/replenish", stockHandler.Replenish)
	stockAPI.POST("/withdraw", stockHandler.Withdraw)

	// Dashboard statistics API routes
	statsAPI := e.Group("/api/stats", mid.AuthMiddleware)
	statsAPI.GET("/overview", statsHandler.Overview)
	statsAPI.GET("/category-distribution", statsHandler.CategoryDistribution)
	statsAPI.GET("/stock-levels", statsHandler.StockLevels)
	statsAPI.GET("/critical-products", statsHandler.CriticalProducts)

	// Transaction history
	transactionAPI := e.Group("/api/transactions", mid.AuthMiddleware)
	transactionAPI.GET("", statsHandler.Transactions)

	// Asset upload
	uploadAPI := e.Group("/api/uploads", mid.AuthMiddleware)
	uploadAPI.POST("", uploadHandler.Upload)
	uploadAPI.DELETE("", uploadHandler.Delete)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
