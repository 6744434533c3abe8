package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wms-service/internal/clients"
	"wms-service/internal/config"
	"wms-service/internal/events"
	"wms-service/internal/handlers"
	"wms-service/internal/middleware"
	"wms-service/internal/models"
	"wms-service/internal/pdf"
	"wms-service/internal/replica"
	"wms-service/internal/repository"
	"wms-service/internal/services"
	syncengine "wms-service/internal/sync"
)

// @title WMS Service API
// @version 1.0
// @description Warehouse management service with a document-store read replica and reporting

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Auto-migrate database schema
	if err := migrateDatabase(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis client (optional - graceful degradation if Redis unavailable)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to parse Redis URL: %v", err)
			log.Println("Continuing without Redis caching...")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("Warning: Failed to connect to Redis: %v", err)
				log.Println("Continuing without Redis caching...")
				redisClient = nil
			} else {
				log.Println("✓ Connected to Redis for caching")
			}
		}
	} else {
		log.Println("REDIS_URL not configured, caching disabled")
	}

	// Initialize replica store
	replicaStore := replica.NewSurrealStore(
		cfg.Replica.URL,
		cfg.Replica.Namespace,
		cfg.Replica.Database,
		cfg.Replica.User,
		cfg.Replica.Password,
		logger,
	)

	// Initialize repositories
	warehouseRepo := repository.NewWarehouseRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db, redisClient)
	reportRepo := repository.NewReportRepository(db)

	// Initialize the event dispatcher and hook up replication
	dispatcher := events.NewDispatcher(logger)
	engine := syncengine.NewEngine(warehouseRepo, productRepo, orderRepo, replicaStore, logger)
	engine.RegisterHooks(dispatcher)

	// Initialize auth client for role resolution
	authClient := clients.NewAuthClient(cfg.App.AuthServiceURL)

	// Initialize services
	inventoryService := services.NewInventoryService(warehouseRepo, productRepo, dispatcher)
	orderService := services.NewOrderService(orderRepo, productRepo, dispatcher)
	reportService := services.NewReportService(reportRepo, orderRepo, productRepo, replicaStore, logger)

	// Initialize handlers
	warehouseHandler := handlers.NewWarehouseHandler(inventoryService)
	productHandler := handlers.NewProductHandler(inventoryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reportHandler := handlers.NewReportHandler(reportService, pdf.NewGenerator())
	healthHandler := handlers.NewHealthHandler(db, replicaStore, redisClient)

	// Setup router
	router := setupRouter(cfg, authClient, warehouseHandler, productHandler, orderHandler, reportHandler, healthHandler)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down WMS Service...")

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing Redis client: %v", err)
			}
		}

		log.Println("WMS service stopped")
		os.Exit(0)
	}()

	// Start server
	log.Printf("Starting WMS Service on %s", cfg.GetServerAddress())
	if err := router.Run(cfg.GetServerAddress()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase initializes the database connection
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Get underlying sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// migrateDatabase runs database migrations
func migrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Warehouse{},
		&models.Shelf{},
		&models.Slot{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(
	cfg *config.Config,
	authClient clients.AuthClient,
	warehouseHandler *handlers.WarehouseHandler,
	productHandler *handlers.ProductHandler,
	orderHandler *handlers.OrderHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())
	router.Use(middleware.RoleResolution(authClient))

	// Health check endpoint
	router.GET("/health", healthHandler.Health)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		warehouses := api.Group("/bodegas")
		{
			warehouses.POST("", warehouseHandler.CreateWarehouse)
			warehouses.GET("", warehouseHandler.ListWarehouses)
			warehouses.GET("/:codigo", warehouseHandler.GetWarehouse)
			warehouses.PUT("/:codigo", warehouseHandler.UpdateWarehouse)
			warehouses.DELETE("/:codigo", warehouseHandler.DeleteWarehouse)
			warehouses.POST("/:codigo/estanterias", warehouseHandler.CreateShelf)
		}

		shelves := api.Group("/estanterias")
		{
			shelves.GET("/:id", warehouseHandler.GetShelf)
			shelves.POST("/:id/ubicaciones", warehouseHandler.CreateSlot)
		}

		slots := api.Group("/ubicaciones")
		{
			slots.GET("/:id", warehouseHandler.GetSlot)
			slots.PUT("/:id", warehouseHandler.UpdateSlot)
		}

		products := api.Group("/productos")
		{
			products.POST("", productHandler.CreateProduct)
			products.GET("", productHandler.ListProducts)
			products.GET("/:codigo", productHandler.GetProduct)
			products.PUT("/:codigo", productHandler.UpdateProduct)
			products.DELETE("/:codigo", productHandler.DeleteProduct)
		}

		orders := api.Group("/pedidos")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/valid-transitions", orderHandler.GetValidTransitions)
			orders.PATCH("/:id/estado", orderHandler.UpdateOrderStatus)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
		}
	}

	reports := router.Group("/reportes")
	{
		reports.GET("/inventario", reportHandler.InventoryReport)
		reports.GET("/inventario/pdf", reportHandler.InventoryReportPDF)
		reports.GET("/pedidos", reportHandler.OrdersReport)
		reports.GET("/pedidos/pdf", reportHandler.OrdersReportPDF)
		reports.GET("/productos-mas-vendidos", reportHandler.TopProductsReport)
		reports.GET("/productos-mas-vendidos/pdf", reportHandler.TopProductsReportPDF)
		reports.GET("/bodegas-capacidad", reportHandler.WarehouseCapacityReport)
		reports.GET("/bodegas-capacidad/pdf", reportHandler.WarehouseCapacityReportPDF)
		reports.GET("/ventas-por-fecha", reportHandler.SalesByDateReport)
		reports.GET("/ventas-por-fecha/pdf", reportHandler.SalesByDateReportPDF)
		reports.GET("/replica/pedidos", reportHandler.RecentOrders)
		reports.GET("/replica/productos", reportHandler.RecentProducts)
	}

	return router
}
