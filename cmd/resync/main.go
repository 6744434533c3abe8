package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wms-service/internal/config"
	"wms-service/internal/replica"
	"wms-service/internal/repository"
	syncengine "wms-service/internal/sync"
)

func main() {
	testOnly := flag.Bool("test", false, "check replica connectivity and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	store := replica.NewSurrealStore(
		cfg.Replica.URL,
		cfg.Replica.Namespace,
		cfg.Replica.Database,
		cfg.Replica.User,
		cfg.Replica.Password,
		logger,
	)

	ctx := context.Background()

	// Check the replica before touching anything else so a down replica
	// gives one clear diagnostic instead of a wall of per-record errors.
	if err := store.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Replica store at %s is unreachable: %v\n", cfg.Replica.URL, err)
		fmt.Fprintln(os.Stderr, "Check REPLICA_URL and that the replica store is running.")
		os.Exit(1)
	}
	fmt.Printf("Replica store at %s is reachable\n", cfg.Replica.URL)

	if *testOnly {
		return
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	warehouseRepo := repository.NewWarehouseRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db, nil)

	engine := syncengine.NewEngine(warehouseRepo, productRepo, orderRepo, store, logger)

	summary, err := engine.ResyncAll(ctx)
	if err != nil {
		log.Fatalf("Bulk resync failed: %v", err)
	}

	fmt.Printf("Orders:     %d/%d synced\n", summary.Orders.Synced, summary.Orders.Total)
	fmt.Printf("Products:   %d/%d synced\n", summary.Products.Synced, summary.Products.Total)
	fmt.Printf("Warehouses: %d/%d synced\n", summary.Warehouses.Synced, summary.Warehouses.Total)

	failed := summary.Orders.Total - summary.Orders.Synced +
		summary.Products.Total - summary.Products.Synced +
		summary.Warehouses.Total - summary.Warehouses.Synced
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d records failed to sync, see logs for details\n", failed)
		os.Exit(1)
	}
}
