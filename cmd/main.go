package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/checkout"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/events"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/handler"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/inventory"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/repository"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/service"
	"github.com/cloud-wave-best-zizon/checkout-service/pkg/config"
	"github.com/cloud-wave-best-zizon/checkout-service/pkg/middleware"
	pkgtls "github.com/cloud-wave-best-zizon/checkout-service/pkg/tls"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	inv := inventory.New()
	engine := checkout.NewEngine(inv, logger)

	var store service.CatalogStore
	if !cfg.LocalMode {
		dynamoClient, err := repository.NewDynamoDBClient(cfg)
		if err != nil {
			log.Fatal("Failed to create DynamoDB client:", err)
		}
		store = repository.NewCatalogRepository(dynamoClient, cfg.ProductTableName)
	}

	var sink service.TransactionSink
	var producer *events.Producer
	if cfg.KafkaBrokers != "" {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer producer.Close()
		sink = producer
	}

	storeService := service.New(inv, engine, store, sink, logger)

	if cfg.LocalMode {
		inv.Load(seedCatalog())
		logger.Info("Running in local mode with seed catalog")
	} else {
		if err := storeService.LoadCatalog(context.Background()); err != nil {
			log.Fatal("Failed to load catalog:", err)
		}
	}

	storeHandler := handler.NewStoreHandler(storeService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	storeHandler.RegisterRoutes(router.Group("/api/v1"))

	tlsConfig, tlsSource, err := pkgtls.Load(context.Background(), pkgtls.Settings{
		Enabled:    cfg.TLSEnabled,
		SocketPath: cfg.SpireSocketPath,
	}, logger)
	if err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}
	defer tlsSource.Close()

	srv := &http.Server{
		Addr:      ":" + cfg.Port,
		Handler:   router,
		TLSConfig: tlsConfig,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.Bool("tls", tlsConfig != nil))
		var err error
		if tlsConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

// seedCatalog provides a small demo catalog for local mode.
func seedCatalog() []domain.Product {
	now := time.Now()
	soon := now.AddDate(0, 0, 10)
	later := now.AddDate(0, 3, 0)

	return []domain.Product{
		{
			ProductID: 101,
			Name:      "Instant Noodles",
			Price:     decimal.RequireFromString("20.00"),
			Stock:     40,
			Category:  domain.Category{Main: "Food", Sub: "Dry Goods"},
			Brand:     "Lucky Me",
			Variant:   "Chili",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ProductID:      102,
			Name:           "Fresh Milk 1L",
			Price:          decimal.RequireFromString("88.50"),
			Stock:          12,
			Category:       domain.Category{Main: "Beverage", Sub: "Dairy"},
			Brand:          "Magnolia",
			ExpirationDate: &soon,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ProductID:      103,
			Name:           "Canned Tuna",
			Price:          decimal.RequireFromString("35.25"),
			Stock:          3,
			Category:       domain.Category{Main: "Food", Sub: "Canned"},
			Brand:          "Century",
			Variant:        "Flakes in Oil",
			ExpirationDate: &later,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ProductID: 104,
			Name:      "Dish Soap",
			Price:     decimal.RequireFromString("45.00"),
			Stock:     25,
			Category:  domain.Category{Main: "Household", Sub: "Cleaning"},
			Brand:     "Joy",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
