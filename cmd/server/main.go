package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nutrilens/backend/config"
	httpDelivery "github.com/nutrilens/backend/internal/delivery/http"
	"github.com/nutrilens/backend/internal/domain"
	"github.com/nutrilens/backend/internal/infrastructure/cache"
	"github.com/nutrilens/backend/internal/infrastructure/openfoodfacts"
	"github.com/nutrilens/backend/internal/infrastructure/store"
	"github.com/nutrilens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger := newLogger(cfg.Server.Environment)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	usecase.SetLogger(logger)

	logger.Info("starting NutriLens backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cfg.Cache.TTL)
	logger.Info("cache configured", zap.Duration("ttl", cfg.Cache.TTL))

	productStore, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Fatal("failed to open product store", zap.Error(err))
	}
	defer productStore.Close()
	logger.Info("product store ready", zap.String("path", cfg.Store.Path))

	var barcodeClient domain.BarcodeClient
	if cfg.OpenFoodFacts.Enabled {
		barcodeClient = openfoodfacts.NewClient(cfg.OpenFoodFacts.BaseURL, logger)
		logger.Info("barcode lookup enabled", zap.String("base_url", cfg.OpenFoodFacts.BaseURL))
	} else {
		logger.Warn("barcode lookup disabled; only stored products will resolve")
	}

	// Initialize usecase layer
	analysisService := usecase.NewAnalysisService(
		productStore,
		memoryCache,
		barcodeClient,
		usecase.AnalysisServiceConfig{CacheTTL: cfg.Cache.TTL},
		logger,
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(environment string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}
