package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("/analyze", handler.AnalyzeProduct)
			products.POST("/label", handler.AnalyzeLabel)
			products.GET("/barcode/:barcode", handler.LookupBarcode)
			products.GET("/search", handler.SearchProducts)
			products.GET("/recent", handler.RecentProducts)
		}

		reference := v1.Group("/reference")
		{
			reference.GET("/daily-values", handler.DailyValues)
		}
	}

	return router
}
