// @title LaundryAO Forecast API
// @version 1.0
// @description Forecasting engine backend for the LaundryAO retail platform
// @host localhost:8082
// @BasePath /api/v1
// @schemes http
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/zeez-dotcom/laundryao-sub003/config"
	"github.com/zeez-dotcom/laundryao-sub003/controllers/cms/forecast_controller"
	"github.com/zeez-dotcom/laundryao-sub003/routes/cms_routes"
	"github.com/zeez-dotcom/laundryao-sub003/services"
	forecast "github.com/zeez-dotcom/laundryao-sub003/services/forecast_service"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	defer config.CloseDB()
	// Redis connection (rate limiter)
	config.ConnectRedis()

	// ✅ Initialize JWT Service for Admin Auth (secret shared with the core CMS)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(jwtSecret); err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	log.Println("✅ JWT Service initialized")

	// ✅ Assemble the forecast engine: ledger loader + store over the shared
	// database, synthetic seasonal signal, two-point trend, UTC clock.
	loader := forecast.NewLedgerHistoryLoader(config.LedgerGorm)
	store := forecast.NewGormForecastStore(config.LedgerGorm, loader)
	engine, err := forecast.NewEngine(forecast.EngineOptions{
		Store:  store,
		Loader: loader,
	})
	if err != nil {
		log.Fatalf("Failed to assemble forecast engine: %v", err)
	}
	forecast_controller.Init(engine, forecast.NewPgAdvisoryRunLock(config.LedgerDB))
	log.Println("✅ Forecast engine assembled")

	// ✅ Configure CORS properly for all content types including PDFs
	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"}, // Expose these headers for downloads
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Register API routes
	api := router.Group("/api/v1")
	cms_routes.SetupForecastRoutes(api)
	log.Println("✅ Forecast routes registered")

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}
	fmt.Printf("🚀 Server is running on http://localhost:%s\n", port)
	router.Run(":" + port)
}
