package main

import (
	"log"
	"net/http"
	"time"

	"github.com/bellapacxx/bingo-cardgen/config"
	"github.com/bellapacxx/bingo-cardgen/controllers"
	"github.com/bellapacxx/bingo-cardgen/routes"
	"github.com/bellapacxx/bingo-cardgen/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg config.AppConfig, cards *controllers.CardController, hub *services.DealerHub) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes and the dealer websocket
	routes.SetupRoutes(r, cards, hub)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	return r
}

func main() {
	// Load env variables
	cfg := config.Load()

	// Connect the optional card archive
	db := config.ConnectDB(cfg.DatabaseURL)

	// Wire the generation core
	registry := services.NewCardRegistry()
	registry.SetSessionTTL(cfg.SessionTTL)
	registry.SetCleanupInterval(cfg.CleanupInterval)

	service := services.NewBingoGeneratorService(registry)
	service.SetMaxAttempts(cfg.MaxAttempts)

	archive := services.NewCardArchive(db)
	hub := services.NewDealerHub(service, registry, archive)
	cards := controllers.NewCardController(service, registry, archive)

	// Setup Gin router
	router := setupRouter(cfg, cards, hub)

	// Start server
	log.Printf("🚀 Bingo card service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
