package routes

import (
	"github.com/bellapacxx/bingo-cardgen/controllers"
	"github.com/bellapacxx/bingo-cardgen/services"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cards *controllers.CardController, hub *services.DealerHub) {
	api := r.Group("/api")

	// ----------------------
	// Format routes
	// ----------------------
	api.GET("/formats", cards.ListFormats) // List supported formats

	// ----------------------
	// Card routes
	// ----------------------
	api.POST("/cards", cards.GenerateCard)          // Issue one card
	api.POST("/cards/batch", cards.GenerateBatch)   // Issue up to 100 cards
	api.POST("/cards/validate", cards.ValidateCard) // Check a grid against a session

	// ----------------------
	// Session routes
	// ----------------------
	api.GET("/sessions/:session_id", cards.SessionStatus)         // Registry bookkeeping
	api.DELETE("/sessions/:session_id", cards.ClearSession)       // Reset uniqueness
	api.GET("/sessions/:session_id/cards", cards.ListSessionCards) // Archived cards

	// ----------------------
	// Dealer websocket
	// ----------------------
	r.GET("/ws/:session_id", hub.HandleWebSocket)
}
