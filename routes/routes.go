package routes

import (
	"github.com/breevs/roulette-backend/controllers"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Game routes (read-only record of on-chain games)
	// ----------------------
	api.GET("/games", controllers.ListGames)            // List games (?status=, ?wallet=)
	api.GET("/games/:id", controllers.GetGame)          // Game detail
	api.GET("/games/:id/events", controllers.ListEvents) // Event log (?type=)

	// ----------------------
	// AI narrative routes
	// ----------------------
	api.POST("/games/:id/generate_summary", controllers.GenerateSummary)
	api.GET("/games/:id/summary", controllers.GetSummary)
	api.POST("/games/:id/generate_live_commentary", controllers.GenerateLiveCommentary)
	api.GET("/games/:id/commentaries", controllers.ListCommentaries)
	api.POST("/games/:id/predict_outcome", controllers.PredictOutcome)
	api.POST("/players/compare_strategies", controllers.CompareStrategies)

	// ----------------------
	// Summary browsing
	// ----------------------
	api.GET("/summaries", controllers.ListSummaries) // Browse summaries (?wallet=)
	api.GET("/summaries/:id", controllers.GetSummaryByID)
}
