package main

import (
	"net/http"
	"time"

	"github.com/breevs/roulette-backend/config"
	"github.com/breevs/roulette-backend/controllers"
	"github.com/breevs/roulette-backend/routes"
	"github.com/breevs/roulette-backend/services"
	"github.com/breevs/roulette-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter initializes Gin routes and middleware.
func setupRouter(cfg *config.Config, feed *services.Feed) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket spectator feed
	r.GET("/ws/feed/:game_id", feed.HandleWebSocket)

	return r
}

func main() {
	// Load env variables
	cfg := config.Load()

	// Connect to database
	db := config.SetupDatabase(cfg.DatabaseURL)

	// Prediction cache is optional; without redis every request recomputes.
	var cache *services.PredictionCache
	if cfg.RedisAddr != "" {
		cache = services.NewPredictionCache(cfg.RedisAddr)
	} else {
		logger.Info("REDIS_ADDR not set, prediction caching disabled")
	}

	llm := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiFlashModel)
	feed := services.NewFeed()

	controllers.Init(
		services.NewSummaryService(db, llm),
		services.NewCommentaryService(db, llm, cache, feed),
	)

	router := setupRouter(cfg, feed)

	logger.Infof("Roulette backend starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
