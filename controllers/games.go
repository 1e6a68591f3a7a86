package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/breevs/roulette-backend/config"
	"github.com/breevs/roulette-backend/models"
	"github.com/breevs/roulette-backend/services"
	"github.com/breevs/roulette-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// getGame loads a game with its roster or writes a 404.
func getGame(c *gin.Context) (*models.Game, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return nil, false
	}

	var game models.Game
	if err := config.DB.Preload("Players").First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	return &game, true
}

// ListGames returns all games, newest first, filterable by status and by
// a participating wallet.
func ListGames(c *gin.Context) {
	q := config.DB.Preload("Players").Order("created_at desc")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if wallet := c.Query("wallet"); wallet != "" {
		q = q.Joins("JOIN game_players gp ON gp.game_id = games.id").
			Joins("JOIN players p ON p.id = gp.player_id").
			Where("p.wallet_address = ?", wallet)
	}

	var games []models.Game
	if err := q.Find(&games).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGame returns single game info.
func GetGame(c *gin.Context) {
	game, ok := getGame(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, game)
}

// ListEvents returns a game's events in block-height order, filterable by type.
func ListEvents(c *gin.Context) {
	game, ok := getGame(c)
	if !ok {
		return
	}

	q := config.DB.Where("game_id = ?", game.ID).Order("block_height asc")
	if eventType := c.Query("type"); eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}

	var events []models.GameEvent
	if err := q.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GenerateSummary runs the one-shot summary pipeline for a completed game.
// 400 incomplete, 200 already generated, 201 freshly generated, 409 lost
// insert race, 500 generation failure.
func GenerateSummary(c *gin.Context) {
	game, ok := getGame(c)
	if !ok {
		return
	}

	summary, created, err := Summaries.Generate(c.Request.Context(), game)
	switch {
	case errors.Is(err, services.ErrGameNotCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Game must be completed to generate summary"})
	case errors.Is(err, services.ErrSummaryConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Summary already exists"})
	case err != nil:
		logger.Errorf("Summary generation failed for game %d: %v", game.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary: " + err.Error()})
	case created:
		c.JSON(http.StatusCreated, summary)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Summary already exists", "data": summary})
	}
}

// GetSummary returns the existing summary for a game, 404 if none.
func GetSummary(c *gin.Context) {
	game, ok := getGame(c)
	if !ok {
		return
	}

	summary, err := Summaries.Get(game.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No summary found. Generate one first using POST /api/games/:id/generate_summary"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GenerateLiveCommentary creates a live commentary record for an active game.
func GenerateLiveCommentary(c *gin.Context) {
	game, ok := getGame(c)
	if !ok {
		return
	}

	commentary, err := Commentaries.GenerateLive(c.Request.Context(), game)
	switch {
	case errors.Is(err, services.ErrGameCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot generate commentary for completed game"})
	case err != nil:
		logger.Errorf("Commentary generation failed for game %d: %v", game.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate commentary: " + err.Error()})
	default:
		c.JSON(http.StatusCreated, commentary)
	}
}

// ListCommentaries returns a game's commentaries, newest first.
func ListCommentaries(c *gin.Context) {
	game, ok := getGame(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	commentaries, err := Commentaries.List(game.ID, c.Query("type"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, commentaries)
}

// PredictOutcome returns AI win-odds for an active game, memoized per round.
func PredictOutcome(c *gin.Context) {
	game, ok := getGame(c)
	if !ok {
		return
	}

	prediction, err := Commentaries.PredictOutcome(c.Request.Context(), game)
	switch {
	case errors.Is(err, services.ErrGameCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Game already completed"})
	case err != nil:
		logger.Errorf("Prediction failed for game %d: %v", game.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate prediction: " + err.Error()})
	default:
		c.JSON(http.StatusOK, prediction)
	}
}

// CompareStrategies compares performance of 2-6 wallets across all games.
func CompareStrategies(c *gin.Context) {
	var req struct {
		Wallets []string `json:"wallets"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comparison, err := Commentaries.CompareStrategies(c.Request.Context(), req.Wallets)
	switch {
	case errors.Is(err, services.ErrNotEnoughWallets):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide at least 2 wallet addresses to compare"})
	case err != nil:
		logger.Errorf("Strategy comparison failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compare strategies: " + err.Error()})
	default:
		c.JSON(http.StatusOK, comparison)
	}
}
