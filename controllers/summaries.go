package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/breevs/roulette-backend/config"
	"github.com/breevs/roulette-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListSummaries returns all summaries, newest first, filterable by a wallet
// that played in the summarized game.
func ListSummaries(c *gin.Context) {
	q := config.DB.Order("generated_at desc")

	if wallet := c.Query("wallet"); wallet != "" {
		q = q.Where("game_id IN (?)",
			config.DB.Table("game_players").
				Select("game_players.game_id").
				Joins("JOIN players p ON p.id = game_players.player_id").
				Where("p.wallet_address = ?", wallet))
	}

	var summaries []models.GameSummary
	if err := q.Find(&summaries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetSummaryByID returns one summary row.
func GetSummaryByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid summary id"})
		return
	}

	var summary models.GameSummary
	if err := config.DB.First(&summary, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
