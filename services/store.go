package services

import (
	"github.com/breevs/roulette-backend/models"

	"gorm.io/gorm"
)

// loadGamePlayers returns a game's roster in join order.
func loadGamePlayers(db *gorm.DB, gameID uint) ([]models.Player, error) {
	var players []models.Player
	err := db.
		Joins("JOIN game_players gp ON gp.player_id = players.id").
		Where("gp.game_id = ?", gameID).
		Order("players.joined_at asc").
		Find(&players).Error
	return players, err
}

// loadGameEvents returns a game's events in canonical order, block height
// ascending.
func loadGameEvents(db *gorm.DB, gameID uint) ([]models.GameEvent, error) {
	var events []models.GameEvent
	err := db.
		Where("game_id = ?", gameID).
		Order("block_height asc").
		Find(&events).Error
	return events, err
}

// loadRecentEvents returns the newest events first, capped at limit.
func loadRecentEvents(db *gorm.DB, gameID uint, limit int) ([]models.GameEvent, error) {
	var events []models.GameEvent
	err := db.
		Where("game_id = ?", gameID).
		Order("block_height desc").
		Limit(limit).
		Find(&events).Error
	return events, err
}
