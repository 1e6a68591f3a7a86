package models

import (
	"time"

	"gorm.io/datatypes"
)

// GameSummary is the AI-generated recap of a completed game. At most one row
// exists per game (unique index on game_id); rows are never mutated after
// creation.
type GameSummary struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	GameID           uint           `gorm:"uniqueIndex;not null" json:"game"`
	AISummary        string         `gorm:"type:text" json:"ai_summary"`
	TotalRounds      int            `json:"total_rounds"`
	TotalSpins       int            `json:"total_spins"`
	EliminationOrder datatypes.JSON `json:"elimination_order"`
	KeyMoments       datatypes.JSON `json:"key_moments"`
	Statistics       datatypes.JSON `json:"statistics"`
	ExcitementRating int            `json:"excitement_rating"`
	GeneratedAt      time.Time      `gorm:"autoCreateTime" json:"generated_at"`
}
