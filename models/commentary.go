package models

import (
	"time"

	"gorm.io/datatypes"
)

type CommentaryType string

const (
	CommentaryLive       CommentaryType = "live"
	CommentaryPrediction CommentaryType = "prediction"
	CommentaryAnalysis   CommentaryType = "analysis"
	CommentaryHighlight  CommentaryType = "highlight"
)

// GameCommentary is an append-only log of short AI remarks about a game.
type GameCommentary struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	GameID         uint           `gorm:"index;not null" json:"game"`
	RoundNumber    int            `json:"round_number"`
	CommentaryText string         `gorm:"type:text" json:"commentary_text"`
	CommentaryType CommentaryType `gorm:"index" json:"commentary_type"`
	TensionLevel   int            `json:"tension_level"`
	ContextData    datatypes.JSON `json:"context_data"`
	CreatedAt      time.Time      `json:"created_at"`
}
