package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type EventType string

const (
	EventPlayerSurvived   EventType = "player_survived"
	EventPlayerEliminated EventType = "player_eliminated"
	EventShieldUsed       EventType = "shield_used"
)

// Display returns the human-readable label used in prompts.
func (t EventType) Display() string {
	switch t {
	case EventPlayerSurvived:
		return "Player Survived"
	case EventPlayerEliminated:
		return "Player Eliminated"
	case EventShieldUsed:
		return "Shield Used"
	}
	return string(t)
}

// GameEvent is one blockchain event recorded for a game. Rows are append-only
// and immutable; block_height is the canonical ordering key (monotonic per
// chain, not necessarily contiguous).
type GameEvent struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	GameID        uint           `gorm:"index;not null" json:"game_id"`
	EventType     EventType      `gorm:"index;not null" json:"event_type"`
	PlayerAddress string         `json:"player_address"`
	EventData     datatypes.JSON `json:"event_data"`
	BlockHeight   uint64         `gorm:"index" json:"block_height"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Round extracts the round number from the event payload, 0 if absent.
func (e *GameEvent) Round() int {
	var data struct {
		Round int `json:"round"`
	}
	if err := json.Unmarshal(e.EventData, &data); err != nil {
		return 0
	}
	return data.Round
}
