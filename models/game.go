package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type GameStatus string

const (
	GameStatusActive    GameStatus = "active"
	GameStatusCompleted GameStatus = "completed"
)

// Game mirrors one on-chain game. The primary key is the chain's game id.
// Completion is a single tagged state: Complete is the only way to set a
// winner, so winner_address can never be populated on an active game.
type Game struct {
	ID            uint            `gorm:"primaryKey" json:"game_id"`
	CurrentRound  int             `gorm:"default:1" json:"current_round"`
	PrizePool     decimal.Decimal `gorm:"type:numeric(20,6)" json:"prize_pool"`
	StakeAmount   decimal.Decimal `gorm:"type:numeric(20,6)" json:"stake_amount"`
	Status        GameStatus      `gorm:"index;default:active" json:"status"`
	WinnerAddress *string         `json:"winner_address"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Players      []Player         `gorm:"many2many:game_players" json:"players,omitempty"`
	Events       []GameEvent      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Summary      *GameSummary     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Commentaries []GameCommentary `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (g *Game) IsCompleted() bool {
	return g.Status == GameStatusCompleted
}

// Complete transitions the game to its terminal state with the given winner.
func (g *Game) Complete(winner string) {
	g.Status = GameStatusCompleted
	g.WinnerAddress = &winner
}

// MarshalJSON adds the is_completed flag the frontend expects alongside the
// status enum.
func (g Game) MarshalJSON() ([]byte, error) {
	type alias Game
	return json.Marshal(struct {
		alias
		IsCompleted bool `json:"is_completed"`
	}{alias(g), g.IsCompleted()})
}
