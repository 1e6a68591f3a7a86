package models

import "time"

// Player is a wallet that has joined at least one game. Rows are created and
// mutated by the blockchain sync worker and never deleted; a player is shared
// across games through the game_players join table.
type Player struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	WalletAddress   string    `gorm:"uniqueIndex;not null" json:"wallet_address"`
	JoinedAt        time.Time `json:"joined_at"`
	Eliminated      bool      `json:"eliminated"`
	EliminatedRound *int      `json:"eliminated_round"`
	UsedRiskMode    bool      `json:"used_risk_mode"`
	Games           []Game    `gorm:"many2many:game_players" json:"-"`
}
