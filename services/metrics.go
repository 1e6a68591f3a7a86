package services

import (
	"math"
	"sort"

	"github.com/breevs/roulette-backend/models"
)

// Impact levels for key moments.
const (
	ImpactMedium = "medium"
	ImpactHigh   = "high"
)

// Key moment kinds.
const (
	MomentShieldUsed        = "shield_used"
	MomentFirstBlood        = "first_blood"
	MomentRapidEliminations = "rapid_eliminations"
)

// KeyMoment is a notable sub-event surfaced for narrative emphasis.
type KeyMoment struct {
	Type   string `json:"type"`
	Round  int    `json:"round"`
	Player string `json:"player,omitempty"`
	Impact string `json:"impact"`
}

// EliminationRecord is one entry of a game's elimination order.
type EliminationRecord struct {
	Address string `json:"address"`
	Round   int    `json:"round"`
}

// Statistics is the derived-stats block persisted with a summary.
type Statistics struct {
	AverageSpinsPerRound float64 `json:"average_spins_per_round"`
	ShieldUses           int     `json:"shield_uses"`
	RiskModeUses         int     `json:"risk_mode_uses"`
	SurvivalRate         float64 `json:"survival_rate"`
	LongestGameDuration  int     `json:"longest_game_duration"`
	TotalPrizePool       string  `json:"total_prize_pool"`
}

// TensionLevel scores in-game drama on a 0-10 scale from elimination
// pressure, round pressure and recent eliminations. The lower bound is not
// clamped to 1: a fresh game legitimately scores 0.
func TensionLevel(totalPlayers, activePlayers, currentRound, recentEliminations int) int {
	if totalPlayers == 0 {
		return 0
	}

	playerFactor := (1 - float64(activePlayers)/float64(totalPlayers)) * 5
	roundFactor := math.Min(float64(currentRound)/10, 1) * 3
	eliminationFactor := float64(recentEliminations)

	level := int(math.Round(playerFactor + roundFactor + eliminationFactor))
	if level > 10 {
		level = 10
	}
	return level
}

// RecentEliminations counts player_eliminated events among the two
// most-recent events. Input must be ordered by block height ascending.
func RecentEliminations(events []models.GameEvent) int {
	count := 0
	for i := len(events) - 1; i >= 0 && i >= len(events)-2; i-- {
		if events[i].EventType == models.EventPlayerEliminated {
			count++
		}
	}
	return count
}

// ExtractKeyMoments walks the event sequence (block height ascending) once
// and emits: one shield_used moment per shield event, one first_blood for the
// first elimination, and at most one rapid_eliminations for the first pair of
// consecutive eliminations no more than one round apart.
func ExtractKeyMoments(events []models.GameEvent) []KeyMoment {
	moments := make([]KeyMoment, 0)

	for i := range events {
		if events[i].EventType == models.EventShieldUsed {
			moments = append(moments, KeyMoment{
				Type:   MomentShieldUsed,
				Round:  events[i].Round(),
				Player: TruncateAddress(events[i].PlayerAddress, 10),
				Impact: ImpactHigh,
			})
		}
	}

	eliminations := make([]models.GameEvent, 0)
	for i := range events {
		if events[i].EventType == models.EventPlayerEliminated {
			eliminations = append(eliminations, events[i])
		}
	}

	if len(eliminations) > 0 {
		moments = append(moments, KeyMoment{
			Type:   MomentFirstBlood,
			Round:  eliminations[0].Round(),
			Player: TruncateAddress(eliminations[0].PlayerAddress, 10),
			Impact: ImpactMedium,
		})
	}

	for i := 0; i < len(eliminations)-1; i++ {
		if eliminations[i+1].Round()-eliminations[i].Round() <= 1 {
			moments = append(moments, KeyMoment{
				Type:   MomentRapidEliminations,
				Round:  eliminations[i].Round(),
				Impact: ImpactHigh,
			})
			break
		}
	}

	return moments
}

// ExcitementRating scores a completed game on a 1-10 scale. totalSpins is
// accepted but does not influence the formula; the parameter is kept until
// product confirms whether it should.
func ExcitementRating(rounds, playerCount int, keyMoments []KeyMoment, totalSpins int) int {
	score := 5

	if rounds > 10 {
		score += 2
	} else if rounds > 5 {
		score += 1
	}

	if playerCount > 5 {
		score += 1
	}

	highImpact := 0
	for _, m := range keyMoments {
		if m.Impact == ImpactHigh {
			highImpact++
		}
	}
	if highImpact > 2 {
		highImpact = 2
	}
	score += highImpact

	if score > 10 {
		score = 10
	}
	return score
}

// CountSpins counts chamber spins: every survive or eliminate event is one.
func CountSpins(events []models.GameEvent) int {
	count := 0
	for i := range events {
		if events[i].EventType == models.EventPlayerSurvived || events[i].EventType == models.EventPlayerEliminated {
			count++
		}
	}
	return count
}

// CountShieldUses counts shield_used events.
func CountShieldUses(events []models.GameEvent) int {
	count := 0
	for i := range events {
		if events[i].EventType == models.EventShieldUsed {
			count++
		}
	}
	return count
}

// EliminationOrder lists eliminated players ordered by elimination round.
func EliminationOrder(players []models.Player) []EliminationRecord {
	order := make([]EliminationRecord, 0)
	for i := range players {
		if !players[i].Eliminated {
			continue
		}
		round := 0
		if players[i].EliminatedRound != nil {
			round = *players[i].EliminatedRound
		}
		order = append(order, EliminationRecord{
			Address: players[i].WalletAddress,
			Round:   round,
		})
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].Round < order[j].Round })
	return order
}

// BuildStatistics computes the summary statistics block. survival_rate is the
// single winner's share of the field, not a distribution.
func BuildStatistics(game *models.Game, players []models.Player, events []models.GameEvent, totalSpins int) Statistics {
	stats := Statistics{
		ShieldUses:          CountShieldUses(events),
		LongestGameDuration: game.CurrentRound,
		TotalPrizePool:      game.PrizePool.String(),
	}

	if game.CurrentRound > 0 {
		stats.AverageSpinsPerRound = round2(float64(totalSpins) / float64(game.CurrentRound))
	}

	for i := range players {
		if players[i].UsedRiskMode {
			stats.RiskModeUses++
		}
	}

	if len(players) > 0 {
		stats.SurvivalRate = round2(1 / float64(len(players)) * 100)
	}

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
