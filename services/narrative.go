package services

import (
	"fmt"
	"strings"

	"github.com/breevs/roulette-backend/models"
)

// timelineLimit caps the number of events included in a summary prompt so the
// context stays within a bounded size for long games.
const timelineLimit = 50

// TruncateAddress shortens a wallet address for display in prompts and
// key-moment records.
func TruncateAddress(addr string, n int) string {
	if addr == "" {
		return ""
	}
	if len(addr) <= n {
		return addr + "..."
	}
	return addr[:n] + "..."
}

// BuildSummaryContext assembles the bounded game-state description fed to the
// storyteller prompt: game facts, roster in join order with winner and
// elimination markers, the first 50 timeline entries and the elimination order.
func BuildSummaryContext(game *models.Game, players []models.Player, events []models.GameEvent, elimOrder []EliminationRecord, totalSpins int) string {
	winner := "N/A"
	if game.WinnerAddress != nil {
		winner = TruncateAddress(*game.WinnerAddress, 10)
	}

	var roster strings.Builder
	for i := range players {
		marker := ""
		if game.WinnerAddress != nil && players[i].WalletAddress == *game.WinnerAddress {
			marker = " WINNER"
		} else if players[i].Eliminated {
			round := 0
			if players[i].EliminatedRound != nil {
				round = *players[i].EliminatedRound
			}
			marker = fmt.Sprintf(" Eliminated Round %d", round)
		}
		fmt.Fprintf(&roster, "%d. %s%s\n", i+1, TruncateAddress(players[i].WalletAddress, 10), marker)
	}

	var timeline strings.Builder
	for i := range events {
		if i >= timelineLimit {
			break
		}
		fmt.Fprintf(&timeline, "Round %d: %s", events[i].Round(), events[i].EventType.Display())
		if events[i].PlayerAddress != "" {
			fmt.Fprintf(&timeline, " - %s", TruncateAddress(events[i].PlayerAddress, 8))
		}
		timeline.WriteString("\n")
	}

	var elims strings.Builder
	for i, e := range elimOrder {
		fmt.Fprintf(&elims, "%d. %s - Round %d\n", i+1, TruncateAddress(e.Address, 10), e.Round)
	}

	return fmt.Sprintf(`Game Summary Data:
- Game ID: %d
- Stake Amount: %s STX per player
- Total Prize Pool: %s STX
- Total Players: %d
- Total Rounds: %d
- Total Spins: %d
- Winner: %s

Players (in join order):
%s
Game Timeline:
%s
Elimination Order:
%s`,
		game.ID, game.StakeAmount.String(), game.PrizePool.String(),
		len(players), game.CurrentRound, totalSpins, winner,
		roster.String(), timeline.String(), elims.String())
}

// SummaryPrompt wraps a summary context in the storyteller instructions.
func SummaryPrompt(gameContext string) string {
	return fmt.Sprintf(`You are a master storyteller recounting an epic Russian Roulette game on the Stacks blockchain.
Write a compelling narrative summary that captures the full arc of this game.

Structure your response:
1. **The Setup** - Set the stakes and introduce the battle (2-3 sentences)
2. **Rising Action** - Chronicle key eliminations and tense moments (3-4 sentences)
3. **The Climax** - Build to the final showdown (2-3 sentences)
4. **The Resolution** - Winner announcement and reflection (2 sentences)
5. **Strategy Analysis** - Brief tactical insights (2-3 sentences)

%s

Write in an engaging, dramatic style. Use metaphors from poker, warfare, or gladiatorial combat.
Keep it under 400 words. Make readers feel the tension and excitement.`, gameContext)
}

// BuildCommentaryContext assembles the live game-state snapshot for the
// commentator prompt. recentEvents must be ordered by block height descending.
func BuildCommentaryContext(game *models.Game, players []models.Player, recentEvents []models.GameEvent, activePlayers, tensionLevel int) string {
	var recent strings.Builder
	for i := range recentEvents {
		player := "N/A"
		if recentEvents[i].PlayerAddress != "" {
			player = TruncateAddress(recentEvents[i].PlayerAddress, 8)
		}
		fmt.Fprintf(&recent, "Round %d: %s - %s\n", recentEvents[i].Round(), recentEvents[i].EventType.Display(), player)
	}

	var active strings.Builder
	for i := range players {
		if players[i].Eliminated {
			continue
		}
		riskMode := ""
		if players[i].UsedRiskMode {
			riskMode = " (Risk Mode Active)"
		}
		fmt.Fprintf(&active, "- %s%s\n", TruncateAddress(players[i].WalletAddress, 12), riskMode)
	}

	return fmt.Sprintf(`Current Game State:
- Game ID: %d
- Current Round: %d
- Players Remaining: %d of %d
- Prize Pool: %s STX
- Tension Level: %d/10

Recent Actions (last 5):
%s
Active Players:
%s`,
		game.ID, game.CurrentRound, activePlayers, len(players),
		game.PrizePool.String(), tensionLevel, recent.String(), active.String())
}

// CommentaryPrompt wraps a commentary context in the broadcaster instructions.
func CommentaryPrompt(gameContext string) string {
	return fmt.Sprintf(`You are a live sports commentator for a blockchain Russian Roulette game.
Provide exciting, real-time commentary on the current game state.

Style: Energetic, suspenseful, focus on the drama of the moment.
Keep it to 2-3 punchy sentences about what's happening RIGHT NOW.
Make it feel like a live broadcast.

%s

Commentary:`, gameContext)
}

// PlayerOdds is the per-player line fed into a prediction prompt.
type PlayerOdds struct {
	Address       string
	SurvivalCount int
	RiskMode      bool
	Position      int
}

// BuildPredictionContext assembles the prediction prompt, asking for a JSON
// document so the response can be parsed in structured mode.
func BuildPredictionContext(game *models.Game, remaining int, odds []PlayerOdds) string {
	var lines strings.Builder
	for _, o := range odds {
		fmt.Fprintf(&lines, "Player %s: %d survivals, Risk Mode: %t, Position: %d\n",
			TruncateAddress(o.Address, 10), o.SurvivalCount, o.RiskMode, o.Position)
	}

	return fmt.Sprintf(`Analyze this Russian Roulette game and predict outcomes.

Current Game State:
- Round: %d
- Players Remaining: %d
- Prize Pool: %s STX

Player Statistics:
%s
Provide predictions in JSON format with:
1. win_probability for each player (percentages that sum to 100)
2. reasoning for each player's chances
3. most_likely_next_elimination with player and reasoning
4. estimated_rounds_remaining
5. confidence_level (low/medium/high)`,
		game.CurrentRound, remaining, game.PrizePool.String(), lines.String())
}

// WalletStats is a per-wallet aggregate for strategy comparison.
type WalletStats struct {
	Wallet                string  `json:"wallet"`
	FullWallet            string  `json:"full_wallet"`
	GamesPlayed           int     `json:"games_played"`
	Wins                  int     `json:"wins"`
	WinRate               float64 `json:"win_rate"`
	RiskModeUsage         int     `json:"risk_mode_usage"`
	AverageSurvivalRounds float64 `json:"average_survival_rounds"`
}

// ComparisonPrompt assembles the analyst prompt for a strategy comparison.
func ComparisonPrompt(stats []WalletStats) string {
	var lines strings.Builder
	for _, s := range stats {
		fmt.Fprintf(&lines, "Player %s:\n- Games: %d, Wins: %d (%.2f%%)\n- Risk Mode Usage: %d times\n- Avg Survival: %.2f rounds\n\n",
			s.Wallet, s.GamesPlayed, s.Wins, s.WinRate, s.RiskModeUsage, s.AverageSurvivalRounds)
	}

	return fmt.Sprintf(`Compare these Russian Roulette players' performance and strategies:

%s
Provide:
1. Strategic assessment of each player
2. Strengths and weaknesses comparison
3. Head-to-head matchup prediction
4. Strategy recommendations

Be insightful like a professional analyst.`, lines.String())
}
