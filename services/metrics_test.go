package services

import (
	"fmt"
	"testing"

	"github.com/breevs/roulette-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testEvent(eventType models.EventType, round int, blockHeight uint64, player string) models.GameEvent {
	return models.GameEvent{
		EventType:     eventType,
		PlayerAddress: player,
		EventData:     datatypes.JSON(fmt.Appendf(nil, `{"round":%d}`, round)),
		BlockHeight:   blockHeight,
	}
}

func TestTensionLevel(t *testing.T) {
	tests := []struct {
		name               string
		totalPlayers       int
		activePlayers      int
		currentRound       int
		recentEliminations int
		expected           int
	}{
		{
			// player_factor=2.5, round_factor=3, elimination_factor=2,
			// raw 7.5 rounds to 8
			name:               "mid game with recent eliminations",
			totalPlayers:       10,
			activePlayers:      5,
			currentRound:       10,
			recentEliminations: 2,
			expected:           8,
		},
		{
			name:          "fresh game scores zero",
			totalPlayers:  6,
			activePlayers: 6,
			currentRound:  0,
			expected:      0,
		},
		{
			name:               "late game capped at 10",
			totalPlayers:       10,
			activePlayers:      1,
			currentRound:       30,
			recentEliminations: 2,
			expected:           10,
		},
		{
			name:         "no players",
			totalPlayers: 0,
			expected:     0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TensionLevel(tc.totalPlayers, tc.activePlayers, tc.currentRound, tc.recentEliminations))
		})
	}
}

func TestRecentEliminations(t *testing.T) {
	events := []models.GameEvent{
		testEvent(models.EventPlayerEliminated, 1, 100, "SP1AAA"),
		testEvent(models.EventPlayerSurvived, 2, 101, "SP2BBB"),
		testEvent(models.EventPlayerEliminated, 3, 102, "SP3CCC"),
	}
	// only the last two events count; the round-1 elimination is too old
	assert.Equal(t, 1, RecentEliminations(events))
	assert.Equal(t, 0, RecentEliminations(nil))
}

func TestExtractKeyMoments(t *testing.T) {
	events := []models.GameEvent{
		testEvent(models.EventPlayerSurvived, 1, 100, "SP1AAAAAAAAAAA"),
		testEvent(models.EventShieldUsed, 2, 101, "SP2BBBBBBBBBBB"),
		testEvent(models.EventPlayerEliminated, 3, 102, "SP3CCCCCCCCCCC"),
		testEvent(models.EventPlayerEliminated, 4, 103, "SP4DDDDDDDDDDD"),
	}

	moments := ExtractKeyMoments(events)
	require.Len(t, moments, 3)

	assert.Equal(t, MomentShieldUsed, moments[0].Type)
	assert.Equal(t, 2, moments[0].Round)
	assert.Equal(t, ImpactHigh, moments[0].Impact)

	assert.Equal(t, MomentFirstBlood, moments[1].Type)
	assert.Equal(t, 3, moments[1].Round)
	assert.Equal(t, ImpactMedium, moments[1].Impact)

	// rounds 3 and 4 are one apart
	assert.Equal(t, MomentRapidEliminations, moments[2].Type)
	assert.Equal(t, 3, moments[2].Round)
	assert.Equal(t, ImpactHigh, moments[2].Impact)
}

func TestExtractKeyMoments_Idempotent(t *testing.T) {
	events := []models.GameEvent{
		testEvent(models.EventShieldUsed, 1, 100, "SP1AAA"),
		testEvent(models.EventPlayerEliminated, 2, 101, "SP2BBB"),
		testEvent(models.EventPlayerEliminated, 3, 102, "SP3CCC"),
	}

	first := ExtractKeyMoments(events)
	second := ExtractKeyMoments(events)
	assert.Equal(t, first, second)
}

func TestExtractKeyMoments_AtMostOneRapidElimination(t *testing.T) {
	// 5 consecutive eliminations, each one round apart: still a single
	// rapid_eliminations moment
	events := make([]models.GameEvent, 0, 5)
	for i := 0; i < 5; i++ {
		events = append(events, testEvent(models.EventPlayerEliminated, i+1, uint64(100+i), fmt.Sprintf("SP%dXXX", i)))
	}

	moments := ExtractKeyMoments(events)

	rapid := 0
	for _, m := range moments {
		if m.Type == MomentRapidEliminations {
			rapid++
		}
	}
	assert.Equal(t, 1, rapid)
}

func TestExtractKeyMoments_NoEliminations(t *testing.T) {
	events := []models.GameEvent{
		testEvent(models.EventPlayerSurvived, 1, 100, "SP1AAA"),
		testEvent(models.EventPlayerSurvived, 2, 101, "SP2BBB"),
	}
	assert.Empty(t, ExtractKeyMoments(events))
}

func TestExcitementRating(t *testing.T) {
	highMoments := []KeyMoment{
		{Type: MomentShieldUsed, Impact: ImpactHigh},
		{Type: MomentRapidEliminations, Impact: ImpactHigh},
		{Type: MomentShieldUsed, Impact: ImpactHigh},
	}

	tests := []struct {
		name        string
		rounds      int
		playerCount int
		moments     []KeyMoment
		expected    int
	}{
		{name: "base score", rounds: 1, playerCount: 2, expected: 5},
		{name: "medium length game", rounds: 6, playerCount: 2, expected: 6},
		{name: "long game", rounds: 11, playerCount: 2, expected: 7},
		{name: "big field", rounds: 1, playerCount: 6, expected: 6},
		{
			name:        "high impact capped at +2",
			rounds:      1,
			playerCount: 2,
			moments:     highMoments,
			expected:    7,
		},
		{
			name:        "everything maxed clamps at 10",
			rounds:      20,
			playerCount: 10,
			moments:     highMoments,
			expected:    10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// totalSpins does not influence the formula (kept for
			// compatibility); assert that explicitly
			assert.Equal(t, tc.expected, ExcitementRating(tc.rounds, tc.playerCount, tc.moments, 0))
			assert.Equal(t, tc.expected, ExcitementRating(tc.rounds, tc.playerCount, tc.moments, 9999))
		})
	}
}

func TestExcitementRating_NeverExceedsTen(t *testing.T) {
	moments := make([]KeyMoment, 50)
	for i := range moments {
		moments[i] = KeyMoment{Impact: ImpactHigh}
	}

	for rounds := 0; rounds <= 30; rounds += 5 {
		for players := 0; players <= 20; players += 4 {
			rating := ExcitementRating(rounds, players, moments, rounds*players)
			assert.GreaterOrEqual(t, rating, 5)
			assert.LessOrEqual(t, rating, 10)
		}
	}
}

func TestBuildStatistics(t *testing.T) {
	round3 := 3
	game := &models.Game{ID: 1, CurrentRound: 4}
	players := []models.Player{
		{WalletAddress: "SP1AAA", UsedRiskMode: true},
		{WalletAddress: "SP2BBB", Eliminated: true, EliminatedRound: &round3},
		{WalletAddress: "SP3CCC"},
	}
	events := []models.GameEvent{
		testEvent(models.EventPlayerSurvived, 1, 100, "SP1AAA"),
		testEvent(models.EventPlayerSurvived, 2, 101, "SP2BBB"),
		testEvent(models.EventShieldUsed, 2, 102, "SP1AAA"),
		testEvent(models.EventPlayerEliminated, 3, 103, "SP2BBB"),
	}

	totalSpins := CountSpins(events)
	require.Equal(t, 3, totalSpins)

	stats := BuildStatistics(game, players, events, totalSpins)
	assert.Equal(t, 0.75, stats.AverageSpinsPerRound)
	assert.Equal(t, 1, stats.ShieldUses)
	assert.Equal(t, 1, stats.RiskModeUses)
	assert.Equal(t, 33.33, stats.SurvivalRate)
	assert.Equal(t, 4, stats.LongestGameDuration)
}

func TestBuildStatistics_ZeroRound(t *testing.T) {
	game := &models.Game{ID: 1, CurrentRound: 0}
	stats := BuildStatistics(game, nil, nil, 0)
	assert.Zero(t, stats.AverageSpinsPerRound)
	assert.Zero(t, stats.SurvivalRate)
}

func TestEliminationOrder(t *testing.T) {
	r2, r5 := 2, 5
	players := []models.Player{
		{WalletAddress: "SP_LATE", Eliminated: true, EliminatedRound: &r5},
		{WalletAddress: "SP_ALIVE"},
		{WalletAddress: "SP_EARLY", Eliminated: true, EliminatedRound: &r2},
	}

	order := EliminationOrder(players)
	require.Len(t, order, 2)
	assert.Equal(t, EliminationRecord{Address: "SP_EARLY", Round: 2}, order[0])
	assert.Equal(t, EliminationRecord{Address: "SP_LATE", Round: 5}, order[1])
}
