package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/breevs/roulette-backend/config"
	"github.com/breevs/roulette-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

// seedCompletedGame stores a finished 3-player game: a shield use at round 2
// and eliminations at rounds 3 and 4.
func seedCompletedGame(t *testing.T, db *gorm.DB) *models.Game {
	t.Helper()

	r3, r4 := 3, 4
	base := time.Now().Add(-time.Hour)
	game := &models.Game{
		ID:           1,
		CurrentRound: 4,
		PrizePool:    decimal.NewFromInt(300),
		StakeAmount:  decimal.NewFromInt(100),
		Players: []models.Player{
			{WalletAddress: "SP1WINNERWINNERWINNER", JoinedAt: base},
			{WalletAddress: "SP2SECONDSECONDSECOND", JoinedAt: base.Add(time.Minute), Eliminated: true, EliminatedRound: &r4},
			{WalletAddress: "SP3THIRDTHIRDTHIRD", JoinedAt: base.Add(2 * time.Minute), Eliminated: true, EliminatedRound: &r3, UsedRiskMode: true},
		},
	}
	game.Complete("SP1WINNERWINNERWINNER")
	require.NoError(t, db.Create(game).Error)

	events := []models.GameEvent{
		testEvent(models.EventPlayerSurvived, 1, 100, "SP1WINNERWINNERWINNER"),
		testEvent(models.EventShieldUsed, 2, 101, "SP2SECONDSECONDSECOND"),
		testEvent(models.EventPlayerSurvived, 2, 102, "SP3THIRDTHIRDTHIRD"),
		testEvent(models.EventPlayerEliminated, 3, 103, "SP3THIRDTHIRDTHIRD"),
		testEvent(models.EventPlayerEliminated, 4, 104, "SP2SECONDSECONDSECOND"),
	}
	for i := range events {
		events[i].GameID = game.ID
		require.NoError(t, db.Create(&events[i]).Error)
	}
	return game
}

func TestSummaryService_Generate_RejectsIncompleteGame(t *testing.T) {
	db := openTestDB(t)
	llm := NewMockLLM()
	svc := NewSummaryService(db, llm)

	game := &models.Game{ID: 7, CurrentRound: 2, Status: models.GameStatusActive}
	require.NoError(t, db.Create(game).Error)

	_, _, err := svc.Generate(context.Background(), game)
	assert.ErrorIs(t, err, ErrGameNotCompleted)
	// the precondition is checked before any external call
	assert.Zero(t, llm.CallCount())
}

func TestSummaryService_Generate(t *testing.T) {
	db := openTestDB(t)
	llm := NewMockLLM()
	llm.GenerateNarrativeFunc = func(ctx context.Context, prompt string) (string, error) {
		return "An epic tale of survival.", nil
	}
	svc := NewSummaryService(db, llm)
	game := seedCompletedGame(t, db)

	summary, created, err := svc.Generate(context.Background(), game)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "An epic tale of survival.", summary.AISummary)
	assert.Equal(t, 4, summary.TotalRounds)
	assert.Equal(t, 4, summary.TotalSpins)

	var moments []KeyMoment
	require.NoError(t, json.Unmarshal(summary.KeyMoments, &moments))
	require.Len(t, moments, 3)
	assert.Equal(t, KeyMoment{Type: MomentShieldUsed, Round: 2, Player: "SP2SECONDS...", Impact: ImpactHigh}, moments[0])
	assert.Equal(t, KeyMoment{Type: MomentFirstBlood, Round: 3, Player: "SP3THIRDTH...", Impact: ImpactMedium}, moments[1])
	assert.Equal(t, KeyMoment{Type: MomentRapidEliminations, Round: 3, Impact: ImpactHigh}, moments[2])

	var order []EliminationRecord
	require.NoError(t, json.Unmarshal(summary.EliminationOrder, &order))
	require.Len(t, order, 2)
	assert.Equal(t, "SP3THIRDTHIRDTHIRD", order[0].Address)
	assert.Equal(t, "SP2SECONDSECONDSECOND", order[1].Address)

	var stats Statistics
	require.NoError(t, json.Unmarshal(summary.Statistics, &stats))
	assert.Equal(t, 1.0, stats.AverageSpinsPerRound)
	assert.Equal(t, 1, stats.ShieldUses)
	assert.Equal(t, 1, stats.RiskModeUses)
	assert.Equal(t, 33.33, stats.SurvivalRate)

	// base 5 + shield high + rapid high
	assert.Equal(t, 7, summary.ExcitementRating)

	require.Len(t, llm.NarrativeCalls, 1)
	assert.Contains(t, llm.NarrativeCalls[0], "master storyteller")
	assert.Contains(t, llm.NarrativeCalls[0], "Game ID: 1")

	var count int64
	require.NoError(t, db.Model(&models.GameSummary{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSummaryService_Generate_OneShot(t *testing.T) {
	db := openTestDB(t)
	llm := NewMockLLM()
	svc := NewSummaryService(db, llm)
	game := seedCompletedGame(t, db)

	first, created, err := svc.Generate(context.Background(), game)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.Generate(context.Background(), game)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	// the second request returns the stored record without a new external call
	assert.Equal(t, 1, llm.CallCount())
}

func TestSummaryService_Generate_FailureWritesNothing(t *testing.T) {
	db := openTestDB(t)
	llm := NewMockLLM()
	llm.SetNarrativeError(errors.New("quota exceeded"))
	svc := NewSummaryService(db, llm)
	game := seedCompletedGame(t, db)

	_, _, err := svc.Generate(context.Background(), game)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	var count int64
	require.NoError(t, db.Model(&models.GameSummary{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSummaryService_Generate_DuplicateInsertIsConflict(t *testing.T) {
	db := openTestDB(t)
	svc := NewSummaryService(db, NewMockLLM())
	game := seedCompletedGame(t, db)

	// simulate a second process having inserted between our existence check
	// and create by pre-seeding through a different service instance
	_, _, err := NewSummaryService(db, NewMockLLM()).Generate(context.Background(), game)
	require.NoError(t, err)

	// direct insert path: the unique index rejects a second row
	dup := &models.GameSummary{GameID: game.ID, AISummary: "dup"}
	err = db.Create(dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// and the service still serves the stored record
	summary, created, err := svc.Generate(context.Background(), game)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NotNil(t, summary)
}
