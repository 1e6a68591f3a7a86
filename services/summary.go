package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/breevs/roulette-backend/models"
	"github.com/breevs/roulette-backend/utils/logger"

	"gorm.io/gorm"
)

// SummaryService runs the narrative pipeline for completed games: derive
// metrics and key moments, assemble the bounded prompt, call the text
// generator, persist everything as one immutable row.
type SummaryService struct {
	db  *gorm.DB
	llm TextGenerator

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewSummaryService(db *gorm.DB, llm TextGenerator) *SummaryService {
	return &SummaryService{
		db:    db,
		llm:   llm,
		locks: make(map[uint]*sync.Mutex),
	}
}

// gameLock returns the per-game mutex, creating it on first use. Only one
// generation per game is in flight at a time, so concurrent requests never
// pay for the external call twice.
func (s *SummaryService) gameLock(gameID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[gameID] = lock
	}
	return lock
}

// Get returns the existing summary for a game, gorm.ErrRecordNotFound if none.
func (s *SummaryService) Get(gameID uint) (*models.GameSummary, error) {
	var summary models.GameSummary
	if err := s.db.Where("game_id = ?", gameID).First(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

// Generate produces the summary for a completed game. The transition is
// one-shot: if a summary already exists it is returned with created=false and
// no external call is made. Generation is all-or-nothing; a generator failure
// persists nothing.
func (s *SummaryService) Generate(ctx context.Context, game *models.Game) (*models.GameSummary, bool, error) {
	if !game.IsCompleted() {
		return nil, false, ErrGameNotCompleted
	}

	lock := s.gameLock(game.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.Get(game.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	players, err := loadGamePlayers(s.db, game.ID)
	if err != nil {
		return nil, false, err
	}

	events, err := loadGameEvents(s.db, game.ID)
	if err != nil {
		return nil, false, err
	}

	elimOrder := EliminationOrder(players)
	totalSpins := CountSpins(events)

	gameContext := BuildSummaryContext(game, players, events, elimOrder, totalSpins)
	narrative, err := s.llm.GenerateNarrative(ctx, SummaryPrompt(gameContext))
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate summary: %w", err)
	}

	keyMoments := ExtractKeyMoments(events)
	stats := BuildStatistics(game, players, events, totalSpins)
	rating := ExcitementRating(game.CurrentRound, len(players), keyMoments, totalSpins)

	summary := &models.GameSummary{
		GameID:           game.ID,
		AISummary:        narrative,
		TotalRounds:      game.CurrentRound,
		TotalSpins:       totalSpins,
		ExcitementRating: rating,
	}
	if summary.EliminationOrder, err = json.Marshal(elimOrder); err != nil {
		return nil, false, err
	}
	if summary.KeyMoments, err = json.Marshal(keyMoments); err != nil {
		return nil, false, err
	}
	if summary.Statistics, err = json.Marshal(stats); err != nil {
		return nil, false, err
	}

	if err := s.db.Create(summary).Error; err != nil {
		// Another process won the insert race; the unique index on game_id
		// is the backstop behind the in-process lock.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, ErrSummaryConflict
		}
		return nil, false, err
	}

	logger.Infof("Generated summary for game %d (rating %d, %d key moments)",
		game.ID, rating, len(keyMoments))
	return summary, true, nil
}
