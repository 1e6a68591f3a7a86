package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/breevs/roulette-backend/models"
	"github.com/breevs/roulette-backend/utils/logger"

	"gorm.io/gorm"
)

const (
	recentEventsLimit  = 5
	comparisonMaxSize  = 6
	defaultListedCount = 10
)

// CommentaryService produces live commentary, outcome predictions and
// strategy comparisons for in-progress games.
type CommentaryService struct {
	db    *gorm.DB
	llm   TextGenerator
	cache *PredictionCache
	feed  *Feed
}

func NewCommentaryService(db *gorm.DB, llm TextGenerator, cache *PredictionCache, feed *Feed) *CommentaryService {
	return &CommentaryService{db: db, llm: llm, cache: cache, feed: feed}
}

// GenerateLive creates one live commentary record for the current game state
// and broadcasts it to connected spectators.
func (s *CommentaryService) GenerateLive(ctx context.Context, game *models.Game) (*models.GameCommentary, error) {
	if game.IsCompleted() {
		return nil, ErrGameCompleted
	}

	players, err := loadGamePlayers(s.db, game.ID)
	if err != nil {
		return nil, err
	}
	recentEvents, err := loadRecentEvents(s.db, game.ID, recentEventsLimit)
	if err != nil {
		return nil, err
	}

	active := 0
	for i := range players {
		if !players[i].Eliminated {
			active++
		}
	}

	ordered, err := loadGameEvents(s.db, game.ID)
	if err != nil {
		return nil, err
	}
	tension := TensionLevel(len(players), active, game.CurrentRound, RecentEliminations(ordered))

	gameContext := BuildCommentaryContext(game, players, recentEvents, active, tension)
	text, err := s.llm.GenerateCommentary(ctx, CommentaryPrompt(gameContext))
	if err != nil {
		return nil, fmt.Errorf("failed to generate commentary: %w", err)
	}

	recentActions := make([]map[string]any, 0, len(recentEvents))
	for i := range recentEvents {
		player := "N/A"
		if recentEvents[i].PlayerAddress != "" {
			player = TruncateAddress(recentEvents[i].PlayerAddress, 8)
		}
		recentActions = append(recentActions, map[string]any{
			"type":   recentEvents[i].EventType.Display(),
			"round":  recentEvents[i].Round(),
			"player": player,
		})
	}

	contextData, err := json.Marshal(map[string]any{
		"active_players": active,
		"recent_events":  recentActions,
		"prize_pool":     game.PrizePool.String(),
	})
	if err != nil {
		return nil, err
	}

	commentary := &models.GameCommentary{
		GameID:         game.ID,
		RoundNumber:    game.CurrentRound,
		CommentaryText: text,
		CommentaryType: models.CommentaryLive,
		TensionLevel:   tension,
		ContextData:    contextData,
	}
	if err := s.db.Create(commentary).Error; err != nil {
		return nil, err
	}

	s.feed.Broadcast(game.ID, commentary)
	return commentary, nil
}

// List returns a game's commentaries, newest first, optionally filtered by
// type, capped at limit (default 10).
func (s *CommentaryService) List(gameID uint, commentaryType string, limit int) ([]models.GameCommentary, error) {
	if limit <= 0 {
		limit = defaultListedCount
	}
	q := s.db.Where("game_id = ?", gameID)
	if commentaryType != "" {
		q = q.Where("commentary_type = ?", commentaryType)
	}

	var commentaries []models.GameCommentary
	err := q.Order("created_at desc").Limit(limit).Find(&commentaries).Error
	return commentaries, err
}

// PlayerPrediction is one player's predicted chances.
type PlayerPrediction struct {
	Player         string  `json:"player"`
	WinProbability float64 `json:"win_probability"`
	Reasoning      string  `json:"reasoning"`
}

// Prediction is the structured response of a predict-outcome request.
type Prediction struct {
	GameID          uint               `json:"game_id"`
	Round           int                `json:"round"`
	Predictions     []PlayerPrediction `json:"predictions"`
	NextElimination map[string]any     `json:"next_elimination"`
	RoundsRemaining int                `json:"rounds_remaining"`
	ConfidenceLevel string             `json:"confidence_level"`
}

// predictionPayload is the shape requested from the model in JSON mode.
type predictionPayload struct {
	Predictions     []PlayerPrediction `json:"predictions"`
	NextElimination map[string]any     `json:"next_elimination"`
	RoundsRemaining int                `json:"rounds_remaining"`
	ConfidenceLevel string             `json:"confidence_level"`
}

// PredictOutcome asks the model for win odds on an active game. Results are
// cached 5 minutes per (game, round); a miss recomputes.
func (s *CommentaryService) PredictOutcome(ctx context.Context, game *models.Game) (*Prediction, error) {
	if game.IsCompleted() {
		return nil, ErrGameCompleted
	}

	if cached, err := s.cache.Get(ctx, game.ID, game.CurrentRound); err != nil {
		logger.Warnf("Prediction cache read failed for game %d: %v", game.ID, err)
	} else if cached != nil {
		var prediction Prediction
		if err := json.Unmarshal(cached, &prediction); err == nil {
			return &prediction, nil
		}
	}

	players, err := loadGamePlayers(s.db, game.ID)
	if err != nil {
		return nil, err
	}
	events, err := loadGameEvents(s.db, game.ID)
	if err != nil {
		return nil, err
	}

	survivals := make(map[string]int)
	for i := range events {
		if events[i].EventType == models.EventPlayerSurvived {
			survivals[events[i].PlayerAddress]++
		}
	}

	odds := make([]PlayerOdds, 0)
	for i := range players {
		if players[i].Eliminated {
			continue
		}
		odds = append(odds, PlayerOdds{
			Address:       players[i].WalletAddress,
			SurvivalCount: survivals[players[i].WalletAddress],
			RiskMode:      players[i].UsedRiskMode,
			Position:      len(odds) + 1,
		})
	}

	raw, err := s.llm.GenerateStructured(ctx, BuildPredictionContext(game, len(odds), odds))
	if err != nil {
		return nil, fmt.Errorf("failed to generate prediction: %w", err)
	}

	var payload predictionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse prediction response: %w", err)
	}
	if payload.ConfidenceLevel == "" {
		payload.ConfidenceLevel = "medium"
	}

	prediction := &Prediction{
		GameID:          game.ID,
		Round:           game.CurrentRound,
		Predictions:     payload.Predictions,
		NextElimination: payload.NextElimination,
		RoundsRemaining: payload.RoundsRemaining,
		ConfidenceLevel: payload.ConfidenceLevel,
	}

	if encoded, err := json.Marshal(prediction); err == nil {
		if err := s.cache.Set(ctx, game.ID, game.CurrentRound, encoded); err != nil {
			logger.Warnf("Prediction cache write failed for game %d: %v", game.ID, err)
		}
	}

	return prediction, nil
}

// Comparison is the result of a strategy comparison across wallets.
type Comparison struct {
	PlayerStats []WalletStats `json:"player_stats"`
	AIAnalysis  string        `json:"ai_analysis"`
}

// CompareStrategies aggregates cross-game stats for the given wallets (at
// least 2, at most 6 considered) and asks the analyst model for a comparison.
func (s *CommentaryService) CompareStrategies(ctx context.Context, wallets []string) (*Comparison, error) {
	if len(wallets) < 2 {
		return nil, ErrNotEnoughWallets
	}
	if len(wallets) > comparisonMaxSize {
		wallets = wallets[:comparisonMaxSize]
	}

	stats := make([]WalletStats, 0, len(wallets))
	for _, wallet := range wallets {
		var gamesPlayed int64
		err := s.db.Model(&models.Game{}).
			Joins("JOIN game_players gp ON gp.game_id = games.id").
			Joins("JOIN players p ON p.id = gp.player_id").
			Where("p.wallet_address = ?", wallet).
			Count(&gamesPlayed).Error
		if err != nil {
			return nil, err
		}

		var wins int64
		if err := s.db.Model(&models.Game{}).Where("winner_address = ?", wallet).Count(&wins).Error; err != nil {
			return nil, err
		}

		var player models.Player
		riskUsage := 0
		survivalRounds := 0
		if err := s.db.Where("wallet_address = ?", wallet).First(&player).Error; err == nil {
			if player.UsedRiskMode {
				riskUsage = 1
			}
			if player.EliminatedRound != nil {
				survivalRounds = *player.EliminatedRound
			}
		}

		ws := WalletStats{
			Wallet:        TruncateAddress(wallet, 10),
			FullWallet:    wallet,
			GamesPlayed:   int(gamesPlayed),
			Wins:          int(wins),
			RiskModeUsage: riskUsage,
		}
		if gamesPlayed > 0 {
			ws.WinRate = round2(float64(wins) / float64(gamesPlayed) * 100)
			ws.AverageSurvivalRounds = round2(float64(survivalRounds) / float64(gamesPlayed))
		}
		stats = append(stats, ws)
	}

	analysis, err := s.llm.GenerateCommentary(ctx, ComparisonPrompt(stats))
	if err != nil {
		return nil, fmt.Errorf("failed to compare strategies: %w", err)
	}

	return &Comparison{PlayerStats: stats, AIAnalysis: analysis}, nil
}
