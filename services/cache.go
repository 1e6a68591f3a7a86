package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// predictionTTL bounds how long a prediction is served without recomputing.
// The cache is a response memoizer only; a miss just recomputes.
const predictionTTL = 300 * time.Second

// PredictionCache memoizes prediction responses per (game, round) in redis.
// A nil cache is valid and behaves as always-miss.
type PredictionCache struct {
	client *redis.Client
}

func NewPredictionCache(addr string) *PredictionCache {
	return &PredictionCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// NewPredictionCacheFromClient wraps an existing client (tests use miniredis).
func NewPredictionCacheFromClient(client *redis.Client) *PredictionCache {
	return &PredictionCache{client: client}
}

func predictionKey(gameID uint, round int) string {
	return fmt.Sprintf("game_prediction_%d_%d", gameID, round)
}

// Get returns the cached prediction payload for a game round, nil on miss.
func (c *PredictionCache) Get(ctx context.Context, gameID uint, round int) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	val, err := c.client.Get(ctx, predictionKey(gameID, round)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores a prediction payload with the standard TTL.
func (c *PredictionCache) Set(ctx context.Context, gameID uint, round int, payload []byte) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, predictionKey(gameID, round), payload, predictionTTL).Err()
}
