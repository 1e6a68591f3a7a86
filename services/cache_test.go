package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionCache_SetGet(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	miss, err := cache.Get(ctx, 1, 5)
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, cache.Set(ctx, 1, 5, []byte(`{"round":5}`)))

	hit, err := cache.Get(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"round":5}`), hit)

	// a different round is a different key
	otherRound, err := cache.Get(ctx, 1, 6)
	require.NoError(t, err)
	assert.Nil(t, otherRound)
}

func TestPredictionCache_TTL(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 2, 1, []byte("payload")))

	mr.FastForward(299 * time.Second)
	hit, err := cache.Get(ctx, 2, 1)
	require.NoError(t, err)
	assert.NotNil(t, hit)

	mr.FastForward(2 * time.Second)
	expired, err := cache.Get(ctx, 2, 1)
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestPredictionCache_NilIsAlwaysMiss(t *testing.T) {
	var cache *PredictionCache
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, 1, []byte("ignored")))
	val, err := cache.Get(ctx, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, val)
}
