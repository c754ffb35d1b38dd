package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type homeStats struct {
	Companies int `json:"companies"`
	Reviews   int `json:"reviews"`
}

func TestInMemoryStatsCacheRoundTrip(t *testing.T) {
	c := NewInMemoryStatsCache()
	ctx := context.Background()

	var got homeStats
	assert.ErrorIs(t, c.Get(ctx, "home", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "home", homeStats{Companies: 120, Reviews: 950}, time.Minute))
	require.NoError(t, c.Get(ctx, "home", &got))
	assert.Equal(t, 120, got.Companies)
	assert.Equal(t, 950, got.Reviews)

	require.NoError(t, c.Invalidate(ctx, "home"))
	assert.ErrorIs(t, c.Get(ctx, "home", &got), ErrCacheMiss)
}

func TestInMemoryStatsCacheExpiry(t *testing.T) {
	c := NewInMemoryStatsCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "home", homeStats{Companies: 1}, -time.Second))

	var got homeStats
	assert.ErrorIs(t, c.Get(ctx, "home", &got), ErrCacheMiss)
}
