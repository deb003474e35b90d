package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type cachedProfile struct {
	Username  string `json:"username"`
	Followers int    `json:"followers"`
}

func TestMemoryRoundTrip(t *testing.T) {
	c := newMemory()
	ctx := context.Background()

	c.Set(ctx, "profile:jane", cachedProfile{Username: "jane", Followers: 42}, time.Minute)

	var got cachedProfile
	require.True(t, c.Get(ctx, "profile:jane", &got))
	require.Equal(t, "jane", got.Username)
	require.Equal(t, 42, got.Followers)
}

func TestMemoryMissOnUnknownKey(t *testing.T) {
	c := newMemory()

	var got cachedProfile
	require.False(t, c.Get(context.Background(), "profile:nobody", &got))
}

func TestMemoryExpires(t *testing.T) {
	c := newMemory()
	ctx := context.Background()

	c.Set(ctx, "profile:jane", cachedProfile{Username: "jane"}, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	var got cachedProfile
	require.False(t, c.Get(ctx, "profile:jane", &got))
}

func TestMemoryDelete(t *testing.T) {
	c := newMemory()
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Minute)
	c.Set(ctx, "b", 2, time.Minute)
	c.Delete(ctx, "a", "b")

	var got int
	require.False(t, c.Get(ctx, "a", &got))
	require.False(t, c.Get(ctx, "b", &got))
}

func TestMemoryStats(t *testing.T) {
	c := newMemory()
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Minute)

	var got int
	require.True(t, c.Get(ctx, "a", &got))
	require.False(t, c.Get(ctx, "missing", &got))

	stats := c.Stats(ctx)
	require.Equal(t, "memory", stats.Backend)
	require.EqualValues(t, 1, stats.Keys)
	require.EqualValues(t, 1, stats.Hits)
	require.EqualValues(t, 1, stats.Misses)
}
