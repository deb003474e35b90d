package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWindowAllowsExactlyLimit(t *testing.T) {
	w := NewWindow(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, remaining, _ := w.Allow("client-a")
		require.True(t, ok, "request %d should pass", i+1)
		require.Equal(t, 2-i, remaining)
	}

	ok, remaining, retry := w.Allow("client-a")
	require.False(t, ok)
	require.Zero(t, remaining)
	require.Greater(t, retry, time.Duration(0))
	require.LessOrEqual(t, retry, time.Minute)
}

func TestWindowKeysAreIndependent(t *testing.T) {
	w := NewWindow(1, time.Minute)

	ok, _, _ := w.Allow("client-a")
	require.True(t, ok)
	ok, _, _ = w.Allow("client-b")
	require.True(t, ok)

	ok, _, _ = w.Allow("client-a")
	require.False(t, ok)
}

func TestWindowSlides(t *testing.T) {
	w := NewWindow(2, 50*time.Millisecond)

	ok, _, _ := w.Allow("client-a")
	require.True(t, ok)
	ok, _, _ = w.Allow("client-a")
	require.True(t, ok)
	ok, _, _ = w.Allow("client-a")
	require.False(t, ok)

	time.Sleep(60 * time.Millisecond)

	ok, _, _ = w.Allow("client-a")
	require.True(t, ok)
}

func TestPacerHonorsContext(t *testing.T) {
	p := NewPacer(1, 1)

	require.NoError(t, p.Wait(context.Background(), "acct"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, p.Wait(ctx, "acct"))
}
