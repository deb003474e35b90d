package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Window is a sliding-window request counter keyed by caller identity.
// Each key gets at most limit requests per window.
type Window struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	lastSweep time.Time
}

func NewWindow(limit int, window time.Duration) *Window {
	return &Window{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Allow records a request for key if capacity remains. It reports whether the
// request may proceed, how many requests the key has left in the current
// window, and how long until the oldest recorded request falls out of it. On
// rejection that duration is how long the caller must wait.
func (w *Window) Allow(key string) (bool, int, time.Duration) {
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.sweep(now)

	kept := prune(w.requests[key], now.Add(-w.window))
	if len(kept) >= w.limit {
		w.requests[key] = kept
		return false, 0, w.resetIn(kept, now)
	}

	kept = append(kept, now)
	w.requests[key] = kept
	return true, w.limit - len(kept), w.resetIn(kept, now)
}

// Limit returns the per-window request budget.
func (w *Window) Limit() int { return w.limit }

// Size returns the window duration.
func (w *Window) Size() time.Duration { return w.window }

func (w *Window) resetIn(stamps []time.Time, now time.Time) time.Duration {
	if len(stamps) == 0 {
		return 0
	}
	reset := w.window - now.Sub(stamps[0])
	if reset < 0 {
		reset = 0
	}
	return reset
}

func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	return stamps[i:]
}

// sweep drops keys with no requests left in the window. Called with the lock
// held, at most once per window.
func (w *Window) sweep(now time.Time) {
	if now.Sub(w.lastSweep) < w.window {
		return
	}
	w.lastSweep = now

	cutoff := now.Add(-w.window)
	for key, stamps := range w.requests {
		if len(prune(stamps, cutoff)) == 0 {
			delete(w.requests, key)
		}
	}
}

// Pacer spaces calls to the upstream API, one token bucket per account.
// Example: NewPacer(30, 5) -> 30 calls per minute with a burst of 5.
type Pacer struct {
	mu       sync.Mutex
	accounts map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

func NewPacer(perMinute, burst int) *Pacer {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Pacer{
		accounts: make(map[string]*rate.Limiter),
		r:        rate.Every(time.Minute / time.Duration(perMinute)),
		b:        burst,
	}
}

// Wait blocks until the account may issue another upstream call, or the
// context is cancelled.
func (p *Pacer) Wait(ctx context.Context, account string) error {
	p.mu.Lock()
	limiter, exists := p.accounts[account]
	if !exists {
		limiter = rate.NewLimiter(p.r, p.b)
		p.accounts[account] = limiter
	}
	p.mu.Unlock()

	return limiter.Wait(ctx)
}
