package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is a process-local cache. Values are stored JSON-encoded so reads
// behave the same as with the Redis backend.
type Memory struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	lastSweep time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ Cache = (*Memory)(nil)

func newMemory() *Memory {
	return &Memory{
		entries:   make(map[string]memoryEntry),
		lastSweep: time.Now(),
	}
}

func (m *Memory) Get(_ context.Context, key string, dest any) bool {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		m.misses.Add(1)
		return false
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		m.misses.Add(1)
		return false
	}
	m.hits.Add(1)
	return true
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	now := time.Now()
	m.mu.Lock()
	m.entries[key] = memoryEntry{data: data, expiresAt: now.Add(ttl)}
	m.sweepLocked(now)
	m.mu.Unlock()
}

func (m *Memory) Delete(_ context.Context, keys ...string) {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}

func (m *Memory) Stats(_ context.Context) Stats {
	m.mu.RLock()
	keys := int64(len(m.entries))
	m.mu.RUnlock()

	return Stats{
		Backend: "memory",
		Keys:    keys,
		Hits:    m.hits.Load(),
		Misses:  m.misses.Load(),
	}
}

// sweepLocked drops expired entries at most once a minute so the map does not
// grow with dead keys. Caller holds mu.
func (m *Memory) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < time.Minute {
		return
	}
	m.lastSweep = now
	for key, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
}
