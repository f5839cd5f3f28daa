package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process Store used when no Redis is configured.
// Expiry is enforced lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (State, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[sessionID]
	m.mu.RUnlock()

	if !ok {
		return State{}, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, sessionID)
		m.mu.Unlock()
		return State{}, false, nil
	}
	return entry.state, true, nil
}

func (m *MemoryStore) Put(_ context.Context, sessionID string, state State, ttl time.Duration) error {
	entry := memoryEntry{state: state}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[sessionID] = entry
	m.mu.Unlock()
	return nil
}
