package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StateStore keeps pending OAuth CSRF states until the callback consumes them.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume removes state and reports whether it was pending and unexpired.
	Consume(ctx context.Context, state string) (bool, error)
}

func NewState() string {
	return uuid.NewString()
}

// MemoryStateStore is the single-process StateStore.
type MemoryStateStore struct {
	mu      sync.Mutex
	pending map[string]time.Time
	now     func() time.Time
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{pending: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryStateStore) Save(_ context.Context, state string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for s, exp := range m.pending {
		if !now.Before(exp) {
			delete(m.pending, s)
		}
	}
	m.pending[state] = now.Add(ttl)
	return nil
}

func (m *MemoryStateStore) Consume(_ context.Context, state string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.pending[state]
	if !ok {
		return false, nil
	}
	delete(m.pending, state)
	return m.now().Before(exp), nil
}
