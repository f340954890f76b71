// internal/store/memory.go
//
// In-memory player registry.
//
// Characteristics:
//   - Stores *session.Player objects keyed by player ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Idle players are evicted by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/pokeguess/internal/session"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("store: player not found")

// Store defines the registry interface for live players.
type Store interface {
	// Save adds or replaces a player.
	Save(ctx context.Context, p *session.Player) error

	// Get retrieves a player by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*session.Player, error)

	// GetOrCreate returns the player stored under id, or stores and returns
	// create() when there is none. created reports which happened; two
	// concurrent callers always receive the same player.
	GetOrCreate(ctx context.Context, id string, create func() *session.Player) (p *session.Player, created bool, err error)

	// Delete removes a player and closes it. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep evicts players idle since before cutoff and reports how many.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)

	// Len reports the number of live players.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex               // guards players map
	players map[string]*session.Player // keyed by Player.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{players: make(map[string]*session.Player)}
}

func (m *memory) Save(ctx context.Context, p *session.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.players[p.ID]; ok && old != p {
		old.Close()
	}
	m.players[p.ID] = p
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*session.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.players[id]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (m *memory) GetOrCreate(ctx context.Context, id string, create func() *session.Player) (*session.Player, bool, error) {
	m.mu.RLock()
	p, ok := m.players[id]
	m.mu.RUnlock()
	if ok {
		return p, false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.players[id]; ok {
		return p, false, nil
	}
	p = create()
	m.players[id] = p
	return p, true, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	p, ok := m.players[id]
	delete(m.players, id)
	m.mu.Unlock()
	if ok {
		p.Close()
	}
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	var idle []*session.Player
	m.mu.Lock()
	for id, p := range m.players {
		if p.LastSeen().Before(cutoff) && p.Subscribers() == 0 {
			idle = append(idle, p)
			delete(m.players, id)
		}
	}
	m.mu.Unlock()

	for _, p := range idle {
		p.Close()
	}
	return len(idle), ctx.Err()
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}
