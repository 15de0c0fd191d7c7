// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is the default persistence layer when no database path is
// configured, and the one used in tests.
//
// Characteristics:
//   - Stores game.Snapshot values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store persists snapshots of active sessions. Finished sessions are removed
// when they are restarted or evicted, so a store never holds history.
type Store interface {
	// Save inserts or replaces the snapshot.
	Save(ctx context.Context, snap game.Snapshot) error

	// Get retrieves a snapshot by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (game.Snapshot, error)

	// Delete removes a snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every snapshot, oldest first.
	List(ctx context.Context) ([]game.Snapshot, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex             // guards games map
	games map[string]game.Snapshot // keyed by Snapshot.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]game.Snapshot)}
}

func (m *memory) Save(ctx context.Context, snap game.Snapshot) error {
	snap.Revealed = slices.Clone(snap.Revealed)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[snap.ID] = snap
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (game.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		g.Revealed = slices.Clone(g.Revealed)
		return g, nil
	}
	return game.Snapshot{}, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) List(ctx context.Context) ([]game.Snapshot, error) {
	m.mu.RLock()
	out := make([]game.Snapshot, 0, len(m.games))
	for _, g := range m.games {
		g.Revealed = slices.Clone(g.Revealed)
		out = append(out, g)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
