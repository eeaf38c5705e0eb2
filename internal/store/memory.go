// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds live *hangman.Game values for the HTTP server between requests.
//
// Characteristics:
//   - Games keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; finished games are recorded
//     in the database by the server, not here.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/hangman/internal/hangman"
)

// ErrNotFound is returned by Get for unknown game IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the registry of live games.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *hangman.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*hangman.Game, error)

	// Delete drops a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

type memory struct {
	mu    sync.RWMutex
	games map[string]*hangman.Game
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*hangman.Game)}
}

func (m *memory) Save(ctx context.Context, g *hangman.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*hangman.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
