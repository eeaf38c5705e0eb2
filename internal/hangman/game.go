// internal/hangman/game.go
//
// Game is a Session with an identity, for callers that keep many sessions
// alive at once (the HTTP server). A Session is meant for one caller at a
// time; Game serializes access so concurrent requests against the same ID
// cannot interleave inside Guess.

package hangman

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Game bundles a session with its identifier and start time.
type Game struct {
	ID        string
	Daily     bool
	StartedAt time.Time

	// Owner is the player the game belongs to: a user ID or an anonymous ID.
	Owner string

	mu      sync.Mutex
	session *Session
}

// Snapshot is the read-only view of a game handed to clients.
// Secret is only filled in once the game is finished.
type Snapshot struct {
	ID              string   `json:"id"`
	Revealed        string   `json:"revealed"`
	WrongGuesses    int      `json:"wrongGuesses"`
	MaxWrongGuesses int      `json:"maxWrongGuesses"`
	Guesses         []string `json:"guesses"`
	Status          Status   `json:"status"`
	Secret          string   `json:"secret,omitempty"`
}

// NewGame constructs a game with a fresh random ID.
func NewGame(secret string) (*Game, error) {
	s, err := New(secret)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		session:   s,
	}, nil
}

// Guess applies c to the underlying session and returns the outcome together
// with the post-guess snapshot.
func (g *Game) Guess(c rune) (Outcome, Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out, err := g.session.Guess(c)
	return out, g.snapshotLocked(), err
}

// Snapshot returns the current view of the game.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() Snapshot {
	prev := g.session.PreviousGuesses()
	guesses := make([]string, len(prev))
	for i, r := range prev {
		guesses[i] = string(r)
	}
	snap := Snapshot{
		ID:              g.ID,
		Revealed:        g.session.Revealed(),
		WrongGuesses:    g.session.WrongGuesses(),
		MaxWrongGuesses: MaxWrongGuesses,
		Guesses:         guesses,
		Status:          g.session.Status(),
	}
	if snap.Status != StatusPlaying {
		snap.Secret = g.session.Secret()
	}
	return snap
}
