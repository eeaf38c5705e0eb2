// internal/hangman/types.go
//
// Core type definitions for the Hangman rules engine.
// Defines:
//   - Outcome: classification of a single guess attempt.
//   - Status:  derived phase of a session (playing/won/lost).
//   - Session: state of a single game over one secret phrase.

package hangman

import "errors"

const (
	// Mask stands in for a letter of the secret that has not been guessed yet.
	Mask = '_'

	// MaxWrongGuesses is the number of wrong guesses that loses the game.
	MaxWrongGuesses = 7

	// MinSecretLen is the shortest accepted secret, in runes.
	MinSecretLen = 6
)

var (
	// ErrInvalidSecret is returned by New for secrets of five runes or fewer.
	ErrInvalidSecret = errors.New("hangman: secret must be longer than five characters")

	// ErrGameOver is returned by Guess once the session is won or lost.
	ErrGameOver = errors.New("hangman: game is over")
)

// Outcome is the result of a single call to Session.Guess.
type Outcome int

const (
	NotLetter Outcome = iota // guess is not a letter; nothing recorded
	Multiple                 // the exact rune was guessed before
	Correct                  // new guess matching at least one position
	Wrong                    // new guess matching nothing; counts against the player
)

var outcomeNames = [...]string{
	NotLetter: "not_letter",
	Multiple:  "multiple",
	Correct:   "correct",
	Wrong:     "wrong",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// MarshalText lets outcomes travel as their string names in JSON.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Status is the phase of a session. It is never stored; it is derived from the
// revealed phrase and the wrong-guess count on every query.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Session holds the state of a single Hangman game.
type Session struct {
	secret   []rune            // fixed at construction, case preserved
	revealed []rune            // same length as secret; Mask for hidden letters
	guessed  []rune            // distinct guesses in the order first made
	seen     map[rune]struct{} // membership index over guessed
	wrong    int               // wrong guesses so far, 0..MaxWrongGuesses
}
