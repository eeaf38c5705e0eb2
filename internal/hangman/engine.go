// internal/hangman/engine.go
//
// Rules engine for a single Hangman session.
// Responsibilities:
//   - Create sessions from a secret phrase, masking letters and leaving every
//     other rune (spaces, punctuation, digits) visible.
//   - Evaluate guesses: reject non-letters and repeats, reveal matches
//     case-insensitively, count misses.
//   - Derive state: playing → won/lost.
//
// Notes:
//   - Duplicate detection is exact: 's' and 'S' are distinct guesses.
//   - A correct guess writes the guessed rune itself into every matching
//     position, not the rune from the secret.
//   - Once the session is won or lost, Guess refuses further input.
package hangman

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// New constructs a session for secret.
// Returns ErrInvalidSecret if secret is five runes or shorter.
func New(secret string) (*Session, error) {
	if utf8.RuneCountInString(secret) < MinSecretLen {
		return nil, ErrInvalidSecret
	}
	s := &Session{
		secret: []rune(secret),
		seen:   make(map[rune]struct{}),
	}
	s.revealed = make([]rune, len(s.secret))
	for i, r := range s.secret {
		if unicode.IsLetter(r) {
			s.revealed[i] = Mask
		} else {
			s.revealed[i] = r
		}
	}
	return s, nil
}

// Guess evaluates one candidate rune and mutates the session accordingly.
//
// Checks, in order:
//   - Session must still be in progress (ErrGameOver otherwise, no mutation).
//   - c must be a letter (NotLetter, no mutation).
//   - c must not have been guessed before (Multiple, no mutation).
//
// A new letter is recorded, then revealed in every position whose upper-case
// form matches; with no match the wrong-guess count goes up by one.
func (s *Session) Guess(c rune) (Outcome, error) {
	if !s.InProgress() {
		return 0, ErrGameOver
	}
	if !unicode.IsLetter(c) {
		return NotLetter, nil
	}
	if _, dup := s.seen[c]; dup {
		return Multiple, nil
	}

	s.seen[c] = struct{}{}
	s.guessed = append(s.guessed, c)

	if !s.reveal(c) {
		s.wrong++
		return Wrong, nil
	}
	return Correct, nil
}

// reveal writes c into every position of the secret matching it
// case-insensitively and reports whether any position matched.
func (s *Session) reveal(c rune) bool {
	want := unicode.ToUpper(c)
	found := false
	for i, r := range s.secret {
		if unicode.ToUpper(r) == want {
			s.revealed[i] = c
			found = true
		}
	}
	return found
}

// Revealed renders the player-visible phrase.
func (s *Session) Revealed() string { return string(s.revealed) }

// Won reports whether no masked position remains.
func (s *Session) Won() bool { return !strings.ContainsRune(s.Revealed(), Mask) }

// Lost reports whether the wrong-guess limit has been reached.
func (s *Session) Lost() bool { return s.wrong == MaxWrongGuesses }

// InProgress reports whether the session is neither won nor lost.
func (s *Session) InProgress() bool { return !(s.Won() || s.Lost()) }

// WrongGuesses returns the number of distinct guesses that matched nothing.
func (s *Session) WrongGuesses() int { return s.wrong }

// PreviousGuesses returns every distinct guess in the order it was first made.
// The returned slice is a copy.
func (s *Session) PreviousGuesses() []rune {
	out := make([]rune, len(s.guessed))
	copy(out, s.guessed)
	return out
}

// Secret returns the phrase the session was created with.
func (s *Session) Secret() string { return string(s.secret) }

// Status reports the derived phase of the session.
func (s *Session) Status() Status {
	switch {
	case s.Won():
		return StatusWon
	case s.Lost():
		return StatusLost
	default:
		return StatusPlaying
	}
}
