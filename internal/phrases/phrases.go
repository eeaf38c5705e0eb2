// internal/phrases/phrases.go
//
// Phrase list management for the game server and console player.
//
// Responsibilities:
//   - Load secret phrases from a file or fall back to the embedded default list.
//   - Normalize phrases (trim, Unicode NFC) and keep only playable ones.
//   - Supply Random and At for callers that pick a secret.
//
// Playable phrases:
//   • longer than five runes (the engine rejects anything shorter),
//   • at least one letter,
//   • no literal mask rune '_' (it would stay visible and block a win).

package phrases

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/hangman"
)

// ErrEmpty is returned when a source yields no playable phrase.
var ErrEmpty = errors.New("phrases: list is empty")

// List is an immutable, ordered set of playable phrases.
type List struct {
	phrases []string
}

// Load reads phrases from path, or from the embedded default list when path
// is empty.
func Load(path string) (*List, error) {
	if path == "" {
		text, err := assets.PhrasesText()
		if err != nil {
			return nil, fmt.Errorf("phrases: read embedded list: %w", err)
		}
		return Parse(strings.NewReader(text))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phrases: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads one phrase per line from r. Comments, blank lines, duplicates
// and unplayable phrases are skipped.
func Parse(r io.Reader) (*List, error) {
	var out []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if assets.IsComment(line) {
			continue
		}
		p := Normalize(line)
		if !Valid(p) {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("phrases: scan: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return &List{phrases: out}, nil
}

// Normalize trims surrounding space and composes the phrase to NFC so that
// an accented letter is a single rune.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Valid reports whether p can be played to a win.
func Valid(p string) bool {
	if utf8.RuneCountInString(p) < hangman.MinSecretLen {
		return false
	}
	letters := false
	for _, r := range p {
		if r == hangman.Mask {
			return false
		}
		if unicode.IsLetter(r) {
			letters = true
		}
	}
	return letters
}

// Len returns the number of phrases.
func (l *List) Len() int { return len(l.phrases) }

// At returns the phrase at index i.
func (l *List) At(i int) string { return l.phrases[i] }

// Random returns a cryptographically random phrase.
func (l *List) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.phrases))))
	if err != nil {
		return l.phrases[0]
	}
	return l.phrases[n.Int64()]
}
