package phrases

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/hangman"
)

func TestLoad_Embedded(t *testing.T) {
	l, err := Load("")
	require.NoError(t, err)
	require.Greater(t, l.Len(), 10)

	for i := 0; i < l.Len(); i++ {
		_, err := hangman.New(l.At(i))
		assert.NoError(t, err, "phrase %q", l.At(i))
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n\n  Lobster pot  \nshort\nLobster pot\n"), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, "Lobster pot", l.At(0))
	assert.Equal(t, "Lobster pot", l.Random())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader("# nothing\nabc\n12345678\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNormalize_ComposesAccents(t *testing.T) {
	decomposed := "cafe\u0301 noir"
	got := Normalize("  " + decomposed + " ")
	assert.Equal(t, "caf\u00e9 noir", got)
	assert.Len(t, []rune(got), 9)

	s, err := hangman.New(got)
	require.NoError(t, err)
	assert.Equal(t, "____ ____", s.Revealed())
}

func TestValid(t *testing.T) {
	cases := map[string]bool{
		"secret":      true,
		"Hello World": true,
		"hello":       false,
		"123456789":   false,
		"snake_case":  false,
		"!!! ok !!!":  true,
	}
	for in, want := range cases {
		assert.Equal(t, want, Valid(in), "phrase %q", in)
	}
}

func TestRandom_PicksFromList(t *testing.T) {
	l, err := Parse(strings.NewReader("first phrase\nsecond phrase\n"))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		assert.Contains(t, []string{"first phrase", "second phrase"}, l.Random())
	}
}
