package hangman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, secret string) *Session {
	t.Helper()
	s, err := New(secret)
	require.NoError(t, err)
	return s
}

func guessAll(t *testing.T, s *Session, runes string) {
	t.Helper()
	for _, r := range runes {
		_, err := s.Guess(r)
		require.NoError(t, err)
	}
}

func TestNew_FreshSession(t *testing.T) {
	s := mustNew(t, "secret")

	assert.Empty(t, s.PreviousGuesses())
	assert.Equal(t, 0, s.WrongGuesses())
	assert.False(t, s.Won())
	assert.False(t, s.Lost())
	assert.True(t, s.InProgress())
	assert.Equal(t, StatusPlaying, s.Status())
}

func TestNew_RejectsShortSecrets(t *testing.T) {
	for _, secret := range []string{"", "a", "aa", "aaaa", "aaaaa", "héllo"} {
		_, err := New(secret)
		assert.ErrorIs(t, err, ErrInvalidSecret, "secret %q", secret)
	}
}

func TestNew_LengthCountsRunes(t *testing.T) {
	s, err := New("héllos")
	require.NoError(t, err)
	assert.Equal(t, "______", s.Revealed())
}

func TestNew_MasksLettersOnly(t *testing.T) {
	cases := []struct {
		secret, revealed string
	}{
		{"It's a hot time in the old town tonight!", "__'_ _ ___ ____ __ ___ ___ ____ _______!"},
		{"Hello World", "_____ _____"},
		{"Jacob Jingleheimer Schmidt", "_____ ____________ _______"},
		{"Catch-22, again", "_____-22, _____"},
	}
	for _, tc := range cases {
		t.Run(tc.secret, func(t *testing.T) {
			s := mustNew(t, tc.secret)
			assert.Equal(t, tc.revealed, s.Revealed())
			assert.Equal(t, len([]rune(tc.secret)), len([]rune(s.Revealed())))
		})
	}
}

func TestGuess_RecordsGuesses(t *testing.T) {
	for _, g := range []rune{'s', 'f'} {
		s := mustNew(t, "secret")
		_, err := s.Guess(g)
		require.NoError(t, err)
		assert.Contains(t, s.PreviousGuesses(), g)
	}
}

func TestGuess_Outcomes(t *testing.T) {
	s := mustNew(t, "secret")

	out, err := s.Guess('s')
	require.NoError(t, err)
	assert.Equal(t, Correct, out)

	out, err = s.Guess('w')
	require.NoError(t, err)
	assert.Equal(t, Wrong, out)
}

func TestGuess_WrongIncrementsCount(t *testing.T) {
	s := mustNew(t, "secret")
	for i, r := range "wfxyqpi" {
		out, err := s.Guess(r)
		require.NoError(t, err)
		assert.Equal(t, Wrong, out)
		assert.Equal(t, i+1, s.WrongGuesses())
	}
}

func TestGuess_SevenWrongLoses(t *testing.T) {
	s := mustNew(t, "secret")
	guessAll(t, s, "wfxyqpi")

	assert.Equal(t, MaxWrongGuesses, s.WrongGuesses())
	assert.True(t, s.Lost())
	assert.False(t, s.Won())
	assert.False(t, s.InProgress())
	assert.Equal(t, StatusLost, s.Status())
}

func TestGuess_AllLettersWins(t *testing.T) {
	s := mustNew(t, "secret")
	guessAll(t, s, "tcesr")

	assert.Equal(t, "secret", s.Revealed())
	assert.True(t, s.Won())
	assert.False(t, s.Lost())
	assert.False(t, s.InProgress())
	assert.Equal(t, StatusWon, s.Status())
}

func TestGuess_RepeatDoesNotCount(t *testing.T) {
	s := mustNew(t, "secret")

	_, _ = s.Guess('s')
	assert.Len(t, s.PreviousGuesses(), 1)

	out, err := s.Guess('s')
	require.NoError(t, err)
	assert.Equal(t, Multiple, out)
	_, _ = s.Guess('s')
	assert.Len(t, s.PreviousGuesses(), 1)

	_, _ = s.Guess('a')
	assert.Equal(t, 1, s.WrongGuesses())
	out, _ = s.Guess('a')
	assert.Equal(t, Multiple, out)
	assert.Equal(t, 1, s.WrongGuesses())
	assert.Equal(t, []rune{'s', 'a'}, s.PreviousGuesses())
}

func TestGuess_NonLetterRejected(t *testing.T) {
	for _, r := range []rune{'!', '3', '&', ' ', '_'} {
		s := mustNew(t, "secret")
		out, err := s.Guess(r)
		require.NoError(t, err)
		assert.Equal(t, NotLetter, out, "guess %q", r)
		assert.Empty(t, s.PreviousGuesses())
		assert.Equal(t, 0, s.WrongGuesses())
	}
}

func TestGuess_MatchIsCaseInsensitive(t *testing.T) {
	s := mustNew(t, "Secret")

	out, _ := s.Guess('s')
	assert.Equal(t, Correct, out)
	out, _ = s.Guess('R')
	assert.Equal(t, Correct, out)

	// the guessed rune is what gets revealed
	assert.Equal(t, "s__R__", s.Revealed())
}

func TestGuess_CaseVariantsAreDistinctGuesses(t *testing.T) {
	s := mustNew(t, "Sassafras")

	out, _ := s.Guess('s')
	assert.Equal(t, Correct, out)
	assert.Equal(t, "s_ss____s", s.Revealed())

	out, _ = s.Guess('S')
	assert.Equal(t, Correct, out)
	assert.Equal(t, "S_SS____S", s.Revealed())
	assert.Equal(t, []rune{'s', 'S'}, s.PreviousGuesses())
}

func TestGuess_AfterLossRefused(t *testing.T) {
	s := mustNew(t, "secret")
	guessAll(t, s, "wfxyqpi")

	_, err := s.Guess('z')
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.Guess('s')
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, MaxWrongGuesses, s.WrongGuesses())
	assert.Equal(t, "______", s.Revealed())
	assert.Len(t, s.PreviousGuesses(), MaxWrongGuesses)
}

func TestGuess_AfterWinRefused(t *testing.T) {
	s := mustNew(t, "secret")
	guessAll(t, s, "secrt")

	_, err := s.Guess('x')
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 0, s.WrongGuesses())
}

func TestQueries_AreIdempotent(t *testing.T) {
	s := mustNew(t, "Hello, World")
	guessAll(t, s, "loz")

	for i := 0; i < 3; i++ {
		assert.Equal(t, "__llo, _o_l_", s.Revealed())
		assert.Equal(t, 1, s.WrongGuesses())
		assert.Equal(t, []rune{'l', 'o', 'z'}, s.PreviousGuesses())
		assert.True(t, s.InProgress())
		assert.False(t, s.Won())
		assert.False(t, s.Lost())
	}
}

func TestPreviousGuesses_ReturnsCopy(t *testing.T) {
	s := mustNew(t, "secret")
	_, _ = s.Guess('s')

	prev := s.PreviousGuesses()
	prev[0] = 'x'
	assert.Equal(t, []rune{'s'}, s.PreviousGuesses())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "not_letter", NotLetter.String())
	assert.Equal(t, "multiple", Multiple.String())
	assert.Equal(t, "correct", Correct.String())
	assert.Equal(t, "wrong", Wrong.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
