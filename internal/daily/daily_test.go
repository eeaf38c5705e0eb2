package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/db"
)

func TestDateKey_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 10, 17, 5, 0, 0, 0, loc)
	assert.Equal(t, "2026-10-16", DateKey(ts))
}

func TestPhraseIndex(t *testing.T) {
	day := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	later := day.Add(6 * time.Hour)

	i := PhraseIndex(day, "salt", 30)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 30)
	assert.Equal(t, i, PhraseIndex(later, "salt", 30), "same date, same index")
	assert.Equal(t, 0, PhraseIndex(day, "salt", 0))

	seen := map[int]bool{}
	for d := 0; d < 60; d++ {
		seen[PhraseIndex(day.AddDate(0, 0, d), "salt", 30)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(conn, assets.Migrations()))
	return NewStore(conn)
}

func TestStore_RecordsOncePerDay(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	played, err := s.AlreadyPlayed(ctx, "p1", "2026-10-17")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p1", Date: "2026-10-17", PhraseIndex: 3, Won: true, WrongGuesses: 2, ElapsedMs: 1500}))
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p1", Date: "2026-10-17", PhraseIndex: 3, Won: false, WrongGuesses: 7}))
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p1", Date: "2026-10-16", PhraseIndex: 1, Won: false, WrongGuesses: 7}))

	played, err = s.AlreadyPlayed(ctx, "p1", "2026-10-17")
	require.NoError(t, err)
	assert.True(t, played)

	hist, err := s.History(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "2026-10-17", hist[0].Date)
	assert.True(t, hist[0].Won)
	assert.Equal(t, 2, hist[0].WrongGuesses)
	assert.Equal(t, "2026-10-16", hist[1].Date)

	hist, err = s.History(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, hist)
}
