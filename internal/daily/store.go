// internal/daily/store.go
//
// Persistence for daily results.
// One row per player per date in daily_results; the first finished game of the
// day wins and later inserts are ignored.

package daily

import (
	"context"
	"database/sql"
	"fmt"
)

// Result is one player's finished daily game.
type Result struct {
	PlayerID     string `json:"playerId"`
	Date         string `json:"date"`
	PhraseIndex  int    `json:"phraseIndex"`
	Won          bool   `json:"won"`
	WrongGuesses int    `json:"wrongGuesses"`
	ElapsedMs    int    `json:"elapsedMs"`
}

// Store persists daily results in the daily_results table.
type Store struct{ db *sql.DB }

// NewStore returns a Store over db.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether playerID has a recorded result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?`,
		playerID, date,
	).Scan(&cnt)
	if err != nil {
		return false, fmt.Errorf("daily: already played: %w", err)
	}
	return cnt > 0, nil
}

// InsertResult records r. A second result for the same player and date is
// ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(player_id, date, phrase_index, won, wrong_guesses, elapsed_ms)
		 VALUES(?,?,?,?,?,?)`,
		r.PlayerID, r.Date, r.PhraseIndex, r.Won, r.WrongGuesses, r.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("daily: insert result: %w", err)
	}
	return nil
}

// History returns playerID's most recent results, newest first.
func (s *Store) History(ctx context.Context, playerID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, date, phrase_index, won, wrong_guesses, elapsed_ms
		 FROM daily_results
		 WHERE player_id=?
		 ORDER BY date DESC
		 LIMIT ?`, playerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("daily: history: %w", err)
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.PlayerID, &r.Date, &r.PhraseIndex, &r.Won, &r.WrongGuesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
