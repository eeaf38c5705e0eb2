// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily phrase.
// Exposes three endpoints under /daily:
//   - POST /daily/new     → start (or resume) today's game
//   - POST /daily/guess   → submit a guess for today's game
//   - GET  /daily/history → the caller's recorded daily results
//
// Each player gets one recorded result per day. Sessions are held in memory
// while in play; the result is written to the database when the game ends,
// won or lost. Phrase selection is deterministic from date + salt.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/hangman"
	"github.com/robalobadob/hangman/internal/observability"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	now      func() time.Time
	sessions map[string]*dailySession // keyed by playerID|date
	mu       sync.Mutex
}

// dailySession ties a player's live daily game to the day it belongs to.
type dailySession struct {
	GameID      string
	PlayerID    string
	Date        string
	PhraseIndex int
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/history", dd.handleHistory)
	})
}

// today returns today's date key, phrase index and phrase.
func (d *dailyServer) today() (date string, idx int, phrase string) {
	now := d.now().UTC()
	date = daily.DateKey(now)
	idx = daily.PhraseIndex(now, d.salt, d.srv.phrases.Len())
	return date, idx, d.srv.phrases.At(idx)
}

// newRes is returned by /daily/new.
type newRes struct {
	Date   string            `json:"date"`
	Played bool              `json:"played"`
	Game   *hangman.Snapshot `json:"game,omitempty"`
}

// handleNew creates or resumes today's session.
// - If the player already has a recorded result for today → Played=true.
// - Otherwise create/reuse the in-memory session and return its snapshot.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	pid := d.srv.playerID(w, r)
	date, idx, phrase := d.today()

	played, err := d.store.AlreadyPlayed(r.Context(), pid, date)
	if err != nil {
		log.Warn().Err(err).Str("player", pid).Msg("daily already played")
	}
	if played {
		writeJSON(w, http.StatusOK, newRes{Date: date, Played: true})
		return
	}

	key := pid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if sess, ok := d.sessions[key]; ok {
		if g, err := d.srv.store.Get(r.Context(), sess.GameID); err == nil {
			snap := g.Snapshot()
			writeJSON(w, http.StatusOK, newRes{Date: date, Game: &snap})
			return
		}
	}

	g, err := hangman.NewGame(phrase)
	if err != nil {
		// phrase lists only hold playable phrases
		log.Error().Err(err).Int("index", idx).Msg("daily phrase rejected")
		writeError(w, http.StatusInternalServerError, "invalid_daily_phrase")
		return
	}
	g.Daily = true
	g.Owner = pid
	if err := d.srv.store.Save(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.sessions[key] = &dailySession{GameID: g.ID, PlayerID: pid, Date: date, PhraseIndex: idx}
	d.srv.insertGameRow(w, r, g)
	observability.RecordGameStarted(true)

	snap := g.Snapshot()
	writeJSON(w, http.StatusOK, newRes{Date: date, Game: &snap})
}

// handleGuess applies a guess to today's session and records the result
// once the game ends.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	pid := d.srv.playerID(w, r)

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	c, ok := singleRune(req.Guess)
	if !ok || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "bad_guess")
		return
	}

	date, _, _ := d.today()
	key := pid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.GameID != req.GameID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	g, err := d.srv.store.Get(r.Context(), sess.GameID)
	if err != nil {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	res, ok := d.srv.play(w, r, g, c)
	if !ok {
		return
	}
	if res.Game.Status != hangman.StatusPlaying {
		d.finish(r, sess, g, res.Game)
	}
	writeJSON(w, http.StatusOK, res)
}

// finish records the daily result and retires the session.
func (d *dailyServer) finish(r *http.Request, sess *dailySession, g *hangman.Game, snap hangman.Snapshot) {
	err := d.store.InsertResult(r.Context(), daily.Result{
		PlayerID:     sess.PlayerID,
		Date:         sess.Date,
		PhraseIndex:  sess.PhraseIndex,
		Won:          snap.Status == hangman.StatusWon,
		WrongGuesses: snap.WrongGuesses,
		ElapsedMs:    int(time.Since(g.StartedAt).Milliseconds()),
	})
	if err != nil {
		log.Warn().Err(err).Str("player", sess.PlayerID).Msg("insert daily result")
	}
	d.mu.Lock()
	delete(d.sessions, sess.PlayerID+"|"+sess.Date)
	d.mu.Unlock()
}

// historyRes is returned by /daily/history.
type historyRes struct {
	Results []daily.Result `json:"results"`
}

// handleHistory lists the caller's recorded daily results, newest first.
func (d *dailyServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	pid := d.srv.playerID(w, r)
	rows, err := d.store.History(r.Context(), pid, 30)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, historyRes{Results: rows})
}
