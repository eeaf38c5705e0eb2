// internal/httpserver/server.go
//
// HTTP server wiring for the Hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request logs, Prometheus metrics).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily endpoints (optional auth): mounted under /daily.
//   - Account endpoints: /auth/*, /stats/me, /games/mine.
//   - Best-effort persistence of game history and user stats.
//
// Notes:
//   - Live games sit in the Store; the database only keeps history rows.
//   - Guess rejections (not a letter, repeated) are ordinary 200 responses
//     carrying the outcome; only malformed requests and finished games are
//     errors.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/auth"
	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/hangman"
	"github.com/robalobadob/hangman/internal/observability"
	"github.com/robalobadob/hangman/internal/phrases"
	"github.com/robalobadob/hangman/internal/store"
)

// Server bundles router, live game store, phrase list and DB handle.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	db      *sql.DB
	phrases *phrases.List
	users   *auth.Users
	issuer  *auth.Issuer
	authMW  *auth.Middleware
	cookies auth.Cookies
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, db *sql.DB, list *phrases.List) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		store:   st,
		db:      db,
		phrases: list,
		users:   auth.NewUsers(db),
		issuer:  auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL()),
		cookies: auth.Cookies{Name: cfg.CookieName, Secure: cfg.Production},
	}
	s.authMW = &auth.Middleware{Issuer: s.issuer, Users: s.users, Cookies: s.cookies}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(observability.RequestLogger(log.Logger))
	s.r.Use(observability.RequestMetrics)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"hangman-go","endpoints":["/health","/metrics","POST /game/new","POST /game/guess","GET /game/{id}","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.PingContext(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "db_unavailable")
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	observability.RegisterMetrics()
	s.r.Handle("/metrics", promhttp.Handler())

	// Game endpoints, optional auth (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.authMW.Optional)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}", s.handleGetGame)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Handler exposes the router (useful for tests and for http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ GAME ---------------------------------------

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	Secret string `json:"secret"` // optional fixed phrase; random when empty
}

// handleNewGame creates a live game and a history row owned by the user or
// the anonymous cookie.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	secret := s.phrases.Random()
	if req.Secret != "" {
		// Caller phrases must be winnable, same as the phrase list.
		secret = phrases.Normalize(req.Secret)
		if !phrases.Valid(secret) {
			writeError(w, http.StatusBadRequest, "invalid_secret")
			return
		}
	}

	g, err := hangman.NewGame(secret)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_secret")
		return
	}
	g.Owner = s.playerID(w, r)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.insertGameRow(w, r, g)
	observability.RecordGameStarted(false)

	writeJSON(w, http.StatusOK, g.Snapshot())
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Outcome hangman.Outcome  `json:"outcome"`
	Game    hangman.Snapshot `json:"game"`
}

// handleGuess applies a guess to a live (non-daily) game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	c, ok := singleRune(req.Guess)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_guess")
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil || !s.ownedBy(r, g) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if g.Daily {
		writeError(w, http.StatusConflict, "daily_game")
		return
	}
	res, ok := s.play(w, r, g, c)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGetGame returns the current snapshot of a live game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil || !s.ownedBy(r, g) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// play runs one guess against g and records progress. It writes the error
// response itself and reports false when the guess could not be applied.
func (s *Server) play(w http.ResponseWriter, r *http.Request, g *hangman.Game, c rune) (guessRes, bool) {
	out, snap, err := g.Guess(c)
	if errors.Is(err, hangman.ErrGameOver) {
		writeError(w, http.StatusConflict, "game_over")
		return guessRes{}, false
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("guess")
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return guessRes{}, false
	}
	observability.RecordGuess(out.String())

	// Only recorded guesses change history.
	if out == hangman.Correct || out == hangman.Wrong {
		s.recordProgress(r, g, out, snap)
	}
	return guessRes{Outcome: out, Game: snap}, true
}

// insertGameRow persists the owner row for a new game (best effort).
func (s *Server) insertGameRow(w http.ResponseWriter, r *http.Request, g *hangman.Game) {
	started := g.StartedAt.Format(time.RFC3339)
	var err error
	if me := auth.FromContext(r.Context()); me != nil {
		_, err = s.db.ExecContext(r.Context(),
			`INSERT INTO games (id, user_id, daily, started_at, status) VALUES (?,?,?,?,?)`,
			g.ID, me.ID, g.Daily, started, string(hangman.StatusPlaying))
	} else {
		_, err = s.db.ExecContext(r.Context(),
			`INSERT INTO games (id, anonymous_id, daily, started_at, status) VALUES (?,?,?,?,?)`,
			g.ID, s.ensureAnonID(w, r), g.Daily, started, string(hangman.StatusPlaying))
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}
}

// recordProgress counts one recorded guess on the caller's history row and,
// when the guess ended the game, updates the player's stats. Failures are
// logged, never surfaced.
func (s *Server) recordProgress(r *http.Request, g *hangman.Game, out hangman.Outcome, snap hangman.Snapshot) {
	ctx := r.Context()
	me := auth.FromContext(ctx)
	userID, anonID := "", ""
	if me != nil {
		userID = me.ID
	}
	if c, err := r.Cookie(anonCookieName); err == nil {
		anonID = c.Value
	}
	miss := 0
	if out == hangman.Wrong {
		miss = 1
	}
	finished := snap.Status != hangman.StatusPlaying

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET guesses = guesses + 1, wrong_guesses = wrong_guesses + ?
		 WHERE id = ? AND (user_id = ? OR anonymous_id = ?)`,
		miss, g.ID, userID, anonID); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("update guesses")
	}

	if finished {
		if _, err := tx.ExecContext(ctx,
			`UPDATE games SET status = ?, finished_at = ? WHERE id = ? AND (user_id = ? OR anonymous_id = ?)`,
			string(snap.Status), time.Now().UTC().Format(time.RFC3339), g.ID, userID, anonID); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("finish game")
		}
		if me != nil {
			if err := auth.RecordResult(ctx, tx, me.ID, snap.Status == hangman.StatusWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("record result")
			}
		}
		observability.RecordGameFinished(string(snap.Status))
		log.Info().Str("gameId", g.ID).Str("status", string(snap.Status)).Int("wrong", snap.WrongGuesses).Msg("game finished")
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("commit progress")
	}
}

// ------------------------------- anon --------------------------------------

const anonCookieName = "hangman_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	// Make the ID visible to later lookups within the same request.
	r.AddCookie(&http.Cookie{Name: anonCookieName, Value: id})
	return id
}

// ownedBy reports whether the caller owns g, as the signed-in user or through
// the anonymous cookie the game was started with.
func (s *Server) ownedBy(r *http.Request, g *hangman.Game) bool {
	if me := auth.FromContext(r.Context()); me != nil && me.ID == g.Owner {
		return true
	}
	c, err := r.Cookie(anonCookieName)
	return err == nil && c.Value != "" && c.Value == g.Owner
}

// playerID returns the authenticated user ID, or the anonymous ID for guests.
func (s *Server) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := auth.FromContext(r.Context()); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeOptional decodes a JSON body into v, treating an empty body as {}.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// singleRune reports the only rune of s, if s holds exactly one.
func singleRune(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	c, _ := utf8.DecodeRuneInString(s)
	if c == utf8.RuneError {
		return 0, false
	}
	return c, true
}
