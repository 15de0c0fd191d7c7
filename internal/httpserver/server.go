// internal/httpserver/server.go
//
// HTTP server wiring for the hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/", "/health", "/debug/phrases".
//   - Game endpoints: POST /game/new, GET /game/{id}, POST /game/guess,
//     POST /game/restart, GET /game/{id}/ws.
//
// Notes:
//   - Every game endpoint except /game/new requires the game token issued by
//     /game/new (see token.go); a token only unlocks its own game.
//   - The secret phrase never leaves the server while the round is open.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/hub"
	"github.com/robalobadob/hangman/internal/phrase"
	"github.com/robalobadob/hangman/internal/phrasebook"
)

const maxBodyBytes = 4 << 10

// Server bundles router, session hub and phrase book.
type Server struct {
	r        *chi.Mux
	http     *http.Server
	cfg      *config.Config
	hub      *hub.Hub
	book     *phrasebook.Book
	upgrader websocket.Upgrader
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, h *hub.Hub, book *phrasebook.Book) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, hub: h, book: book, now: time.Now}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger)) // request-scoped logger
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(s.cors)                      // credentials-friendly CORS

	s.r.Group(func(r chi.Router) {
		r.Use(accessLog)
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"hangman-go","endpoints":["/health","POST /game/new","GET /game/{id}","POST /game/guess","POST /game/restart","GET /game/{id}/ws"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/phrases", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{"phrases": s.book.Len(), "games": s.hub.Count()})
		})

		r.Post("/game/new", s.handleNewGame)
		r.With(s.requireGameToken()).Get("/game/{id}", s.handleGetGame)
		r.With(s.requireGameToken()).Post("/game/guess", s.handleGuess)
		r.With(s.requireGameToken()).Post("/game/restart", s.handleRestart)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	// Hijacked connection: no timeout, no JSON header, logs its own lifecycle.
	s.r.Get("/game/{id}/ws", s.handleWS)

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start begins serving HTTP on the configured address.
func (s *Server) Start() error { return s.http.ListenAndServe() }

// Shutdown stops accepting connections and waits for handlers to finish.
func (s *Server) Shutdown(ctx context.Context) error { return s.http.Shutdown(ctx) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one line per request through the request logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.Server.ClientOrigin
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

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new. Exactly one of Phrase, Random
// or Daily selects the phrase; Daily wins over Random, Random over Phrase.
type newGameReq struct {
	Phrase string `json:"phrase"`
	Random bool   `json:"random"`
	Daily  bool   `json:"daily"`
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Date      string    `json:"date,omitempty"` // daily rounds only
	View      game.View `json:"view"`
}

// handleNewGame starts a session and issues its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	text, date := s.choosePhrase(req)

	sess, err := s.hub.Create(r.Context(), text)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	tok, exp, err := s.signToken(sess.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setTokenCookie(w, tok, exp)
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Token: tok, ExpiresAt: exp, Date: date, View: sess.View()})
}

// handleGetGame returns the current view, e.g. after a page reload.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !authorizedFor(r, id) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	sess, err := s.hub.Get(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.View())
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Matched  bool      `json:"matched"`
	Revealed int       `json:"revealed"`
	View     game.View `json:"view"`
}

// handleGuess forwards one guess to the session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !authorizedFor(r, req.GameID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	res, v, err := s.hub.Guess(r.Context(), req.GameID, req.Guess)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(guessRes{Matched: res.Matched, Revealed: res.Revealed, View: v})
}

type restartReq struct {
	GameID string `json:"gameId"`
}

// handleRestart discards the session; the client goes back to phrase entry.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req restartReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !authorizedFor(r, req.GameID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	if err := s.hub.Restart(r.Context(), req.GameID); err != nil {
		writeErr(w, r, err)
		return
	}
	s.clearTokenCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ------------------------------- helpers -----------------------------------

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// errorCode maps domain errors to an HTTP status and a stable code.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, phrase.ErrInvalidGuess):
		return http.StatusBadRequest, "invalid_guess"
	case errors.Is(err, phrase.ErrEmptyPhrase):
		return http.StatusBadRequest, "empty_phrase"
	case errors.Is(err, game.ErrAlreadyGuessed):
		return http.StatusBadRequest, "already_guessed"
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict, "game_over"
	case errors.Is(err, hub.ErrNotFound), errors.Is(err, game.ErrSessionClosed):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorCode(err)
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	writeError(w, status, code)
}
