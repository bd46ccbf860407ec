// internal/httpserver/server.go
//
// HTTP server wiring for the words-are-hard puzzle API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, GET /game/{id},
//     POST /game/guess, DELETE /game/{id}.
//   - Challenge catalog: GET /challenges, POST /challenges (auth).
//   - Auth endpoints: /auth/signup, /auth/login, /auth/logout, /auth/me.
//
// Notes:
//   - Sessions live in the in-memory store; the database only holds users and
//     authored challenges.
//   - Responses never carry a round's secret word.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/wordsarehard/internal/challenge"
	"github.com/robalobadob/wordsarehard/internal/config"
	"github.com/robalobadob/wordsarehard/internal/store"
	"github.com/robalobadob/wordsarehard/internal/words"
)

// Server bundles the router with the session store, database and puzzle sources.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	db      *sql.DB
	dict    words.List
	catalog *challenge.Catalog
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, db *sql.DB, dict words.List, catalog *challenge.Catalog) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		store:   st,
		db:      db,
		dict:    dict,
		catalog: catalog,
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordsarehard",
			"endpoints": []string{
				"/health", "POST /game/new", "GET /game/{id}", "POST /game/guess",
				"/challenges", "/auth/*",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	// ?word=x also reports whether x is in the dictionary.
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]any{"words": s.dict.Len(), "sessions": s.store.Len()}
		if word := r.URL.Query().Get("word"); word != "" {
			res["word"] = word
			res["known"] = s.dict.Contains(word)
		}
		writeJSON(w, http.StatusOK, res)
	})

	// Game endpoints: guests can play.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Get("/game/{id}", s.handleGetGame)
		r.Delete("/game/{id}", s.handleEndGame)
		r.Post("/game/guess", s.handleGuess)
	})

	s.mountChallengeRoutes()
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
