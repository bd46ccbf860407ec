package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsarehard/internal/challenge"
)

type newChallengeReq struct {
	Name   string          `json:"name"`
	Rounds json.RawMessage `json:"rounds"` // [{"rule": {...}, "word": "..."}]
}

func (s *Server) mountChallengeRoutes() {
	s.r.Get("/challenges", s.handleListChallenges)
	s.r.With(s.requireAuth()).Post("/challenges", s.handleCreateChallenge)
}

// handleListChallenges lists names and round counts, tutorials first.
func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if entries == nil {
		entries = []challenge.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"challenges": entries})
}

// handleCreateChallenge validates and stores a challenge authored by the caller.
func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req newChallengeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	rounds, err := challenge.DecodeRounds(req.Name, req.Rounds)
	if err != nil {
		s.fail(w, err)
		return
	}
	me := currentUser(r)
	if err := s.catalog.Add(r.Context(), req.Name, me.ID, rounds); err != nil {
		s.fail(w, err)
		return
	}
	log.Info().Str("challenge", req.Name).Str("user", me.ID).Int("rounds", len(rounds)).Msg("challenge created")
	writeJSON(w, http.StatusCreated, challenge.Entry{
		Name:     req.Name,
		Rounds:   len(rounds),
		Tutorial: challenge.IsTutorial(req.Name),
		AuthorID: me.ID,
	})
}
