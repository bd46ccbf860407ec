// internal/httpserver/routes_game.go
//
// Play endpoints:
//   - POST   /game/new    start a session: random (optionally seeded), daily, or a
//     named challenge
//   - GET    /game/{id}   current round of a session
//   - POST   /game/guess  submit a guess for the current round
//   - DELETE /game/{id}   drop a session
//
// Every response describes the round being played: the rules revealed so far, the
// hard word, and the position in the session. The secret stays on the server.

package httpserver

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"math"
	mrand "math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsarehard/internal/challenge"
	"github.com/robalobadob/wordsarehard/internal/daily"
	"github.com/robalobadob/wordsarehard/internal/game"
	"github.com/robalobadob/wordsarehard/internal/rule"
	"github.com/robalobadob/wordsarehard/internal/store"
)

const (
	modeRandom    = "random"
	modeDaily     = "daily"
	modeChallenge = "challenge"
)

type newGameReq struct {
	Mode      string `json:"mode"`      // "random" (default) | "daily" | "challenge"
	Challenge string `json:"challenge"` // challenge name, mode "challenge" only
	Seed      *int64 `json:"seed"`      // optional, mode "random" only
}

type newGameRes struct {
	gameView
	Mode      string `json:"mode"`
	Seed      *int64 `json:"seed,omitempty"`
	Date      string `json:"date,omitempty"`
	Challenge string `json:"challenge,omitempty"`
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Correct bool     `json:"correct"`
	Game    gameView `json:"game"`
}

// ruleView is one rule as shown to a player.
type ruleView struct {
	Kind        string `json:"kind"`
	Target      string `json:"target"`
	Destination string `json:"destination,omitempty"`
	Count       int    `json:"count,omitempty"`
	Text        string `json:"text"`
}

// gameView is the player-facing state of a session.
type gameView struct {
	GameID   string     `json:"gameId"`
	Index    int        `json:"index"`
	Total    int        `json:"total"`
	Complete bool       `json:"complete"`
	Rules    []ruleView `json:"rules"`
	HardWord string     `json:"hardWord,omitempty"`
}

func viewRule(r rule.Rule) ruleView {
	v := ruleView{
		Kind:   rule.KindOf(r).String(),
		Target: string(rule.Target(r)),
		Text:   r.String(),
	}
	switch r := r.(type) {
	case rule.Convert:
		v.Destination = string(r.Destination)
	case rule.Switch:
		v.Destination = string(r.Destination)
	case rule.Duplicate:
		v.Count = r.Count
	}
	return v
}

// viewSession renders the current round. A complete session shows every rule and
// no hard word.
func viewSession(s *game.Session) gameView {
	v := gameView{GameID: s.ID, Index: s.Cursor(), Total: s.Len()}
	var rules []rule.Rule
	if rd, ok := s.CurrentRound(); ok {
		rules = rd.Rules
		v.HardWord = rd.Word.HardWord
	} else {
		v.Complete = true
		if all := s.Rounds(); len(all) > 0 {
			rules = all[len(all)-1].Rules
		}
	}
	v.Rules = make([]ruleView, len(rules))
	for i, r := range rules {
		v.Rules[i] = viewRule(r)
	}
	return v
}

// handleNewGame builds a session and keeps it in the store.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Mode == "" {
		req.Mode = modeRandom
	}

	res := newGameRes{Mode: req.Mode}
	var sess *game.Session
	var err error
	switch req.Mode {
	case modeRandom:
		seed := newSeed()
		if req.Seed != nil {
			seed = *req.Seed
		}
		res.Seed = &seed
		sess, err = s.generate(mrand.New(mrand.NewSource(seed)), req.Mode)
	case modeDaily:
		now := s.now()
		res.Date = daily.DateKey(now)
		sess, err = s.generate(daily.Rand(now, s.cfg.DailySalt), req.Mode)
	case modeChallenge:
		res.Challenge = req.Challenge
		sess, err = s.catalog.Session(r.Context(), req.Challenge)
	default:
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	if err := s.store.Save(r.Context(), sess); err != nil {
		s.fail(w, err)
		return
	}
	logger := log.Info().Str("gameId", sess.ID).Str("mode", req.Mode).Int("rounds", sess.Len())
	if me := currentUser(r); me != nil {
		logger = logger.Str("user", me.ID)
	}
	logger.Msg("game started")

	res.gameView = viewSession(sess)
	writeJSON(w, http.StatusOK, res)
}

// generate runs the generator with the configured retry budget.
func (s *Server) generate(rng *mrand.Rand, mode string) (*game.Session, error) {
	return game.GenerateAttempts(rng, s.dict, s.cfg.Rounds, s.cfg.GenerateAttempts, func(attempt int, err error) {
		log.Warn().Err(err).Str("mode", mode).Int("attempt", attempt).Msg("generation exhausted")
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var v gameView
	err := s.store.View(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) error {
		v = viewSession(sess)
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleGuess resolves a guess; a correct guess advances the session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var res guessRes
	err := s.store.Update(r.Context(), req.GameID, func(sess *game.Session) error {
		ok, err := sess.Guess(req.Guess)
		if err != nil {
			return err
		}
		res.Correct = ok
		res.Game = viewSession(sess)
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	if res.Game.Complete && res.Correct {
		log.Info().Str("gameId", req.GameID).Int("rounds", res.Game.Total).Msg("game complete")
	}
	writeJSON(w, http.StatusOK, res)
}

// fail maps domain errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	code, msg := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, game.ErrGenerationExhausted):
		code, msg = http.StatusServiceUnavailable, "generation_exhausted"
	case errors.Is(err, challenge.ErrMalformedChallenge),
		errors.Is(err, game.ErrMalformedInstruction),
		errors.Is(err, rule.ErrMalformedRule):
		code, msg = http.StatusBadRequest, "malformed_challenge"
	case errors.Is(err, game.ErrInvalidAdvance):
		code, msg = http.StatusConflict, "game_complete"
	case errors.Is(err, challenge.ErrExists):
		code, msg = http.StatusConflict, "challenge_exists"
	case errors.Is(err, store.ErrNotFound):
		code, msg = http.StatusNotFound, "game_not_found"
	case errors.Is(err, challenge.ErrNotFound):
		code, msg = http.StatusNotFound, "challenge_not_found"
	}
	if code >= 500 {
		log.Error().Err(err).Msg("request failed")
		writeError(w, code, msg)
		return
	}
	writeJSON(w, code, map[string]string{"error": msg, "detail": err.Error()})
}

// newSeed draws a non-negative seed so unseeded games can still be replayed.
func newSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.BigEndian.Uint64(b[:]) & math.MaxInt64)
}
