// internal/game/session.go
//
// Session: the round table of one play-through and the cursor moving across it.
// Responsibilities:
//   - Hold the rules and the per-round word data (equal length, fixed at
//     construction).
//   - Expose the current round, completion, and forward-only advancing.
//   - Resolve guesses (trim + lowercase, exact compare against the secret).
//
// A session is owned by one consumer. It is not safe for concurrent mutation;
// the session store serializes access for the HTTP server.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/robalobadob/wordsarehard/internal/rule"
)

// Session is an ordered sequence of rounds plus a cursor 0 <= cursor <= Len().
type Session struct {
	ID string

	rules   []rule.Rule
	words   []WordData
	current int
}

// newSession folds rules over each secret to build the round table.
// rules and secrets must have equal length.
func newSession(rules []rule.Rule, secrets []string) *Session {
	words := make([]WordData, len(secrets))
	for i, secret := range secrets {
		words[i] = WordData{
			Secret:   secret,
			HardWord: rule.Fold(rules[:i+1], secret),
		}
	}
	return &Session{
		ID:    randomID(),
		rules: rules,
		words: words,
	}
}

// Len returns the number of rounds.
func (s *Session) Len() int { return len(s.rules) }

// Cursor returns the index of the round being played (Len() once complete).
func (s *Session) Cursor() int { return s.current }

// IsComplete reports whether every round has been solved.
func (s *Session) IsComplete() bool { return s.current == len(s.rules) }

// Advance moves to the next round. Advancing a completed session is a caller
// error.
func (s *Session) Advance() error {
	if s.IsComplete() {
		return ErrInvalidAdvance
	}
	s.current++
	return nil
}

// CurrentRound returns the round being played, or false once the session is
// complete.
func (s *Session) CurrentRound() (RoundData, bool) {
	if s.IsComplete() {
		return RoundData{}, false
	}
	return s.round(s.current), true
}

// Rounds returns every round of the session in order, regardless of the cursor.
func (s *Session) Rounds() []RoundData {
	out := make([]RoundData, len(s.rules))
	for i := range s.rules {
		out[i] = s.round(i)
	}
	return out
}

func (s *Session) round(i int) RoundData {
	rules := make([]rule.Rule, i+1)
	copy(rules, s.rules[:i+1])
	return RoundData{
		Index: i,
		Total: len(s.rules),
		Rules: rules,
		Word:  s.words[i],
	}
}

// Guess compares a guess with the current secret after trimming and lowercasing
// it. A match advances the session.
func (s *Session) Guess(guess string) (bool, error) {
	if s.IsComplete() {
		return false, ErrInvalidAdvance
	}
	if NormalizeGuess(guess) != s.words[s.current].Secret {
		return false, nil
	}
	return true, s.Advance()
}

// NormalizeGuess trims surrounding whitespace and lowercases.
func NormalizeGuess(guess string) string {
	return strings.ToLower(strings.TrimSpace(guess))
}

// Verify recomputes every hard word from the stored rules and secrets and
// reports the first round that does not match.
func (s *Session) Verify() error {
	if len(s.rules) != len(s.words) {
		return fmt.Errorf("game: %d rules but %d words", len(s.rules), len(s.words))
	}
	for i, w := range s.words {
		if got := rule.Fold(s.rules[:i+1], w.Secret); got != w.HardWord {
			return fmt.Errorf("game: round %d hard word %q, recomputed %q", i, w.HardWord, got)
		}
	}
	return nil
}

// Instructions returns the session as curated round definitions, so a generated
// puzzle can be saved and replayed as a challenge.
func (s *Session) Instructions() []ChallengeInstruction {
	out := make([]ChallengeInstruction, len(s.rules))
	for i, r := range s.rules {
		out[i] = ChallengeInstruction{Rule: r, Word: s.words[i].Secret}
	}
	return out
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
