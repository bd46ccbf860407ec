// internal/game/types.go
//
// Core type definitions for a puzzle play-through.
// Defines:
//   - WordData: a round's secret and its scrambled hard word.
//   - RoundData: the read-only view of the round being played.
//   - ChallengeInstruction: one curated (non-generated) round definition.
//   - Dictionary: the word source the generator draws from.

package game

import (
	"errors"

	"github.com/robalobadob/wordsarehard/internal/rule"
)

var (
	// ErrGenerationExhausted means a round had no qualifying word or no candidate
	// character. The caller may retry with further draws from the same source,
	// widen the dictionary, or give up.
	ErrGenerationExhausted = errors.New("game: generation exhausted")

	// ErrNeedRandSource is returned when Generate is called with a nil *rand.Rand.
	ErrNeedRandSource = errors.New("game: random source is required")

	// ErrEmptyDictionary is returned when the dictionary has no words.
	ErrEmptyDictionary = errors.New("game: dictionary is empty")

	// ErrMalformedInstruction is returned by FromInstructions for an empty
	// instruction list or a round without a rule or word.
	ErrMalformedInstruction = errors.New("game: malformed challenge instruction")

	// ErrInvalidAdvance is returned by Advance on a completed session.
	ErrInvalidAdvance = errors.New("game: advance past the last round")
)

// WordData pairs a round's secret with its hard word: the secret after every rule
// up to and including the round has been applied in order.
type WordData struct {
	Secret   string `json:"secret"`
	HardWord string `json:"hardWord"`
}

// RoundData is what a presentation layer needs to show one round.
type RoundData struct {
	Index int         // 0-based round index
	Total int         // number of rounds in the session
	Rules []rule.Rule // every rule revealed so far, in execution order
	Word  WordData
}

// ChallengeInstruction is an externally supplied round: its rule and secret word.
type ChallengeInstruction struct {
	Rule rule.Rule
	Word string
}

// Dictionary supplies candidate secrets. Words are lowercase ASCII letters.
type Dictionary interface {
	Words() []string
}
