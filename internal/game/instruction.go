package game

import (
	"fmt"

	"github.com/robalobadob/wordsarehard/internal/rule"
)

// FromInstructions builds a session from curated rounds, adopting each rule and
// word verbatim. No randomness is involved.
func FromInstructions(instructions []ChallengeInstruction) (*Session, error) {
	if len(instructions) == 0 {
		return nil, fmt.Errorf("%w: no rounds", ErrMalformedInstruction)
	}
	rules := make([]rule.Rule, len(instructions))
	secrets := make([]string, len(instructions))
	for i, in := range instructions {
		if in.Rule == nil {
			return nil, fmt.Errorf("%w: round %d has no rule", ErrMalformedInstruction, i)
		}
		if in.Word == "" {
			return nil, fmt.Errorf("%w: round %d has no word", ErrMalformedInstruction, i)
		}
		rules[i] = in.Rule
		secrets[i] = in.Word
	}
	return newSession(rules, secrets), nil
}
