// internal/game/generate.go
//
// Procedural puzzle generation.
// Each round picks a secret word, then a rule whose trigger character comes from
// that word. Difficulty ramps up by round index:
//
//	round  word pool                         character pool         rule
//	0-1    whole dictionary                  first + last letter    Convert
//	2      whole dictionary                  letters not yet used   Convert
//	3      whole dictionary                  letters not yet used   weighted
//	4      whole dictionary                  letters not yet used   Duplicate|Remove|Switch
//	5+     words sharing a used letter       letters not yet used   weighted
//
// "weighted" is 70% Convert, 20% Duplicate, 10% Remove. Switch only ever appears
// as the round-4 surprise or through curated challenges.
//
// The *rand.Rand is owned by the call, so sessions can be generated concurrently
// and a seed reproduces a puzzle exactly.

package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/robalobadob/wordsarehard/internal/rule"
)

// DefaultRounds is the length of a generated puzzle.
const DefaultRounds = 8

const (
	boundaryRounds = 2 // rounds whose trigger is the word's first or last letter
	convertRounds  = 3 // rounds that always Convert
	surpriseRound  = 4 // round that never Converts
	freeWordRounds = 5 // rounds drawing from the whole dictionary

	minDuplicate = 2
	maxDuplicate = 5 // exclusive
)

// Generate builds a puzzle of the given number of rounds (DefaultRounds when
// rounds <= 0). It fails with ErrGenerationExhausted when a round has no
// qualifying word or no candidate character; rng has then been advanced and a
// retry with the same source draws differently.
func Generate(rng *rand.Rand, dict Dictionary, rounds int) (*Session, error) {
	if rng == nil {
		return nil, ErrNeedRandSource
	}
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	all := dict.Words()
	if len(all) == 0 {
		return nil, ErrEmptyDictionary
	}

	rules := make([]rule.Rule, 0, rounds)
	secrets := make([]string, 0, rounds)
	used := make(map[rune]struct{}, rounds)

	for i := 0; i < rounds; i++ {
		word, err := pickWord(rng, all, i, used)
		if err != nil {
			return nil, err
		}
		pool := candidatePool(word, i, used)
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: round %d: every letter of %q is already a target", ErrGenerationExhausted, i, word)
		}
		r := pickRule(rng, i, pool)

		rules = append(rules, r)
		secrets = append(secrets, word)
		used[rule.Target(r)] = struct{}{}
	}
	return newSession(rules, secrets), nil
}

// GenerateAttempts calls Generate up to attempts times with the same rng,
// retrying only on ErrGenerationExhausted. onExhausted, when non-nil, sees every
// failed attempt.
func GenerateAttempts(rng *rand.Rand, dict Dictionary, rounds, attempts int, onExhausted func(attempt int, err error)) (*Session, error) {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var s *Session
		s, err = Generate(rng, dict, rounds)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrGenerationExhausted) {
			return nil, err
		}
		if onExhausted != nil {
			onExhausted(attempt, err)
		}
	}
	return nil, err
}

// pickWord draws a secret. From round freeWordRounds on, only words containing at
// least one already-used target qualify.
func pickWord(rng *rand.Rand, all []string, round int, used map[rune]struct{}) (string, error) {
	if round < freeWordRounds {
		return all[rng.Intn(len(all))], nil
	}
	var candidates []string
	for _, w := range all {
		if containsAny(w, used) {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: round %d: no word contains a used target", ErrGenerationExhausted, round)
	}
	return candidates[rng.Intn(len(candidates))], nil
}

// candidatePool lists the characters a rule's target may be drawn from.
// Repeated letters stay repeated, which weights the draw toward them.
func candidatePool(word string, round int, used map[rune]struct{}) []rune {
	letters := []rune(word)
	if len(letters) == 0 {
		return nil
	}
	if round < boundaryRounds {
		return []rune{letters[0], letters[len(letters)-1]}
	}
	pool := make([]rune, 0, len(letters))
	for _, ch := range letters {
		if _, ok := used[ch]; !ok {
			pool = append(pool, ch)
		}
	}
	return pool
}

func pickRule(rng *rand.Rand, round int, pool []rune) rule.Rule {
	if round < convertRounds {
		return randomConvert(rng, pool)
	}

	if round == surpriseRound {
		target := choose(rng, pool)
		switch rng.Intn(3) {
		case 0:
			return rule.Duplicate{Target: target, Count: duplicateCount(rng)}
		case 1:
			return rule.Remove{Target: target}
		default:
			return rule.Switch{Target: target, Destination: choose(rng, pool)}
		}
	}

	switch n := rng.Intn(10); {
	case n < 7:
		return randomConvert(rng, pool)
	case n < 9:
		return rule.Duplicate{Target: choose(rng, pool), Count: duplicateCount(rng)}
	default:
		return rule.Remove{Target: choose(rng, pool)}
	}
}

// randomConvert may produce an identity rule (target == destination); that is
// accepted.
func randomConvert(rng *rand.Rand, pool []rune) rule.Rule {
	return rule.Convert{
		Target:      choose(rng, pool),
		Destination: rune(rule.Alphabet[rng.Intn(len(rule.Alphabet))]),
	}
}

func duplicateCount(rng *rand.Rand) int {
	return minDuplicate + rng.Intn(maxDuplicate-minDuplicate)
}

func choose(rng *rand.Rand, pool []rune) rune {
	return pool[rng.Intn(len(pool))]
}

func containsAny(word string, set map[rune]struct{}) bool {
	for _, ch := range word {
		if _, ok := set[ch]; ok {
			return true
		}
	}
	return false
}
