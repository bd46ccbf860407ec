// internal/challenge/codec.go
//
// Curated challenge documents: a mapping from challenge name to an ordered list
// of rounds, each {rule, word}.
//
//	{"tutorial": [{"rule": {"Convert": {"target": "r", "destination": "e"}}, "word": "arbitrary"}]}
//
// JSON is the native format; YAML files with the same shape are accepted too.
// Decoding validates everything up front and either returns the whole Set or an
// error wrapping ErrMalformedChallenge. No partial results.

package challenge

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordsarehard/internal/game"
	"github.com/robalobadob/wordsarehard/internal/rule"
)

var (
	// ErrMalformedChallenge is wrapped by every decoding error.
	ErrMalformedChallenge = errors.New("challenge: malformed challenge data")

	// ErrNotFound is returned for an unknown challenge name.
	ErrNotFound = errors.New("challenge: not found")

	// ErrExists is returned when adding a challenge whose name is taken.
	ErrExists = errors.New("challenge: name already taken")
)

// Size limits on a single challenge.
const (
	MaxRounds  = 32
	MaxWordLen = 24
)

// Format selects the document encoding.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatFor picks the format from a file extension (.yaml/.yml, else JSON).
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Set maps challenge names to their rounds.
type Set map[string][]game.ChallengeInstruction

// Names returns the challenge names, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Decode parses and validates a challenge document.
func Decode(data []byte, f Format) (Set, error) {
	doc, err := unmarshal(data, f)
	if err != nil {
		return nil, err
	}
	top, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level must map names to rounds, got %T", ErrMalformedChallenge, doc)
	}
	set := make(Set, len(top))
	for name, v := range top {
		rounds, err := decodeRounds(name, v)
		if err != nil {
			return nil, err
		}
		set[name] = rounds
	}
	return set, nil
}

// DecodeRounds parses and validates a JSON array of rounds for one challenge.
func DecodeRounds(name string, data []byte) ([]game.ChallengeInstruction, error) {
	doc, err := unmarshal(data, JSON)
	if err != nil {
		return nil, err
	}
	return decodeRounds(name, doc)
}

func unmarshal(data []byte, f Format) (any, error) {
	var doc any
	var err error
	switch f {
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedChallenge, err)
	}
	return doc, nil
}

func decodeRounds(name string, v any) ([]game.ChallengeInstruction, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: challenge %q: rounds must be a list, got %T", ErrMalformedChallenge, name, v)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: challenge %q has no rounds", ErrMalformedChallenge, name)
	}
	if len(list) > MaxRounds {
		return nil, fmt.Errorf("%w: challenge %q has %d rounds, at most %d allowed", ErrMalformedChallenge, name, len(list), MaxRounds)
	}

	out := make([]game.ChallengeInstruction, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: challenge %q round %d: expected object, got %T", ErrMalformedChallenge, name, i, item)
		}
		rv, ok := m["rule"]
		if !ok {
			return nil, fmt.Errorf("%w: challenge %q round %d: missing rule", ErrMalformedChallenge, name, i)
		}
		r, err := rule.FromTagged(rv)
		if err != nil {
			return nil, fmt.Errorf("%w: challenge %q round %d: %w", ErrMalformedChallenge, name, i, err)
		}
		wv, ok := m["word"]
		if !ok {
			return nil, fmt.Errorf("%w: challenge %q round %d: missing word", ErrMalformedChallenge, name, i)
		}
		word, ok := wv.(string)
		if !ok {
			return nil, fmt.Errorf("%w: challenge %q round %d: word must be a string, got %T", ErrMalformedChallenge, name, i, wv)
		}
		if !isWord(word) {
			return nil, fmt.Errorf("%w: challenge %q round %d: word %q must be lowercase letters", ErrMalformedChallenge, name, i, word)
		}
		if len(word) > MaxWordLen {
			return nil, fmt.Errorf("%w: challenge %q round %d: word is %d letters, at most %d allowed", ErrMalformedChallenge, name, i, len(word), MaxWordLen)
		}
		out[i] = game.ChallengeInstruction{Rule: r, Word: word}
	}
	return out, nil
}

// Encode writes a challenge document. Names are emitted in sorted order.
func Encode(set Set, f Format) ([]byte, error) {
	doc := make(map[string]any, len(set))
	for name, rounds := range set {
		doc[name] = encodeRounds(rounds)
	}
	if f == YAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func encodeRounds(rounds []game.ChallengeInstruction) []any {
	out := make([]any, len(rounds))
	for i, in := range rounds {
		out[i] = map[string]any{
			"rule": rule.Tagged(in.Rule),
			"word": in.Word,
		}
	}
	return out
}

// ValidateName accepts 1–48 characters of lowercase letters, digits and '-'.
func ValidateName(name string) error {
	if name == "" || len(name) > 48 {
		return fmt.Errorf("%w: challenge name must be 1–48 characters, got %q", ErrMalformedChallenge, name)
	}
	for _, r := range name {
		if !(r == '-' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return fmt.Errorf("%w: challenge name %q: lowercase letters, digits and '-' only", ErrMalformedChallenge, name)
		}
	}
	return nil
}

// IsTutorial reports whether a challenge is listed among the tutorials.
func IsTutorial(name string) bool { return strings.Contains(name, "tutorial") }

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !rule.IsLetter(r) {
			return false
		}
	}
	return true
}
