// internal/rule/rule.go
//
// Rule model and application semantics for the puzzle engine.
// Responsibilities:
//   - Define the closed set of rules (Convert, Duplicate, Remove, Switch).
//   - Apply a rule to a word, producing a fresh output string.
//   - Expose the trigger character of a rule (Target) for the generator.
//   - Provide a structural total order (Compare) for deterministic tests.
//
// Notes:
//   - Words are restricted to lowercase ASCII letters. Every algorithm here works
//     on a []rune copy of the input, so one character is one addressable position
//     and no encoded bytes are ever rewritten in place.
//   - Characters outside the alphabet are never an error: they are neither target
//     nor destination and pass through unchanged.
package rule

import (
	"fmt"
	"strings"
)

// Kind identifies a rule variant. The numeric order is the variant order used by
// Compare.
type Kind int

const (
	KindConvert Kind = iota
	KindDuplicate
	KindRemove
	KindSwitch
)

// String returns the variant tag as it appears in challenge files.
func (k Kind) String() string {
	switch k {
	case KindConvert:
		return "Convert"
	case KindDuplicate:
		return "Duplicate"
	case KindRemove:
		return "Remove"
	case KindSwitch:
		return "Switch"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rule is one of the four deterministic string transformations. The set is sealed:
// only the types in this package implement it.
type Rule interface {
	fmt.Stringer
	kind() Kind
}

// Convert replaces every Target with Destination.
type Convert struct {
	Target      rune
	Destination rune
}

// Duplicate emits every Target Count times in place.
type Duplicate struct {
	Target rune
	Count  int
}

// Remove deletes every Target.
type Remove struct {
	Target rune
}

// Switch pairs every Target with the nearest unclaimed Destination after it and
// swaps the two characters.
type Switch struct {
	Target      rune
	Destination rune
}

func (Convert) kind() Kind   { return KindConvert }
func (Duplicate) kind() Kind { return KindDuplicate }
func (Remove) kind() Kind    { return KindRemove }
func (Switch) kind() Kind    { return KindSwitch }

func (c Convert) String() string {
	return fmt.Sprintf("Convert %c to %c", c.Target, c.Destination)
}

func (d Duplicate) String() string {
	return fmt.Sprintf("Duplicate %c %d times", d.Target, d.Count)
}

func (r Remove) String() string {
	return fmt.Sprintf("Delete %c", r.Target)
}

func (s Switch) String() string {
	return fmt.Sprintf("%c switches position with the next %c", s.Target, s.Destination)
}

// KindOf reports the variant of r.
func KindOf(r Rule) Kind { return r.kind() }

// Target returns the trigger character of r.
func Target(r Rule) rune {
	switch v := r.(type) {
	case Convert:
		return v.Target
	case Duplicate:
		return v.Target
	case Remove:
		return v.Target
	case Switch:
		return v.Target
	}
	return 0
}

// Apply runs r over input and returns the transformed word. It never fails.
func Apply(r Rule, input string) string {
	switch v := r.(type) {
	case Convert:
		return applyConvert(v, input)
	case Duplicate:
		return applyDuplicate(v, input)
	case Remove:
		return applyRemove(v, input)
	case Switch:
		return applySwitch(v, input)
	}
	return input
}

// Fold applies rules in order to word. This is how a round's hard word is built
// from its secret.
func Fold(rules []Rule, word string) string {
	out := word
	for _, r := range rules {
		out = Apply(r, out)
	}
	return out
}

func applyConvert(c Convert, input string) string {
	if c.Target == c.Destination {
		return input
	}
	out := []rune(input)
	for i, ch := range out {
		if ch == c.Target {
			out[i] = c.Destination
		}
	}
	return string(out)
}

func applyDuplicate(d Duplicate, input string) string {
	count := d.Count
	if count < 1 {
		count = 1
	}
	var b strings.Builder
	b.Grow(len(input))
	for _, ch := range input {
		n := 1
		if ch == d.Target {
			n = count
		}
		for i := 0; i < n; i++ {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func applyRemove(r Remove, input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, ch := range input {
		if ch != r.Target {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// applySwitch scans left to right keeping a stack of open target positions.
// A destination closes the most recently opened target and the two positions
// trade characters; a destination with nothing open, and any target still open
// at the end, stays where it is.
func applySwitch(s Switch, input string) string {
	in := []rune(input)
	out := make([]rune, len(in))
	copy(out, in)

	var open []int
	for i, ch := range in {
		switch ch {
		case s.Target:
			open = append(open, i)
		case s.Destination:
			n := len(open)
			if n == 0 {
				continue
			}
			j := open[n-1]
			open = open[:n-1]
			out[j] = s.Destination
			out[i] = s.Target
		}
	}
	return string(out)
}

// Compare orders rules by variant, then by fields in declaration order. It returns
// -1, 0 or +1.
func Compare(a, b Rule) int {
	if c := cmpInt(int(a.kind()), int(b.kind())); c != 0 {
		return c
	}
	switch x := a.(type) {
	case Convert:
		y := b.(Convert)
		return cmpPair(int(x.Target), int(y.Target), int(x.Destination), int(y.Destination))
	case Duplicate:
		y := b.(Duplicate)
		return cmpPair(int(x.Target), int(y.Target), x.Count, y.Count)
	case Remove:
		y := b.(Remove)
		return cmpInt(int(x.Target), int(y.Target))
	case Switch:
		y := b.(Switch)
		return cmpPair(int(x.Target), int(y.Target), int(x.Destination), int(y.Destination))
	}
	return 0
}

func cmpPair(a1, b1, a2, b2 int) int {
	if c := cmpInt(a1, b1); c != 0 {
		return c
	}
	return cmpInt(a2, b2)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// IsLetter reports whether ch is in the rule alphabet (lowercase ASCII).
func IsLetter(ch rune) bool { return ch >= 'a' && ch <= 'z' }

// Alphabet is the set destinations are drawn from during generation.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"
