// internal/rule/codec.go
//
// Conversion between Rule values and the externally tagged form used by
// challenge files:
//
//	{"Convert":   {"target": "r", "destination": "e"}}
//	{"Duplicate": {"target": "c", "count": 2}}
//	{"Remove":    "h"}
//	{"Switch":    {"target": "c", "destination": "e"}}
//
// The generic form is what encoding/json and yaml.v3 produce when decoding into
// `any`, so both file formats share one decoder.
package rule

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedRule is wrapped by every FromTagged error.
var ErrMalformedRule = errors.New("rule: malformed rule")

// Duplicate counts accepted from files.
const (
	MinDuplicateCount = 2
	MaxDuplicateCount = 9
)

// Tagged returns the generic externally tagged form of r.
func Tagged(r Rule) any {
	switch v := r.(type) {
	case Convert:
		return map[string]any{"Convert": map[string]any{
			"target":      string(v.Target),
			"destination": string(v.Destination),
		}}
	case Duplicate:
		return map[string]any{"Duplicate": map[string]any{
			"target": string(v.Target),
			"count":  v.Count,
		}}
	case Remove:
		return map[string]any{"Remove": string(v.Target)}
	case Switch:
		return map[string]any{"Switch": map[string]any{
			"target":      string(v.Target),
			"destination": string(v.Destination),
		}}
	}
	return nil
}

// FromTagged builds a Rule from its generic externally tagged form.
func FromTagged(v any) (Rule, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object with one variant tag, got %T", ErrMalformedRule, v)
	}
	if len(m) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one variant tag, got %d", ErrMalformedRule, len(m))
	}
	for tag, body := range m {
		switch tag {
		case "Convert":
			t, d, err := targetDestination(tag, body)
			if err != nil {
				return nil, err
			}
			return Convert{Target: t, Destination: d}, nil
		case "Switch":
			t, d, err := targetDestination(tag, body)
			if err != nil {
				return nil, err
			}
			return Switch{Target: t, Destination: d}, nil
		case "Duplicate":
			fields, ok := asMap(body)
			if !ok {
				return nil, fmt.Errorf("%w: Duplicate: expected object, got %T", ErrMalformedRule, body)
			}
			t, err := letterField(tag, fields, "target")
			if err != nil {
				return nil, err
			}
			n, err := countField(fields)
			if err != nil {
				return nil, err
			}
			return Duplicate{Target: t, Count: n}, nil
		case "Remove":
			t, err := letter(tag, "target", body)
			if err != nil {
				return nil, err
			}
			return Remove{Target: t}, nil
		default:
			return nil, fmt.Errorf("%w: unknown rule %q", ErrMalformedRule, tag)
		}
	}
	return nil, fmt.Errorf("%w: empty rule", ErrMalformedRule)
}

func targetDestination(tag string, body any) (rune, rune, error) {
	fields, ok := asMap(body)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s: expected object, got %T", ErrMalformedRule, tag, body)
	}
	t, err := letterField(tag, fields, "target")
	if err != nil {
		return 0, 0, err
	}
	d, err := letterField(tag, fields, "destination")
	if err != nil {
		return 0, 0, err
	}
	return t, d, nil
}

func letterField(tag string, fields map[string]any, name string) (rune, error) {
	v, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s: missing %s", ErrMalformedRule, tag, name)
	}
	return letter(tag, name, v)
}

func letter(tag, name string, v any) (rune, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: %s: %s must be a string, got %T", ErrMalformedRule, tag, name, v)
	}
	rs := []rune(s)
	if len(rs) != 1 || !IsLetter(rs[0]) {
		return 0, fmt.Errorf("%w: %s: %s must be one lowercase letter, got %q", ErrMalformedRule, tag, name, s)
	}
	return rs[0], nil
}

func countField(fields map[string]any) (int, error) {
	v, ok := fields["count"]
	if !ok {
		return 0, fmt.Errorf("%w: Duplicate: missing count", ErrMalformedRule)
	}
	var f float64
	switch c := v.(type) {
	case int:
		f = float64(c)
	case int64:
		f = float64(c)
	case uint64:
		f = float64(c)
	case float64:
		if c != math.Trunc(c) {
			return 0, fmt.Errorf("%w: Duplicate: count must be an integer, got %v", ErrMalformedRule, c)
		}
		f = c
	default:
		return 0, fmt.Errorf("%w: Duplicate: count must be a number, got %T", ErrMalformedRule, v)
	}
	if f < MinDuplicateCount || f > MaxDuplicateCount {
		return 0, fmt.Errorf("%w: Duplicate: count must be %d-%d, got %v", ErrMalformedRule, MinDuplicateCount, MaxDuplicateCount, v)
	}
	return int(f), nil
}

// asMap accepts both map[string]any (encoding/json, yaml.v3) and
// map[any]any (older YAML decoders).
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}
