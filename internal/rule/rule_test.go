package rule_test

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsarehard/internal/rule"
)

func TestConvert(t *testing.T) {
	r := rule.Convert{Target: 'b', Destination: 'a'}

	assert.Equal(t, "aoa", rule.Apply(r, "bob"))
	assert.Equal(t, "aaa", rule.Apply(r, "bbb"))
	assert.Equal(t, "aoa", rule.Apply(rule.Convert{Target: 'x', Destination: 'y'}, "aoa"))
	assert.Equal(t, "bob", rule.Apply(rule.Convert{Target: 'b', Destination: 'b'}, "bob"))
}

func TestDuplicate(t *testing.T) {
	r := rule.Duplicate{Target: 'b', Count: 3}

	assert.Equal(t, "bbbobbb", rule.Apply(r, "bob"))
	assert.Equal(t, "bbbbbbbbb", rule.Apply(r, "bbb"))
	assert.Equal(t, "aoa", rule.Apply(rule.Duplicate{Target: 'x', Count: 3}, "aoa"))
	assert.Equal(t, "bob", rule.Apply(rule.Duplicate{Target: 'b', Count: 1}, "bob"))
	assert.Equal(t, "bob", rule.Apply(rule.Duplicate{Target: 'b', Count: 0}, "bob"))
}

func TestRemove(t *testing.T) {
	r := rule.Remove{Target: 'b'}

	assert.Equal(t, "o", rule.Apply(r, "bob"))
	assert.Equal(t, "", rule.Apply(r, "bbb"))
	assert.Equal(t, "aoa", rule.Apply(rule.Remove{Target: 'x'}, "aoa"))
}

func TestSwitch(t *testing.T) {
	r := rule.Switch{Target: 'a', Destination: 'b'}

	cases := []struct{ in, want string }{
		{"abba", "baba"},
		{"aobobabrt", "boaobbart"},
		{"bca", "bca"},
		{"", ""},
		{"aaa", "aaa"},
		{"bbb", "bbb"},
		{"aabb", "bbaa"},
		{"aab", "aba"}, // the latest open target takes the destination
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, rule.Apply(r, tc.in), "Switch(a,b) on %q", tc.in)
	}

	// targets pair with destinations that are not adjacent
	assert.Equal(t, "dllrbeoos", rule.Apply(rule.Switch{Target: 'o', Destination: 'l'}, "doorbells"))
	assert.Equal(t, "abba", rule.Apply(rule.Switch{Target: 'a', Destination: 'a'}, "abba"))
	assert.Equal(t, "clasfisication", rule.Apply(rule.Switch{Target: 's', Destination: 'f'}, "classification"))
}

func TestSwitchOutOfAlphabetPassesThrough(t *testing.T) {
	r := rule.Switch{Target: 'a', Destination: 'b'}
	assert.Equal(t, "b-é-a", rule.Apply(r, "a-é-b"))
}

func TestSwitchPreservesMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := rng.Intn(12)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteByte("abcd"[rng.Intn(4)])
		}
		in := b.String()
		r := rule.Switch{Target: rune("abcd"[rng.Intn(4)]), Destination: rune("abcd"[rng.Intn(4)])}

		out := rule.Apply(r, in)
		require.Equal(t, sorted(in), sorted(out), "%v on %q gave %q", r, in, out)
	}
}

func TestTarget(t *testing.T) {
	assert.Equal(t, 'r', rule.Target(rule.Convert{Target: 'r', Destination: 'e'}))
	assert.Equal(t, 'c', rule.Target(rule.Duplicate{Target: 'c', Count: 2}))
	assert.Equal(t, 'h', rule.Target(rule.Remove{Target: 'h'}))
	assert.Equal(t, 'c', rule.Target(rule.Switch{Target: 'c', Destination: 'e'}))
}

func TestFold(t *testing.T) {
	rules := []rule.Rule{
		rule.Convert{Target: 'r', Destination: 'e'},
		rule.Convert{Target: 'i', Destination: 't'},
	}
	assert.Equal(t, "waeeanttes", rule.Fold(rules, "warranties"))
	assert.Equal(t, "warranties", rule.Fold(nil, "warranties"))
}

func TestCompare(t *testing.T) {
	rules := []rule.Rule{
		rule.Switch{Target: 'a', Destination: 'b'},
		rule.Remove{Target: 'z'},
		rule.Duplicate{Target: 'a', Count: 3},
		rule.Convert{Target: 'b', Destination: 'a'},
		rule.Duplicate{Target: 'a', Count: 2},
		rule.Convert{Target: 'a', Destination: 'z'},
		rule.Remove{Target: 'a'},
	}
	sort.Slice(rules, func(i, j int) bool { return rule.Compare(rules[i], rules[j]) < 0 })

	want := []string{
		"Convert a to z",
		"Convert b to a",
		"Duplicate a 2 times",
		"Duplicate a 3 times",
		"Delete a",
		"Delete z",
		"a switches position with the next b",
	}
	got := make([]string, len(rules))
	for i, r := range rules {
		got[i] = r.String()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sorted rules mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 0, rule.Compare(rule.Remove{Target: 'q'}, rule.Remove{Target: 'q'}))
	assert.Equal(t, 1, rule.Compare(rule.Switch{Target: 'a'}, rule.Convert{Target: 'z'}))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, rule.KindConvert, rule.KindOf(rule.Convert{}))
	assert.Equal(t, rule.KindDuplicate, rule.KindOf(rule.Duplicate{}))
	assert.Equal(t, rule.KindRemove, rule.KindOf(rule.Remove{}))
	assert.Equal(t, rule.KindSwitch, rule.KindOf(rule.Switch{}))
	assert.Equal(t, "Switch", rule.KindSwitch.String())
}

func sorted(s string) string {
	rs := []rune(s)
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return string(rs)
}
