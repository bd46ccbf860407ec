// internal/words/words.go
//
// Word dictionary for the puzzle generator.
//
// Responsibilities:
//   - Load the embedded default dictionary once (sync.Once).
//   - Load a dictionary from a file when WORDS_FILE is configured.
//   - Normalize entries: trim, lowercase, skip blanks and '#' comments, and drop
//     anything that is not purely a–z.
//
// The generator only needs Words(); List satisfies game.Dictionary.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordsarehard/assets"
)

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: dictionary is empty")

// List is an ordered dictionary of lowercase words.
type List []string

// Words returns the list itself.
func (l List) Words() []string { return l }

// Len returns the number of words.
func (l List) Len() int { return len(l) }

// Contains reports whether w (case-insensitive) is in the list.
func (l List) Contains(w string) bool {
	w = strings.ToLower(w)
	for _, x := range l {
		if x == w {
			return true
		}
	}
	return false
}

var (
	defaultOnce sync.Once
	defaultList List
)

// Default returns the embedded dictionary. The embedded file is part of the
// binary, so a failure here is a build defect and panics.
func Default() List {
	defaultOnce.Do(func() {
		raw, err := assets.WordList()
		if err != nil {
			panic(fmt.Sprintf("words: embedded dictionary: %v", err))
		}
		defaultList = normalize(raw)
		if len(defaultList) == 0 {
			panic("words: embedded dictionary is empty")
		}
	})
	return defaultList
}

// Load reads one word per line from path.
func Load(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Read parses one word per line from r.
func Read(r io.Reader) (List, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw = append(raw, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	l := normalize(raw)
	if len(l) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// FromEnv loads WORDS_FILE when path is set and falls back to Default.
func FromEnv(path string) (List, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// normalize lowercases, trims, skips comments and non-alphabetic entries, and
// drops duplicates while keeping first-seen order.
func normalize(lines []string) List {
	seen := make(map[string]struct{}, len(lines))
	out := make(List, 0, len(lines))
	for _, line := range lines {
		w := strings.TrimSpace(strings.ToLower(line))
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
