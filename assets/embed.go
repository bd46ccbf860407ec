// Package assets embeds the default word dictionary and the built-in curated
// challenges.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt challenges.json
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded dictionary, one lowercased word per entry.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// Challenges returns the embedded challenges.json document.
func Challenges() ([]byte, error) {
	return FS.ReadFile("challenges.json")
}
