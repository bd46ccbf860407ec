// internal/challenge/catalog.go
//
// Catalog: every challenge a player can start.
// Built-in challenges come from the embedded assets/challenges.json, optionally
// overlaid by a file on disk (CHALLENGES_FILE). User-authored challenges live in
// the SQL Store. Built-in names always win; authors cannot shadow them.

package challenge

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsarehard/assets"
	"github.com/robalobadob/wordsarehard/internal/game"
)

// Builtin decodes the embedded challenges and merges overlayPath on top when it
// is set. Sets in the overlay replace embedded sets of the same name.
func Builtin(overlayPath string) (Set, error) {
	data, err := assets.Challenges()
	if err != nil {
		return nil, err
	}
	set, err := Decode(data, JSON)
	if err != nil {
		return nil, fmt.Errorf("embedded challenges: %w", err)
	}
	if overlayPath == "" {
		return set, nil
	}

	raw, err := os.ReadFile(overlayPath)
	if err != nil {
		return nil, err
	}
	overlay, err := Decode(raw, FormatFor(overlayPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", overlayPath, err)
	}
	for name, rounds := range overlay {
		set[name] = rounds
	}
	log.Info().Str("file", overlayPath).Int("challenges", len(overlay)).Msg("loaded challenge overlay")
	return set, nil
}

// Catalog looks challenges up across the built-in set and the store.
type Catalog struct {
	builtin Set
	store   *Store // nil when running without a database
}

func NewCatalog(builtin Set, store *Store) *Catalog {
	return &Catalog{builtin: builtin, store: store}
}

// Get returns the rounds of the named challenge.
func (c *Catalog) Get(ctx context.Context, name string) ([]game.ChallengeInstruction, error) {
	if rounds, ok := c.builtin[name]; ok {
		return rounds, nil
	}
	if c.store == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return c.store.Get(ctx, name)
}

// Session builds a fresh play-through of the named challenge.
func (c *Catalog) Session(ctx context.Context, name string) (*game.Session, error) {
	rounds, err := c.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return game.FromInstructions(rounds)
}

// List returns every challenge, tutorials first, then by name.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	out := make([]Entry, 0, len(c.builtin))
	for _, name := range c.builtin.Names() {
		out = append(out, Entry{
			Name:     name,
			Rounds:   len(c.builtin[name]),
			Tutorial: IsTutorial(name),
			Builtin:  true,
		})
	}
	if c.store != nil {
		stored, err := c.store.List(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, stored...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tutorial != out[j].Tutorial {
			return out[i].Tutorial
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Add validates and stores a user-authored challenge.
func (c *Catalog) Add(ctx context.Context, name, authorID string, rounds []game.ChallengeInstruction) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, ok := c.builtin[name]; ok {
		return fmt.Errorf("%w: %q", ErrExists, name)
	}
	if c.store == nil {
		return fmt.Errorf("challenge: no store configured")
	}
	if _, err := game.FromInstructions(rounds); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedChallenge, err)
	}
	return c.store.Insert(ctx, name, authorID, rounds)
}
