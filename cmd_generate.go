package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordsarehard/internal/challenge"
	"github.com/robalobadob/wordsarehard/internal/game"
)

type generateFlags struct {
	count    int
	seed     int64
	rounds   int
	parallel int
	format   string
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate puzzles and print them as a challenge file",
		Long: "Generate --count puzzles, puzzle i seeded with --seed+i, and print them in the\n" +
			"challenge format so they can be loaded back through CHALLENGES_FILE.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				flags.seed = time.Now().UnixNano()
			}
			return runGenerate(cmd, flags)
		},
	}
	f := cmd.Flags()
	f.IntVar(&flags.count, "count", 1, "number of puzzles")
	f.Int64Var(&flags.seed, "seed", 0, "base seed")
	f.IntVar(&flags.rounds, "rounds", 0, "rounds per puzzle (default $PUZZLE_ROUNDS)")
	f.IntVar(&flags.parallel, "parallel", 4, "puzzles generated at once")
	f.StringVar(&flags.format, "format", "json", "output format: json or yaml")
	return cmd
}

func runGenerate(cmd *cobra.Command, flags generateFlags) error {
	var format challenge.Format
	switch flags.format {
	case "json":
		format = challenge.JSON
	case "yaml", "yml":
		format = challenge.YAML
	default:
		return fmt.Errorf("unknown format %q", flags.format)
	}
	if flags.count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	if flags.parallel < 1 {
		flags.parallel = 1
	}

	set := make(challenge.Set, flags.count)
	names := make([]string, flags.count)
	results := make([][]game.ChallengeInstruction, flags.count)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(flags.parallel)
	for i := 0; i < flags.count; i++ {
		seed := flags.seed + int64(i)
		names[i] = fmt.Sprintf("generated-%d", seed)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sess, err := generateSession(rand.New(rand.NewSource(seed)), flags.rounds)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = sess.Instructions()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, rounds := range results {
		set[names[i]] = rounds
	}

	data, err := challenge.Encode(set, format)
	if err != nil {
		return err
	}
	log.Info().Int("puzzles", len(set)).Int64("seed", flags.seed).Msg("generated")
	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return err
}
