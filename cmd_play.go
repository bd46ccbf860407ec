package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsarehard/internal/challenge"
	"github.com/robalobadob/wordsarehard/internal/game"
	"github.com/robalobadob/wordsarehard/internal/words"
)

func newPlayCmd() *cobra.Command {
	var flags struct {
		challenge string
		seed      int64
		rounds    int
	}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a puzzle in the terminal",
		Long:  "Play a generated puzzle, or a named challenge with --challenge.\nType 'exit' to quit or 'cheat' to reveal the current word.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sess *game.Session
			var err error
			if flags.challenge != "" {
				sess, err = challengeSession(cmd, flags.challenge)
			} else {
				seed := flags.seed
				if !cmd.Flags().Changed("seed") {
					seed = time.Now().UnixNano()
				}
				log.Debug().Int64("seed", seed).Msg("generating puzzle")
				sess, err = generateSession(rand.New(rand.NewSource(seed)), flags.rounds)
			}
			if err != nil {
				return err
			}
			return play(sess, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.challenge, "challenge", "", "play a named challenge instead of a generated puzzle")
	f.Int64Var(&flags.seed, "seed", 0, "seed for a reproducible puzzle")
	f.IntVar(&flags.rounds, "rounds", 0, "rounds to generate (default $PUZZLE_ROUNDS)")
	return cmd
}

func challengeSession(cmd *cobra.Command, name string) (*game.Session, error) {
	builtin, err := challenge.Builtin(cfg.ChallengesFile)
	if err != nil {
		return nil, err
	}
	return challenge.NewCatalog(builtin, nil).Session(cmd.Context(), name)
}

func generateSession(rng *rand.Rand, rounds int) (*game.Session, error) {
	dict, err := words.FromEnv(cfg.WordsFile)
	if err != nil {
		return nil, err
	}
	if rounds <= 0 {
		rounds = cfg.Rounds
	}
	return game.GenerateAttempts(rng, dict, rounds, cfg.GenerateAttempts, func(attempt int, err error) {
		log.Warn().Err(err).Int("attempt", attempt).Msg("generation exhausted")
	})
}

// play runs the guessing loop until the session completes, the player types
// exit, or input ends.
func play(sess *game.Session, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	firstTry, cheat := true, false

	for !sess.IsComplete() {
		rd, _ := sess.CurrentRound()

		fmt.Fprintf(out, "\n%s: execute from top to bottom\n", text.FgYellow.Sprint("Rules"))
		for i, r := range rd.Rules {
			fmt.Fprintf(out, "%s. %s\n", text.FgYellow.Sprint(i+1), r)
		}
		if cheat {
			cheat = false
			fmt.Fprintln(out, rd.Word.Secret)
		}
		fmt.Fprintf(out, "Hard Word: %s\n\n", text.FgRed.Sprint(rd.Word.HardWord))
		fmt.Fprintf(out, "What was the %s?", text.FgYellow.Sprint("original word"))
		if !firstTry {
			fmt.Fprint(out, " ('exit' to quit)")
		}
		fmt.Fprintln(out)

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			break
		}
		ok, err := sess.Guess(sc.Text())
		if err != nil {
			return err
		}
		if ok {
			firstTry = true
			continue
		}

		guess := game.NormalizeGuess(sc.Text())
		if guess == "exit" {
			break
		}
		if guess == "cheat" {
			cheat = true
		}
		firstTry = false
	}

	fmt.Fprintln(out, "Good job on winning, or giving up!")
	return nil
}
