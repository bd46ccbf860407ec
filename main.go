// wordsarehard is the puzzle server and its terminal tools.
//
// Usage:
//
//	wordsarehard serve [--port 5175]
//	wordsarehard play [--challenge name] [--seed n] [--rounds n]
//	wordsarehard challenges [--db]
//	wordsarehard generate [--count n] [--seed n] [--rounds n] [--parallel n] [--format json|yaml]
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsarehard/internal/config"
)

// cfg is filled by the root command before any subcommand runs.
var cfg config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wordsarehard",
		Short: "Guess the word hidden behind a growing stack of letter rules",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			cfg.SetupLogging()
			if cmd.Name() != "serve" {
				log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
			}
			return nil
		},
	}
	root.AddCommand(newServeCmd(), newPlayCmd(), newChallengesCmd(), newGenerateCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
