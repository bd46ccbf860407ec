package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsarehard/internal/challenge"
	"github.com/robalobadob/wordsarehard/internal/db"
	"github.com/robalobadob/wordsarehard/internal/httpserver"
	"github.com/robalobadob/wordsarehard/internal/store"
	"github.com/robalobadob/wordsarehard/internal/words"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP puzzle API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				cfg.Port = port
			}
			return runServe(cmd)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT)")
	return cmd
}

func runServe(cmd *cobra.Command) error {
	dict, err := words.FromEnv(cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	builtin, err := challenge.Builtin(cfg.ChallengesFile)
	if err != nil {
		return fmt.Errorf("load challenges: %w", err)
	}

	conn, err := db.Open(cmd.Context(), cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer conn.Close()

	catalog := challenge.NewCatalog(builtin, challenge.NewStore(conn))
	srv := httpserver.New(cfg, store.NewMemoryStore(), conn, dict, catalog)

	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Int("words", dict.Len()).
		Int("challenges", len(builtin)).
		Msg("starting wordsarehard")
	return srv.Start(":" + cfg.Port)
}
