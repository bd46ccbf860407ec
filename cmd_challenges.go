package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsarehard/internal/challenge"
	"github.com/robalobadob/wordsarehard/internal/db"
)

func newChallengesCmd() *cobra.Command {
	var withDB bool
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "List the tutorials and challenges that can be played",
		RunE: func(cmd *cobra.Command, _ []string) error {
			builtin, err := challenge.Builtin(cfg.ChallengesFile)
			if err != nil {
				return err
			}
			var st *challenge.Store
			if withDB {
				conn, err := db.Open(cmd.Context(), cfg.DBPath)
				if err != nil {
					return fmt.Errorf("open db: %w", err)
				}
				defer conn.Close()
				st = challenge.NewStore(conn)
			}
			entries, err := challenge.NewCatalog(builtin, st).List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderChallenges(entries))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withDB, "db", false, "include challenges authored on the server ($DB_PATH)")
	return cmd
}

func renderChallenges(entries []challenge.Entry) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Rounds", "Kind", "Source"})
	for _, e := range entries {
		kind := "challenge"
		if e.Tutorial {
			kind = "tutorial"
		}
		source := "built-in"
		if !e.Builtin {
			source = "user " + e.AuthorID
		}
		t.AppendRow(table.Row{e.Name, e.Rounds, kind, source})
	}
	t.AppendFooter(table.Row{"", len(entries), "", ""})
	return t.Render()
}
