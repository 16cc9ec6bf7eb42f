package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/internal/archive"
	"github.com/chatlens/chatlens/internal/config"
	"github.com/chatlens/chatlens/internal/search"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var sender, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across archived messages",
		Long: `Search the local message archive using FTS5. Output is TSV:
  transcriptKey, messageIndex, timestamp, sender, snippet

Archive exports first with 'chatlens archive <file>'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := archive.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			results, err := search.Search(db, search.Options{
				Query:  args[0],
				Sender: sender,
				Since:  since,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				fmt.Printf("%s\t%d\t%s%s%s\t%s\t%s\n",
					r.TranscriptKey,
					r.MessageIndex,
					sColorDim, r.Ts, sColorReset,
					r.Sender,
					colorizeSnippet(snippet),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Filter by sender name (exact match)")
	cmd.Flags().StringVar(&since, "since", "", "Filter messages since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
