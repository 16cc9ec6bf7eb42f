package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/internal/parse"
)

func recordsCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "records <file>",
		Short: "Emit parsed messages as plain JSON records",
		Long: `Parse a chat export and print one JSON record per message, with the full
field set (timestamp, sender, message, derived time fields, positions, word
and character counts, emoji flag, message type). Intended for feeding
downstream storage or audit tooling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parse.ParseFile(args[0])
			if err != nil {
				return err
			}

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(c.Records()); err != nil {
				return fmt.Errorf("encode records: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write records to a file instead of stdout")

	return cmd
}
