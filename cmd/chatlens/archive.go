package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/internal/archive"
	"github.com/chatlens/chatlens/internal/config"
	"github.com/chatlens/chatlens/internal/parse"
)

func archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <file|dir>...",
		Short: "Parse chat exports and store the messages in the local archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := archive.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer db.Close()

			paths, err := expandArgs(args)
			if err != nil {
				return err
			}

			stored, skipped := 0, 0
			for _, path := range paths {
				c, err := parse.ParseFile(path)
				if errors.Is(err, parse.ErrNoMessages) {
					skipped++
					fmt.Fprintf(os.Stderr, "  skip %s: no messages\n", path)
					continue
				}
				if err != nil {
					fmt.Fprintf(os.Stderr, "  WARN: parse %s: %v\n", path, err)
					continue
				}
				res, err := archive.Store(db, path, c)
				if err != nil {
					fmt.Fprintf(os.Stderr, "  WARN: store %s: %v\n", path, err)
					continue
				}
				stored++
				fmt.Fprintf(os.Stderr, "  %s: %s\n", path, res)
			}
			fmt.Fprintf(os.Stderr, "Done. stored=%d skipped=%d\n", stored, skipped)
			return nil
		},
	}
}
