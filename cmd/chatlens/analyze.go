package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chatlens/chatlens/internal/archive"
	"github.com/chatlens/chatlens/internal/config"
	"github.com/chatlens/chatlens/internal/parse"
	"github.com/chatlens/chatlens/internal/report"
	"github.com/chatlens/chatlens/internal/scan"
	"github.com/chatlens/chatlens/internal/stats"
)

func analyzeCmd() *cobra.Command {
	var out string
	var toArchive bool
	var noReport bool

	cmd := &cobra.Command{
		Use:   "analyze <file|dir>...",
		Short: "Parse chat exports and compute activity, word, emoji, and sentiment statistics",
		Long: `Parse one or more WhatsApp chat exports (.txt or .pdf) and write an HTML
analysis report per export. Directories are scanned recursively for exports.
Each export is processed independently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			paths, err := expandArgs(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no .txt or .pdf exports found under %s", strings.Join(args, ", "))
			}
			if out != "" && len(paths) > 1 {
				return fmt.Errorf("--out requires a single input file, got %d", len(paths))
			}

			var db *archive.DB
			if toArchive {
				db, err = archive.Open(cfg.DBPath)
				if err != nil {
					return fmt.Errorf("open archive: %w", err)
				}
				defer db.Close()
			}

			width := 80
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}

			failures := 0
			for _, path := range paths {
				if err := analyzeOne(cfg, db, path, out, width, noReport); err != nil {
					failures++
					fmt.Fprintf(os.Stderr, "  WARN: %s: %v\n", path, err)
				}
			}
			if failures == len(paths) {
				return fmt.Errorf("all %d exports failed to analyze", failures)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Report output path (single input only; default <name>_report.html)")
	cmd.Flags().BoolVar(&toArchive, "archive", false, "Also store parsed messages in the local archive")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip writing the HTML report")

	return cmd
}

func analyzeOne(cfg *config.Config, db *archive.DB, path, out string, width int, noReport bool) error {
	c, err := parse.ParseFile(path)
	if errors.Is(err, parse.ErrNoMessages) {
		// readable file, nothing parseable: report it as such, not as a load failure
		fmt.Fprintf(os.Stderr, "%s: no messages found; is this a WhatsApp export?\n", path)
		return nil
	}
	if err != nil {
		return err
	}

	activity := stats.Activity(c)
	words := stats.Words(c, cfg.TopWords)
	emojis := stats.Emojis(c, cfg.TopEmojis)
	sentiment := stats.Sentiment(c)

	data := report.Build(filepath.Base(path), c, activity, words, emojis, sentiment)
	fmt.Print(report.Summary(data, width))

	if !noReport {
		reportPath := out
		if reportPath == "" {
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			reportPath = base + "_report.html"
		}
		if err := report.WriteHTML(reportPath, data); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportPath)
	}

	if db != nil {
		res, err := archive.Store(db, path, c)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Archived: %s\n", res)
	}
	return nil
}

// expandArgs resolves directory arguments into the exports they contain.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := scan.Exports(arg)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}
	return paths, nil
}
