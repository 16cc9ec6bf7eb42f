package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/internal/archive"
	"github.com/chatlens/chatlens/internal/config"
	"github.com/chatlens/chatlens/internal/scan"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify export root, archive DB, FTS5, and data integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Export Root ===")
			checkDir("Exports", cfg.ExportRoot)

			fmt.Println("\n=== File Scan ===")
			files, err := scan.Exports(cfg.ExportRoot)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fmt.Printf("  Exports found: %d\n", len(files))
			}

			fmt.Println("\n=== Archive ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'chatlens archive' first)")
				return nil
			}

			db, err := archive.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer db.Close()

			transcriptCount, err := db.TranscriptCount()
			if err != nil {
				return fmt.Errorf("count transcripts: %w", err)
			}
			messageCount, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}
			fmt.Printf("  Transcripts: %d\n", transcriptCount)
			fmt.Printf("  Messages:    %d\n", messageCount)

			fmt.Println("\n=== FTS5 ===")
			var ftsCount int
			err = db.Raw().QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&ftsCount)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == messageCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", messageCount, ftsCount)
				}
			}

			fmt.Println("\n=== Integrity ===")
			findings, err := archive.Verify(db)
			if err != nil {
				return fmt.Errorf("verify: %w", err)
			}
			if len(findings) == 0 {
				fmt.Println("  All transcripts verified OK")
			}
			for _, f := range findings {
				fmt.Printf("  %s: %s (%s)\n", f.TranscriptKey, f.Issue, f.Detail)
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
