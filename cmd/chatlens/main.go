package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "chatlens",
		Short:   "chatlens - analyze WhatsApp chat exports: activity, emoji, word, and sentiment statistics",
		Version: version,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(archiveCmd())
	rootCmd.AddCommand(recordsCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
