// Package main provides the entry point for the linkmap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for linkmap.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkmap",
		Short: "Map the link graph of a website",
		Long: `linkmap crawls the pages reachable from a seed URL within that URL's host
and records the link graph it finds. Discovered URLs can be printed as a
sorted list, rendered as a JSON or Markdown report, or persisted into a
SQLite database for re-crawl scheduling.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewNextCmd())
	cmd.AddCommand(NewUpdateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
