package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/redline/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "redline",
		Short:   "Double-entry ledger, financial statements and pricing waterfalls",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newPriceCommand())
	rootCmd.AddCommand(newJournalCommand())

	return rootCmd
}
