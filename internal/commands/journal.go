package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/redline/internal/config"
	"github.com/cleared-dev/redline/internal/interchange"
	"github.com/cleared-dev/redline/internal/ledger"
)

func newJournalCommand() *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Export and import journals",
	}
	journalCmd.AddCommand(newJournalExportCommand())
	journalCmd.AddCommand(newJournalImportCommand())
	return journalCmd
}

func newJournalExportCommand() *cobra.Command {
	var src ledgerSource
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded journal as json or csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := src.open()
			if err != nil {
				return err
			}
			if out == "" {
				return interchange.DefaultRegistry().Export(os.Stdout, l, format)
			}
			return writeJournal(out, l, format)
		},
	}
	src.addFlags(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func newJournalImportCommand() *cobra.Command {
	var configPath, format, out, outFormat string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate a journal file, optionally converting it",
		Long: `Validate a journal file by loading it into a ledger against the chart of
accounts. With --out the validated journal is written back out, so a CSV
journal can be converted to JSON and the reverse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			p, err := loadProject(configPath)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer f.Close()

			l := ledger.New(p.chart)
			n, err := interchange.DefaultRegistry().Import(f, l, journalFormat(path, format))
			if err != nil {
				return err
			}
			fmt.Printf("Validated %d entries from %s\n", n, path)

			if out == "" {
				return nil
			}
			if err := writeJournal(out, l, journalFormat(out, outFormat)); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", config.FileName, "path to redline.yaml")
	cmd.Flags().StringVar(&format, "format", "", "input format: json or csv (default from extension)")
	cmd.Flags().StringVar(&out, "out", "", "write the validated journal to this file")
	cmd.Flags().StringVar(&outFormat, "out-format", "", "output format (default from --out extension)")
	return cmd
}

func writeJournal(path string, l *ledger.Ledger, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return interchange.DefaultRegistry().Export(f, l, format)
}
