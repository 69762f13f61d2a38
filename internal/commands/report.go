package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/redline/internal/model"
	"github.com/cleared-dev/redline/internal/statements"
)

// reportFlags are shared by every report subcommand.
type reportFlags struct {
	src   ledgerSource
	asOf  string
	start string
	end   string
}

func (f *reportFlags) addDateFlags(cmd *cobra.Command, asOf, period bool) {
	f.src.addFlags(cmd)
	if asOf {
		cmd.Flags().StringVar(&f.asOf, "as-of", "", "report date YYYY-MM-DD (default today)")
	}
	if period {
		cmd.Flags().StringVar(&f.start, "start", "", "period start YYYY-MM-DD, exclusive (default Jan 1 of the end year)")
		cmd.Flags().StringVar(&f.end, "end", "", "period end YYYY-MM-DD, inclusive (default today)")
	}
}

func parseDateFlag(name, v string, fallback time.Time) (time.Time, error) {
	if v == "" {
		return fallback, nil
	}
	d, err := model.ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

func today() time.Time {
	return model.Day(time.Now().UTC())
}

// period resolves --start/--end, defaulting start to January 1 of end's year.
func (f *reportFlags) period() (time.Time, time.Time, error) {
	end, err := parseDateFlag("end", f.end, today())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err := parseDateFlag("start", f.start, statements.DefaultStart(end))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print financial reports",
	}
	reportCmd.AddCommand(newReportTBCommand())
	reportCmd.AddCommand(newReportISCommand())
	reportCmd.AddCommand(newReportBSCommand())
	reportCmd.AddCommand(newReportCFCommand())
	reportCmd.AddCommand(newReportExportCommand())
	return reportCmd
}

func newReportTBCommand() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "tb",
		Short: "Print the trial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := parseDateFlag("as-of", f.asOf, today())
			if err != nil {
				return err
			}
			_, l, err := f.src.open()
			if err != nil {
				return err
			}
			printTrialBalance(os.Stdout, statements.BuildTrialBalance(l, asOf))
			return nil
		},
	}
	f.addDateFlags(cmd, true, false)
	return cmd
}

func newReportISCommand() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "is",
		Short: "Print the income statement",
		Long:  "Print the income statement. With --start it covers activity after start through --end; otherwise it is cumulative through --as-of.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := f.src.open()
			if err != nil {
				return err
			}
			if f.start != "" {
				start, end, err := f.period()
				if err != nil {
					return err
				}
				is, err := statements.BuildIncomeStatementForPeriod(l, start, end)
				if err != nil {
					return err
				}
				printIncomeStatement(os.Stdout, is)
				return nil
			}
			asOf, err := parseDateFlag("as-of", f.asOf, today())
			if err != nil {
				return err
			}
			printIncomeStatement(os.Stdout, statements.BuildIncomeStatement(l, asOf))
			return nil
		},
	}
	f.addDateFlags(cmd, true, true)
	return cmd
}

func newReportBSCommand() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "bs",
		Short: "Print the balance sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := parseDateFlag("as-of", f.asOf, today())
			if err != nil {
				return err
			}
			p, l, err := f.src.open()
			if err != nil {
				return err
			}
			printBalanceSheet(os.Stdout, statements.BuildBalanceSheet(l, asOf, p.statementOptions()...))
			return nil
		},
	}
	f.addDateFlags(cmd, true, false)
	return cmd
}

func newReportCFCommand() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "cf",
		Short: "Print the direct-method cash flow statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := f.period()
			if err != nil {
				return err
			}
			p, l, err := f.src.open()
			if err != nil {
				return err
			}
			cf, err := statements.BuildCashFlowDirect(l, start, end, p.statementOptions()...)
			if err != nil {
				return err
			}
			printCashFlow(os.Stdout, cf)
			if !cf.Reconciles() {
				fmt.Fprintf(os.Stderr, "warning: cash flow does not reconcile with the cash account (difference %s)\n", cf.Difference.StringFixed(2))
			}
			return nil
		},
	}
	f.addDateFlags(cmd, false, true)
	return cmd
}

func newReportExportCommand() *cobra.Command {
	var f reportFlags
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the statement pack as xlsx or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := f.period()
			if err != nil {
				return err
			}
			p, l, err := f.src.open()
			if err != nil {
				return err
			}
			pack, err := statements.BuildPack(l, start, end, p.statementOptions()...)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "xlsx":
				data, err = statements.BuildPackXLSX(pack, p.cfg.Company.Name)
			case "pdf":
				data, err = statements.BuildPackPDF(pack, p.cfg.Company.Name)
			default:
				return fmt.Errorf("unknown export format %q (want xlsx or pdf)", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = filepath.Join("exports", fmt.Sprintf("statements-%s.%s", end.Format(model.DateFormat), format))
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("creating export directory: %w", err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}
	f.addDateFlags(cmd, false, true)
	cmd.Flags().StringVar(&format, "format", "xlsx", "export format: xlsx or pdf")
	cmd.Flags().StringVar(&out, "out", "", "output file (default exports/statements-<end>.<format>)")
	return cmd
}

func money(d decimal.Decimal) string {
	return d.StringFixed(model.MoneyPlaces)
}

func printLines(w io.Writer, lines []statements.Line) {
	for _, l := range lines {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", l.Code, l.Name, money(l.Amount))
	}
}

func printTrialBalance(out io.Writer, r statements.TrialBalanceReport) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Trial balance as of %s\t\t\t\n", r.AsOf.Format(model.DateFormat))
	printLines(w, r.Lines)
	for _, t := range r.Totals {
		fmt.Fprintf(w, "  \t%s\t%s\n", t.Class, money(t.Total))
	}
	fmt.Fprintf(w, "  \tCheck\t%s\n", money(r.Check))
	_ = w.Flush()
}

func printIncomeStatement(out io.Writer, is statements.IncomeStatement) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	if is.Start.IsZero() {
		fmt.Fprintf(w, "Income statement through %s\t\n", is.End.Format(model.DateFormat))
	} else {
		fmt.Fprintf(w, "Income statement %s to %s\t\n", is.Start.Format(model.DateFormat), is.End.Format(model.DateFormat))
	}
	for _, row := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Revenue", is.Revenue},
		{"COGS", is.COGS},
		{"Gross profit", is.GrossProfit},
		{"Operating expenses", is.OpEx},
		{"Operating income", is.OperatingIncome},
		{"Other income", is.OtherIncome},
		{"Other expense", is.OtherExpense},
		{"Interest", is.Interest},
		{"Pretax income", is.PretaxIncome},
		{"Tax", is.Tax},
		{"Net income", is.NetIncome},
	} {
		fmt.Fprintf(w, "  %s\t%s\n", row.label, money(row.amount))
	}
	_ = w.Flush()
}

func printBalanceSheet(out io.Writer, bs statements.BalanceSheet) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Balance sheet as of %s\t\t\t\n", bs.AsOf.Format(model.DateFormat))
	fmt.Fprintln(w, "Assets\t\t\t")
	printLines(w, bs.Assets)
	fmt.Fprintf(w, "  \tTotal assets\t%s\n", money(bs.TotalAssets))
	fmt.Fprintln(w, "Liabilities\t\t\t")
	printLines(w, bs.Liabilities)
	fmt.Fprintf(w, "  \tTotal liabilities\t%s\n", money(bs.TotalLiabilities))
	fmt.Fprintln(w, "Equity\t\t\t")
	printLines(w, bs.Equity)
	printLines(w, []statements.Line{bs.RetainedEarnings})
	fmt.Fprintf(w, "  \tTotal equity\t%s\n", money(bs.TotalEquity))
	fmt.Fprintf(w, "  \tTotal liabilities and equity\t%s\n", money(bs.TotalLiabilitiesAndEquity))
	_ = w.Flush()
}

func printCashFlow(out io.Writer, cf statements.CashFlowDirect) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Cash flow %s to %s\t\t\t\n", cf.Start.Format(model.DateFormat), cf.End.Format(model.DateFormat))
	for _, sec := range []struct {
		label string
		lines []statements.Line
		total decimal.Decimal
	}{
		{"Operating", cf.Operating, cf.TotalOperating},
		{"Investing", cf.Investing, cf.TotalInvesting},
		{"Financing", cf.Financing, cf.TotalFinancing},
	} {
		fmt.Fprintf(w, "%s\t\t\t\n", sec.label)
		printLines(w, sec.lines)
		fmt.Fprintf(w, "  \tNet %s\t%s\n", sec.label, money(sec.total))
	}
	fmt.Fprintf(w, "  \tNet change in cash\t%s\n", money(cf.NetChangeInCash))
	fmt.Fprintf(w, "  \tBeginning cash\t%s\n", money(cf.BeginningCash))
	fmt.Fprintf(w, "  \tEnding cash\t%s\n", money(cf.EndingCash))
	_ = w.Flush()
}
