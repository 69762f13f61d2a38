package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/redline/internal/config"
	"github.com/cleared-dev/redline/internal/masterdata"
	"github.com/cleared-dev/redline/internal/model"
	"github.com/cleared-dev/redline/internal/pricing"
)

func newPriceCommand() *cobra.Command {
	var (
		units, listPrice   string
		conditionsPath     string
		customer, material string
		date               string
		defaults           bool
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Run a pricing waterfall for one sales line",
		Long: `Run a pricing waterfall for one sales line and print every step.

Conditions come from a YAML list (--conditions) and, with --defaults, from the
built-in customer and material conditions. When --customer, --material or
--date is given, conditions that do not apply to that context are dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := decimal.NewFromString(units)
			if err != nil {
				return fmt.Errorf("--units: %w", err)
			}
			lp, err := decimal.NewFromString(listPrice)
			if err != nil {
				return fmt.Errorf("--list-price: %w", err)
			}

			var conds []pricing.Condition
			if conditionsPath != "" {
				specs, err := config.LoadConditions(conditionsPath)
				if err != nil {
					return err
				}
				if conds, err = masterdata.Conditions(specs); err != nil {
					return err
				}
			}
			if defaults {
				dc, err := masterdata.Default().DefaultConditions(customer, material)
				if err != nil {
					return err
				}
				conds = append(conds, dc...)
			}

			m := pricing.Match{CustomerID: customer, MaterialID: material}
			if date != "" {
				if m.Date, err = model.ParseDate(date); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}
			if m != (pricing.Match{}) {
				conds = pricing.Applicable(conds, m)
			}

			res, err := pricing.Compute(lp, u, conds)
			if err != nil {
				return err
			}
			printWaterfall(os.Stdout, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&units, "units", "1", "units on the line")
	cmd.Flags().StringVar(&listPrice, "list-price", "", "list unit price (required)")
	cmd.Flags().StringVar(&conditionsPath, "conditions", "", "YAML file of pricing conditions")
	cmd.Flags().StringVar(&customer, "customer", "", "customer id to match conditions against")
	cmd.Flags().StringVar(&material, "material", "", "material id to match conditions against")
	cmd.Flags().StringVar(&date, "date", "", "pricing date YYYY-MM-DD to match condition windows against")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "include the built-in customer and material conditions")
	_ = cmd.MarkFlagRequired("list-price")

	return cmd
}

func printWaterfall(out io.Writer, r pricing.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tLABEL\tAMOUNT\tUNIT PRICE\tLINE AMOUNT\t")
	fmt.Fprintf(w, "%s\tList price\t\t%s\t%s\t\n", pricing.CodeBasePrice, r.BaseUnitPrice.String(), money(r.BaseLineAmount))
	for _, s := range r.Steps {
		label := s.Label
		if s.Clamped {
			label += " (clamped)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", s.Code, label, money(s.Amount), s.InterimUnitPrice.Round(pricing.UnitPricePlaces).String(), money(s.InterimLineAmount))
	}
	fmt.Fprintf(w, "NET\t\t%s\t%s\t%s\t\n", money(r.TotalSteps()), r.FinalUnitPrice.String(), money(r.FinalLineAmount))
	_ = w.Flush()
}
