package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/config"
	"github.com/cleared-dev/redline/internal/masterdata"
	"github.com/cleared-dev/redline/internal/seed"
)

// conditionsFile is the sample pricing conditions written by init.
var conditionsFile = filepath.Join("pricing", "conditions.yaml")

func newInitCommand() *cobra.Command {
	var name string
	var seedName string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new redline project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, seedName)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&seedName, "seed", seed.None, "journal seed loaded at startup")

	return cmd
}

func runInit(dir, name, seedName string) error {
	// Create directory structure.
	for _, d := range []string{"accounts", "pricing", "exports"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write redline.yaml.
	cfg := config.Default(name)
	cfg.Ledger.Seed = seedName
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write chart of accounts.
	if err := accounts.Default().Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	// Write sample pricing conditions from the default customer and material.
	catalog := masterdata.Default()
	var specs []masterdata.ConditionSpec
	specs = append(specs, catalog.CustomerConditions()["CUST-RETAIL"]...)
	specs = append(specs, catalog.MaterialConditions()["ENG-V6"]...)
	data, err := yaml.Marshal(specs)
	if err != nil {
		return fmt.Errorf("marshaling conditions: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, conditionsFile), data, 0o644); err != nil {
		return fmt.Errorf("writing conditions: %w", err)
	}

	// Write .gitignore.
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("exports/\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Initialized redline project at %s\n", dir)
	return nil
}
