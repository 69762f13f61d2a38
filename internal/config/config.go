package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/masterdata"
	"github.com/cleared-dev/redline/internal/model"
	"github.com/cleared-dev/redline/internal/seed"
)

// FileName is the conventional config file name in a project directory.
const FileName = "redline.yaml"

// Config represents the top-level redline.yaml configuration.
type Config struct {
	Company CompanyConfig `yaml:"company"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Server  ServerConfig  `yaml:"server"`
}

// CompanyConfig names the reporting entity; it heads exported statements.
type CompanyConfig struct {
	Name string `yaml:"name"`
}

// LedgerConfig selects the designated accounts and the seed loaded at startup.
type LedgerConfig struct {
	CashAccount             string `yaml:"cash_account"`
	RetainedEarningsAccount string `yaml:"retained_earnings_account"`
	Seed                    string `yaml:"seed"`
	BaselineDate            string `yaml:"baseline_date,omitempty"` // YYYY-MM-DD
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	Metrics        bool     `yaml:"metrics"`
}

// Load reads a redline.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyName string) *Config {
	return &Config{
		Company: CompanyConfig{Name: companyName},
		Ledger: LedgerConfig{
			CashAccount:             accounts.Cash,
			RetainedEarningsAccount: accounts.RetainedEarnings,
			Seed:                    seed.None,
		},
		Server: ServerConfig{
			Addr:    ":8080",
			Metrics: true,
		},
	}
}

// Validate checks the fields that other packages trust without re-checking.
func (c *Config) Validate() error {
	if _, err := seed.Entries(c.Ledger.Seed, time.Time{}); err != nil {
		return fmt.Errorf("ledger.seed: %w", err)
	}
	if _, err := c.BaselineDate(); err != nil {
		return err
	}
	if c.Ledger.CashAccount == "" {
		return fmt.Errorf("ledger.cash_account is required")
	}
	if c.Ledger.RetainedEarningsAccount == "" {
		return fmt.Errorf("ledger.retained_earnings_account is required")
	}
	return nil
}

// BaselineDate parses ledger.baseline_date, falling back to the seed default.
func (c *Config) BaselineDate() (time.Time, error) {
	if c.Ledger.BaselineDate == "" {
		return seed.DefaultBaselineDate(), nil
	}
	d, err := model.ParseDate(c.Ledger.BaselineDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("ledger.baseline_date: %w", err)
	}
	return d, nil
}

// LoadConditions reads a YAML list of pricing conditions, as used by
// `redline price --conditions`.
func LoadConditions(path string) ([]masterdata.ConditionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading conditions: %w", err)
	}
	var specs []masterdata.ConditionSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parsing conditions: %w", err)
	}
	return specs, nil
}
