package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/config"
	"github.com/cleared-dev/redline/internal/interchange"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/seed"
	"github.com/cleared-dev/redline/internal/statements"
)

// project is a loaded redline.yaml together with its chart of accounts.
type project struct {
	cfg   *config.Config
	chart *accounts.Service
}

// loadProject reads the config at path. A missing config at the default
// location falls back to defaults; a missing chart falls back to the
// built-in chart.
func loadProject(path string) (*project, error) {
	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && filepath.Base(path) == config.FileName:
		cfg = config.Default("")
	case err != nil:
		return nil, err
	}

	chart, err := accounts.Load(filepath.Dir(path))
	switch {
	case errors.Is(err, os.ErrNotExist):
		chart = accounts.Default()
	case err != nil:
		return nil, err
	}
	for _, code := range []string{cfg.Ledger.CashAccount, cfg.Ledger.RetainedEarningsAccount} {
		if !chart.Exists(code) {
			return nil, fmt.Errorf("configured account %s is not in the chart of accounts", code)
		}
	}
	return &project{cfg: cfg, chart: chart}, nil
}

func (p *project) statementOptions() []statements.Option {
	return []statements.Option{
		statements.WithCashAccount(p.cfg.Ledger.CashAccount),
		statements.WithRetainedEarningsAccount(p.cfg.Ledger.RetainedEarningsAccount),
	}
}

// ledgerSource selects where a command's journal comes from.
type ledgerSource struct {
	configPath  string
	journalPath string
	format      string
	seedName    string
}

func (s *ledgerSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.configPath, "config", config.FileName, "path to redline.yaml")
	cmd.Flags().StringVar(&s.journalPath, "journal", "", "journal file to load instead of the configured seed")
	cmd.Flags().StringVar(&s.format, "journal-format", "", "journal file format: json or csv (default from extension)")
	cmd.Flags().StringVar(&s.seedName, "seed", "", "seed to load: "+strings.Join(seed.Names(), ", ")+" (default from config)")
}

// open loads the project and a ledger populated from the journal file or seed.
func (s *ledgerSource) open(opts ...ledger.Option) (*project, *ledger.Ledger, error) {
	p, err := loadProject(s.configPath)
	if err != nil {
		return nil, nil, err
	}
	l, err := s.load(p, opts...)
	if err != nil {
		return nil, nil, err
	}
	return p, l, nil
}

func (s *ledgerSource) load(p *project, opts ...ledger.Option) (*ledger.Ledger, error) {
	l := ledger.New(p.chart, opts...)

	if s.journalPath != "" {
		f, err := os.Open(s.journalPath)
		if err != nil {
			return nil, fmt.Errorf("opening journal: %w", err)
		}
		defer f.Close()
		if _, err := interchange.DefaultRegistry().Import(f, l, journalFormat(s.journalPath, s.format)); err != nil {
			return nil, err
		}
		return l, nil
	}

	name := s.seedName
	if name == "" {
		name = p.cfg.Ledger.Seed
	}
	asOf, err := p.cfg.BaselineDate()
	if err != nil {
		return nil, err
	}
	if err := seed.Load(l, name, asOf); err != nil {
		return nil, fmt.Errorf("loading seed: %w", err)
	}
	return l, nil
}

// journalFormat returns explicit, or the format implied by path's extension.
func journalFormat(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "json"
}
