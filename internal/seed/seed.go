// Package seed loads canned journals for demos and classroom exercises.
package seed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/model"
)

// Seed names accepted by Load.
const (
	None      = "none"
	Demo      = "demo"
	January   = "january"
	Baseline  = "baseline"
	defaultOn = "2025-01-01"
)

// Names returns the accepted seed names.
func Names() []string {
	names := []string{None, Demo, January, Baseline}
	sort.Strings(names)
	return names
}

type line struct {
	code   string
	debit  string
	credit string
}

func dr(code, amt string) line { return line{code: code, debit: amt} }
func cr(code, amt string) line { return line{code: code, credit: amt} }

type entry struct {
	id    string
	date  string
	memo  string
	lines []line
}

func (e entry) journal() model.JournalEntry {
	on, err := model.ParseDate(e.date)
	if err != nil {
		panic(fmt.Sprintf("seed entry %s: %v", e.id, err))
	}
	out := model.JournalEntry{ID: e.id, Date: on, Memo: e.memo}
	for _, l := range e.lines {
		jl := model.JournalLine{Account: l.code}
		if l.debit != "" {
			jl.Debit = decimal.RequireFromString(l.debit)
		}
		if l.credit != "" {
			jl.Credit = decimal.RequireFromString(l.credit)
		}
		out.Lines = append(out.Lines, jl)
	}
	return out
}

func journal(entries []entry) []model.JournalEntry {
	out := make([]model.JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = e.journal()
	}
	return out
}

// DemoEntries is a first quarter for a startup manufacturer: funding,
// equipment, inventory, a sale, collections, payables, opex, depreciation
// and tax.
func DemoEntries() []model.JournalEntry {
	return journal([]entry{
		{"T1", "2025-01-02", "Founders fund the company", []line{
			dr(accounts.Cash, "500000"), cr(accounts.CommonStock, "100000"), cr(accounts.AdditionalPaidInCap, "400000")}},
		{"T4", "2025-01-15", "Buy machining center", []line{
			dr(accounts.PropertyPlantEquip, "300000"), cr(accounts.Cash, "300000")}},
		{"INV1", "2025-02-01", "Purchase components on account", []line{
			dr(accounts.Inventory, "120000"), cr(accounts.AccountsPayable, "120000")}},
		{"SALE1", "2025-02-15", "Ship engines to Big Box Retailer", []line{
			dr(accounts.AccountsReceivable, "180000"), cr(accounts.Revenue, "180000")}},
		{"COGS1", "2025-02-15", "Cost of engines shipped", []line{
			dr(accounts.COGS, "90000"), cr(accounts.Inventory, "90000")}},
		{"ARCOLL1", "2025-03-05", "Collect from Big Box Retailer", []line{
			dr(accounts.Cash, "160000"), cr(accounts.AccountsReceivable, "160000")}},
		{"APPMT1", "2025-03-10", "Pay component suppliers", []line{
			dr(accounts.AccountsPayable, "80000"), cr(accounts.Cash, "80000")}},
		{"OPEX1", "2025-03-20", "Quarterly SG&A", []line{
			dr(accounts.SGA, "40000"), cr(accounts.AccountsPayable, "20000"), cr(accounts.Cash, "20000")}},
		{"DEPR1", "2025-03-31", "Q1 depreciation", []line{
			dr(accounts.DepreciationExpense, "5000"), cr(accounts.AccumulatedDeprec, "5000")}},
		{"TAX1", "2025-03-31", "Q1 income tax accrual", []line{
			dr(accounts.IncomeTaxExpense, "6000"), cr(accounts.IncomeTaxesPayable, "6000")}},
	})
}

// JanuaryEntries is a month of trading in January 2025.
func JanuaryEntries() []model.JournalEntry {
	return journal([]entry{
		{"JAN-001", "2025-01-01", "Opening equity", []line{
			dr(accounts.Cash, "200000"), cr(accounts.CommonStock, "200000")}},
		{"JAN-002", "2025-01-05", "Sale on credit", []line{
			dr(accounts.AccountsReceivable, "10000"), cr(accounts.Revenue, "10000"),
			dr(accounts.COGS, "6000"), cr(accounts.Inventory, "6000")}},
		{"JAN-003", "2025-01-09", "Cash sale", []line{
			dr(accounts.Cash, "7000"), cr(accounts.Revenue, "7000"),
			dr(accounts.COGS, "4000"), cr(accounts.Inventory, "4000")}},
		{"JAN-004", "2025-01-12", "Customer return", []line{
			dr(accounts.SalesReturns, "2000"), cr(accounts.AccountsReceivable, "2000")}},
		{"JAN-005", "2025-01-15", "Collect AR", []line{
			dr(accounts.Cash, "8500"), cr(accounts.AccountsReceivable, "8500")}},
		{"JAN-006", "2025-01-20", "Operating expenses", []line{
			dr(accounts.SGA, "3000"), cr(accounts.Cash, "3000")}},
		{"JAN-007", "2025-01-25", "Interest expense", []line{
			dr(accounts.InterestExpense, "300"), cr(accounts.Cash, "300")}},
		{"JAN-008", "2025-01-31", "Income tax", []line{
			dr(accounts.IncomeTaxExpense, "500"), cr(accounts.Cash, "500")}},
	})
}

// OpeningBalance is the opening balance sheet posted by the baseline seed.
// Equity is the balancing figure.
func OpeningBalance(asOf time.Time) model.JournalEntry {
	cash := decimal.NewFromInt(300_000)
	ar := decimal.NewFromInt(20_000)
	inv := decimal.NewFromInt(50_000)
	ppe := decimal.NewFromInt(300_000)
	ap := decimal.NewFromInt(40_000)
	accrued := decimal.NewFromInt(25_000)
	equity := cash.Add(ar).Add(inv).Add(ppe).Sub(ap).Sub(accrued)

	return model.JournalEntry{
		ID:   "OB-0001",
		Date: model.Day(asOf),
		Memo: "Opening Balance Sheet",
		Lines: []model.JournalLine{
			model.Debit(accounts.Cash, cash),
			model.Debit(accounts.AccountsReceivable, ar),
			model.Debit(accounts.Inventory, inv),
			model.Debit(accounts.PropertyPlantEquip, ppe),
			model.Credit(accounts.AccountsPayable, ap),
			model.Credit(accounts.AccruedExpenses, accrued),
			model.Credit(accounts.CommonStock, equity),
		},
	}
}

// DefaultBaselineDate is used when no baseline date is configured.
func DefaultBaselineDate() time.Time {
	d, _ := model.ParseDate(defaultOn)
	return d
}

// Entries returns the journal for a named seed. Baseline posts its opening
// balance on asOf.
func Entries(name string, asOf time.Time) ([]model.JournalEntry, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", None:
		return nil, nil
	case Demo:
		return DemoEntries(), nil
	case January:
		return JanuaryEntries(), nil
	case Baseline:
		if asOf.IsZero() {
			asOf = DefaultBaselineDate()
		}
		return []model.JournalEntry{OpeningBalance(asOf)}, nil
	}
	return nil, fmt.Errorf("unknown seed %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Load replaces the contents of l with the named seed.
func Load(l *ledger.Ledger, name string, asOf time.Time) error {
	entries, err := Entries(name, asOf)
	if err != nil {
		return err
	}
	return l.Replace(entries)
}
