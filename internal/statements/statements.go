// Package statements projects ledger balances into financial statements.
// Every builder is a pure read over a ledger snapshot; none of them fail on
// a ledger that does not balance, they report it through Check fields.
package statements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/model"
)

// Source is the read side of a ledger.
type Source interface {
	TrialBalance(asOf time.Time) ledger.Balances
	DeltaTB(start, end time.Time) (ledger.Balances, error)
	Chart() *accounts.Service
}

// Line is one account row on a statement.
type Line struct {
	Code   string
	Name   string
	Amount decimal.Decimal
}

// Options selects the designated accounts used by the builders.
type Options struct {
	CashAccount             string
	RetainedEarningsAccount string
}

// Option configures a statement build.
type Option func(*Options)

// WithCashAccount sets the account read for ending cash.
func WithCashAccount(code string) Option {
	return func(o *Options) { o.CashAccount = code }
}

// WithRetainedEarningsAccount sets the equity account replaced by the derived plug.
func WithRetainedEarningsAccount(code string) Option {
	return func(o *Options) { o.RetainedEarningsAccount = code }
}

func buildOptions(opts []Option) Options {
	o := Options{
		CashAccount:             accounts.Cash,
		RetainedEarningsAccount: accounts.RetainedEarnings,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sumClass totals the balances of every chart account in class.
func sumClass(tb ledger.Balances, chart *accounts.Service, class model.AccountClass) decimal.Decimal {
	total := decimal.Zero
	for _, a := range chart.ByClass(class) {
		total = total.Add(tb.Get(a.Code))
	}
	return model.RoundMoney(total)
}

func sumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return model.RoundMoney(total)
}

func accountName(chart *accounts.Service, code string) string {
	if a, ok := chart.Get(code); ok {
		return a.Name
	}
	return code
}
