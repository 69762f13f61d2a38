package statements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/model"
)

// Pack bundles the statements for a reporting date. The income statement is
// cumulative through End; the cash flow covers Start to End.
type Pack struct {
	Start        time.Time
	End          time.Time
	Income       IncomeStatement
	Balance      BalanceSheet
	CashFlow     CashFlowDirect
	TrialBalance TrialBalanceReport
}

// DefaultStart returns January 1 of end's year, the default cash flow start.
func DefaultStart(end time.Time) time.Time {
	return time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// BuildPack builds every statement for end, with the cash flow measured from start.
func BuildPack(src Source, start, end time.Time, opts ...Option) (Pack, error) {
	start, end = model.Day(start), model.Day(end)
	if !end.After(start) {
		return Pack{}, &ledger.InvalidDateRangeError{Start: start, End: end}
	}
	cf, err := BuildCashFlowDirect(src, start, end, opts...)
	if err != nil {
		return Pack{}, err
	}
	return Pack{
		Start:        start,
		End:          end,
		Income:       BuildIncomeStatement(src, end),
		Balance:      BuildBalanceSheet(src, end, opts...),
		CashFlow:     cf,
		TrialBalance: BuildTrialBalance(src, end),
	}, nil
}

// ReceivablesSnapshot holds the balances tracked by the receivables audit.
type ReceivablesSnapshot struct {
	Receivables decimal.Decimal
	Cash        decimal.Decimal
	Revenue     decimal.Decimal
	Returns     decimal.Decimal
}

// ReceivablesAudit compares ending balances and period movement for the
// accounts touched by invoicing, collection and returns.
type ReceivablesAudit struct {
	Start  time.Time
	End    time.Time
	Ending ReceivablesSnapshot
	Delta  ReceivablesSnapshot
	Check  decimal.Decimal
}

// BuildReceivablesAudit reports the receivables audit for a period.
func BuildReceivablesAudit(src Source, start, end time.Time, opts ...Option) (ReceivablesAudit, error) {
	o := buildOptions(opts)
	delta, err := src.DeltaTB(start, end)
	if err != nil {
		return ReceivablesAudit{}, err
	}
	snap := func(b ledger.Balances) ReceivablesSnapshot {
		return ReceivablesSnapshot{
			Receivables: b.Get(accounts.AccountsReceivable),
			Cash:        b.Get(o.CashAccount),
			Revenue:     b.Get(accounts.Revenue),
			Returns:     b.Get(accounts.SalesReturns),
		}
	}
	tb := src.TrialBalance(end)
	return ReceivablesAudit{
		Start:  model.Day(start),
		End:    model.Day(end),
		Ending: snap(tb),
		Delta:  snap(delta),
		Check:  tb.Sum(),
	}, nil
}
