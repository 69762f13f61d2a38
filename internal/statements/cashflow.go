package statements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

// CashFlowDirect buckets the period movement of every cash-flow tagged
// account, negated into cash-impact sign. EndingCash is read from the cash
// account and is not forced to agree with the buckets; Difference exposes any
// gap, which points at a miscoded cash-flow tag.
type CashFlowDirect struct {
	Start time.Time
	End   time.Time

	Operating []Line
	Investing []Line
	Financing []Line

	TotalOperating decimal.Decimal
	TotalInvesting decimal.Decimal
	TotalFinancing decimal.Decimal

	NetChangeInCash decimal.Decimal
	BeginningCash   decimal.Decimal
	EndingCash      decimal.Decimal
	// Difference is EndingCash - (BeginningCash + NetChangeInCash).
	Difference decimal.Decimal
	// Check is the trial balance sum as of End.
	Check decimal.Decimal
}

// BuildCashFlowDirect reports cash flows for entries after start through end.
// Accounts without period movement are left out of the buckets.
func BuildCashFlowDirect(src Source, start, end time.Time, opts ...Option) (CashFlowDirect, error) {
	o := buildOptions(opts)
	delta, err := src.DeltaTB(start, end)
	if err != nil {
		return CashFlowDirect{}, err
	}

	cf := CashFlowDirect{Start: model.Day(start), End: model.Day(end)}
	for _, a := range src.Chart().All() {
		change := delta.Get(a.Code)
		if change.IsZero() {
			continue
		}
		line := Line{Code: a.Code, Name: a.Name, Amount: model.RoundMoney(change.Neg())}
		switch a.CashFlow {
		case model.CashFlowOperating:
			cf.Operating = append(cf.Operating, line)
		case model.CashFlowInvesting:
			cf.Investing = append(cf.Investing, line)
		case model.CashFlowFinancing:
			cf.Financing = append(cf.Financing, line)
		}
	}

	cf.TotalOperating = sumLines(cf.Operating)
	cf.TotalInvesting = sumLines(cf.Investing)
	cf.TotalFinancing = sumLines(cf.Financing)
	cf.NetChangeInCash = model.RoundMoney(cf.TotalOperating.Add(cf.TotalInvesting).Add(cf.TotalFinancing))

	endTB := src.TrialBalance(end)
	cf.BeginningCash = src.TrialBalance(start).Get(o.CashAccount)
	cf.EndingCash = endTB.Get(o.CashAccount)
	cf.Check = endTB.Sum()
	cf.Difference = model.RoundMoney(cf.EndingCash.Sub(cf.BeginningCash.Add(cf.NetChangeInCash)))
	return cf, nil
}

// Reconciles reports whether the buckets explain the change in cash.
func (cf CashFlowDirect) Reconciles() bool {
	return cf.Difference.IsZero()
}
