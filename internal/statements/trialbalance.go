package statements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

// ClassTotal is the summed balance of one account class.
type ClassTotal struct {
	Class model.AccountClass
	Total decimal.Decimal
}

// TrialBalanceReport lists every account balance in code order with class
// subtotals and the overall check sum.
type TrialBalanceReport struct {
	AsOf   time.Time
	Lines  []Line
	Totals []ClassTotal
	Check  decimal.Decimal
}

// BuildTrialBalance reports the trial balance as of asOf.
func BuildTrialBalance(src Source, asOf time.Time) TrialBalanceReport {
	chart := src.Chart()
	tb := src.TrialBalance(asOf)

	r := TrialBalanceReport{AsOf: model.Day(asOf), Check: tb.Sum()}
	for _, code := range tb.Codes() {
		r.Lines = append(r.Lines, Line{Code: code, Name: accountName(chart, code), Amount: tb.Get(code)})
	}
	for _, class := range model.AllClasses {
		r.Totals = append(r.Totals, ClassTotal{Class: class, Total: sumClass(tb, chart, class)})
	}
	return r
}

// Total returns the subtotal for class.
func (r TrialBalanceReport) Total(class model.AccountClass) decimal.Decimal {
	for _, t := range r.Totals {
		if t.Class == class {
			return t.Total
		}
	}
	return decimal.Zero
}
