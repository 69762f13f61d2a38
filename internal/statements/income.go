package statements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/model"
)

// IncomeStatement reports P&L buckets in natural-positive display: revenue
// and other income positive when earned, expenses positive when incurred.
type IncomeStatement struct {
	Start time.Time // zero for a cumulative statement
	End   time.Time

	Revenue         decimal.Decimal
	COGS            decimal.Decimal
	GrossProfit     decimal.Decimal
	OpEx            decimal.Decimal
	OperatingIncome decimal.Decimal
	OtherIncome     decimal.Decimal
	OtherExpense    decimal.Decimal
	Interest        decimal.Decimal
	PretaxIncome    decimal.Decimal
	Tax             decimal.Decimal
	NetIncome       decimal.Decimal

	// Check is the trial balance sum as of End.
	Check decimal.Decimal
}

// BuildIncomeStatement reports cumulative activity through asOf.
func BuildIncomeStatement(src Source, asOf time.Time) IncomeStatement {
	tb := src.TrialBalance(asOf)
	is := IncomeStatementFrom(tb, src.Chart())
	is.End = model.Day(asOf)
	is.Check = tb.Sum()
	return is
}

// BuildIncomeStatementForPeriod reports activity after start through end.
func BuildIncomeStatementForPeriod(src Source, start, end time.Time) (IncomeStatement, error) {
	delta, err := src.DeltaTB(start, end)
	if err != nil {
		return IncomeStatement{}, err
	}
	is := IncomeStatementFrom(delta, src.Chart())
	is.Start, is.End = model.Day(start), model.Day(end)
	is.Check = src.TrialBalance(end).Sum()
	return is, nil
}

// IncomeStatementFrom derives the statement from any balance map, either a
// point-in-time trial balance or a period delta.
func IncomeStatementFrom(tb ledger.Balances, chart *accounts.Service) IncomeStatement {
	var is IncomeStatement
	is.Revenue = sumClass(tb, chart, model.ClassRevenue).Neg()
	is.COGS = sumClass(tb, chart, model.ClassCOGS)
	is.OpEx = sumClass(tb, chart, model.ClassOpex)
	is.OtherIncome = sumClass(tb, chart, model.ClassOtherIncome).Neg()
	is.OtherExpense = sumClass(tb, chart, model.ClassOtherExpense)
	is.Interest = sumClass(tb, chart, model.ClassInterest)
	is.Tax = sumClass(tb, chart, model.ClassTax)

	is.GrossProfit = model.RoundMoney(is.Revenue.Sub(is.COGS))
	is.OperatingIncome = model.RoundMoney(is.GrossProfit.Sub(is.OpEx))
	is.PretaxIncome = model.RoundMoney(is.OperatingIncome.Add(is.OtherIncome).Sub(is.OtherExpense).Sub(is.Interest))
	is.NetIncome = model.RoundMoney(is.PretaxIncome.Sub(is.Tax))
	return is
}
