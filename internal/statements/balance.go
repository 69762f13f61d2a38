package statements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

// BalanceSheet shows assets as-is and liabilities and equity flipped to
// positive. Retained earnings is not read from the ledger: it is the plug
// that makes TotalAssets equal TotalLiabilitiesAndEquity.
type BalanceSheet struct {
	AsOf time.Time

	Assets      []Line
	Liabilities []Line
	Equity      []Line // excludes retained earnings

	RetainedEarnings Line

	TotalAssets               decimal.Decimal
	TotalLiabilities          decimal.Decimal
	TotalEquity               decimal.Decimal // includes retained earnings
	TotalLiabilitiesAndEquity decimal.Decimal

	// Check is the sum of every trial balance account; zero for a sound ledger.
	Check decimal.Decimal
}

// BuildBalanceSheet reports balances as of asOf.
func BuildBalanceSheet(src Source, asOf time.Time, opts ...Option) BalanceSheet {
	o := buildOptions(opts)
	chart := src.Chart()
	tb := src.TrialBalance(asOf)

	bs := BalanceSheet{AsOf: model.Day(asOf), Check: tb.Sum()}
	for _, a := range chart.All() {
		bal := tb.Get(a.Code)
		switch a.Class {
		case model.ClassAsset, model.ClassContraAsset:
			bs.Assets = append(bs.Assets, Line{Code: a.Code, Name: a.Name, Amount: bal})
		case model.ClassLiability:
			bs.Liabilities = append(bs.Liabilities, Line{Code: a.Code, Name: a.Name, Amount: bal.Neg()})
		case model.ClassEquity:
			if a.Code == o.RetainedEarningsAccount {
				continue
			}
			bs.Equity = append(bs.Equity, Line{Code: a.Code, Name: a.Name, Amount: bal.Neg()})
		}
	}

	bs.TotalAssets = sumLines(bs.Assets)
	bs.TotalLiabilities = sumLines(bs.Liabilities)
	nonRE := sumLines(bs.Equity)

	bs.RetainedEarnings = Line{
		Code:   o.RetainedEarningsAccount,
		Name:   accountName(chart, o.RetainedEarningsAccount),
		Amount: model.RoundMoney(bs.TotalAssets.Sub(bs.TotalLiabilities.Add(nonRE))),
	}
	bs.TotalEquity = model.RoundMoney(nonRE.Add(bs.RetainedEarnings.Amount))
	bs.TotalLiabilitiesAndEquity = model.RoundMoney(bs.TotalLiabilities.Add(bs.TotalEquity))
	return bs
}

// Balances reports whether assets equal liabilities plus equity.
func (bs BalanceSheet) Balances() bool {
	return bs.TotalAssets.Equal(bs.TotalLiabilitiesAndEquity)
}
