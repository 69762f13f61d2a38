package model

import "fmt"

// AccountClass classifies accounts in the chart of accounts. It is the only
// source of truth for statement grouping; account code ranges are display only.
type AccountClass string

const (
	ClassAsset        AccountClass = "ASSET"
	ClassContraAsset  AccountClass = "CONTRA_ASSET"
	ClassLiability    AccountClass = "LIABILITY"
	ClassEquity       AccountClass = "EQUITY"
	ClassRevenue      AccountClass = "REVENUE"
	ClassCOGS         AccountClass = "COGS"
	ClassOpex         AccountClass = "OPEX"
	ClassOtherIncome  AccountClass = "OTHER_INCOME"
	ClassOtherExpense AccountClass = "OTHER_EXPENSE"
	ClassInterest     AccountClass = "INTEREST"
	ClassTax          AccountClass = "TAX"
)

// AllClasses lists every account class in chart order.
var AllClasses = []AccountClass{
	ClassAsset,
	ClassContraAsset,
	ClassLiability,
	ClassEquity,
	ClassRevenue,
	ClassCOGS,
	ClassOpex,
	ClassOtherIncome,
	ClassOtherExpense,
	ClassInterest,
	ClassTax,
}

// Valid reports whether c is a known class.
func (c AccountClass) Valid() bool {
	for _, k := range AllClasses {
		if c == k {
			return true
		}
	}
	return false
}

// IsBalanceSheet reports whether accounts of this class appear on the balance sheet.
func (c AccountClass) IsBalanceSheet() bool {
	switch c {
	case ClassAsset, ClassContraAsset, ClassLiability, ClassEquity:
		return true
	}
	return false
}

// CashFlowClass tags an account for direct-method cash flow bucketing.
// The empty value means the account is not bucketed.
type CashFlowClass string

const (
	CashFlowNone      CashFlowClass = ""
	CashFlowOperating CashFlowClass = "OPERATING"
	CashFlowInvesting CashFlowClass = "INVESTING"
	CashFlowFinancing CashFlowClass = "FINANCING"
)

// Valid reports whether f is a known cash-flow tag (including none).
func (f CashFlowClass) Valid() bool {
	switch f {
	case CashFlowNone, CashFlowOperating, CashFlowInvesting, CashFlowFinancing:
		return true
	}
	return false
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	Code     string
	Name     string
	Class    AccountClass
	CashFlow CashFlowClass
}

// Range returns the conventional display bucket for the code, e.g. "1xxx".
// It is never used for classification.
func (a Account) Range() string {
	if a.Code == "" {
		return ""
	}
	return fmt.Sprintf("%cxxx", a.Code[0])
}
