package accounts

import "github.com/cleared-dev/redline/internal/model"

// Well-known account codes referenced by posting services and reports.
const (
	Cash                = "1000"
	AccountsReceivable  = "1100"
	Inventory           = "1200"
	AccountsPayable     = "2000"
	RetainedEarnings    = "3200"
	Revenue             = "4000"
	SalesReturns        = "4100"
	COGS                = "5000"
	SGA                 = "6000"
	OtherIncome         = "7000"
	InterestExpense     = "7200"
	IncomeTaxExpense    = "7300"
	CommonStock         = "3000"
	PropertyPlantEquip  = "1500"
	AccruedExpenses     = "2100"
	AccumulatedDeprec   = "1590"
	DepreciationExpense = "6300"
	IncomeTaxesPayable  = "2700"
	AdditionalPaidInCap = "3100"
)

// DefaultChart returns the default manufacturing chart of accounts.
//
// Every account except the cash account and Retained Earnings carries a
// cash-flow tag, so the direct-method statement reconciles to the change in cash.
func DefaultChart() []model.Account {
	op, inv, fin := model.CashFlowOperating, model.CashFlowInvesting, model.CashFlowFinancing
	return []model.Account{
		{Code: "1000", Name: "Cash", Class: model.ClassAsset},
		{Code: "1100", Name: "Accounts Receivable", Class: model.ClassAsset, CashFlow: op},
		{Code: "1200", Name: "Inventory", Class: model.ClassAsset, CashFlow: op},
		{Code: "1210", Name: "WIP", Class: model.ClassAsset, CashFlow: op},
		{Code: "1300", Name: "Prepaid Expenses", Class: model.ClassAsset, CashFlow: op},
		{Code: "1500", Name: "Property, Plant & Equipment", Class: model.ClassAsset, CashFlow: inv},
		{Code: "1590", Name: "Accumulated Depreciation", Class: model.ClassContraAsset, CashFlow: op},

		{Code: "2000", Name: "Accounts Payable", Class: model.ClassLiability, CashFlow: op},
		{Code: "2100", Name: "Accrued Expenses", Class: model.ClassLiability, CashFlow: op},
		{Code: "2200", Name: "Deferred Revenue", Class: model.ClassLiability, CashFlow: op},
		{Code: "2500", Name: "Short-term Debt", Class: model.ClassLiability, CashFlow: fin},
		{Code: "2600", Name: "Long-term Debt", Class: model.ClassLiability, CashFlow: fin},
		{Code: "2690", Name: "Interest Payable", Class: model.ClassLiability, CashFlow: op},
		{Code: "2700", Name: "Income Taxes Payable", Class: model.ClassLiability, CashFlow: op},

		{Code: "3000", Name: "Common Stock", Class: model.ClassEquity, CashFlow: fin},
		{Code: "3100", Name: "Additional Paid-in Capital", Class: model.ClassEquity, CashFlow: fin},
		{Code: "3200", Name: "Retained Earnings", Class: model.ClassEquity},

		{Code: "4000", Name: "Revenue", Class: model.ClassRevenue, CashFlow: op},
		{Code: "4100", Name: "Sales Returns & Allowances", Class: model.ClassRevenue, CashFlow: op},

		{Code: "5000", Name: "COGS", Class: model.ClassCOGS, CashFlow: op},

		{Code: "6000", Name: "SG&A Expense", Class: model.ClassOpex, CashFlow: op},
		{Code: "6100", Name: "R&D Expense", Class: model.ClassOpex, CashFlow: op},
		{Code: "6200", Name: "Marketing Expense", Class: model.ClassOpex, CashFlow: op},
		{Code: "6300", Name: "Depreciation Expense", Class: model.ClassOpex, CashFlow: op},

		{Code: "7000", Name: "Other Income", Class: model.ClassOtherIncome, CashFlow: op},
		{Code: "7100", Name: "Other Expense", Class: model.ClassOtherExpense, CashFlow: op},
		{Code: "7200", Name: "Interest Expense", Class: model.ClassInterest, CashFlow: op},
		{Code: "7300", Name: "Income Tax Expense", Class: model.ClassTax, CashFlow: op},
	}
}
