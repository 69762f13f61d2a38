package statements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/model"
)

func TestBuildIncomeStatement(t *testing.T) {
	l := firstQuarter(t, accounts.Default())
	is := BuildIncomeStatement(l, date(2025, 3, 31))

	assert.Equal(t, "180000.00", is.Revenue.StringFixed(2))
	assert.Equal(t, "90000.00", is.COGS.StringFixed(2))
	assert.Equal(t, "90000.00", is.GrossProfit.StringFixed(2))
	assert.Equal(t, "45000.00", is.OpEx.StringFixed(2))
	assert.Equal(t, "45000.00", is.OperatingIncome.StringFixed(2))
	assert.Equal(t, "45000.00", is.PretaxIncome.StringFixed(2))
	assert.Equal(t, "6000.00", is.Tax.StringFixed(2))
	assert.Equal(t, "39000.00", is.NetIncome.StringFixed(2))
	assert.True(t, is.Start.IsZero())
	assert.Equal(t, date(2025, 3, 31), is.End)
}

func TestBuildIncomeStatement_OtherBuckets(t *testing.T) {
	l := ledger.New(accounts.Default())
	post(t, l,
		posting{"S", date(2025, 1, 5), []model.JournalLine{dr("1000", "10000"), cr("4000", "10000")}},
		posting{"R", date(2025, 1, 6), []model.JournalLine{dr("4100", "2500"), cr("1000", "2500")}},
		posting{"OI", date(2025, 1, 7), []model.JournalLine{dr("1000", "1000"), cr("7000", "1000")}},
		posting{"OE", date(2025, 1, 8), []model.JournalLine{dr("7100", "200"), cr("1000", "200")}},
		posting{"INT", date(2025, 1, 9), []model.JournalLine{dr("7200", "300"), cr("1000", "300")}},
	)

	is := BuildIncomeStatement(l, date(2025, 1, 31))
	assert.Equal(t, "7500.00", is.Revenue.StringFixed(2))
	assert.Equal(t, "1000.00", is.OtherIncome.StringFixed(2))
	assert.Equal(t, "200.00", is.OtherExpense.StringFixed(2))
	assert.Equal(t, "300.00", is.Interest.StringFixed(2))
	// 7500 + 1000 - 200 - 300
	assert.Equal(t, "8000.00", is.PretaxIncome.StringFixed(2))
	assert.Equal(t, "8000.00", is.NetIncome.StringFixed(2))
}

func TestBuildIncomeStatementForPeriod(t *testing.T) {
	l := firstQuarter(t, accounts.Default())

	// The sale dated on start falls outside the period.
	is, err := BuildIncomeStatementForPeriod(l, date(2025, 2, 15), date(2025, 3, 31))
	require.NoError(t, err)
	assert.True(t, is.Revenue.IsZero())
	assert.Equal(t, "45000.00", is.OpEx.StringFixed(2))
	assert.Equal(t, "-51000.00", is.NetIncome.StringFixed(2))

	_, err = BuildIncomeStatementForPeriod(l, date(2025, 3, 31), date(2025, 3, 31))
	var rangeErr *ledger.InvalidDateRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestBuildBalanceSheet(t *testing.T) {
	l := firstQuarter(t, accounts.Default())
	bs := BuildBalanceSheet(l, date(2025, 3, 31))

	assets := amounts(bs.Assets)
	assert.Equal(t, "260000.00", assets["1000"])
	assert.Equal(t, "-5000.00", assets["1590"])
	assert.Equal(t, "60000.00", amounts(bs.Liabilities)["2000"])
	assert.NotContains(t, amounts(bs.Equity), accounts.RetainedEarnings)

	assert.Equal(t, "605000.00", bs.TotalAssets.StringFixed(2))
	assert.Equal(t, "66000.00", bs.TotalLiabilities.StringFixed(2))
	assert.Equal(t, accounts.RetainedEarnings, bs.RetainedEarnings.Code)
	assert.Equal(t, "Retained Earnings", bs.RetainedEarnings.Name)
	assert.Equal(t, "39000.00", bs.RetainedEarnings.Amount.StringFixed(2))
	assert.Equal(t, "539000.00", bs.TotalEquity.StringFixed(2))
	assert.True(t, bs.Balances())
	assert.True(t, bs.Check.IsZero())
}

func TestBuildBalanceSheet_IgnoresLedgerRetainedEarnings(t *testing.T) {
	l := firstQuarter(t, accounts.Default())
	post(t, l, posting{"RE", date(2025, 3, 31), []model.JournalLine{dr("3200", "1000"), cr("1000", "1000")}})

	bs := BuildBalanceSheet(l, date(2025, 3, 31))
	assert.Equal(t, "604000.00", bs.TotalAssets.StringFixed(2))
	assert.Equal(t, "38000.00", bs.RetainedEarnings.Amount.StringFixed(2))
	assert.True(t, bs.Balances())
}

func TestBuildBalanceSheet_CustomRetainedEarningsAccount(t *testing.T) {
	l := firstQuarter(t, accounts.Default())
	bs := BuildBalanceSheet(l, date(2025, 3, 31), WithRetainedEarningsAccount("3100"))

	assert.NotContains(t, amounts(bs.Equity), "3100")
	assert.Contains(t, amounts(bs.Equity), "3200")
	assert.Equal(t, "439000.00", bs.RetainedEarnings.Amount.StringFixed(2))
	assert.True(t, bs.Balances())
}

func TestBuildCashFlowDirect(t *testing.T) {
	l := firstQuarter(t, accounts.Default())
	cf, err := BuildCashFlowDirect(l, date(2025, 1, 1), date(2025, 3, 31))
	require.NoError(t, err)

	assert.Equal(t, "60000.00", cf.TotalOperating.StringFixed(2))
	assert.Equal(t, "-300000.00", cf.TotalInvesting.StringFixed(2))
	assert.Equal(t, "500000.00", cf.TotalFinancing.StringFixed(2))
	assert.Equal(t, "260000.00", cf.NetChangeInCash.StringFixed(2))
	assert.Equal(t, "260000.00", cf.EndingCash.StringFixed(2))
	assert.True(t, cf.BeginningCash.IsZero())
	assert.True(t, cf.Reconciles())

	op := amounts(cf.Operating)
	assert.Equal(t, "-20000.00", op["1100"])
	assert.Equal(t, "180000.00", op["4000"])
	assert.Equal(t, "5000.00", op["1590"])
	assert.NotContains(t, op, "1000")
	assert.NotContains(t, op, "2200", "accounts without movement are omitted")
}

func TestBuildCashFlowDirect_MidYear(t *testing.T) {
	l := firstQuarter(t, accounts.Default())
	cf, err := BuildCashFlowDirect(l, date(2025, 2, 28), date(2025, 3, 31))
	require.NoError(t, err)

	assert.Equal(t, "200000.00", cf.BeginningCash.StringFixed(2))
	assert.Equal(t, "60000.00", cf.NetChangeInCash.StringFixed(2))
	assert.Empty(t, cf.Investing)
	assert.True(t, cf.Reconciles())
}

func TestBuildCashFlowDirect_MiscodedChartDiverges(t *testing.T) {
	chart := accounts.DefaultChart()
	for i := range chart {
		if chart[i].Code == accounts.PropertyPlantEquip {
			chart[i].CashFlow = model.CashFlowNone
		}
	}
	l := firstQuarter(t, accounts.NewService(chart))

	cf, err := BuildCashFlowDirect(l, date(2025, 1, 1), date(2025, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, "560000.00", cf.NetChangeInCash.StringFixed(2))
	assert.Equal(t, "260000.00", cf.EndingCash.StringFixed(2))
	assert.Equal(t, "-300000.00", cf.Difference.StringFixed(2))
	assert.False(t, cf.Reconciles())
}

func TestBuildCashFlowDirect_CustomCashAccount(t *testing.T) {
	l := firstQuarter(t, accounts.Default())
	cf, err := BuildCashFlowDirect(l, date(2025, 1, 1), date(2025, 3, 31), WithCashAccount("1100"))
	require.NoError(t, err)
	assert.Equal(t, "20000.00", cf.EndingCash.StringFixed(2))
	assert.False(t, cf.Reconciles())
}

func TestBuildCashFlowDirect_InvalidRange(t *testing.T) {
	l := firstQuarter(t, accounts.Default())
	_, err := BuildCashFlowDirect(l, date(2025, 3, 31), date(2025, 1, 1))
	var rangeErr *ledger.InvalidDateRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestBuildTrialBalance(t *testing.T) {
	l := firstQuarter(t, accounts.Default())
	r := BuildTrialBalance(l, date(2025, 3, 31))

	assert.True(t, r.Check.IsZero())
	assert.Len(t, r.Lines, len(accounts.Default().Codes()))
	assert.Equal(t, "1000", r.Lines[0].Code)
	assert.Equal(t, "Cash", r.Lines[0].Name)

	tests := []struct {
		class model.AccountClass
		want  string
	}{
		{model.ClassAsset, "610000.00"},
		{model.ClassContraAsset, "-5000.00"},
		{model.ClassLiability, "-66000.00"},
		{model.ClassEquity, "-500000.00"},
		{model.ClassRevenue, "-180000.00"},
		{model.ClassCOGS, "90000.00"},
		{model.ClassOpex, "45000.00"},
		{model.ClassOtherIncome, "0.00"},
		{model.ClassTax, "6000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Total(tt.class).StringFixed(2), string(tt.class))
	}
	assert.Len(t, r.Totals, len(model.AllClasses))
}

func TestStatements_EmptyLedger(t *testing.T) {
	l := ledger.New(accounts.Default())
	is := BuildIncomeStatement(l, date(2025, 1, 31))
	assert.True(t, is.NetIncome.IsZero())

	bs := BuildBalanceSheet(l, date(2025, 1, 31))
	assert.True(t, bs.TotalAssets.IsZero())
	assert.True(t, bs.RetainedEarnings.Amount.IsZero())
	assert.True(t, bs.Balances())

	cf, err := BuildCashFlowDirect(l, date(2025, 1, 1), date(2025, 1, 31))
	require.NoError(t, err)
	assert.Empty(t, cf.Operating)
	assert.True(t, cf.Reconciles())
}
