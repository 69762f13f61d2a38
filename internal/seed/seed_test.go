package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/statements"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoad_Demo(t *testing.T) {
	l := ledger.New(accounts.Default())
	require.NoError(t, Load(l, Demo, time.Time{}))
	assert.Equal(t, 10, l.Len())

	is := statements.BuildIncomeStatement(l, date(2025, 3, 31))
	assert.Equal(t, "39000.00", is.NetIncome.StringFixed(2))

	bs := statements.BuildBalanceSheet(l, date(2025, 3, 31))
	assert.Equal(t, "605000.00", bs.TotalAssets.StringFixed(2))
	assert.True(t, bs.Balances())

	cf, err := statements.BuildCashFlowDirect(l, date(2025, 1, 1), date(2025, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, "260000.00", cf.EndingCash.StringFixed(2))
	assert.True(t, cf.Reconciles())
}

func TestLoad_January(t *testing.T) {
	l := ledger.New(accounts.Default())
	require.NoError(t, Load(l, January, time.Time{}))
	assert.Equal(t, 8, l.Len())

	is, err := statements.BuildIncomeStatementForPeriod(l, date(2024, 12, 31), date(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, "15000.00", is.Revenue.StringFixed(2))
	assert.Equal(t, "10000.00", is.COGS.StringFixed(2))
	assert.Equal(t, "3000.00", is.OpEx.StringFixed(2))
	assert.Equal(t, "300.00", is.Interest.StringFixed(2))
	assert.Equal(t, "1200.00", is.NetIncome.StringFixed(2))

	tb := l.TrialBalance(date(2025, 1, 31))
	assert.Equal(t, "211700.00", tb.Get(accounts.Cash).StringFixed(2))
	assert.Equal(t, "-500.00", tb.Get(accounts.AccountsReceivable).StringFixed(2))
	assert.True(t, tb.Sum().IsZero())
}

func TestLoad_Baseline(t *testing.T) {
	l := ledger.New(accounts.Default())
	require.NoError(t, Load(l, Demo, time.Time{}))
	require.NoError(t, Load(l, Baseline, date(2025, 6, 30)))

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "OB-0001", entries[0].ID)
	assert.Equal(t, date(2025, 6, 30), entries[0].Date)

	tb := l.TrialBalance(date(2025, 6, 30))
	assert.Equal(t, "-605000.00", tb.Get(accounts.CommonStock).StringFixed(2))
	assert.True(t, l.TrialBalance(date(2025, 6, 29)).Get(accounts.Cash).IsZero())
}

func TestLoad_BaselineDefaultDate(t *testing.T) {
	l := ledger.New(accounts.Default())
	require.NoError(t, Load(l, Baseline, time.Time{}))
	assert.Equal(t, DefaultBaselineDate(), l.Entries()[0].Date)
}

func TestLoad_None(t *testing.T) {
	l := ledger.New(accounts.Default())
	require.NoError(t, Load(l, Demo, time.Time{}))
	require.NoError(t, Load(l, None, time.Time{}))
	assert.Equal(t, 0, l.Len())
}

func TestLoad_Unknown(t *testing.T) {
	l := ledger.New(accounts.Default())
	err := Load(l, "march", time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown seed")
	assert.Equal(t, []string{"baseline", "demo", "january", "none"}, Names())
}
