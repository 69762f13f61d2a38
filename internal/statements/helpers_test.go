package statements

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type posting struct {
	id    string
	on    time.Time
	lines []model.JournalLine
}

func dr(code, amt string) model.JournalLine { return model.Debit(code, dec(amt)) }
func cr(code, amt string) model.JournalLine { return model.Credit(code, dec(amt)) }

func post(t *testing.T, l *ledger.Ledger, ps ...posting) {
	t.Helper()
	for _, p := range ps {
		_, err := l.Post(model.JournalEntry{ID: p.id, Date: p.on, Lines: p.lines})
		require.NoError(t, err, p.id)
	}
}

// firstQuarter builds a company that raises equity, buys equipment and
// inventory, sells on account, collects, pays suppliers and books
// depreciation and tax through 2025-03-31.
func firstQuarter(t *testing.T, chart *accounts.Service) *ledger.Ledger {
	t.Helper()
	l := ledger.New(chart)
	post(t, l,
		posting{"T1", date(2025, 1, 2), []model.JournalLine{dr("1000", "500000"), cr("3000", "100000"), cr("3100", "400000")}},
		posting{"T4", date(2025, 1, 15), []model.JournalLine{dr("1500", "300000"), cr("1000", "300000")}},
		posting{"INV1", date(2025, 2, 1), []model.JournalLine{dr("1200", "120000"), cr("2000", "120000")}},
		posting{"SALE1", date(2025, 2, 15), []model.JournalLine{dr("1100", "180000"), cr("4000", "180000")}},
		posting{"COGS1", date(2025, 2, 15), []model.JournalLine{dr("5000", "90000"), cr("1200", "90000")}},
		posting{"ARCOLL1", date(2025, 3, 5), []model.JournalLine{dr("1000", "160000"), cr("1100", "160000")}},
		posting{"APPMT1", date(2025, 3, 10), []model.JournalLine{dr("2000", "80000"), cr("1000", "80000")}},
		posting{"OPEX1", date(2025, 3, 20), []model.JournalLine{dr("6000", "40000"), cr("2000", "20000"), cr("1000", "20000")}},
		posting{"DEPR1", date(2025, 3, 31), []model.JournalLine{dr("6300", "5000"), cr("1590", "5000")}},
		posting{"TAX1", date(2025, 3, 31), []model.JournalLine{dr("7300", "6000"), cr("2700", "6000")}},
	)
	return l
}

func amounts(lines []Line) map[string]string {
	out := make(map[string]string, len(lines))
	for _, l := range lines {
		out[l.Code] = l.Amount.StringFixed(2)
	}
	return out
}
