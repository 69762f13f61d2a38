package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(id string, on time.Time, lines ...model.JournalLine) model.JournalEntry {
	return model.JournalEntry{ID: id, Date: on, Lines: lines}
}

func dr(account, amount string) model.JournalLine {
	return model.JournalLine{Account: account, Debit: dec(amount)}
}

func cr(account, amount string) model.JournalLine {
	return model.JournalLine{Account: account, Credit: dec(amount)}
}

func newLedger() *Ledger {
	return New(accounts.Default())
}

// postReturnScenario posts an invoice, a discounted collection and a return
// in January 2025.
func postReturnScenario(l *Ledger) error {
	for _, e := range []model.JournalEntry{
		entry("INV-1001-2025-01-16", date(2025, 1, 16),
			dr(accounts.AccountsReceivable, "10000"), cr(accounts.Revenue, "10000")),
		entry("CASH-1001-2025-01-20", date(2025, 1, 20),
			dr(accounts.Cash, "8500"), dr(accounts.SalesReturns, "500"), cr(accounts.AccountsReceivable, "9000")),
		entry("RET-1001-2025-01-22", date(2025, 1, 22),
			dr(accounts.SalesReturns, "2000"), cr(accounts.AccountsReceivable, "2000")),
	} {
		if _, err := l.Post(e); err != nil {
			return err
		}
	}
	return nil
}
