package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is one side of a double-entry posting against a single account.
type JournalLine struct {
	Account string
	Debit   decimal.Decimal // zero if credit side
	Credit  decimal.Decimal // zero if debit side
}

// Signed returns the line's contribution under the debit-positive convention.
func (l JournalLine) Signed() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// Debit returns a debit line rounded to cents.
func Debit(account string, amount decimal.Decimal) JournalLine {
	return JournalLine{Account: account, Debit: RoundMoney(amount)}
}

// Credit returns a credit line rounded to cents.
func Credit(account string, amount decimal.Decimal) JournalLine {
	return JournalLine{Account: account, Credit: RoundMoney(amount)}
}

// JournalEntry is an atomic, balanced set of lines. Entries are immutable once posted.
type JournalEntry struct {
	ID    string
	Date  time.Time
	Memo  string
	Lines []JournalLine
}

// Totals returns the summed debits and credits of the entry.
func (e JournalEntry) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// IsBalanced reports whether debits equal credits to the cent.
func (e JournalEntry) IsBalanced() bool {
	d, c := e.Totals()
	return RoundMoney(d).Equal(RoundMoney(c))
}

// Clone returns a deep copy so callers cannot mutate posted lines.
func (e JournalEntry) Clone() JournalEntry {
	lines := make([]JournalLine, len(e.Lines))
	copy(lines, e.Lines)
	e.Lines = lines
	return e
}
