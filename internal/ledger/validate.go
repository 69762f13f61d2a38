package ledger

import (
	"github.com/cleared-dev/redline/internal/model"
)

// AccountChecker tests whether an account code exists in the chart of accounts.
type AccountChecker interface {
	Exists(code string) bool
}

// Normalize returns a copy of e with each line rounded to cents and the date
// truncated to a calendar day.
func Normalize(e model.JournalEntry) model.JournalEntry {
	out := e.Clone()
	out.Date = model.Day(e.Date)
	for i, l := range out.Lines {
		out.Lines[i].Debit = model.RoundMoney(l.Debit)
		out.Lines[i].Credit = model.RoundMoney(l.Credit)
	}
	return out
}

// ValidateEntry checks a normalized entry: at least two lines, non-negative
// one-sided amounts, debits equal credits, and every account known.
func ValidateEntry(e model.JournalEntry, accounts AccountChecker) error {
	if len(e.Lines) < 2 {
		return ErrTooFewLines
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}

	for _, l := range e.Lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return &InvalidAmountError{EntryID: e.ID, Account: l.Account, Reason: "negative amount"}
		}
		if !l.Debit.IsZero() && !l.Credit.IsZero() {
			return &InvalidAmountError{EntryID: e.ID, Account: l.Account, Reason: "line has both debit and credit"}
		}
	}

	debits, credits := e.Totals()
	if !debits.Equal(credits) {
		return &UnbalancedEntryError{EntryID: e.ID, Debits: debits, Credits: credits}
	}

	for _, l := range e.Lines {
		if !accounts.Exists(l.Account) {
			return &UnknownAccountError{EntryID: e.ID, Account: l.Account}
		}
	}
	return nil
}
