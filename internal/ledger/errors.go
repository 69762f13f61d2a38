package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

var (
	// ErrTooFewLines is returned for entries with fewer than two lines.
	ErrTooFewLines = errors.New("journal entry needs at least two lines")
	// ErrMissingDate is returned for entries without an entry date.
	ErrMissingDate = errors.New("journal entry has no date")
)

// UnbalancedEntryError is returned when an entry's debits and credits differ
// after rounding each line to cents. Not retryable as-is.
type UnbalancedEntryError struct {
	EntryID string
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("unbalanced entry %s: debits (%s) != credits (%s)",
		e.EntryID, e.Debits.StringFixed(2), e.Credits.StringFixed(2))
}

// UnknownAccountError is returned when a line references an account code
// that is not in the chart of accounts.
type UnknownAccountError struct {
	EntryID string
	Account string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("entry %s: unknown account %q", e.EntryID, e.Account)
}

// InvalidAmountError is returned for negative amounts or lines carrying both
// a debit and a credit.
type InvalidAmountError struct {
	EntryID string
	Account string
	Reason  string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("entry %s: account %s: %s", e.EntryID, e.Account, e.Reason)
}

// InvalidDateRangeError is returned when a period's end is not after its start.
type InvalidDateRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s must be after start %s",
		e.End.Format(model.DateFormat), e.Start.Format(model.DateFormat))
}

// DuplicateEntryError is returned when an entry id is already posted.
type DuplicateEntryError struct {
	EntryID string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("entry %s already posted", e.EntryID)
}

// Rejection reasons reported to observers.
const (
	ReasonUnbalanced     = "unbalanced"
	ReasonUnknownAccount = "unknown_account"
	ReasonInvalidAmount  = "invalid_amount"
	ReasonDuplicateID    = "duplicate_id"
	ReasonMalformed      = "malformed"
)

// Reason maps a Post error to a short, stable label.
func Reason(err error) string {
	var (
		unbalanced *UnbalancedEntryError
		unknown    *UnknownAccountError
		amount     *InvalidAmountError
		dup        *DuplicateEntryError
	)
	switch {
	case errors.As(err, &unbalanced):
		return ReasonUnbalanced
	case errors.As(err, &unknown):
		return ReasonUnknownAccount
	case errors.As(err, &amount):
		return ReasonInvalidAmount
	case errors.As(err, &dup):
		return ReasonDuplicateID
	default:
		return ReasonMalformed
	}
}

// IsValidation reports whether err is an input problem the caller must fix,
// as opposed to an internal failure.
func IsValidation(err error) bool {
	var (
		unbalanced *UnbalancedEntryError
		unknown    *UnknownAccountError
		amount     *InvalidAmountError
		dateRange  *InvalidDateRangeError
	)
	return errors.As(err, &unbalanced) ||
		errors.As(err, &unknown) ||
		errors.As(err, &amount) ||
		errors.As(err, &dateRange) ||
		errors.Is(err, ErrTooFewLines) ||
		errors.Is(err, ErrMissingDate)
}
