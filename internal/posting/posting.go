// Package posting turns business events into balanced journal entries and
// posts them to a ledger.
package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/masterdata"
	"github.com/cleared-dev/redline/internal/model"
)

// Poster accepts journal entries.
type Poster interface {
	Post(entry model.JournalEntry) (string, error)
}

// Service posts AR, AP and order events.
type Service struct {
	ledger  Poster
	catalog *masterdata.Catalog
}

// New returns a Service posting to l with master data from catalog.
func New(l Poster, catalog *masterdata.Catalog) *Service {
	return &Service{ledger: l, catalog: catalog}
}

// Catalog returns the master data used for lookups.
func (s *Service) Catalog() *masterdata.Catalog {
	return s.catalog
}

// Result describes a posted entry.
type Result struct {
	EntryID string
	Lines   []model.JournalLine
}

func (s *Service) post(entryID string, on time.Time, memo string, lines []model.JournalLine) (Result, error) {
	if on.IsZero() {
		return Result{}, fmt.Errorf("entry %s: %w", entryID, ledger.ErrMissingDate)
	}
	e := model.JournalEntry{ID: entryID, Date: on, Memo: memo, Lines: lines}
	id, err := s.ledger.Post(e)
	if err != nil {
		return Result{}, err
	}
	return Result{EntryID: id, Lines: lines}, nil
}

type field struct {
	name  string
	value decimal.Decimal
}

func named(name string, v decimal.Decimal) field { return field{name: name, value: v} }

// requireNonNegative rejects negative amounts before they reach the ledger.
func requireNonNegative(entryID string, fields ...field) error {
	for _, f := range fields {
		if f.value.IsNegative() {
			return &ledger.InvalidAmountError{EntryID: entryID, Account: f.name, Reason: "must be >= 0"}
		}
	}
	return nil
}

func memoOr(memo, fallback string) string {
	if memo != "" {
		return memo
	}
	return fallback
}
