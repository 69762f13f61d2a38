// Package ledger holds the in-memory double-entry journal and derives trial
// balances from it.
package ledger

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/id"
	"github.com/cleared-dev/redline/internal/model"
)

// Observer is notified of accepted and rejected postings. The rejected entry
// has already been normalized, so its id is set.
type Observer interface {
	Posted(entry model.JournalEntry)
	Rejected(entry model.JournalEntry, reason string)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for posting diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(led *Ledger) { led.logger = l }
}

// WithObserver registers an observer for posting outcomes. Observers are
// called in registration order.
func WithObserver(o Observer) Option {
	return func(led *Ledger) { led.observers = append(led.observers, o) }
}

// Ledger is an append-only sequence of balanced journal entries validated
// against a chart of accounts. It is safe for concurrent use.
type Ledger struct {
	chart     *accounts.Service
	logger    *slog.Logger
	observers []Observer

	mu      sync.RWMutex
	entries []model.JournalEntry
	ids     map[string]struct{}
}

// New returns an empty ledger over chart.
func New(chart *accounts.Service, opts ...Option) *Ledger {
	l := &Ledger{
		chart:  chart,
		logger: slog.Default(),
		ids:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Chart returns the chart of accounts the ledger validates against.
func (l *Ledger) Chart() *accounts.Service {
	return l.chart
}

// Post validates and appends an entry, returning its id. Lines are rounded to
// cents first. An empty id is replaced with a generated one. A rejected entry
// leaves the ledger unchanged.
func (l *Ledger) Post(entry model.JournalEntry) (string, error) {
	e := Normalize(entry)
	if e.ID == "" {
		e.ID = id.New()
	}

	if err := ValidateEntry(e, l.chart); err != nil {
		l.reject(e, err)
		return "", err
	}

	l.mu.Lock()
	if _, dup := l.ids[e.ID]; dup {
		l.mu.Unlock()
		err := &DuplicateEntryError{EntryID: e.ID}
		l.reject(e, err)
		return "", err
	}
	l.entries = append(l.entries, e)
	l.ids[e.ID] = struct{}{}
	l.mu.Unlock()

	l.logger.Debug("entry posted", "entry_id", e.ID, "date", e.Date.Format(model.DateFormat), "lines", len(e.Lines))
	for _, o := range l.observers {
		o.Posted(e)
	}
	return e.ID, nil
}

func (l *Ledger) reject(e model.JournalEntry, err error) {
	reason := Reason(err)
	l.logger.Warn("entry rejected", "entry_id", e.ID, "reason", reason, "error", err)
	for _, o := range l.observers {
		o.Rejected(e, reason)
	}
}

// TrialBalance returns the signed balance of every chart account over all
// entries dated on or before asOf. Accounts without activity report zero.
func (l *Ledger) TrialBalance(asOf time.Time) Balances {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trialBalance(model.Day(asOf))
}

func (l *Ledger) trialBalance(asOf time.Time) Balances {
	tb := make(Balances)
	for _, code := range l.chart.Codes() {
		tb[code] = decimal.Zero
	}
	for _, e := range l.entries {
		if e.Date.After(asOf) {
			continue
		}
		for _, line := range e.Lines {
			tb[line.Account] = tb.Get(line.Account).Add(line.Signed())
		}
	}
	for code, v := range tb {
		tb[code] = model.RoundMoney(v)
	}
	return tb
}

// DeltaTB returns TrialBalance(end) - TrialBalance(start). Entries dated on
// start fall in the earlier snapshot and are excluded from the delta.
func (l *Ledger) DeltaTB(start, end time.Time) (Balances, error) {
	start, end = model.Day(start), model.Day(end)
	if !end.After(start) {
		return nil, &InvalidDateRangeError{Start: start, End: end}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trialBalance(end).Sub(l.trialBalance(start)), nil
}

// Entries returns a copy of the posted entries in posting order.
func (l *Ledger) Entries() []model.JournalEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.JournalEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of posted entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Replace swaps the whole journal for entries. Every entry is validated
// before the swap; on any failure the existing journal is kept.
func (l *Ledger) Replace(entries []model.JournalEntry) error {
	next := make([]model.JournalEntry, 0, len(entries))
	ids := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		e := Normalize(entry)
		if e.ID == "" {
			e.ID = id.New()
		}
		if err := ValidateEntry(e, l.chart); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := ids[e.ID]; dup {
			return fmt.Errorf("entry %d: %w", i, &DuplicateEntryError{EntryID: e.ID})
		}
		ids[e.ID] = struct{}{}
		next = append(next, e)
	}

	l.mu.Lock()
	l.entries = next
	l.ids = ids
	l.mu.Unlock()

	l.logger.Info("journal replaced", "entries", len(next))
	return nil
}

// Reset clears every posted entry.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.ids = make(map[string]struct{})
	l.mu.Unlock()
	l.logger.Info("journal reset")
}
