package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/model"
)

func TestPost_InvoiceCollectionReturn(t *testing.T) {
	l := newLedger()
	require.NoError(t, postReturnScenario(l))
	assert.Equal(t, 3, l.Len())

	delta, err := l.DeltaTB(date(2025, 1, 1), date(2025, 1, 31))
	require.NoError(t, err)

	assert.True(t, delta.Get(accounts.Revenue).Equal(dec("-10000")))
	assert.True(t, delta.Get(accounts.SalesReturns).Equal(dec("2500")))
	assert.True(t, delta.Get(accounts.Cash).Equal(dec("8500")))
	// 9,000 collected plus 2,000 returned against a 10,000 invoice over-relieves AR.
	assert.True(t, delta.Get(accounts.AccountsReceivable).Equal(dec("-1000")))
	assert.True(t, delta.Sum().IsZero())
}

func TestPost_ReturnThenSettle(t *testing.T) {
	l := newLedger()
	for _, e := range []model.JournalEntry{
		entry("INV-1002-2025-01-16", date(2025, 1, 16),
			dr(accounts.AccountsReceivable, "10000"), cr(accounts.Revenue, "10000")),
		entry("RET-1002-2025-01-18", date(2025, 1, 18),
			dr(accounts.SalesReturns, "3000"), cr(accounts.AccountsReceivable, "3000")),
		entry("CASH-1002-2025-01-20", date(2025, 1, 20),
			dr(accounts.Cash, "6500"), dr(accounts.SalesReturns, "500"), cr(accounts.AccountsReceivable, "7000")),
	} {
		_, err := l.Post(e)
		require.NoError(t, err)
	}

	delta, err := l.DeltaTB(date(2025, 1, 1), date(2025, 1, 31))
	require.NoError(t, err)
	assert.True(t, delta.Get(accounts.AccountsReceivable).IsZero())
	assert.True(t, delta.Get(accounts.SalesReturns).Equal(dec("3500")))
	assert.True(t, delta.Get(accounts.Cash).Equal(dec("6500")))
}

func TestPost_UnbalancedRejected(t *testing.T) {
	l := newLedger()
	require.NoError(t, postReturnScenario(l))

	_, err := l.Post(entry("BAD-1", date(2025, 1, 23),
		dr(accounts.Cash, "100.00"), cr(accounts.Revenue, "99.99")))

	var unbalanced *UnbalancedEntryError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, "BAD-1", unbalanced.EntryID)
	assert.True(t, unbalanced.Debits.Equal(dec("100.00")))
	assert.True(t, unbalanced.Credits.Equal(dec("99.99")))
	assert.Equal(t, 3, l.Len())
}

func TestPost_RoundsBeforeBalancing(t *testing.T) {
	l := newLedger()
	// 33.335 rounds half away from zero to 33.34 on both sides.
	entryID, err := l.Post(entry("R-1", date(2025, 2, 1),
		dr(accounts.Cash, "33.335"), cr(accounts.Revenue, "33.335")))
	require.NoError(t, err)
	assert.Equal(t, "R-1", entryID)

	posted := l.Entries()[0]
	assert.True(t, posted.Lines[0].Debit.Equal(dec("33.34")))
	assert.True(t, posted.Lines[1].Credit.Equal(dec("33.34")))
}

func TestPost_RoundingCanUnbalance(t *testing.T) {
	l := newLedger()
	_, err := l.Post(entry("R-2", date(2025, 2, 1),
		dr(accounts.Cash, "10.004"), dr(accounts.Cash, "10.004"), cr(accounts.Revenue, "20.008")))

	var unbalanced *UnbalancedEntryError
	require.ErrorAs(t, err, &unbalanced)
	assert.True(t, unbalanced.Debits.Equal(dec("20.00")))
	assert.True(t, unbalanced.Credits.Equal(dec("20.01")))
}

func TestPost_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		entry  model.JournalEntry
		check  func(t *testing.T, err error)
		reason string
	}{
		{
			name:  "single line",
			entry: entry("E-1", date(2025, 1, 2), dr(accounts.Cash, "1")),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrTooFewLines)
			},
			reason: ReasonMalformed,
		},
		{
			name:  "missing date",
			entry: model.JournalEntry{ID: "E-2", Lines: []model.JournalLine{dr(accounts.Cash, "1"), cr(accounts.Revenue, "1")}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMissingDate)
			},
			reason: ReasonMalformed,
		},
		{
			name:  "negative amount",
			entry: entry("E-3", date(2025, 1, 2), dr(accounts.Cash, "-5"), cr(accounts.Revenue, "-5")),
			check: func(t *testing.T, err error) {
				var target *InvalidAmountError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, accounts.Cash, target.Account)
			},
			reason: ReasonInvalidAmount,
		},
		{
			name: "both sides on one line",
			entry: entry("E-4", date(2025, 1, 2),
				model.JournalLine{Account: accounts.Cash, Debit: dec("5"), Credit: dec("5")},
				cr(accounts.Revenue, "0")),
			check: func(t *testing.T, err error) {
				var target *InvalidAmountError
				require.ErrorAs(t, err, &target)
			},
			reason: ReasonInvalidAmount,
		},
		{
			name:  "unknown account",
			entry: entry("E-5", date(2025, 1, 2), dr("9999", "5"), cr(accounts.Revenue, "5")),
			check: func(t *testing.T, err error) {
				var target *UnknownAccountError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "9999", target.Account)
				assert.Equal(t, "E-5", target.EntryID)
			},
			reason: ReasonUnknownAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger()
			_, err := l.Post(tt.entry)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.reason, Reason(err))
			assert.True(t, IsValidation(err))
			assert.Equal(t, 0, l.Len())
		})
	}
}

func TestPost_DuplicateID(t *testing.T) {
	l := newLedger()
	e := entry("DUP-1", date(2025, 1, 2), dr(accounts.Cash, "5"), cr(accounts.Revenue, "5"))
	_, err := l.Post(e)
	require.NoError(t, err)

	_, err = l.Post(e)
	var dup *DuplicateEntryError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, ReasonDuplicateID, Reason(err))
	assert.False(t, IsValidation(err))
	assert.Equal(t, 1, l.Len())
}

func TestPost_GeneratesID(t *testing.T) {
	l := newLedger()
	a, err := l.Post(entry("", date(2025, 1, 2), dr(accounts.Cash, "5"), cr(accounts.Revenue, "5")))
	require.NoError(t, err)
	b, err := l.Post(entry("", date(2025, 1, 2), dr(accounts.Cash, "5"), cr(accounts.Revenue, "5")))
	require.NoError(t, err)

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, l.Entries()[0].ID)
}

func TestPost_CallerCannotMutatePostedLines(t *testing.T) {
	l := newLedger()
	e := entry("M-1", date(2025, 1, 2), dr(accounts.Cash, "5"), cr(accounts.Revenue, "5"))
	_, err := l.Post(e)
	require.NoError(t, err)

	e.Lines[0].Debit = dec("500")
	got := l.Entries()
	got[0].Lines[1].Credit = dec("500")

	tb := l.TrialBalance(date(2025, 1, 31))
	assert.True(t, tb.Get(accounts.Cash).Equal(dec("5")))
	assert.True(t, tb.Get(accounts.Revenue).Equal(dec("-5")))
}

func TestTrialBalance_AllAccountsPresent(t *testing.T) {
	l := newLedger()
	tb := l.TrialBalance(date(2025, 1, 31))

	assert.Len(t, tb, len(accounts.Default().Codes()))
	for code, v := range tb {
		assert.True(t, v.IsZero(), "account %s", code)
	}
}

func TestTrialBalance_AsOfIsInclusive(t *testing.T) {
	l := newLedger()
	require.NoError(t, postReturnScenario(l))

	tests := []struct {
		name string
		asOf string
		ar   string
	}{
		{"before first entry", "2025-01-15", "0"},
		{"on invoice date", "2025-01-16", "10000"},
		{"after collection", "2025-01-20", "1000"},
		{"after return", "2025-01-22", "-1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asOf, err := model.ParseDate(tt.asOf)
			require.NoError(t, err)
			tb := l.TrialBalance(asOf)
			assert.True(t, tb.Get(accounts.AccountsReceivable).Equal(dec(tt.ar)), "got %s", tb.Get(accounts.AccountsReceivable))
			assert.True(t, tb.Sum().IsZero())
		})
	}
}

func TestTrialBalance_Idempotent(t *testing.T) {
	l := newLedger()
	require.NoError(t, postReturnScenario(l))

	a := l.TrialBalance(date(2025, 1, 31))
	b := l.TrialBalance(date(2025, 1, 31))
	require.Equal(t, a.Codes(), b.Codes())
	for code := range a {
		assert.True(t, a[code].Equal(b[code]), "account %s", code)
	}
}

func TestDeltaTB_ExcludesStartDate(t *testing.T) {
	l := newLedger()
	require.NoError(t, postReturnScenario(l))

	delta, err := l.DeltaTB(date(2025, 1, 16), date(2025, 1, 31))
	require.NoError(t, err)
	assert.True(t, delta.Get(accounts.Revenue).IsZero())
	assert.True(t, delta.Get(accounts.AccountsReceivable).Equal(dec("-11000")))
}

func TestDeltaTB_MatchesSnapshotDifference(t *testing.T) {
	l := newLedger()
	require.NoError(t, postReturnScenario(l))

	start, end := date(2025, 1, 17), date(2025, 1, 21)
	delta, err := l.DeltaTB(start, end)
	require.NoError(t, err)

	before, after := l.TrialBalance(start), l.TrialBalance(end)
	for _, code := range l.Chart().Codes() {
		assert.True(t, delta.Get(code).Equal(after.Get(code).Sub(before.Get(code))), "account %s", code)
	}
}

func TestDeltaTB_Additive(t *testing.T) {
	l := newLedger()
	require.NoError(t, postReturnScenario(l))
	_, err := l.Post(entry("ODD-1", date(2025, 1, 18), dr(accounts.Cash, "0.005"), cr(accounts.OtherIncome, "0.005")))
	require.NoError(t, err)

	for s := 10; s <= 27; s++ {
		for m := s + 1; m <= 27; m++ {
			for e := m + 1; e <= 27; e++ {
				start, mid, end := date(2025, 1, s), date(2025, 1, m), date(2025, 1, e)
				whole, err := l.DeltaTB(start, end)
				require.NoError(t, err)
				first, err := l.DeltaTB(start, mid)
				require.NoError(t, err)
				second, err := l.DeltaTB(mid, end)
				require.NoError(t, err)

				sum := first.Add(second)
				for _, code := range l.Chart().Codes() {
					if !whole.Get(code).Equal(sum.Get(code)) {
						t.Fatalf("account %s: delta %d..%d = %s, split at %d gives %s",
							code, s, e, whole.Get(code), m, sum.Get(code))
					}
				}
			}
		}
	}
}

func TestDeltaTB_InvalidRange(t *testing.T) {
	l := newLedger()
	for _, tt := range []struct {
		name       string
		start, end int
	}{
		{"equal", 31, 31},
		{"reversed", 31, 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.DeltaTB(date(2025, 1, tt.start), date(2025, 1, tt.end))
			var target *InvalidDateRangeError
			require.ErrorAs(t, err, &target)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestReplace(t *testing.T) {
	l := newLedger()
	require.NoError(t, postReturnScenario(l))

	err := l.Replace([]model.JournalEntry{
		entry("A", date(2025, 3, 1), dr(accounts.Cash, "10"), cr(accounts.CommonStock, "10")),
		entry("B", date(2025, 3, 2), dr(accounts.Cash, "10"), cr(accounts.Revenue, "9")),
	})
	var unbalanced *UnbalancedEntryError
	require.ErrorAs(t, err, &unbalanced)
	assert.Contains(t, err.Error(), "entry 1")
	assert.Equal(t, 3, l.Len(), "failed replace must keep the existing journal")

	require.NoError(t, l.Replace([]model.JournalEntry{
		entry("A", date(2025, 3, 1), dr(accounts.Cash, "10"), cr(accounts.CommonStock, "10")),
	}))
	assert.Equal(t, 1, l.Len())

	_, err = l.Post(entry("A", date(2025, 3, 2), dr(accounts.Cash, "1"), cr(accounts.CommonStock, "1")))
	var dup *DuplicateEntryError
	assert.ErrorAs(t, err, &dup)
}

func TestReplace_DuplicateIDs(t *testing.T) {
	l := newLedger()
	e := entry("A", date(2025, 3, 1), dr(accounts.Cash, "10"), cr(accounts.CommonStock, "10"))
	err := l.Replace([]model.JournalEntry{e, e})
	var dup *DuplicateEntryError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 0, l.Len())
}

func TestReset(t *testing.T) {
	l := newLedger()
	require.NoError(t, postReturnScenario(l))
	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.TrialBalance(date(2025, 12, 31)).Get(accounts.Cash).IsZero())

	// Ids are free again after a reset.
	require.NoError(t, postReturnScenario(l))
}

type recordingObserver struct {
	mu         sync.Mutex
	posted     int
	rejected   []string
	rejectedID []string
}

func (r *recordingObserver) Posted(model.JournalEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posted++
}

func (r *recordingObserver) Rejected(e model.JournalEntry, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, reason)
	r.rejectedID = append(r.rejectedID, e.ID)
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	l := New(accounts.Default(), WithObserver(obs))
	require.NoError(t, postReturnScenario(l))
	_, err := l.Post(entry("X", date(2025, 1, 2), dr(accounts.Cash, "1"), cr("0000", "1")))
	require.Error(t, err)

	assert.Equal(t, 3, obs.posted)
	assert.Equal(t, []string{ReasonUnknownAccount}, obs.rejected)
	assert.Equal(t, []string{"X"}, obs.rejectedID)
}

func TestObserver_Multiple(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	l := New(accounts.Default(), WithObserver(a), WithObserver(b))
	require.NoError(t, postReturnScenario(l))

	assert.Equal(t, 3, a.posted)
	assert.Equal(t, 3, b.posted)
}

func TestPost_Concurrent(t *testing.T) {
	l := newLedger()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Post(entry(fmt.Sprintf("C-%d", i), date(2025, 1, 2),
				dr(accounts.Cash, "1"), cr(accounts.Revenue, "1")))
			_ = l.TrialBalance(date(2025, 1, 31))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, l.Len())
	assert.True(t, l.TrialBalance(date(2025, 1, 31)).Get(accounts.Cash).Equal(dec("50")))
}

func TestReason_Unknown(t *testing.T) {
	assert.Equal(t, ReasonMalformed, Reason(errors.New("boom")))
	assert.False(t, IsValidation(errors.New("boom")))
}
