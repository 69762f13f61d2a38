package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestJournalEntryBalanced(t *testing.T) {
	tests := []struct {
		name  string
		lines []JournalLine
		want  bool
	}{
		{"two legs", []JournalLine{Debit("1100", dec("100.00")), Credit("4000", dec("100.00"))}, true},
		{"off by a cent", []JournalLine{Debit("1100", dec("100.00")), Credit("4000", dec("99.99"))}, false},
		{"split debit", []JournalLine{Debit("1000", dec("60")), Debit("4100", dec("40")), Credit("1100", dec("100"))}, true},
		{"empty", nil, true},
	}
	for _, tt := range tests {
		e := JournalEntry{ID: "T", Date: time.Now(), Lines: tt.lines}
		assert.Equal(t, tt.want, e.IsBalanced(), tt.name)
	}
}

func TestLineRounding(t *testing.T) {
	assert.Equal(t, "10.13", Debit("1000", dec("10.125")).Debit.StringFixed(2))
	assert.Equal(t, "0.01", Credit("1000", dec("0.005")).Credit.StringFixed(2))
	assert.True(t, Debit("1000", dec("5")).Credit.IsZero())
}

func TestLineSigned(t *testing.T) {
	assert.True(t, Debit("1000", dec("5")).Signed().Equal(dec("5")))
	assert.True(t, Credit("1000", dec("5")).Signed().Equal(dec("-5")))
}

func TestCloneIsIndependent(t *testing.T) {
	e := JournalEntry{ID: "T", Lines: []JournalLine{Debit("1000", dec("1")), Credit("3000", dec("1"))}}
	c := e.Clone()
	c.Lines[0].Account = "9999"
	assert.Equal(t, "1000", e.Lines[0].Account)
}

func TestAccountRange(t *testing.T) {
	assert.Equal(t, "1xxx", Account{Code: "1590"}.Range())
	assert.Equal(t, "7xxx", Account{Code: "7300"}.Range())
	assert.Equal(t, "", Account{}.Range())
}

func TestClassHelpers(t *testing.T) {
	assert.True(t, ClassContraAsset.IsBalanceSheet())
	assert.False(t, ClassRevenue.IsBalanceSheet())
	assert.True(t, ClassTax.Valid())
	assert.False(t, AccountClass("expense").Valid())
	assert.True(t, CashFlowNone.Valid())
	assert.False(t, CashFlowClass("CFO").Valid())
}
