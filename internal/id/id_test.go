package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	a := New()
	b := New()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "ULIDs are monotonic")
}

func TestFormatPosting(t *testing.T) {
	assert.Equal(t, "SO-1001", FormatPosting(PrefixSalesOrder, "1001"))
	assert.Equal(t, "APB-B-7", FormatPosting(PrefixSupplierBill, "B-7"))
}

func TestFormatDatedPosting(t *testing.T) {
	tests := []struct {
		prefix, ref string
		date        time.Time
		want        string
	}{
		{PrefixInvoice, "1001", date(2025, 1, 16), "INV-1001-2025-01-16"},
		{PrefixCashReceipt, "O-1", date(2025, 1, 20), "CASH-O-1-2025-01-20"},
		{PrefixReturn, "A", date(2025, 12, 1), "RET-A-2025-12-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDatedPosting(tt.prefix, tt.ref, tt.date))
	}
}

func TestParsePosting(t *testing.T) {
	tests := []struct {
		input      string
		wantPrefix string
		wantRef    string
		wantDate   time.Time
	}{
		{"INV-1001-2025-01-16", "INV", "1001", date(2025, 1, 16)},
		{"CASH-O-1-2025-01-20", "CASH", "O-1", date(2025, 1, 20)},
		{"SO-1001", "SO", "1001", time.Time{}},
		{"APB-B-7", "APB", "B-7", time.Time{}},
	}
	for _, tt := range tests {
		prefix, ref, d, err := ParsePosting(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantPrefix, prefix)
		assert.Equal(t, tt.wantRef, ref)
		assert.True(t, tt.wantDate.Equal(d), "date for %s", tt.input)
	}
}

func TestParsePosting_Errors(t *testing.T) {
	for _, input := range []string{"", "T1", "-1001", "SO-"} {
		_, _, _, err := ParsePosting(input)
		assert.Error(t, err, "expected error for input: %q", input)
	}
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "SHP", Prefix("SHP-1001"))
	assert.Equal(t, "", Prefix("T1"))
}
