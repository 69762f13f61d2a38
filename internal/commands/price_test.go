package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_DefaultConditions(t *testing.T) {
	out, err := runRedline(t, "price", "--units", "10", "--list-price", "1200",
		"--customer", "CUST-RETAIL", "--material", "ENG-V6", "--defaults")
	require.NoError(t, err, out)

	// 12000 less 8% customer discount, plus 15/unit freight.
	assert.Contains(t, out, "K007")
	assert.Contains(t, out, "-960.00")
	assert.Contains(t, out, "ZFR1")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "11190.00")
}

func TestPrice_ConditionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conditions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`- code: K007
  label: Customer discount
  basis: PERCENT
  value: "10"
  sequence: 20
- code: ZSUR
  label: Handling surcharge
  basis: AMOUNT
  value: "25"
  sign: "+"
  sequence: 30
`), 0o644))

	out, err := runRedline(t, "price", "--units", "1", "--list-price", "1000", "--conditions", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "-100.00")
	assert.Contains(t, out, "925.00")
}

func TestPrice_Errors(t *testing.T) {
	dir := t.TempDir()
	badBasis := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badBasis, []byte("- code: X\n  basis: FRACTION\n  value: \"1\"\n"), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{"missing list price", []string{"price", "--units", "1"}},
		{"not a number", []string{"price", "--units", "ten", "--list-price", "100"}},
		{"negative list price", []string{"price", "--units", "1", "--list-price", "-5"}},
		{"bad basis", []string{"price", "--list-price", "100", "--conditions", badBasis}},
		{"missing conditions file", []string{"price", "--list-price", "100", "--conditions", filepath.Join(dir, "nope.yaml")}},
		{"bad date", []string{"price", "--list-price", "100", "--date", "tomorrow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRedline(t, tt.args...)
			require.Error(t, err)
		})
	}
}
