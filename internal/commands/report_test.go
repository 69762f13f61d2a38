package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Statements(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "trial balance",
			args: []string{"report", "tb", "--seed", "demo", "--as-of", "2025-03-31"},
			want: []string{"Trial balance as of 2025-03-31", "260000.00", "-180000.00"},
		},
		{
			name: "cumulative income statement",
			args: []string{"report", "is", "--seed", "demo", "--as-of", "2025-03-31"},
			want: []string{"Income statement through 2025-03-31", "180000.00", "39000.00"},
		},
		{
			name: "period income statement",
			args: []string{"report", "is", "--seed", "january", "--start", "2024-12-31", "--end", "2025-01-31"},
			want: []string{"Income statement 2024-12-31 to 2025-01-31", "15000.00", "1200.00"},
		},
		{
			name: "balance sheet",
			args: []string{"report", "bs", "--seed", "demo", "--as-of", "2025-03-31"},
			want: []string{"Total assets", "605000.00", "39000.00"},
		},
		{
			name: "cash flow",
			args: []string{"report", "cf", "--seed", "demo", "--start", "2024-12-31", "--end", "2025-03-31"},
			want: []string{"Net Operating", "60000.00", "-300000.00", "500000.00", "Ending cash", "260000.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runRedline(t, tt.args...)
			require.NoError(t, err, out)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestReport_InvalidDates(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad as-of", []string{"report", "tb", "--seed", "demo", "--as-of", "31/03/2025"}},
		{"start after end", []string{"report", "cf", "--seed", "demo", "--start", "2025-04-01", "--end", "2025-03-31"}},
		{"unknown seed", []string{"report", "bs", "--seed", "february"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRedline(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestReport_UsesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := runRedline(t, "init", dir, "--name", "Test Biz", "--seed", "demo")
	require.NoError(t, err)

	// No --seed: the seed comes from redline.yaml in the working directory.
	out, err := runRedlineIn(t, dir, "report", "bs", "--as-of", "2025-03-31")
	require.NoError(t, err, out)
	assert.Contains(t, out, "605000.00")
}

func TestReport_Export(t *testing.T) {
	tests := []struct {
		format string
		magic  string
	}{
		{"xlsx", "PK"},
		{"pdf", "%PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "pack."+tt.format)
			out, err := runRedlineIn(t, dir, "report", "export", "--seed", "demo",
				"--start", "2024-12-31", "--end", "2025-03-31", "--format", tt.format, "--out", path)
			require.NoError(t, err, out)
			assert.Contains(t, out, "Wrote "+path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.magic, string(data[:len(tt.magic)]))
		})
	}
}

func TestReport_ExportDefaultPath(t *testing.T) {
	dir := t.TempDir()
	out, err := runRedlineIn(t, dir, "report", "export", "--seed", "demo", "--end", "2025-03-31")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(dir, "exports", "statements-2025-03-31.xlsx"))
	require.NoError(t, err)
}

func TestReport_ExportUnknownFormat(t *testing.T) {
	out, err := runRedline(t, "report", "export", "--seed", "demo", "--end", "2025-03-31", "--format", "docx")
	require.Error(t, err)
	assert.Contains(t, out, "unknown export format")
}
