package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

// CSVHeader is the header row of the journal CSV. Each row is one line;
// consecutive rows sharing an entry_id form one entry.
const CSVHeader = "entry_id,date,memo,account,debit,credit"

const (
	numFields = 6
	colEntry  = 0
	colDate   = 1
	colMemo   = 2
	colAcct   = 3
	colDebit  = 4
	colCredit = 5
)

// CSVCodec encodes a journal as one CSV row per journal line.
type CSVCodec struct{}

// Format returns the codec name.
func (c *CSVCodec) Format() string { return "csv" }

// Encode writes the header and one row per line.
func (c *CSVCodec) Encode(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	row := 2
	for _, e := range entries {
		for _, l := range e.Lines {
			if err := cw.Write(MarshalLine(e, l)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads rows and regroups consecutive rows into entries.
func (c *CSVCodec) Decode(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("journal CSV has no header row")
	}
	if got := strings.Join(records[0], ","); got != CSVHeader {
		return nil, fmt.Errorf("unexpected journal CSV header %q (want %q)", got, CSVHeader)
	}

	var entries []model.JournalEntry
	for i, rec := range records[1:] {
		e, line, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		if n := len(entries); n > 0 && entries[n-1].ID == e.ID && e.ID != "" {
			last := &entries[n-1]
			if !last.Date.Equal(e.Date) {
				return nil, fmt.Errorf("row %d: entry %s has conflicting dates", i+2, e.ID)
			}
			last.Lines = append(last.Lines, line)
			continue
		}
		e.Lines = []model.JournalLine{line}
		entries = append(entries, e)
	}
	return entries, nil
}

// MarshalLine converts one line of e to a CSV row. Zero amounts are blank.
func MarshalLine(e model.JournalEntry, l model.JournalLine) []string {
	row := make([]string, numFields)
	row[colEntry] = e.ID
	row[colDate] = e.Date.Format(model.DateFormat)
	row[colMemo] = e.Memo
	row[colAcct] = l.Account
	if !l.Debit.IsZero() {
		row[colDebit] = l.Debit.StringFixed(model.MoneyPlaces)
	}
	if !l.Credit.IsZero() {
		row[colCredit] = l.Credit.StringFixed(model.MoneyPlaces)
	}
	return row
}

// UnmarshalLine parses a CSV row into its entry header and line.
func UnmarshalLine(record []string) (model.JournalEntry, model.JournalLine, error) {
	if len(record) != numFields {
		return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := model.ParseDate(strings.TrimSpace(record[colDate]))
	if err != nil {
		return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	debit, err := parseAmount(record[colDebit])
	if err != nil {
		return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
	}
	credit, err := parseAmount(record[colCredit])
	if err != nil {
		return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
	}

	e := model.JournalEntry{
		ID:   strings.TrimSpace(record[colEntry]),
		Date: date,
		Memo: record[colMemo],
	}
	l := model.JournalLine{
		Account: strings.TrimSpace(record[colAcct]),
		Debit:   debit,
		Credit:  credit,
	}
	return e, l, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
