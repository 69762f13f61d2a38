package interchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

// JSONCodec encodes a journal as {"entries": [...]} with decimal strings for
// amounts and YYYY-MM-DD dates.
type JSONCodec struct{}

// Entries is a pointer so a document without the key can be told apart
// from an empty journal.
type jsonDocument struct {
	Entries *[]jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID    string     `json:"id"`
	Date  string     `json:"date"`
	Memo  string     `json:"memo,omitempty"`
	Lines []jsonLine `json:"lines"`
}

type jsonLine struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// Format returns the codec name.
func (c *JSONCodec) Format() string { return "json" }

// Encode writes entries as an indented JSON document.
func (c *JSONCodec) Encode(w io.Writer, entries []model.JournalEntry) error {
	list := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{
			ID:    e.ID,
			Date:  e.Date.Format(model.DateFormat),
			Memo:  e.Memo,
			Lines: make([]jsonLine, 0, len(e.Lines)),
		}
		for _, l := range e.Lines {
			je.Lines = append(je.Lines, jsonLine{Account: l.Account, Debit: l.Debit, Credit: l.Credit})
		}
		list = append(list, je)
	}
	doc := jsonDocument{Entries: &list}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding journal JSON: %w", err)
	}
	return nil
}

// Decode reads a JSON journal document. Amounts may be strings or numbers.
func (c *JSONCodec) Decode(r io.Reader) ([]model.JournalEntry, error) {
	var doc jsonDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding journal JSON: %w", err)
	}
	if doc.Entries == nil {
		return nil, errors.New(`journal JSON has no "entries" list`)
	}

	entries := make([]model.JournalEntry, 0, len(*doc.Entries))
	for i, je := range *doc.Entries {
		date, err := model.ParseDate(je.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: parsing date %q: %w", i, je.Date, err)
		}
		e := model.JournalEntry{ID: je.ID, Date: date, Memo: je.Memo}
		for _, l := range je.Lines {
			e.Lines = append(e.Lines, model.JournalLine{Account: l.Account, Debit: l.Debit, Credit: l.Credit})
		}
		entries = append(entries, e)
	}
	return entries, nil
}
