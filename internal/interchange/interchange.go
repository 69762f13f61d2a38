// Package interchange reads and writes whole journals in portable formats.
package interchange

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/model"
)

// ErrUnknownFormat is returned when no codec is registered for a format.
var ErrUnknownFormat = errors.New("unknown journal format")

// ErrMalformed wraps decode failures from Import.
var ErrMalformed = errors.New("malformed journal")

// Codec converts journal entries to and from a serialized form.
type Codec interface {
	Encode(w io.Writer, entries []model.JournalEntry) error
	Decode(r io.Reader) ([]model.JournalEntry, error)
	Format() string
}

// Registry holds named codecs.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry creates an empty codec registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register adds a codec. Panics on duplicate format.
func (r *Registry) Register(c Codec) {
	key := strings.ToLower(c.Format())
	if _, ok := r.codecs[key]; ok {
		panic("duplicate journal format: " + key)
	}
	r.codecs[key] = c
}

// Get returns the codec for format, or nil.
func (r *Registry) Get(format string) Codec {
	return r.codecs[strings.ToLower(format)]
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with the JSON and CSV codecs.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&JSONCodec{})
	r.Register(&CSVCodec{})
	return r
}

func (r *Registry) lookup(format string) (Codec, error) {
	c := r.Get(format)
	if c == nil {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownFormat, format, strings.Join(r.Formats(), ", "))
	}
	return c, nil
}

// Export writes every posted entry of l in the given format.
func (r *Registry) Export(w io.Writer, l *ledger.Ledger, format string) error {
	c, err := r.lookup(format)
	if err != nil {
		return err
	}
	return c.Encode(w, l.Entries())
}

// Import decodes a journal and replaces the contents of l with it. The ledger
// is untouched if decoding or validation fails. It returns the number of
// entries loaded.
func (r *Registry) Import(rd io.Reader, l *ledger.Ledger, format string) (int, error) {
	c, err := r.lookup(format)
	if err != nil {
		return 0, err
	}
	entries, err := c.Decode(rd)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := l.Replace(entries); err != nil {
		return 0, fmt.Errorf("loading journal: %w", err)
	}
	return len(entries), nil
}
