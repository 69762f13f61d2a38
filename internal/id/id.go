package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const dateFormat = "2006-01-02"

// Posting id prefixes, one per kind of business event.
const (
	PrefixInvoice        = "INV"
	PrefixCashReceipt    = "CASH"
	PrefixReturn         = "RET"
	PrefixARReceipt      = "AR"
	PrefixSupplierBill   = "APB"
	PrefixSupplierPay    = "APP"
	PrefixSalesOrder     = "SO"
	PrefixShipment       = "SHP"
	PrefixOrderReturn    = "RTN"
	PrefixOpeningBalance = "OB"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string. IDs generated within the same millisecond stay
// lexicographically increasing.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	v, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		panic(err)
	}
	return v.String()
}

// FormatPosting returns an id like "SO-1001".
func FormatPosting(prefix, ref string) string {
	return prefix + "-" + ref
}

// FormatDatedPosting returns an id like "INV-1001-2025-01-16".
func FormatDatedPosting(prefix, ref string, date time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, ref, date.Format(dateFormat))
}

// ParsePosting splits a posting id into prefix, reference and optional date.
// "INV-1001-2025-01-16" -> "INV", "1001", 2025-01-16.
// "SO-A-7" -> "SO", "A-7", zero time.
func ParsePosting(s string) (prefix, ref string, date time.Time, err error) {
	prefix, rest, ok := strings.Cut(s, "-")
	if !ok || prefix == "" || rest == "" {
		return "", "", time.Time{}, fmt.Errorf("invalid posting id format: %q", s)
	}

	if len(rest) > len(dateFormat)+1 {
		tail := rest[len(rest)-len(dateFormat):]
		if d, perr := time.Parse(dateFormat, tail); perr == nil && rest[len(rest)-len(dateFormat)-1] == '-' {
			return prefix, rest[:len(rest)-len(dateFormat)-1], d, nil
		}
	}
	return prefix, rest, time.Time{}, nil
}

// Prefix returns the posting prefix of s, or "" if s is not a posting id.
func Prefix(s string) string {
	p, _, _, err := ParsePosting(s)
	if err != nil {
		return ""
	}
	return p
}
