package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

// Balances maps account code to a signed balance under the debit-positive,
// credit-negative convention.
type Balances map[string]decimal.Decimal

// Get returns the balance for code, or zero.
func (b Balances) Get(code string) decimal.Decimal {
	if v, ok := b[code]; ok {
		return v
	}
	return decimal.Zero
}

// Sum returns the total of every balance. For any set of balanced postings it is zero.
func (b Balances) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return model.RoundMoney(total)
}

// Sub returns b - other per account, rounded to cents. Accounts missing from
// either side count as zero.
func (b Balances) Sub(other Balances) Balances {
	out := make(Balances, len(b))
	for code, v := range b {
		out[code] = model.RoundMoney(v.Sub(other.Get(code)))
	}
	for code, v := range other {
		if _, ok := b[code]; !ok {
			out[code] = model.RoundMoney(v.Neg())
		}
	}
	return out
}

// Add returns b + other per account, rounded to cents.
func (b Balances) Add(other Balances) Balances {
	return b.Sub(other.negate())
}

func (b Balances) negate() Balances {
	out := make(Balances, len(b))
	for code, v := range b {
		out[code] = v.Neg()
	}
	return out
}

// Codes returns the account codes in ascending order.
func (b Balances) Codes() []string {
	codes := make([]string, 0, len(b))
	for code := range b {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
