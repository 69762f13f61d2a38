// Package pricing computes sales-line price waterfalls from ordered pricing
// conditions.
package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Basis says how a condition's value is read.
type Basis string

const (
	BasisPercent Basis = "PERCENT"
	BasisAmount  Basis = "AMOUNT"
)

// Scope says whether a condition applies per unit or to the whole line.
type Scope string

const (
	ScopePerUnit Scope = "PER_UNIT"
	ScopeTotal   Scope = "TOTAL"
)

// Sign is "-" for discounts and "+" for surcharges.
type Sign string

const (
	SignMinus Sign = "-"
	SignPlus  Sign = "+"
)

// Category groups conditions for revenue waterfall reporting.
type Category string

const (
	CategoryNone        Category = ""
	CategoryStructural  Category = "STRUCTURAL"
	CategoryPromotional Category = "PROMOTIONAL"
	CategoryInvoice     Category = "INVOICE"
	CategoryCancelled   Category = "CANCELLED"
)

// Well-known condition codes.
const (
	CodeBasePrice      = "PR00"
	CodeCustomerDisc   = "K007"
	CodePromoDisc      = "ZR01"
	CodeEarlyPayment   = "SKTO"
	CodeFreight        = "ZFR1"
	CodeSurcharge      = "ZSUR"
	CodeVolumeDisc     = "ZVOL"
	CodeRebate         = "ZREB"
	CodeFXAdjustment   = "ZFX"
	CodeRoundingAdjust = "ZRND"
)

// DefaultSequence is the evaluation order given to conditions that set none.
const DefaultSequence = 100

// Condition is one discount or surcharge in a waterfall. MinFloor and
// MaxCeiling bound the per-unit price after the condition applies.
type Condition struct {
	Code       string
	Label      string
	Basis      Basis
	Value      decimal.Decimal
	Scope      Scope
	Sign       Sign
	Category   Category
	Sequence   int
	MinFloor   *decimal.Decimal
	MaxCeiling *decimal.Decimal

	// Optional applicability keys. Zero values match everything.
	ActiveFrom time.Time
	ActiveTo   time.Time
	CustomerID string
	MaterialID string
}

// Validate checks the enumerations and bounds of a condition.
func (c Condition) Validate() error {
	switch c.Basis {
	case BasisPercent, BasisAmount:
	default:
		return fmt.Errorf("condition %s: %w: unknown basis %q", c.Code, ErrInvalidCondition, c.Basis)
	}
	switch c.Scope {
	case ScopePerUnit, ScopeTotal:
	default:
		return fmt.Errorf("condition %s: %w: unknown scope %q", c.Code, ErrInvalidCondition, c.Scope)
	}
	switch c.Sign {
	case SignMinus, SignPlus:
	default:
		return fmt.Errorf("condition %s: %w: unknown sign %q", c.Code, ErrInvalidCondition, c.Sign)
	}
	switch c.Category {
	case CategoryNone, CategoryStructural, CategoryPromotional, CategoryInvoice, CategoryCancelled:
	default:
		return fmt.Errorf("condition %s: %w: unknown category %q", c.Code, ErrInvalidCondition, c.Category)
	}
	if c.MinFloor != nil && c.MaxCeiling != nil && c.MinFloor.GreaterThan(*c.MaxCeiling) {
		return fmt.Errorf("condition %s: %w: floor %s above ceiling %s", c.Code, ErrInvalidCondition, c.MinFloor, c.MaxCeiling)
	}
	return nil
}

// ParseBasis parses a basis name case-insensitively.
func ParseBasis(s string) (Basis, error) {
	b := Basis(strings.ToUpper(strings.TrimSpace(s)))
	if b != BasisPercent && b != BasisAmount {
		return "", fmt.Errorf("%w: unknown basis %q", ErrInvalidCondition, s)
	}
	return b, nil
}

// ParseScope parses a scope name case-insensitively. Empty means TOTAL.
func ParseScope(s string) (Scope, error) {
	sc := Scope(strings.ToUpper(strings.TrimSpace(s)))
	switch sc {
	case "":
		return ScopeTotal, nil
	case ScopePerUnit, ScopeTotal:
		return sc, nil
	}
	return "", fmt.Errorf("%w: unknown scope %q", ErrInvalidCondition, s)
}

// ParseSign parses "+" or "-". Empty means discount.
func ParseSign(s string) (Sign, error) {
	switch strings.TrimSpace(s) {
	case "", "-":
		return SignMinus, nil
	case "+":
		return SignPlus, nil
	}
	return "", fmt.Errorf("%w: unknown sign %q", ErrInvalidCondition, s)
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CategoryNone, CategoryStructural, CategoryPromotional, CategoryInvoice, CategoryCancelled:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidCondition, s)
}
