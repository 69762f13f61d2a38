package pricing

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

// UnitPricePlaces is the precision kept on interim unit prices.
const UnitPricePlaces = 6

// ErrNegativeInput is returned for a negative list price or unit count.
var ErrNegativeInput = errors.New("pricing inputs must not be negative")

// ErrInvalidCondition wraps every condition validation and parse failure.
var ErrInvalidCondition = errors.New("invalid pricing condition")

// Step records the effect of one applied condition.
type Step struct {
	Code              string
	Label             string
	Category          Category
	Amount            decimal.Decimal
	InterimUnitPrice  decimal.Decimal
	InterimLineAmount decimal.Decimal
	Clamped           bool
}

// Result is a priced line. BaseLineAmount plus the sum of step amounts always
// equals FinalLineAmount.
type Result struct {
	Units           decimal.Decimal
	BaseUnitPrice   decimal.Decimal
	BaseLineAmount  decimal.Decimal
	Steps           []Step
	FinalUnitPrice  decimal.Decimal
	FinalLineAmount decimal.Decimal
}

// Compute runs conditions over a base unit price in sequence order, ties kept
// in input order. Conditions with a value of zero or less are skipped. With
// zero units the unit price carries through unchanged.
func Compute(baseUnitPrice, units decimal.Decimal, conditions []Condition) (Result, error) {
	if baseUnitPrice.IsNegative() || units.IsNegative() {
		return Result{}, ErrNegativeInput
	}

	conds := make([]Condition, 0, len(conditions))
	for _, c := range conditions {
		if !c.Value.IsPositive() {
			continue
		}
		if err := c.Validate(); err != nil {
			return Result{}, err
		}
		conds = append(conds, c)
	}
	sort.SliceStable(conds, func(i, j int) bool { return conds[i].Sequence < conds[j].Sequence })

	unit := baseUnitPrice
	line := model.RoundMoney(units.Mul(baseUnitPrice))
	res := Result{
		Units:          units,
		BaseUnitPrice:  baseUnitPrice,
		BaseLineAmount: line,
		Steps:          make([]Step, 0, len(conds)),
	}

	for _, c := range conds {
		amt := model.RoundMoney(conditionAmount(c, units, unit, line))
		newLine := line.Add(amt)
		newUnit := unitPrice(newLine, units, unit)

		clamped := false
		if c.MinFloor != nil && newUnit.LessThan(*c.MinFloor) {
			newUnit = *c.MinFloor
			newLine = model.RoundMoney(newUnit.Mul(units))
			clamped = true
		}
		if c.MaxCeiling != nil && newUnit.GreaterThan(*c.MaxCeiling) {
			newUnit = *c.MaxCeiling
			newLine = model.RoundMoney(newUnit.Mul(units))
			clamped = true
		}
		if clamped {
			amt = newLine.Sub(line)
		}

		res.Steps = append(res.Steps, Step{
			Code:              c.Code,
			Label:             c.Label,
			Category:          c.Category,
			Amount:            amt,
			InterimUnitPrice:  newUnit,
			InterimLineAmount: newLine,
			Clamped:           clamped,
		})
		unit, line = newUnit, newLine
	}

	res.FinalUnitPrice = unit.Round(UnitPricePlaces)
	res.FinalLineAmount = line
	return res, nil
}

// conditionAmount returns the signed, unrounded effect of c on the line.
func conditionAmount(c Condition, units, unit, line decimal.Decimal) decimal.Decimal {
	var raw decimal.Decimal
	switch c.Scope {
	case ScopePerUnit:
		per := c.Value
		if c.Basis == BasisPercent {
			per = unit.Mul(c.Value).Div(decimal.NewFromInt(100))
		}
		raw = per.Mul(units)
	default:
		raw = c.Value
		if c.Basis == BasisPercent {
			raw = line.Mul(c.Value).Div(decimal.NewFromInt(100))
		}
	}
	if c.Sign == SignMinus {
		return raw.Abs().Neg()
	}
	return raw.Abs()
}

// unitPrice derives the per-unit price of line, keeping prev when there are no units.
func unitPrice(line, units, prev decimal.Decimal) decimal.Decimal {
	if units.IsZero() {
		return prev
	}
	return line.DivRound(units, UnitPricePlaces)
}

// TotalSteps returns the sum of step amounts.
func (r Result) TotalSteps() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Steps {
		total = total.Add(s.Amount)
	}
	return total
}

// Reconciles reports whether base plus steps equals the final line amount.
func (r Result) Reconciles() bool {
	return r.BaseLineAmount.Add(r.TotalSteps()).Equal(r.FinalLineAmount)
}

// AllowancesByCategory sums step amounts per category. Uncategorized steps
// are reported under CategoryNone.
func (r Result) AllowancesByCategory() map[Category]decimal.Decimal {
	out := make(map[Category]decimal.Decimal)
	for _, s := range r.Steps {
		out[s.Category] = out[s.Category].Add(s.Amount)
	}
	return out
}
