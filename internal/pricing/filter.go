package pricing

import (
	"time"

	"github.com/cleared-dev/redline/internal/model"
)

// Match describes the sales context a condition is checked against.
type Match struct {
	Date       time.Time
	CustomerID string
	MaterialID string
}

// Applies reports whether c is in effect for m. Unset keys on c match anything.
// The active window is inclusive at both ends.
func (c Condition) Applies(m Match) bool {
	if c.CustomerID != "" && c.CustomerID != m.CustomerID {
		return false
	}
	if c.MaterialID != "" && c.MaterialID != m.MaterialID {
		return false
	}
	if m.Date.IsZero() {
		return true
	}
	d := model.Day(m.Date)
	if !c.ActiveFrom.IsZero() && d.Before(model.Day(c.ActiveFrom)) {
		return false
	}
	if !c.ActiveTo.IsZero() && d.After(model.Day(c.ActiveTo)) {
		return false
	}
	return true
}

// Applicable returns the conditions in effect for m, keeping input order.
func Applicable(conditions []Condition, m Match) []Condition {
	var out []Condition
	for _, c := range conditions {
		if c.Applies(m) {
			out = append(out, c)
		}
	}
	return out
}
