package masterdata

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
	"github.com/cleared-dev/redline/internal/pricing"
)

// ConditionSpec is the serializable form of a pricing condition.
type ConditionSpec struct {
	Code       string           `yaml:"code" json:"code"`
	Label      string           `yaml:"label" json:"label"`
	Basis      string           `yaml:"basis" json:"basis"`
	Value      decimal.Decimal  `yaml:"value" json:"value"`
	Scope      string           `yaml:"scope,omitempty" json:"scope,omitempty"`
	Sign       string           `yaml:"sign,omitempty" json:"sign,omitempty"`
	Category   string           `yaml:"category,omitempty" json:"category,omitempty"`
	Sequence   *int             `yaml:"sequence,omitempty" json:"sequence,omitempty"`
	MinFloor   *decimal.Decimal `yaml:"min_floor,omitempty" json:"min_floor,omitempty"`
	MaxCeiling *decimal.Decimal `yaml:"max_ceiling,omitempty" json:"max_ceiling,omitempty"`
	ActiveFrom string           `yaml:"active_from,omitempty" json:"active_from,omitempty"`
	ActiveTo   string           `yaml:"active_to,omitempty" json:"active_to,omitempty"`
	CustomerID string           `yaml:"customer_id,omitempty" json:"customer_id,omitempty"`
	MaterialID string           `yaml:"material_id,omitempty" json:"material_id,omitempty"`
}

// Condition converts the spec into a pricing condition, applying defaults
// for scope (TOTAL), sign (discount) and sequence.
func (s ConditionSpec) Condition() (pricing.Condition, error) {
	basis, err := pricing.ParseBasis(s.Basis)
	if err != nil {
		return pricing.Condition{}, fmt.Errorf("condition %s: %w", s.Code, err)
	}
	scope, err := pricing.ParseScope(s.Scope)
	if err != nil {
		return pricing.Condition{}, fmt.Errorf("condition %s: %w", s.Code, err)
	}
	sign, err := pricing.ParseSign(s.Sign)
	if err != nil {
		return pricing.Condition{}, fmt.Errorf("condition %s: %w", s.Code, err)
	}
	category, err := pricing.ParseCategory(s.Category)
	if err != nil {
		return pricing.Condition{}, fmt.Errorf("condition %s: %w", s.Code, err)
	}

	c := pricing.Condition{
		Code:       s.Code,
		Label:      s.Label,
		Basis:      basis,
		Value:      s.Value,
		Scope:      scope,
		Sign:       sign,
		Category:   category,
		Sequence:   pricing.DefaultSequence,
		MinFloor:   s.MinFloor,
		MaxCeiling: s.MaxCeiling,
		CustomerID: s.CustomerID,
		MaterialID: s.MaterialID,
	}
	if s.Sequence != nil {
		c.Sequence = *s.Sequence
	}
	if s.ActiveFrom != "" {
		if c.ActiveFrom, err = model.ParseDate(s.ActiveFrom); err != nil {
			return pricing.Condition{}, fmt.Errorf("condition %s: active_from: %w", s.Code, err)
		}
	}
	if s.ActiveTo != "" {
		if c.ActiveTo, err = model.ParseDate(s.ActiveTo); err != nil {
			return pricing.Condition{}, fmt.Errorf("condition %s: active_to: %w", s.Code, err)
		}
	}
	return c, nil
}

// Conditions converts a list of specs.
func Conditions(specs []ConditionSpec) ([]pricing.Condition, error) {
	out := make([]pricing.Condition, 0, len(specs))
	for _, s := range specs {
		c, err := s.Condition()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// DefaultConditions returns the automatic conditions for a customer and
// material: customer conditions first, then material conditions.
func (c *Catalog) DefaultConditions(customerID, materialID string) ([]pricing.Condition, error) {
	specs := append([]ConditionSpec{}, c.customerConditions[customerID]...)
	specs = append(specs, c.materialConditions[materialID]...)
	return Conditions(specs)
}

// CustomerConditions returns the automatic condition specs keyed by customer.
func (c *Catalog) CustomerConditions() map[string][]ConditionSpec {
	return cloneSpecs(c.customerConditions)
}

// MaterialConditions returns the automatic condition specs keyed by material.
func (c *Catalog) MaterialConditions() map[string][]ConditionSpec {
	return cloneSpecs(c.materialConditions)
}

func cloneSpecs(in map[string][]ConditionSpec) map[string][]ConditionSpec {
	out := make(map[string][]ConditionSpec, len(in))
	for k, v := range in {
		out[k] = append([]ConditionSpec(nil), v...)
	}
	return out
}
