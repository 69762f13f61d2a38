// Package masterdata holds the customers, suppliers, materials, bills of
// materials and commercial terms that posting and pricing look up.
package masterdata

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

// ErrNotFound is returned for unknown master data ids.
var ErrNotFound = errors.New("not found")

// MaterialType distinguishes purchased components from finished goods.
type MaterialType string

const (
	MaterialRaw      MaterialType = "RAW"
	MaterialFinished MaterialType = "FG"
)

// Customer is a sold-to party.
type Customer struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	PaymentTerms string `yaml:"payment_terms"`
}

// Supplier is a vendor.
type Supplier struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	PaymentTerms string `yaml:"payment_terms"`
}

// Material is a stocked item. Finished goods carry a zero standard cost and
// are costed through their bill of materials.
type Material struct {
	ID          string          `yaml:"id"`
	Description string          `yaml:"description"`
	UOM         string          `yaml:"uom"`
	Type        MaterialType    `yaml:"type"`
	StdCost     decimal.Decimal `yaml:"std_cost"`
}

// BOMLine is one component of a bill of materials.
type BOMLine struct {
	ComponentID string          `yaml:"component_id"`
	QtyPer      decimal.Decimal `yaml:"qty_per"`
	ScrapPct    decimal.Decimal `yaml:"scrap_pct"` // fraction, 0.02 for 2%
}

// BOM lists the components of one finished material.
type BOM struct {
	FinishedID string    `yaml:"finished_id"`
	Lines      []BOMLine `yaml:"lines"`
}

// PaymentTerm describes an early-payment discount and net due period.
type PaymentTerm struct {
	Code            string          `yaml:"code"`
	DiscountPct     decimal.Decimal `yaml:"discount_pct"` // fraction
	DiscountDays    int             `yaml:"discount_days"`
	NetDays         int             `yaml:"net_days"`
	LateFeePctPer30 decimal.Decimal `yaml:"late_fee_pct_per_30"` // fraction per started 30 days late
}

// EarlyPayDiscount returns the discount earned when an invoice of amount
// issued on invoiced is paid on paid. It is zero outside the discount window.
func (t PaymentTerm) EarlyPayDiscount(amount decimal.Decimal, invoiced, paid time.Time) decimal.Decimal {
	if t.DiscountDays <= 0 || t.DiscountPct.IsZero() {
		return decimal.Zero
	}
	if daysBetween(invoiced, paid) > t.DiscountDays {
		return decimal.Zero
	}
	return model.RoundMoney(amount.Mul(t.DiscountPct))
}

// LateFee returns the fee owed when amount is paid after the net period.
// Each started 30 days past due accrues LateFeePctPer30.
func (t PaymentTerm) LateFee(amount decimal.Decimal, invoiced, paid time.Time) decimal.Decimal {
	late := daysBetween(t.DueDate(invoiced), paid)
	if late <= 0 || t.LateFeePctPer30.IsZero() {
		return decimal.Zero
	}
	periods := (late + 29) / 30
	return model.RoundMoney(amount.Mul(t.LateFeePctPer30).Mul(decimal.NewFromInt(int64(periods))))
}

// DueDate returns the net due date for an invoice dated invoiced.
func (t PaymentTerm) DueDate(invoiced time.Time) time.Time {
	return model.Day(invoiced).AddDate(0, 0, t.NetDays)
}

func daysBetween(a, b time.Time) int {
	return int(model.Day(b).Sub(model.Day(a)).Hours() / 24)
}

// PricingPolicy caps discounts per allowance category, as percentages of
// the gross line amount. A zero cap leaves the category unbounded.
type PricingPolicy struct {
	StructuralMaxPct   decimal.Decimal `yaml:"structural_max_pct"`
	PromoMaxPct        decimal.Decimal `yaml:"promo_max_pct"`
	InvoiceAllowMaxPct decimal.Decimal `yaml:"invoice_allow_max_pct"`
}

// Catalog is an immutable set of master data.
type Catalog struct {
	customers map[string]Customer
	suppliers map[string]Supplier
	materials map[string]Material
	boms      map[string]BOM
	terms     map[string]PaymentTerm

	policy             PricingPolicy
	customerConditions map[string][]ConditionSpec
	materialConditions map[string][]ConditionSpec
}

// Customer returns a customer by id.
func (c *Catalog) Customer(id string) (Customer, error) {
	v, ok := c.customers[id]
	if !ok {
		return Customer{}, fmt.Errorf("customer %q: %w", id, ErrNotFound)
	}
	return v, nil
}

// Supplier returns a supplier by id.
func (c *Catalog) Supplier(id string) (Supplier, error) {
	v, ok := c.suppliers[id]
	if !ok {
		return Supplier{}, fmt.Errorf("supplier %q: %w", id, ErrNotFound)
	}
	return v, nil
}

// Material returns a material by id.
func (c *Catalog) Material(id string) (Material, error) {
	v, ok := c.materials[id]
	if !ok {
		return Material{}, fmt.Errorf("material %q: %w", id, ErrNotFound)
	}
	return v, nil
}

// PaymentTerm returns payment terms by code.
func (c *Catalog) PaymentTerm(code string) (PaymentTerm, error) {
	v, ok := c.terms[code]
	if !ok {
		return PaymentTerm{}, fmt.Errorf("payment term %q: %w", code, ErrNotFound)
	}
	return v, nil
}

// Policy returns the pricing policy caps.
func (c *Catalog) Policy() PricingPolicy {
	return c.policy
}

// Customers returns every customer ordered by id.
func (c *Catalog) Customers() []Customer {
	out := make([]Customer, 0, len(c.customers))
	for _, v := range c.customers {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Suppliers returns every supplier ordered by id.
func (c *Catalog) Suppliers() []Supplier {
	out := make([]Supplier, 0, len(c.suppliers))
	for _, v := range c.suppliers {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Materials returns every material ordered by id.
func (c *Catalog) Materials() []Material {
	out := make([]Material, 0, len(c.materials))
	for _, v := range c.materials {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PaymentTerms returns every payment term ordered by code.
func (c *Catalog) PaymentTerms() []PaymentTerm {
	out := make([]PaymentTerm, 0, len(c.terms))
	for _, v := range c.terms {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// RollupStdCost returns the standard cost of one unit of a material: the sum
// of component cost times quantity grossed up for scrap, or the material's
// own standard cost when it has no bill of materials.
func (c *Catalog) RollupStdCost(materialID string) (decimal.Decimal, error) {
	m, err := c.Material(materialID)
	if err != nil {
		return decimal.Zero, err
	}
	bom, ok := c.boms[materialID]
	if !ok {
		return m.StdCost, nil
	}

	cost := decimal.Zero
	for _, l := range bom.Lines {
		comp, err := c.Material(l.ComponentID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("bom %s: %w", materialID, err)
		}
		qty := l.QtyPer.Mul(decimal.NewFromInt(1).Add(l.ScrapPct))
		cost = cost.Add(comp.StdCost.Mul(qty))
	}
	return model.RoundMoney(cost), nil
}
