package posting

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/id"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/masterdata"
	"github.com/cleared-dev/redline/internal/model"
	"github.com/cleared-dev/redline/internal/pricing"
)

// OrderLine is one material on a sales order.
type OrderLine struct {
	MaterialID string
	Units      decimal.Decimal
	ListPrice  decimal.Decimal
	Conditions []pricing.Condition
}

// Order is a sales order. With UseDefaultConditions set, the customer's and
// material's automatic conditions in effect on Date are added to each line.
type Order struct {
	ID                   string
	Date                 time.Time
	CustomerID           string
	Lines                []OrderLine
	UseDefaultConditions bool
}

// PricedLine is an order line after its waterfall.
type PricedLine struct {
	MaterialID string
	Units      decimal.Decimal
	Pricing    pricing.Result
}

// PricedOrder totals the priced lines of an order.
type PricedOrder struct {
	OrderID      string
	CustomerID   string
	CustomerName string
	Lines        []PricedLine
	Gross        decimal.Decimal
	Adjustments  decimal.Decimal // sum of step amounts, negative for net discounts
	NetAmount    decimal.Decimal
}

// ErrPolicyExceeded is returned when an order line discounts an allowance
// category beyond the catalog's pricing policy.
var ErrPolicyExceeded = errors.New("pricing policy exceeded")

// checkPolicy compares each capped category's discount, as a percentage of
// the gross line amount, against the policy.
func checkPolicy(policy masterdata.PricingPolicy, materialID string, res pricing.Result) error {
	if !res.BaseLineAmount.IsPositive() {
		return nil
	}
	byCategory := res.AllowancesByCategory()
	for _, c := range []struct {
		category pricing.Category
		max      decimal.Decimal
	}{
		{pricing.CategoryStructural, policy.StructuralMaxPct},
		{pricing.CategoryPromotional, policy.PromoMaxPct},
		{pricing.CategoryInvoice, policy.InvoiceAllowMaxPct},
	} {
		discount := byCategory[c.category].Neg()
		if c.max.IsZero() || !discount.IsPositive() {
			continue
		}
		pct := discount.Mul(decimal.NewFromInt(100)).Div(res.BaseLineAmount)
		if pct.GreaterThan(c.max) {
			return fmt.Errorf("%s: %w: %s discounts are %s%% of gross, cap is %s%%",
				materialID, ErrPolicyExceeded, c.category, pct.StringFixed(2), c.max)
		}
	}
	return nil
}

func (s *Service) validateOrder(o Order) error {
	if len(o.Lines) == 0 {
		return &ledger.InvalidAmountError{EntryID: o.ID, Reason: "order has no lines"}
	}
	for _, l := range o.Lines {
		if !l.Units.IsPositive() {
			return &ledger.InvalidAmountError{EntryID: o.ID, Account: l.MaterialID, Reason: "units must be > 0"}
		}
		if !l.ListPrice.IsPositive() {
			return &ledger.InvalidAmountError{EntryID: o.ID, Account: l.MaterialID, Reason: "list price must be > 0"}
		}
		if _, err := s.catalog.Material(l.MaterialID); err != nil {
			return err
		}
	}
	return nil
}

// PriceOrder runs the pricing waterfall for every line of o.
func (s *Service) PriceOrder(o Order) (PricedOrder, error) {
	cust, err := s.catalog.Customer(o.CustomerID)
	if err != nil {
		return PricedOrder{}, err
	}
	if err := s.validateOrder(o); err != nil {
		return PricedOrder{}, err
	}

	out := PricedOrder{
		OrderID:      o.ID,
		CustomerID:   cust.ID,
		CustomerName: cust.Name,
		Gross:        decimal.Zero,
		Adjustments:  decimal.Zero,
		NetAmount:    decimal.Zero,
	}
	for _, l := range o.Lines {
		conds := l.Conditions
		if o.UseDefaultConditions {
			defaults, err := s.catalog.DefaultConditions(o.CustomerID, l.MaterialID)
			if err != nil {
				return PricedOrder{}, err
			}
			match := pricing.Match{Date: o.Date, CustomerID: o.CustomerID, MaterialID: l.MaterialID}
			conds = append(pricing.Applicable(defaults, match), conds...)
		}

		res, err := pricing.Compute(l.ListPrice, l.Units, conds)
		if err != nil {
			return PricedOrder{}, fmt.Errorf("pricing %s: %w", l.MaterialID, err)
		}
		if err := checkPolicy(s.catalog.Policy(), l.MaterialID, res); err != nil {
			return PricedOrder{}, fmt.Errorf("order %s: %w", o.ID, err)
		}
		out.Lines = append(out.Lines, PricedLine{MaterialID: l.MaterialID, Units: l.Units, Pricing: res})
		out.Gross = out.Gross.Add(res.BaseLineAmount)
		out.Adjustments = out.Adjustments.Add(res.TotalSteps())
		out.NetAmount = out.NetAmount.Add(res.FinalLineAmount)
	}
	return out, nil
}

// ConfirmOrder prices o and books the net amount: DR receivables, CR revenue.
// A zero date books on the order date.
func (s *Service) ConfirmOrder(o Order, on time.Time) (Result, PricedOrder, error) {
	priced, err := s.PriceOrder(o)
	if err != nil {
		return Result{}, PricedOrder{}, err
	}
	if on.IsZero() {
		on = o.Date
	}
	res, err := s.post(id.FormatPosting(id.PrefixSalesOrder, o.ID), on,
		fmt.Sprintf("Book order %s - customer %s", o.ID, o.CustomerID),
		[]model.JournalLine{
			model.Debit(accounts.AccountsReceivable, priced.NetAmount),
			model.Credit(accounts.Revenue, priced.NetAmount),
		})
	if err != nil {
		return Result{}, PricedOrder{}, err
	}
	return res, priced, nil
}

// Shipment describes the cost relieved by a shipment.
type Shipment struct {
	Result
	UnitCost decimal.Decimal
	COGS     decimal.Decimal
}

// ShipOrder relieves inventory into COGS at the rolled-up standard cost of
// units of materialID.
func (s *Service) ShipOrder(orderID string, on time.Time, materialID string, units decimal.Decimal) (Shipment, error) {
	entryID := id.FormatPosting(id.PrefixShipment, orderID)
	if !units.IsPositive() {
		return Shipment{}, &ledger.InvalidAmountError{EntryID: entryID, Account: materialID, Reason: "units must be > 0"}
	}
	unitCost, err := s.catalog.RollupStdCost(materialID)
	if err != nil {
		return Shipment{}, err
	}
	cogs := model.RoundMoney(unitCost.Mul(units))

	res, err := s.post(entryID, on, fmt.Sprintf("Ship %s x %s", units, materialID), []model.JournalLine{
		model.Debit(accounts.COGS, cogs),
		model.Credit(accounts.Inventory, cogs),
	})
	if err != nil {
		return Shipment{}, err
	}
	return Shipment{Result: res, UnitCost: unitCost, COGS: cogs}, nil
}

// ShipOrderLines ships every line of o in one entry. A zero date ships on the
// order date.
func (s *Service) ShipOrderLines(o Order, on time.Time) (Shipment, error) {
	if err := s.validateOrder(o); err != nil {
		return Shipment{}, err
	}
	if on.IsZero() {
		on = o.Date
	}

	cogs := decimal.Zero
	for _, l := range o.Lines {
		unitCost, err := s.catalog.RollupStdCost(l.MaterialID)
		if err != nil {
			return Shipment{}, err
		}
		cogs = cogs.Add(model.RoundMoney(unitCost.Mul(l.Units)))
	}

	res, err := s.post(id.FormatPosting(id.PrefixShipment, o.ID), on,
		fmt.Sprintf("Ship order %s (%d lines)", o.ID, len(o.Lines)),
		[]model.JournalLine{
			model.Debit(accounts.COGS, cogs),
			model.Credit(accounts.Inventory, cogs),
		})
	if err != nil {
		return Shipment{}, err
	}
	return Shipment{Result: res, COGS: cogs}, nil
}

// ReturnOrder reverses revenue for returned goods and, when cost is
// positive, puts the goods back into inventory.
func (s *Service) ReturnOrder(orderID string, amount, cost decimal.Decimal, on time.Time) (Result, error) {
	entryID := id.FormatDatedPosting(id.PrefixOrderReturn, orderID, on)
	if err := requireNonNegative(entryID, named("return_amount", amount), named("return_cost", cost)); err != nil {
		return Result{}, err
	}
	lines := []model.JournalLine{
		model.Debit(accounts.SalesReturns, amount),
		model.Credit(accounts.AccountsReceivable, amount),
	}
	if cost.IsPositive() {
		lines = append(lines,
			model.Debit(accounts.Inventory, cost),
			model.Credit(accounts.COGS, cost),
		)
	}
	return s.post(entryID, on, fmt.Sprintf("Return on order %s", orderID), lines)
}
