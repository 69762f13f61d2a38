package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/model"
)

// RevenueInput holds gross volume and allowances for a revenue waterfall.
// Allowances are negative by convention.
type RevenueInput struct {
	Units       decimal.Decimal
	ListPrice   decimal.Decimal
	Structural  decimal.Decimal
	Promotional decimal.Decimal
	Invoice     decimal.Decimal
	Cancelled   decimal.Decimal
}

// RevenueWaterfall walks gross sales down to net sales.
type RevenueWaterfall struct {
	GrossSales       decimal.Decimal
	Structural       decimal.Decimal
	Promotional      decimal.Decimal
	Invoice          decimal.Decimal
	Cancelled        decimal.Decimal
	TotalMinorations decimal.Decimal
	NetSales         decimal.Decimal
}

// ComputeRevenue builds a revenue waterfall from in.
func ComputeRevenue(in RevenueInput) RevenueWaterfall {
	structural := model.RoundMoney(in.Structural)
	promotional := model.RoundMoney(in.Promotional)
	invoice := model.RoundMoney(in.Invoice)
	cancelled := model.RoundMoney(in.Cancelled)

	gross := model.RoundMoney(in.Units.Mul(in.ListPrice))
	total := structural.Add(promotional).Add(invoice).Add(cancelled)
	return RevenueWaterfall{
		GrossSales:       gross,
		Structural:       structural,
		Promotional:      promotional,
		Invoice:          invoice,
		Cancelled:        cancelled,
		TotalMinorations: total,
		NetSales:         gross.Add(total),
	}
}

// RevenueFromResult derives a revenue waterfall from a priced line, taking
// allowances from its categorized steps. Uncategorized steps stay in gross.
func RevenueFromResult(r Result) RevenueWaterfall {
	by := r.AllowancesByCategory()
	in := RevenueInput{
		Units:       r.Units,
		ListPrice:   r.BaseUnitPrice,
		Structural:  by[CategoryStructural],
		Promotional: by[CategoryPromotional],
		Invoice:     by[CategoryInvoice],
		Cancelled:   by[CategoryCancelled],
	}
	out := ComputeRevenue(in)
	if other, ok := by[CategoryNone]; ok {
		out.GrossSales = out.GrossSales.Add(other)
		out.NetSales = out.NetSales.Add(other)
	}
	return out
}
