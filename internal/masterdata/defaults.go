package masterdata

import (
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seq(n int) *int { return &n }

func freight(amount string) []ConditionSpec {
	return []ConditionSpec{{
		Code: "ZFR1", Label: "Freight", Basis: "AMOUNT", Value: d(amount),
		Scope: "PER_UNIT", Sign: "+", Sequence: seq(90),
	}}
}

func structural(label, pct string) []ConditionSpec {
	return []ConditionSpec{{
		Code: "K007", Label: label, Basis: "PERCENT", Value: d(pct),
		Category: "STRUCTURAL", Sequence: seq(20),
	}}
}

// Default returns the engine manufacturer's master data: three customers,
// three suppliers, six engines with their component BOMs, standard payment
// terms and the automatic pricing conditions.
func Default() *Catalog {
	c := &Catalog{
		customers: map[string]Customer{},
		suppliers: map[string]Supplier{},
		materials: map[string]Material{},
		boms:      map[string]BOM{},
		terms:     map[string]PaymentTerm{},
	}

	for _, v := range []Customer{
		{ID: "CUST-RETAIL", Name: "Big Box Retailer", PaymentTerms: "1N29"},
		{ID: "CUST-FLEET", Name: "Fleet Buyer LLC", PaymentTerms: "N45"},
		{ID: "CUST-DIST", Name: "Northeast Distributor, Inc.", PaymentTerms: "2N15"},
	} {
		c.customers[v.ID] = v
	}

	for _, v := range []Supplier{
		{ID: "SUPP-CAST", Name: "Alpha Castings", PaymentTerms: "2N15"},
		{ID: "SUPP-ECU", Name: "Delta Electronics", PaymentTerms: "N30"},
		{ID: "SUPP-HEAD", Name: "Summit Machining", PaymentTerms: "3N10"},
	} {
		c.suppliers[v.ID] = v
	}

	for _, v := range []Material{
		{ID: "ENG-I4", Description: "Inline-4 Engine", UOM: "EA", Type: MaterialFinished},
		{ID: "ENG-I6", Description: "Inline-6 Engine", UOM: "EA", Type: MaterialFinished},
		{ID: "ENG-V6", Description: "V6 Engine", UOM: "EA", Type: MaterialFinished},
		{ID: "ENG-V8", Description: "V8 Engine", UOM: "EA", Type: MaterialFinished},
		{ID: "ENG-HYB", Description: "Hybrid Engine", UOM: "EA", Type: MaterialFinished},
		{ID: "ENG-EV", Description: "Electric Power Unit", UOM: "EA", Type: MaterialFinished},
		{ID: "RM-BLOCK", Description: "Engine Block Casting", UOM: "EA", Type: MaterialRaw, StdCost: d("180")},
		{ID: "RM-HEAD", Description: "Cylinder Head", UOM: "EA", Type: MaterialRaw, StdCost: d("80")},
		{ID: "RM-ECU", Description: "Engine Control Unit", UOM: "EA", Type: MaterialRaw, StdCost: d("95")},
		{ID: "RM-BATT", Description: "Battery Pack", UOM: "EA", Type: MaterialRaw, StdCost: d("420")},
		{ID: "RM-MOTOR", Description: "Electric Motor", UOM: "EA", Type: MaterialRaw, StdCost: d("520")},
	} {
		c.materials[v.ID] = v
	}

	one, two := d("1"), d("2")
	block := BOMLine{ComponentID: "RM-BLOCK", QtyPer: one}
	ecu := BOMLine{ComponentID: "RM-ECU", QtyPer: one}
	heads := BOMLine{ComponentID: "RM-HEAD", QtyPer: two}
	batt := BOMLine{ComponentID: "RM-BATT", QtyPer: one}
	for _, v := range []BOM{
		{FinishedID: "ENG-I4", Lines: []BOMLine{block, {ComponentID: "RM-HEAD", QtyPer: one}, ecu}},
		{FinishedID: "ENG-I6", Lines: []BOMLine{block, heads, ecu}},
		{FinishedID: "ENG-V6", Lines: []BOMLine{block, heads, ecu}},
		{FinishedID: "ENG-V8", Lines: []BOMLine{block, heads, ecu}},
		{FinishedID: "ENG-HYB", Lines: []BOMLine{block, heads, ecu, batt}},
		{FinishedID: "ENG-EV", Lines: []BOMLine{{ComponentID: "RM-MOTOR", QtyPer: one}, batt}},
	} {
		c.boms[v.FinishedID] = v
	}

	for _, v := range []PaymentTerm{
		{Code: "3N10", DiscountPct: d("0.03"), DiscountDays: 10, NetDays: 10},
		{Code: "2N15", DiscountPct: d("0.02"), DiscountDays: 15, NetDays: 15},
		{Code: "1N29", DiscountPct: d("0.01"), DiscountDays: 29, NetDays: 29},
		{Code: "N30", NetDays: 30},
		{Code: "N45", NetDays: 45, LateFeePctPer30: d("0.01")},
	} {
		c.terms[v.Code] = v
	}

	c.policy = PricingPolicy{
		StructuralMaxPct:   d("12"),
		PromoMaxPct:        d("10"),
		InvoiceAllowMaxPct: d("3"),
	}

	c.customerConditions = map[string][]ConditionSpec{
		"CUST-RETAIL": structural("Cust Disc", "8"),
		"CUST-FLEET":  structural("Fleet Structural", "6"),
		"CUST-DIST":   structural("Distributor Base", "10"),
	}
	c.materialConditions = map[string][]ConditionSpec{
		"ENG-V6":  freight("15"),
		"ENG-V8":  freight("20"),
		"ENG-I6":  freight("12"),
		"ENG-I4":  freight("10"),
		"ENG-HYB": freight("22"),
		"ENG-EV":  freight("25"),
	}
	return c
}
