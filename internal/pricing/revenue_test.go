package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRevenue(t *testing.T) {
	got := ComputeRevenue(RevenueInput{
		Units:       dec("100"),
		ListPrice:   dec("1250"),
		Structural:  dec("-8000"),
		Promotional: dec("-2500.555"),
		Invoice:     dec("-1200"),
		Cancelled:   dec("-3000"),
	})

	assert.Equal(t, "125000.00", got.GrossSales.StringFixed(2))
	assert.Equal(t, "-2500.56", got.Promotional.StringFixed(2))
	assert.Equal(t, "-14700.56", got.TotalMinorations.StringFixed(2))
	assert.Equal(t, "110299.44", got.NetSales.StringFixed(2))
}

func TestRevenueFromResult(t *testing.T) {
	k007 := discount(CodeCustomerDisc, BasisPercent, ScopeTotal, "10", 20)
	k007.Category = CategoryStructural
	skto := discount(CodeEarlyPayment, BasisPercent, ScopeTotal, "2", 80)
	skto.Category = CategoryInvoice
	freight := surcharge(CodeFreight, BasisAmount, ScopePerUnit, "15", 90)

	res, err := Compute(dec("435"), dec("4"), []Condition{k007, skto, freight})
	require.NoError(t, err)

	rw := RevenueFromResult(res)
	assert.True(t, rw.Structural.Equal(dec("-174")))
	assert.True(t, rw.Invoice.Equal(dec("-31.32")))
	assert.True(t, rw.NetSales.Equal(res.FinalLineAmount), "net %s final %s", rw.NetSales, res.FinalLineAmount)
}
