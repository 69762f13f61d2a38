package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/id"
	"github.com/cleared-dev/redline/internal/model"
)

// SupplierBill is a vendor invoice.
type SupplierBill struct {
	BillID      string
	SupplierID  string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	// CapitalizeToInventory debits inventory instead of SG&A expense.
	CapitalizeToInventory bool
}

// EnterSupplierBill books a vendor invoice to payables.
func (s *Service) EnterSupplierBill(b SupplierBill) (Result, error) {
	entryID := id.FormatPosting(id.PrefixSupplierBill, b.BillID)
	if _, err := s.catalog.Supplier(b.SupplierID); err != nil {
		return Result{}, err
	}
	if err := requireNonNegative(entryID, named("amount", b.Amount)); err != nil {
		return Result{}, err
	}

	debit := accounts.SGA
	if b.CapitalizeToInventory {
		debit = accounts.Inventory
	}
	return s.post(entryID, b.Date, memoOr(b.Description, fmt.Sprintf("Supplier bill %s - %s", b.BillID, b.SupplierID)), []model.JournalLine{
		model.Debit(debit, b.Amount),
		model.Credit(accounts.AccountsPayable, b.Amount),
	})
}

// SupplierPayment settles a vendor invoice.
type SupplierPayment struct {
	PaymentID     string
	SupplierID    string
	Date          time.Time
	AmountInvoice decimal.Decimal
	AmountPaid    decimal.Decimal
	DiscountTaken decimal.Decimal
	Memo          string
}

// PaySupplier relieves payables for the invoice amount. A purchase discount
// taken is booked as other income.
func (s *Service) PaySupplier(p SupplierPayment) (Result, error) {
	entryID := id.FormatPosting(id.PrefixSupplierPay, p.PaymentID)
	if _, err := s.catalog.Supplier(p.SupplierID); err != nil {
		return Result{}, err
	}
	if err := requireNonNegative(entryID, named("amount_invoice", p.AmountInvoice), named("amount_paid", p.AmountPaid), named("discount_taken", p.DiscountTaken)); err != nil {
		return Result{}, err
	}

	lines := []model.JournalLine{
		model.Debit(accounts.AccountsPayable, p.AmountInvoice),
		model.Credit(accounts.Cash, p.AmountPaid),
	}
	if p.DiscountTaken.IsPositive() {
		lines = append(lines, model.Credit(accounts.OtherIncome, p.DiscountTaken))
	}
	return s.post(entryID, p.Date, memoOr(p.Memo, fmt.Sprintf("Pay supplier %s", p.SupplierID)), lines)
}
