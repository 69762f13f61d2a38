package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/accounts"
	"github.com/cleared-dev/redline/internal/id"
	"github.com/cleared-dev/redline/internal/model"
)

// PostInvoice books a sale on account: DR receivables, CR revenue.
func (s *Service) PostInvoice(orderID string, amount decimal.Decimal, on time.Time, memo string) (Result, error) {
	entryID := id.FormatDatedPosting(id.PrefixInvoice, orderID, on)
	if err := requireNonNegative(entryID, named("amount", amount)); err != nil {
		return Result{}, err
	}
	return s.post(entryID, on, memoOr(memo, fmt.Sprintf("Invoice for order %s", orderID)), []model.JournalLine{
		model.Debit(accounts.AccountsReceivable, amount),
		model.Credit(accounts.Revenue, amount),
	})
}

// PostCashReceipt collects cash against an order. An early-pay discount is
// booked to sales returns and allowances and relieves receivables with the cash.
func (s *Service) PostCashReceipt(orderID string, cash, discount decimal.Decimal, on time.Time, memo string) (Result, error) {
	entryID := id.FormatDatedPosting(id.PrefixCashReceipt, orderID, on)
	if err := requireNonNegative(entryID, named("cash", cash), named("discount", discount)); err != nil {
		return Result{}, err
	}
	lines := []model.JournalLine{model.Debit(accounts.Cash, cash)}
	if discount.IsPositive() {
		lines = append(lines, model.Debit(accounts.SalesReturns, discount))
	}
	lines = append(lines, model.Credit(accounts.AccountsReceivable, cash.Add(discount)))
	return s.post(entryID, on, memoOr(memo, fmt.Sprintf("Cash receipt for order %s", orderID)), lines)
}

// PostReturn reverses revenue for returned goods against receivables.
func (s *Service) PostReturn(orderID string, amount decimal.Decimal, on time.Time, memo string) (Result, error) {
	entryID := id.FormatDatedPosting(id.PrefixReturn, orderID, on)
	if err := requireNonNegative(entryID, named("amount", amount)); err != nil {
		return Result{}, err
	}
	return s.post(entryID, on, memoOr(memo, fmt.Sprintf("Sales return for order %s", orderID)), []model.JournalLine{
		model.Debit(accounts.SalesReturns, amount),
		model.Credit(accounts.AccountsReceivable, amount),
	})
}

// CashReceipt settles a customer invoice.
type CashReceipt struct {
	ReceiptID      string
	CustomerID     string
	Date           time.Time
	AmountInvoice  decimal.Decimal // invoice amount being settled
	AmountReceived decimal.Decimal
	DiscountTaken  decimal.Decimal
	Memo           string

	// InvoiceDate applies the customer's payment terms: a zero DiscountTaken
	// becomes the early-pay discount earned, a late payment accrues a fee,
	// and a zero AmountReceived becomes invoice - discount + fee.
	InvoiceDate time.Time
}

// ReceiveCash posts a customer receipt. Cash received plus discount must
// equal the invoice amount plus any late fee or the ledger rejects the entry
// as unbalanced. Late fees are booked as other income.
func (s *Service) ReceiveCash(r CashReceipt) (Result, error) {
	entryID := id.FormatPosting(id.PrefixARReceipt, r.ReceiptID)
	cust, err := s.catalog.Customer(r.CustomerID)
	if err != nil {
		return Result{}, err
	}
	if err := requireNonNegative(entryID, named("amount_invoice", r.AmountInvoice), named("amount_received", r.AmountReceived), named("discount_taken", r.DiscountTaken)); err != nil {
		return Result{}, err
	}

	lateFee := decimal.Zero
	if !r.InvoiceDate.IsZero() {
		term, err := s.catalog.PaymentTerm(cust.PaymentTerms)
		if err != nil {
			return Result{}, fmt.Errorf("customer %s: %w", cust.ID, err)
		}
		if r.DiscountTaken.IsZero() {
			r.DiscountTaken = term.EarlyPayDiscount(r.AmountInvoice, r.InvoiceDate, r.Date)
		}
		lateFee = term.LateFee(r.AmountInvoice, r.InvoiceDate, r.Date)
		if r.AmountReceived.IsZero() {
			r.AmountReceived = r.AmountInvoice.Sub(r.DiscountTaken).Add(lateFee)
		}
	}

	lines := []model.JournalLine{model.Debit(accounts.Cash, r.AmountReceived)}
	if r.DiscountTaken.IsPositive() {
		lines = append(lines, model.Debit(accounts.SalesReturns, r.DiscountTaken))
	}
	lines = append(lines, model.Credit(accounts.AccountsReceivable, r.AmountInvoice))
	if lateFee.IsPositive() {
		lines = append(lines, model.Credit(accounts.OtherIncome, lateFee))
	}
	return s.post(entryID, r.Date, memoOr(r.Memo, fmt.Sprintf("Cash receipt from %s", r.CustomerID)), lines)
}
