package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/redline/internal/masterdata"
	"github.com/cleared-dev/redline/internal/model"
	"github.com/cleared-dev/redline/internal/posting"
	"github.com/cleared-dev/redline/internal/pricing"
	"github.com/cleared-dev/redline/internal/statements"
)

// Amounts are serialized as decimal strings and dates as YYYY-MM-DD.

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Details string `json:"details,omitempty"`
}

// PeriodDTO is a reporting window.
type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// LineDTO is one account row on a statement.
type LineDTO struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ClassTotalDTO is the subtotal of one account class.
type ClassTotalDTO struct {
	Class string          `json:"class"`
	Total decimal.Decimal `json:"total"`
}

// TrialBalanceDTO is the trial balance report.
type TrialBalanceDTO struct {
	AsOf         string                     `json:"as_of"`
	TrialBalance map[string]decimal.Decimal `json:"trial_balance"`
	Lines        []LineDTO                  `json:"lines"`
	Totals       []ClassTotalDTO            `json:"totals"`
	Check        decimal.Decimal            `json:"balance_check_sum"`
}

// IncomeStatementDTO is the income statement.
type IncomeStatementDTO struct {
	Period          *PeriodDTO      `json:"period,omitempty"`
	AsOf            string          `json:"as_of,omitempty"`
	Revenue         decimal.Decimal `json:"revenue"`
	COGS            decimal.Decimal `json:"cogs"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	OpEx            decimal.Decimal `json:"opex"`
	OperatingIncome decimal.Decimal `json:"operating_income"`
	OtherIncome     decimal.Decimal `json:"other_income"`
	OtherExpense    decimal.Decimal `json:"other_expense"`
	Interest        decimal.Decimal `json:"interest"`
	PretaxIncome    decimal.Decimal `json:"pretax_income"`
	Tax             decimal.Decimal `json:"tax"`
	NetIncome       decimal.Decimal `json:"net_income"`
	Check           decimal.Decimal `json:"balance_check_sum"`
}

// BalanceSheetDTO is the balance sheet.
type BalanceSheetDTO struct {
	AsOf                      string          `json:"as_of"`
	Assets                    []LineDTO       `json:"assets"`
	Liabilities               []LineDTO       `json:"liabilities"`
	Equity                    []LineDTO       `json:"equity"`
	RetainedEarnings          LineDTO         `json:"retained_earnings"`
	TotalAssets               decimal.Decimal `json:"total_assets"`
	TotalLiabilities          decimal.Decimal `json:"total_liabilities"`
	TotalEquity               decimal.Decimal `json:"total_equity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"total_liabilities_and_equity"`
	Check                     decimal.Decimal `json:"tb_equation_sum"`
	Balances                  bool            `json:"balances"`
}

// CashFlowDTO is the direct-method cash flow statement.
type CashFlowDTO struct {
	Period          PeriodDTO       `json:"period"`
	Operating       []LineDTO       `json:"operating"`
	Investing       []LineDTO       `json:"investing"`
	Financing       []LineDTO       `json:"financing"`
	CFO             decimal.Decimal `json:"cfo"`
	CFI             decimal.Decimal `json:"cfi"`
	CFF             decimal.Decimal `json:"cff"`
	NetChangeInCash decimal.Decimal `json:"net_change_cash"`
	BeginningCash   decimal.Decimal `json:"beginning_cash"`
	EndingCash      decimal.Decimal `json:"ending_cash"`
	Difference      decimal.Decimal `json:"difference"`
	Reconciles      bool            `json:"reconciles"`
	Check           decimal.Decimal `json:"balance_check_sum"`
}

// StatementsDTO bundles the three statements.
type StatementsDTO struct {
	IncomeStatement IncomeStatementDTO `json:"income_statement"`
	BalanceSheet    BalanceSheetDTO    `json:"balance_sheet"`
	CashFlowDirect  CashFlowDTO        `json:"cash_flow_direct"`
}

// ReceivablesDTO holds the balances tracked by the AR audit. Cash is read
// from the configured cash account.
type ReceivablesDTO struct {
	AR      decimal.Decimal `json:"ar"`
	Cash    decimal.Decimal `json:"cash"`
	Revenue decimal.Decimal `json:"revenue"`
	Returns decimal.Decimal `json:"returns"`
}

// ARAuditDTO is the receivables audit.
type ARAuditDTO struct {
	Period         PeriodDTO       `json:"period"`
	EndingBalances ReceivablesDTO  `json:"ending_balances"`
	PeriodDeltas   ReceivablesDTO  `json:"period_deltas"`
	Check          decimal.Decimal `json:"balance_check_sum"`
}

// EntryLineDTO is one journal line.
type EntryLineDTO struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// EntryDTO is one journal entry.
type EntryDTO struct {
	ID    string         `json:"id"`
	Date  string         `json:"date"`
	Memo  string         `json:"memo,omitempty"`
	Lines []EntryLineDTO `json:"lines"`
}

// JournalDumpDTO lists every posted entry.
type JournalDumpDTO struct {
	Entries []EntryDTO `json:"entries"`
	Count   int        `json:"count"`
}

// PricingRequest runs a pricing waterfall.
type PricingRequest struct {
	Units      decimal.Decimal            `json:"units"`
	ListPrice  decimal.Decimal            `json:"list_price"`
	Conditions []masterdata.ConditionSpec `json:"conditions"`
}

// StepDTO is one applied condition.
type StepDTO struct {
	Code              string          `json:"code"`
	Label             string          `json:"label"`
	Category          string          `json:"category,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	InterimUnitPrice  decimal.Decimal `json:"interim_unit_price"`
	InterimLineAmount decimal.Decimal `json:"interim_line_amount"`
	Clamped           bool            `json:"clamped,omitempty"`
}

// PricingDTO is a priced line.
type PricingDTO struct {
	Units           decimal.Decimal `json:"units"`
	BaseUnitPrice   decimal.Decimal `json:"base_unit_price"`
	BaseLineAmount  decimal.Decimal `json:"base_line_amount"`
	Steps           []StepDTO       `json:"steps"`
	FinalUnitPrice  decimal.Decimal `json:"final_unit_price"`
	FinalLineAmount decimal.Decimal `json:"final_line_amount"`
}

// RevenueWaterfallRequest carries gross volume and allowances. Allowances
// are negative by convention.
type RevenueWaterfallRequest struct {
	Units                 decimal.Decimal `json:"units"`
	ListPrice             decimal.Decimal `json:"list_price"`
	StructuralAllowances  decimal.Decimal `json:"structural_allowances"`
	PromotionalAllowances decimal.Decimal `json:"promotional_allowances"`
	InvoiceAllowances     decimal.Decimal `json:"invoice_allowances"`
	CancelledOrders       decimal.Decimal `json:"cancelled_orders"`
}

// RevenueWaterfallDTO walks gross sales down to net sales.
type RevenueWaterfallDTO struct {
	GrossSales            decimal.Decimal `json:"gross_sales"`
	StructuralAllowances  decimal.Decimal `json:"structural_allowances"`
	PromotionalAllowances decimal.Decimal `json:"promotional_allowances"`
	InvoiceAllowances     decimal.Decimal `json:"invoice_allowances"`
	CancelledOrders       decimal.Decimal `json:"cancelled_orders"`
	TotalMinorations      decimal.Decimal `json:"total_minorations"`
	NetSales              decimal.Decimal `json:"net_sales"`
}

// ReceiptRequest records a customer payment.
type ReceiptRequest struct {
	ReceiptID      string          `json:"receipt_id"`
	CustomerID     string          `json:"customer_id"`
	Date           string          `json:"date"`
	AmountInvoice  decimal.Decimal `json:"amount_invoice"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	DiscountTaken  decimal.Decimal `json:"discount_taken"`
	Memo           string          `json:"memo,omitempty"`
	InvoiceDate    string          `json:"invoice_date,omitempty"`
}

// SupplierBillRequest records a vendor invoice.
type SupplierBillRequest struct {
	BillID                string          `json:"bill_id"`
	SupplierID            string          `json:"supplier_id"`
	Date                  string          `json:"date"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description,omitempty"`
	CapitalizeToInventory bool            `json:"capitalize_to_inventory"`
}

// SupplierPaymentRequest records a vendor payment.
type SupplierPaymentRequest struct {
	PaymentID     string          `json:"payment_id"`
	SupplierID    string          `json:"supplier_id"`
	Date          string          `json:"date"`
	AmountInvoice decimal.Decimal `json:"amount_invoice"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	DiscountTaken decimal.Decimal `json:"discount_taken"`
	Memo          string          `json:"memo,omitempty"`
}

// PostingDTO describes a posted entry.
type PostingDTO struct {
	EntryID string         `json:"entry_id"`
	Lines   []EntryLineDTO `json:"lines"`
}

// OrderLineRequest is one material on a sales order.
type OrderLineRequest struct {
	MaterialID string                     `json:"material_id"`
	Units      decimal.Decimal            `json:"units"`
	ListPrice  decimal.Decimal            `json:"list_price"`
	Conditions []masterdata.ConditionSpec `json:"conditions"`
}

// OrderRequest is a sales order.
type OrderRequest struct {
	OrderID              string             `json:"order_id"`
	OrderDate            string             `json:"order_date"`
	CustomerID           string             `json:"customer_id"`
	Lines                []OrderLineRequest `json:"lines"`
	UseDefaultConditions bool               `json:"use_default_conditions"`
	PostingDate          string             `json:"posting_date,omitempty"`
}

// PricedLineDTO is an order line after pricing.
type PricedLineDTO struct {
	MaterialID string     `json:"material_id"`
	Pricing    PricingDTO `json:"pricing"`
}

// PricedOrderDTO totals a priced order.
type PricedOrderDTO struct {
	OrderID      string          `json:"order_id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Lines        []PricedLineDTO `json:"lines"`
	Gross        decimal.Decimal `json:"gross"`
	Adjustments  decimal.Decimal `json:"adjustments"`
	NetAmount    decimal.Decimal `json:"net_amount"`
}

// ConfirmOrderResponse is the booked order.
type ConfirmOrderResponse struct {
	Posting PostingDTO     `json:"posting"`
	Order   PricedOrderDTO `json:"order"`
}

// ShipRequest ships either one material or, when Lines is set, a whole order.
type ShipRequest struct {
	OrderID    string             `json:"order_id"`
	Date       string             `json:"date"`
	MaterialID string             `json:"material_id,omitempty"`
	Units      decimal.Decimal    `json:"units"`
	Lines      []OrderLineRequest `json:"lines,omitempty"`
}

// ShipmentDTO is the cost relieved by a shipment.
type ShipmentDTO struct {
	PostingDTO
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	COGS     decimal.Decimal  `json:"cogs"`
}

// ReturnRequest reverses revenue and cost for returned goods.
type ReturnRequest struct {
	OrderID string          `json:"order_id"`
	Date    string          `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Cost    decimal.Decimal `json:"cost"`
}

// OrderAmountRequest invoices an order or credits a sales return against it.
type OrderAmountRequest struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Memo   string          `json:"memo,omitempty"`
}

// OrderReceiptRequest collects cash against an order.
type OrderReceiptRequest struct {
	Date             string          `json:"date"`
	CashAmount       decimal.Decimal `json:"cash_amount"`
	EarlyPayDiscount decimal.Decimal `json:"early_pay_discount"`
	Memo             string          `json:"memo,omitempty"`
}

// CustomerDTO is a sold-to party.
type CustomerDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PaymentTerms string `json:"payment_terms"`
}

// SupplierDTO is a vendor.
type SupplierDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PaymentTerms string `json:"payment_terms"`
}

// MaterialDTO is a stocked item with its rolled-up standard cost.
type MaterialDTO struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	UOM         string          `json:"uom"`
	Type        string          `json:"type"`
	StdCost     decimal.Decimal `json:"std_cost"`
}

// PaymentTermDTO is a set of payment terms.
type PaymentTermDTO struct {
	Code            string          `json:"code"`
	DiscountPct     decimal.Decimal `json:"discount_pct"`
	DiscountDays    int             `json:"discount_days"`
	NetDays         int             `json:"net_days"`
	LateFeePctPer30 decimal.Decimal `json:"late_fee_pct_per_30"`
}

// PricingPolicyDTO lists the discount caps per allowance category.
type PricingPolicyDTO struct {
	StructuralMaxPct   decimal.Decimal `json:"structural_max_pct"`
	PromoMaxPct        decimal.Decimal `json:"promo_max_pct"`
	InvoiceAllowMaxPct decimal.Decimal `json:"invoice_allow_max_pct"`
}

// ResetResponse reports the journal size after an admin action.
type ResetResponse struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
	AsOf    string `json:"as_of,omitempty"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateFormat)
}

func toLineDTOs(lines []statements.Line) []LineDTO {
	out := make([]LineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineDTO{Code: l.Code, Name: l.Name, Amount: l.Amount})
	}
	return out
}

func toTrialBalanceDTO(r statements.TrialBalanceReport) TrialBalanceDTO {
	dto := TrialBalanceDTO{
		AsOf:         formatDate(r.AsOf),
		TrialBalance: make(map[string]decimal.Decimal, len(r.Lines)),
		Lines:        toLineDTOs(r.Lines),
		Check:        r.Check,
	}
	for _, l := range r.Lines {
		dto.TrialBalance[l.Code] = l.Amount
	}
	for _, t := range r.Totals {
		dto.Totals = append(dto.Totals, ClassTotalDTO{Class: string(t.Class), Total: t.Total})
	}
	return dto
}

func toIncomeStatementDTO(is statements.IncomeStatement) IncomeStatementDTO {
	dto := IncomeStatementDTO{
		Revenue:         is.Revenue,
		COGS:            is.COGS,
		GrossProfit:     is.GrossProfit,
		OpEx:            is.OpEx,
		OperatingIncome: is.OperatingIncome,
		OtherIncome:     is.OtherIncome,
		OtherExpense:    is.OtherExpense,
		Interest:        is.Interest,
		PretaxIncome:    is.PretaxIncome,
		Tax:             is.Tax,
		NetIncome:       is.NetIncome,
		Check:           is.Check,
	}
	if is.Start.IsZero() {
		dto.AsOf = formatDate(is.End)
	} else {
		dto.Period = &PeriodDTO{Start: formatDate(is.Start), End: formatDate(is.End)}
	}
	return dto
}

func toBalanceSheetDTO(bs statements.BalanceSheet) BalanceSheetDTO {
	re := bs.RetainedEarnings
	return BalanceSheetDTO{
		AsOf:                      formatDate(bs.AsOf),
		Assets:                    toLineDTOs(bs.Assets),
		Liabilities:               toLineDTOs(bs.Liabilities),
		Equity:                    toLineDTOs(bs.Equity),
		RetainedEarnings:          LineDTO{Code: re.Code, Name: re.Name, Amount: re.Amount},
		TotalAssets:               bs.TotalAssets,
		TotalLiabilities:          bs.TotalLiabilities,
		TotalEquity:               bs.TotalEquity,
		TotalLiabilitiesAndEquity: bs.TotalLiabilitiesAndEquity,
		Check:                     bs.Check,
		Balances:                  bs.Balances(),
	}
}

func toCashFlowDTO(cf statements.CashFlowDirect) CashFlowDTO {
	return CashFlowDTO{
		Period:          PeriodDTO{Start: formatDate(cf.Start), End: formatDate(cf.End)},
		Operating:       toLineDTOs(cf.Operating),
		Investing:       toLineDTOs(cf.Investing),
		Financing:       toLineDTOs(cf.Financing),
		CFO:             cf.TotalOperating,
		CFI:             cf.TotalInvesting,
		CFF:             cf.TotalFinancing,
		NetChangeInCash: cf.NetChangeInCash,
		BeginningCash:   cf.BeginningCash,
		EndingCash:      cf.EndingCash,
		Difference:      cf.Difference,
		Reconciles:      cf.Reconciles(),
		Check:           cf.Check,
	}
}

func toReceivablesDTO(s statements.ReceivablesSnapshot) ReceivablesDTO {
	return ReceivablesDTO{AR: s.Receivables, Cash: s.Cash, Revenue: s.Revenue, Returns: s.Returns}
}

func toEntryLineDTOs(lines []model.JournalLine) []EntryLineDTO {
	out := make([]EntryLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, EntryLineDTO{Account: l.Account, Debit: l.Debit, Credit: l.Credit})
	}
	return out
}

func toEntryDTO(e model.JournalEntry) EntryDTO {
	return EntryDTO{ID: e.ID, Date: formatDate(e.Date), Memo: e.Memo, Lines: toEntryLineDTOs(e.Lines)}
}

func toPostingDTO(r posting.Result) PostingDTO {
	return PostingDTO{EntryID: r.EntryID, Lines: toEntryLineDTOs(r.Lines)}
}

func toPricingDTO(r pricing.Result) PricingDTO {
	dto := PricingDTO{
		Units:           r.Units,
		BaseUnitPrice:   r.BaseUnitPrice,
		BaseLineAmount:  r.BaseLineAmount,
		Steps:           make([]StepDTO, 0, len(r.Steps)),
		FinalUnitPrice:  r.FinalUnitPrice,
		FinalLineAmount: r.FinalLineAmount,
	}
	for _, s := range r.Steps {
		dto.Steps = append(dto.Steps, StepDTO{
			Code:              s.Code,
			Label:             s.Label,
			Category:          string(s.Category),
			Amount:            s.Amount,
			InterimUnitPrice:  s.InterimUnitPrice,
			InterimLineAmount: s.InterimLineAmount,
			Clamped:           s.Clamped,
		})
	}
	return dto
}

func toRevenueDTO(w pricing.RevenueWaterfall) RevenueWaterfallDTO {
	return RevenueWaterfallDTO{
		GrossSales:            w.GrossSales,
		StructuralAllowances:  w.Structural,
		PromotionalAllowances: w.Promotional,
		InvoiceAllowances:     w.Invoice,
		CancelledOrders:       w.Cancelled,
		TotalMinorations:      w.TotalMinorations,
		NetSales:              w.NetSales,
	}
}

func toPricedOrderDTO(p posting.PricedOrder) PricedOrderDTO {
	dto := PricedOrderDTO{
		OrderID:      p.OrderID,
		CustomerID:   p.CustomerID,
		CustomerName: p.CustomerName,
		Lines:        make([]PricedLineDTO, 0, len(p.Lines)),
		Gross:        p.Gross,
		Adjustments:  p.Adjustments,
		NetAmount:    p.NetAmount,
	}
	for _, l := range p.Lines {
		dto.Lines = append(dto.Lines, PricedLineDTO{MaterialID: l.MaterialID, Pricing: toPricingDTO(l.Pricing)})
	}
	return dto
}
