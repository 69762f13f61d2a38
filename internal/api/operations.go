package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cleared-dev/redline/internal/masterdata"
	"github.com/cleared-dev/redline/internal/posting"
	"github.com/cleared-dev/redline/internal/pricing"
)

// =============================================================================
// REVENUE
// =============================================================================

// PricingWaterfall runs the pricing waterfall over the request conditions.
func (h *Handler) PricingWaterfall(w http.ResponseWriter, r *http.Request) {
	var req PricingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Units.IsPositive() || !req.ListPrice.IsPositive() {
		writeError(w, http.StatusBadRequest, "units and list_price must be > 0", nil)
		return
	}
	conds, err := masterdata.Conditions(req.Conditions)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid conditions", err)
		return
	}
	res, err := pricing.Compute(req.ListPrice, req.Units, conds)
	if err != nil {
		h.writeDomainError(w, "Failed to price line", err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.ObservePricing(len(res.Steps))
	}
	writeJSON(w, http.StatusOK, toPricingDTO(res))
}

// RevenueWaterfall walks gross sales down to net sales.
func (h *Handler) RevenueWaterfall(w http.ResponseWriter, r *http.Request) {
	var req RevenueWaterfallRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Units.IsPositive() || !req.ListPrice.IsPositive() {
		writeError(w, http.StatusBadRequest, "units and list_price must be > 0", nil)
		return
	}
	res := pricing.ComputeRevenue(pricing.RevenueInput{
		Units:       req.Units,
		ListPrice:   req.ListPrice,
		Structural:  req.StructuralAllowances,
		Promotional: req.PromotionalAllowances,
		Invoice:     req.InvoiceAllowances,
		Cancelled:   req.CancelledOrders,
	})
	writeJSON(w, http.StatusOK, toRevenueDTO(res))
}

// =============================================================================
// AR / AP
// =============================================================================

// ReceiveCash posts a customer receipt.
func (h *Handler) ReceiveCash(w http.ResponseWriter, r *http.Request) {
	var req ReceiptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	on, ok := parseBodyDate(w, "date", req.Date)
	if !ok {
		return
	}
	var invoiced time.Time
	if req.InvoiceDate != "" {
		if invoiced, ok = parseBodyDate(w, "invoice_date", req.InvoiceDate); !ok {
			return
		}
	}
	res, err := h.Postings.ReceiveCash(posting.CashReceipt{
		ReceiptID:      req.ReceiptID,
		CustomerID:     req.CustomerID,
		Date:           on,
		AmountInvoice:  req.AmountInvoice,
		AmountReceived: req.AmountReceived,
		DiscountTaken:  req.DiscountTaken,
		Memo:           req.Memo,
		InvoiceDate:    invoiced,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to post receipt", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostingDTO(res))
}

// EnterSupplierBill posts a vendor invoice.
func (h *Handler) EnterSupplierBill(w http.ResponseWriter, r *http.Request) {
	var req SupplierBillRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	on, ok := parseBodyDate(w, "date", req.Date)
	if !ok {
		return
	}
	res, err := h.Postings.EnterSupplierBill(posting.SupplierBill{
		BillID:                req.BillID,
		SupplierID:            req.SupplierID,
		Date:                  on,
		Amount:                req.Amount,
		Description:           req.Description,
		CapitalizeToInventory: req.CapitalizeToInventory,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to post supplier bill", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostingDTO(res))
}

// PaySupplier posts a vendor payment.
func (h *Handler) PaySupplier(w http.ResponseWriter, r *http.Request) {
	var req SupplierPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	on, ok := parseBodyDate(w, "date", req.Date)
	if !ok {
		return
	}
	res, err := h.Postings.PaySupplier(posting.SupplierPayment{
		PaymentID:     req.PaymentID,
		SupplierID:    req.SupplierID,
		Date:          on,
		AmountInvoice: req.AmountInvoice,
		AmountPaid:    req.AmountPaid,
		DiscountTaken: req.DiscountTaken,
		Memo:          req.Memo,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to post supplier payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostingDTO(res))
}

// =============================================================================
// ORDERS
// =============================================================================

// PriceOrder prices every line of an order without posting.
func (h *Handler) PriceOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, ok := toOrder(w, req)
	if !ok {
		return
	}
	priced, err := h.Postings.PriceOrder(o)
	if err != nil {
		h.writeDomainError(w, "Failed to price order", err)
		return
	}
	h.observeOrder(priced)
	writeJSON(w, http.StatusOK, toPricedOrderDTO(priced))
}

// ConfirmOrder prices an order and books its net amount to receivables.
func (h *Handler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, ok := toOrder(w, req)
	if !ok {
		return
	}
	var on time.Time
	if req.PostingDate != "" {
		if on, ok = parseBodyDate(w, "posting_date", req.PostingDate); !ok {
			return
		}
	}
	res, priced, err := h.Postings.ConfirmOrder(o, on)
	if err != nil {
		h.writeDomainError(w, "Failed to confirm order", err)
		return
	}
	h.observeOrder(priced)
	writeJSON(w, http.StatusCreated, ConfirmOrderResponse{Posting: toPostingDTO(res), Order: toPricedOrderDTO(priced)})
}

// ShipOrder relieves inventory into cost of goods sold.
func (h *Handler) ShipOrder(w http.ResponseWriter, r *http.Request) {
	var req ShipRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	on, ok := parseBodyDate(w, "date", req.Date)
	if !ok {
		return
	}

	var (
		ship posting.Shipment
		err  error
	)
	if len(req.Lines) > 0 {
		o, ok := toOrder(w, OrderRequest{OrderID: req.OrderID, OrderDate: req.Date, Lines: req.Lines})
		if !ok {
			return
		}
		ship, err = h.Postings.ShipOrderLines(o, on)
	} else {
		ship, err = h.Postings.ShipOrder(req.OrderID, on, req.MaterialID, req.Units)
	}
	if err != nil {
		h.writeDomainError(w, "Failed to ship order", err)
		return
	}

	dto := ShipmentDTO{PostingDTO: toPostingDTO(ship.Result), COGS: ship.COGS}
	if len(req.Lines) == 0 {
		unit := ship.UnitCost
		dto.UnitCost = &unit
	}
	writeJSON(w, http.StatusCreated, dto)
}

// ReturnOrder reverses revenue, and cost when given, for returned goods.
func (h *Handler) ReturnOrder(w http.ResponseWriter, r *http.Request) {
	var req ReturnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	on, ok := parseBodyDate(w, "date", req.Date)
	if !ok {
		return
	}
	res, err := h.Postings.ReturnOrder(req.OrderID, req.Amount, req.Cost, on)
	if err != nil {
		h.writeDomainError(w, "Failed to post return", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostingDTO(res))
}

// PostOrderInvoice books a sale on account for the order in the path.
func (h *Handler) PostOrderInvoice(w http.ResponseWriter, r *http.Request) {
	var req OrderAmountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	on, ok := parseBodyDate(w, "date", req.Date)
	if !ok {
		return
	}
	res, err := h.Postings.PostInvoice(chi.URLParam(r, "order_id"), req.Amount, on, req.Memo)
	if err != nil {
		h.writeDomainError(w, "Failed to post invoice", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostingDTO(res))
}

// PostOrderReceipt collects cash against the order in the path. An early-pay
// discount relieves receivables alongside the cash.
func (h *Handler) PostOrderReceipt(w http.ResponseWriter, r *http.Request) {
	var req OrderReceiptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	on, ok := parseBodyDate(w, "date", req.Date)
	if !ok {
		return
	}
	res, err := h.Postings.PostCashReceipt(chi.URLParam(r, "order_id"), req.CashAmount, req.EarlyPayDiscount, on, req.Memo)
	if err != nil {
		h.writeDomainError(w, "Failed to post receipt", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostingDTO(res))
}

// PostOrderReturn credits receivables for goods returned on the order in the path.
func (h *Handler) PostOrderReturn(w http.ResponseWriter, r *http.Request) {
	var req OrderAmountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	on, ok := parseBodyDate(w, "date", req.Date)
	if !ok {
		return
	}
	res, err := h.Postings.PostReturn(chi.URLParam(r, "order_id"), req.Amount, on, req.Memo)
	if err != nil {
		h.writeDomainError(w, "Failed to post sales return", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostingDTO(res))
}

func (h *Handler) observeOrder(p posting.PricedOrder) {
	if h.Metrics == nil {
		return
	}
	for _, l := range p.Lines {
		h.Metrics.ObservePricing(len(l.Pricing.Steps))
	}
}

func toOrder(w http.ResponseWriter, req OrderRequest) (posting.Order, bool) {
	on, ok := parseBodyDate(w, "order_date", req.OrderDate)
	if !ok {
		return posting.Order{}, false
	}
	o := posting.Order{
		ID:                   req.OrderID,
		Date:                 on,
		CustomerID:           req.CustomerID,
		UseDefaultConditions: req.UseDefaultConditions,
	}
	for _, l := range req.Lines {
		conds, err := masterdata.Conditions(l.Conditions)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid conditions", err)
			return posting.Order{}, false
		}
		o.Lines = append(o.Lines, posting.OrderLine{
			MaterialID: l.MaterialID,
			Units:      l.Units,
			ListPrice:  l.ListPrice,
			Conditions: conds,
		})
	}
	return o, true
}

// =============================================================================
// MASTER DATA
// =============================================================================

// ListCustomers returns every customer ordered by id.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.Postings.Catalog().Customers()
	out := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, CustomerDTO{ID: c.ID, Name: c.Name, PaymentTerms: c.PaymentTerms})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListSuppliers returns every supplier ordered by id.
func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers := h.Postings.Catalog().Suppliers()
	out := make([]SupplierDTO, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, SupplierDTO{ID: s.ID, Name: s.Name, PaymentTerms: s.PaymentTerms})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListMaterials returns every material with its rolled-up standard cost.
func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	catalog := h.Postings.Catalog()
	materials := catalog.Materials()
	out := make([]MaterialDTO, 0, len(materials))
	for _, m := range materials {
		cost, err := catalog.RollupStdCost(m.ID)
		if err != nil {
			h.writeDomainError(w, "Failed to cost material", err)
			return
		}
		out = append(out, MaterialDTO{ID: m.ID, Description: m.Description, UOM: m.UOM, Type: string(m.Type), StdCost: cost})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListPaymentTerms returns every payment term ordered by code.
func (h *Handler) ListPaymentTerms(w http.ResponseWriter, r *http.Request) {
	terms := h.Postings.Catalog().PaymentTerms()
	out := make([]PaymentTermDTO, 0, len(terms))
	for _, t := range terms {
		out = append(out, PaymentTermDTO{
			Code:            t.Code,
			DiscountPct:     t.DiscountPct,
			DiscountDays:    t.DiscountDays,
			NetDays:         t.NetDays,
			LateFeePctPer30: t.LateFeePctPer30,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPricingPolicy returns the discount caps enforced on order pricing.
func (h *Handler) GetPricingPolicy(w http.ResponseWriter, r *http.Request) {
	p := h.Postings.Catalog().Policy()
	writeJSON(w, http.StatusOK, PricingPolicyDTO{
		StructuralMaxPct:   p.StructuralMaxPct,
		PromoMaxPct:        p.PromoMaxPct,
		InvoiceAllowMaxPct: p.InvoiceAllowMaxPct,
	})
}
