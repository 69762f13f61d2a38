// Package api exposes the ledger, statements, pricing and posting services
// over HTTP.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAllowedOrigins is used when no origins are configured.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.Health)

	r.Route("/finance", func(r chi.Router) {
		r.Route("/report", func(r chi.Router) {
			r.Get("/trial_balance", h.TrialBalance)
			r.Get("/pl", h.ProfitAndLoss)
			r.Get("/bs", h.BalanceSheet)
		})

		r.Get("/statements", h.Statements)
		r.Get("/statements/export.xlsx", h.ExportStatements("xlsx"))
		r.Get("/statements/export.pdf", h.ExportStatements("pdf"))

		r.Route("/diag", func(r chi.Router) {
			r.Get("/ar_audit", h.ARAudit)
			r.Get("/journal_dump", h.JournalDump)
		})

		r.Route("/revenue", func(r chi.Router) {
			r.Post("/pricing", h.PricingWaterfall)
			r.Post("/waterfall", h.RevenueWaterfall)
		})
	})

	r.Route("/ar", func(r chi.Router) {
		r.Post("/receive", h.ReceiveCash)
	})

	r.Route("/ap", func(r chi.Router) {
		r.Post("/bill", h.EnterSupplierBill)
		r.Post("/pay", h.PaySupplier)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/price", h.PriceOrder)
		r.Post("/confirm", h.ConfirmOrder)
		r.Post("/ship", h.ShipOrder)
		r.Post("/return", h.ReturnOrder)

		r.Route("/{order_id}", func(r chi.Router) {
			r.Post("/invoice_posting", h.PostOrderInvoice)
			r.Post("/receipt_posting", h.PostOrderReceipt)
			r.Post("/return_posting", h.PostOrderReturn)
		})
	})

	r.Route("/masterdata", func(r chi.Router) {
		r.Get("/customers", h.ListCustomers)
		r.Get("/suppliers", h.ListSuppliers)
		r.Get("/materials", h.ListMaterials)
		r.Get("/payment_terms", h.ListPaymentTerms)
		r.Get("/pricing_policy", h.GetPricingPolicy)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/reset", h.Reset)
		r.Post("/load/baseline", h.LoadBaseline)
		r.Get("/journal", h.ExportJournal)
		r.Put("/journal", h.ImportJournal)
	})

	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics.Handler())
	}

	return r
}
