package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cleared-dev/redline/internal/interchange"
	"github.com/cleared-dev/redline/internal/ledger"
	"github.com/cleared-dev/redline/internal/masterdata"
	"github.com/cleared-dev/redline/internal/metrics"
	"github.com/cleared-dev/redline/internal/model"
	"github.com/cleared-dev/redline/internal/posting"
	"github.com/cleared-dev/redline/internal/pricing"
	"github.com/cleared-dev/redline/internal/seed"
	"github.com/cleared-dev/redline/internal/statements"
)

// Handler holds the dependencies of every HTTP handler.
type Handler struct {
	Ledger   *ledger.Ledger
	Postings *posting.Service
	Formats  *interchange.Registry
	Metrics  *metrics.Metrics // nil disables /metrics and instrumentation

	company string
	logger  *slog.Logger
	opts    []statements.Option
}

// Config carries the optional settings of a Handler.
type Config struct {
	Company                 string
	CashAccount             string
	RetainedEarningsAccount string
	Logger                  *slog.Logger
	Metrics                 *metrics.Metrics
}

// NewHandler creates a handler over l. Postings go through svc, which must
// post to the same ledger.
func NewHandler(l *ledger.Ledger, svc *posting.Service, cfg Config) *Handler {
	h := &Handler{
		Ledger:   l,
		Postings: svc,
		Formats:  interchange.DefaultRegistry(),
		Metrics:  cfg.Metrics,
		company:  cfg.Company,
		logger:   cfg.Logger,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if cfg.CashAccount != "" {
		h.opts = append(h.opts, statements.WithCashAccount(cfg.CashAccount))
	}
	if cfg.RetainedEarningsAccount != "" {
		h.opts = append(h.opts, statements.WithRetainedEarningsAccount(cfg.RetainedEarningsAccount))
	}
	return h
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// REPORTS
// =============================================================================

// TrialBalance returns the trial balance as of as_of.
func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, ok := requireDate(w, r, "as_of")
	if !ok {
		return
	}
	h.built(metrics.StatementTrialBalance)
	writeJSON(w, http.StatusOK, toTrialBalanceDTO(statements.BuildTrialBalance(h.Ledger, asOf)))
}

// ProfitAndLoss returns the income statement for activity after start through end.
func (h *Handler) ProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	start, end, ok := requirePeriod(w, r)
	if !ok {
		return
	}
	is, err := statements.BuildIncomeStatementForPeriod(h.Ledger, start, end)
	if err != nil {
		h.writeDomainError(w, "Failed to build income statement", err)
		return
	}
	h.built(metrics.StatementIncome)
	writeJSON(w, http.StatusOK, toIncomeStatementDTO(is))
}

// BalanceSheet returns the balance sheet as of as_of.
func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, ok := requireDate(w, r, "as_of")
	if !ok {
		return
	}
	h.built(metrics.StatementBalance)
	writeJSON(w, http.StatusOK, toBalanceSheetDTO(statements.BuildBalanceSheet(h.Ledger, asOf, h.opts...)))
}

// Statements returns all three statements for as_of. The cash flow runs from
// prev, which defaults to January 1 of the as_of year.
func (h *Handler) Statements(w http.ResponseWriter, r *http.Request) {
	asOf, ok := requireDate(w, r, "as_of")
	if !ok {
		return
	}
	prev, ok := optionalDate(w, r, "prev", statements.DefaultStart(asOf))
	if !ok {
		return
	}
	p, err := statements.BuildPack(h.Ledger, prev, asOf, h.opts...)
	if err != nil {
		h.writeDomainError(w, "'prev' must be before 'as_of'", err)
		return
	}
	h.built(metrics.StatementPack)
	writeJSON(w, http.StatusOK, StatementsDTO{
		IncomeStatement: toIncomeStatementDTO(p.Income),
		BalanceSheet:    toBalanceSheetDTO(p.Balance),
		CashFlowDirect:  toCashFlowDTO(p.CashFlow),
	})
}

// ExportStatements renders the statement pack as a spreadsheet or PDF.
// The format comes from the route: export.xlsx or export.pdf.
func (h *Handler) ExportStatements(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		end, ok := requireDate(w, r, "end")
		if !ok {
			return
		}
		start, ok := optionalDate(w, r, "start", statements.DefaultStart(end))
		if !ok {
			return
		}
		p, err := statements.BuildPack(h.Ledger, start, end, h.opts...)
		if err != nil {
			h.writeDomainError(w, "Invalid statement period", err)
			return
		}

		var (
			data        []byte
			contentType string
		)
		switch format {
		case "xlsx":
			data, err = statements.BuildPackXLSX(p, h.company)
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case "pdf":
			data, err = statements.BuildPackPDF(p, h.company)
			contentType = "application/pdf"
		default:
			writeError(w, http.StatusNotFound, "Unknown export format", nil)
			return
		}
		if err != nil {
			h.writeDomainError(w, "Failed to export statements", err)
			return
		}
		h.built(metrics.StatementPack)

		filename := fmt.Sprintf("statements-%s.%s", end.Format(model.DateFormat), format)
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// ARAudit compares ending balances and period movement of receivables,
// cash, revenue and returns.
func (h *Handler) ARAudit(w http.ResponseWriter, r *http.Request) {
	start, end, ok := requirePeriod(w, r)
	if !ok {
		return
	}
	audit, err := statements.BuildReceivablesAudit(h.Ledger, start, end, h.opts...)
	if err != nil {
		h.writeDomainError(w, "Failed to build AR audit", err)
		return
	}
	writeJSON(w, http.StatusOK, ARAuditDTO{
		Period:         PeriodDTO{Start: formatDate(audit.Start), End: formatDate(audit.End)},
		EndingBalances: toReceivablesDTO(audit.Ending),
		PeriodDeltas:   toReceivablesDTO(audit.Delta),
		Check:          audit.Check,
	})
}

// JournalDump lists every posted entry in posting order.
func (h *Handler) JournalDump(w http.ResponseWriter, r *http.Request) {
	entries := h.Ledger.Entries()
	dto := JournalDumpDTO{Entries: make([]EntryDTO, 0, len(entries)), Count: len(entries)}
	for _, e := range entries {
		dto.Entries = append(dto.Entries, toEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// ADMIN
// =============================================================================

// Reset clears the journal.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Ledger.Reset()
	writeJSON(w, http.StatusOK, ResetResponse{Status: "ok", Entries: h.Ledger.Len()})
}

// LoadBaseline replaces the journal with the opening balance sheet dated as_of.
func (h *Handler) LoadBaseline(w http.ResponseWriter, r *http.Request) {
	asOf, ok := optionalDate(w, r, "as_of", seed.DefaultBaselineDate())
	if !ok {
		return
	}
	if err := seed.Load(h.Ledger, seed.Baseline, asOf); err != nil {
		h.writeDomainError(w, "Failed to load baseline", err)
		return
	}
	h.logger.Info("baseline loaded", "as_of", asOf.Format(model.DateFormat))
	writeJSON(w, http.StatusOK, ResetResponse{Status: "ok", Entries: h.Ledger.Len(), AsOf: formatDate(asOf)})
}

// ExportJournal writes the journal in the format named by ?format= (json by default).
func (h *Handler) ExportJournal(w http.ResponseWriter, r *http.Request) {
	format := formatParam(r)
	codec := h.Formats.Get(format)
	if codec == nil {
		writeError(w, http.StatusBadRequest, "Unknown journal format", fmt.Errorf("%w %q", interchange.ErrUnknownFormat, format))
		return
	}
	var buf bytes.Buffer
	if err := h.Formats.Export(&buf, h.Ledger, format); err != nil {
		h.writeDomainError(w, "Failed to export journal", err)
		return
	}
	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// ImportJournal replaces the journal with the request body. Nothing changes
// unless every entry validates.
func (h *Handler) ImportJournal(w http.ResponseWriter, r *http.Request) {
	format := formatParam(r)
	n, err := h.Formats.Import(r.Body, h.Ledger, format)
	if err != nil {
		h.writeDomainError(w, "Failed to import journal", err)
		return
	}
	h.logger.Info("journal imported", "format", format, "entries", n)
	writeJSON(w, http.StatusOK, ResetResponse{Status: "ok", Entries: n})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) built(statement string) {
	if h.Metrics != nil {
		h.Metrics.StatementBuilt(statement)
	}
}

func formatParam(r *http.Request) string {
	if f := strings.TrimSpace(r.URL.Query().Get("format")); f != "" {
		return f
	}
	if strings.Contains(r.Header.Get("Content-Type"), "csv") {
		return "csv"
	}
	return "json"
}

func contentTypeFor(format string) string {
	if strings.EqualFold(format, "csv") {
		return "text/csv"
	}
	return "application/json"
}

func requireDate(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Missing %s (use YYYY-MM-DD)", name), nil)
		return time.Time{}, false
	}
	d, err := model.ParseDate(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s format (use YYYY-MM-DD)", name), err)
		return time.Time{}, false
	}
	return d, true
}

func optionalDate(w http.ResponseWriter, r *http.Request, name string, fallback time.Time) (time.Time, bool) {
	if r.URL.Query().Get(name) == "" {
		return fallback, true
	}
	return requireDate(w, r, name)
}

func requirePeriod(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	start, ok := requireDate(w, r, "start")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := requireDate(w, r, "end")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func parseBodyDate(w http.ResponseWriter, name, v string) (time.Time, bool) {
	d, err := model.ParseDate(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s format (use YYYY-MM-DD)", name), err)
		return time.Time{}, false
	}
	return d, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var dup *ledger.DuplicateEntryError
	switch {
	case errors.As(err, &dup):
		return http.StatusConflict
	case errors.Is(err, masterdata.ErrNotFound):
		return http.StatusNotFound
	case ledger.IsValidation(err),
		errors.Is(err, pricing.ErrNegativeInput),
		errors.Is(err, pricing.ErrInvalidCondition),
		errors.Is(err, posting.ErrPolicyExceeded),
		errors.Is(err, interchange.ErrUnknownFormat),
		errors.Is(err, interchange.ErrMalformed):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(message, "error", err)
	}
	resp := ErrorResponse{Error: message, Details: err.Error()}
	if status == http.StatusBadRequest || status == http.StatusConflict {
		resp.Reason = ledger.Reason(err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
