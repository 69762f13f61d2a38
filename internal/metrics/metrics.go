// Package metrics exposes Prometheus collectors for ledger activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cleared-dev/redline/internal/model"
)

const (
	metricPrefix = "redline_"

	resultPosted   = "posted"
	resultRejected = "rejected"
)

// Statement labels for StatementBuilt.
const (
	StatementTrialBalance = "trial_balance"
	StatementIncome       = "income_statement"
	StatementBalance      = "balance_sheet"
	StatementCashFlow     = "cash_flow"
	StatementPack         = "pack"
)

// Metrics bundles the redline collectors. It satisfies ledger.Observer.
type Metrics struct {
	PostsTotal      *prometheus.CounterVec
	RejectionsTotal *prometheus.CounterVec
	StatementBuilds *prometheus.CounterVec
	PricingSteps    prometheus.Histogram

	registry *prometheus.Registry
}

// New constructs the collectors and registers them on reg. A nil reg gets a
// fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		PostsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "journal_posts_total",
				Help: "Total journal posts by result",
			},
			[]string{"result"},
		),
		RejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "journal_rejections_total",
				Help: "Total rejected journal posts by reason",
			},
			[]string{"reason"},
		),
		StatementBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_builds_total",
				Help: "Total statement builds by statement",
			},
			[]string{"statement"},
		),
		PricingSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "pricing_steps",
			Help:    "Applied pricing steps per waterfall run",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		registry: reg,
	}
	reg.MustRegister(
		m.PostsTotal,
		m.RejectionsTotal,
		m.StatementBuilds,
		m.PricingSteps,
	)
	return m
}

// Posted counts an accepted journal entry.
func (m *Metrics) Posted(model.JournalEntry) {
	m.PostsTotal.WithLabelValues(resultPosted).Inc()
}

// Rejected counts a rejected journal entry under reason.
func (m *Metrics) Rejected(_ model.JournalEntry, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.PostsTotal.WithLabelValues(resultRejected).Inc()
	m.RejectionsTotal.WithLabelValues(reason).Inc()
}

// StatementBuilt counts one build of the named statement.
func (m *Metrics) StatementBuilt(statement string) {
	if statement == "" {
		statement = "unknown"
	}
	m.StatementBuilds.WithLabelValues(statement).Inc()
}

// ObservePricing records how many steps a waterfall run applied.
func (m *Metrics) ObservePricing(steps int) {
	if steps < 0 {
		steps = 0
	}
	m.PricingSteps.Observe(float64(steps))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
