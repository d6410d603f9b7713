package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	drepo "QuoteDesk/internal/domain/repository"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamTotal   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	degradedTotal   *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
}

// New registers the quote metrics on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		upstreamTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotedesk_upstream_requests_total",
				Help: "Upstream market data calls by call and result",
			},
			[]string{"call", "result"},
		),
		upstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quotedesk_upstream_request_duration_seconds",
				Help:    "Upstream market data call latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"call"},
		),
		degradedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotedesk_degraded_summaries_total",
				Help: "Summaries served without chart data",
			},
			[]string{"reason"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotedesk_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quotedesk_last_price",
				Help: "Last served price for a symbol",
			},
			[]string{"symbol"},
		),
	}
}

// RecordUpstream records one upstream call outcome and its latency.
func (r *Recorder) RecordUpstream(call, result string, seconds float64) {
	r.upstreamTotal.WithLabelValues(call, result).Inc()
	r.upstreamLatency.WithLabelValues(call).Observe(seconds)
}

// RecordDegraded counts a summary returned with empty chart data.
func (r *Recorder) RecordDegraded(reason string) {
	r.degradedTotal.WithLabelValues(reason).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

var _ drepo.Metrics = (*Recorder)(nil)
