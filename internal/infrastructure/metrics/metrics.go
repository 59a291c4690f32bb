// Package metrics exports Prometheus instrumentation for the transaction
// orchestrator.
package metrics

import (
	"time"

	"inventory-admin/internal/transaction"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TxObserver implements transaction.Observer.
type TxObserver struct {
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	backoff  *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	perCall  *prometheus.HistogramVec
}

// NewTxObserver registers the collectors on reg.
func NewTxObserver(reg prometheus.Registerer) *TxObserver {
	f := promauto.With(reg)
	return &TxObserver{
		attempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "tx_attempts_total",
			Help:      "Transaction attempts started.",
		}, []string{"mode"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "tx_retries_total",
			Help:      "Attempts that failed retryably and were scheduled again.",
		}, []string{"mode"}),
		backoff: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "tx_backoff_seconds",
			Help:      "Delay scheduled before a retry.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 20, 40, 60},
		}, []string{"mode"}),
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "tx_outcomes_total",
			Help:      "Finished orchestrated calls by outcome.",
		}, []string{"mode", "outcome"}),
		perCall: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "tx_attempts_per_call",
			Help:      "Attempts used by one orchestrated call.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12},
		}, []string{"mode"}),
	}
}

func (o *TxObserver) Attempt(mode transaction.Mode, _ int) {
	o.attempts.WithLabelValues(mode.String()).Inc()
}

func (o *TxObserver) Retry(mode transaction.Mode, _ int, delay time.Duration, _ error) {
	o.retries.WithLabelValues(mode.String()).Inc()
	o.backoff.WithLabelValues(mode.String()).Observe(delay.Seconds())
}

func (o *TxObserver) Done(mode transaction.Mode, attempts int, err error) {
	o.outcomes.WithLabelValues(mode.String(), Outcome(err)).Inc()
	if attempts > 0 {
		o.perCall.WithLabelValues(mode.String()).Observe(float64(attempts))
	}
}

// Outcome is the label value for a finished call.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind, ok := transaction.KindOf(err); ok {
		return kind.String()
	}
	return "error"
}

// StockGauge publishes the low-stock count from the reorder scanner.
type StockGauge struct {
	low prometheus.Gauge
}

func NewStockGauge(reg prometheus.Registerer) *StockGauge {
	return &StockGauge{low: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Namespace: "inventory",
		Name:      "records_below_reorder",
		Help:      "Active inventory records at or below their reorder level.",
	})}
}

func (g *StockGauge) SetLowStock(n int) { g.low.Set(float64(n)) }
