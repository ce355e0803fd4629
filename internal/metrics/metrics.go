package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DeletesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transaction_deletes_total",
			Help: "Transaction delete operations by outcome",
		},
		[]string{"mode", "result"}, // mode: single|bulk, result: ok|not_found|error
	)

	RecalculationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balance_recalculations_total",
			Help: "Balance chain recalculation passes",
		},
	)

	RecalculatedRows = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balance_recalculated_rows_total",
			Help: "balance_after rows rewritten during recalculation",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(DeletesTotal)
	prometheus.MustRegister(RecalculationsTotal)
	prometheus.MustRegister(RecalculatedRows)
	prometheus.MustRegister(WorkerQueueDepth)
}
