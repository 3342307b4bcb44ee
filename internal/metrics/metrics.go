// Package metrics registers the process-wide prometheus instruments and
// serves them over HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "monitor_ticks_total", Help: "Completed divergence check passes"},
	)
	TickErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "monitor_tick_errors_total", Help: "Check passes aborted by a fetch failure"},
	)
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "divergence_alerts_total", Help: "Divergence alerts emitted"},
		[]string{"pair", "action"},
	)
	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "price_fetch_errors_total", Help: "Price source failures by operation"},
		[]string{"op"},
	)
	PairZScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "pair_zscore", Help: "Latest ratio z-score per pair"},
		[]string{"pair"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, TickErrors, AlertsTotal, FetchErrors, PairZScore)
}

// Serve exposes /metrics on addr and returns the server for shutdown.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
