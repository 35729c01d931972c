// Package metrics defines the Prometheus instruments exposed at /metrics.
//
// Everything is registered in init() and served by the handler the router
// mounts, in the Prometheus text exposition format:
//   - methax_http_requests_total{method,path,status}
//   - methax_http_request_duration_seconds{method,path}
//   - methax_upstream_requests_total{endpoint,status}
//   - methax_candles_upserted_total{timeframe,result}
//   - methax_spot_resolutions_total{source}
//   - methax_gate_verdicts_total{allowed}
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts handled HTTP requests by route and status code.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "methax_http_requests_total",
			Help: "Handled HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration observes wall-clock handler latency by route.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "methax_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// UpstreamRequests counts calls to the market data provider.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "methax_upstream_requests_total",
			Help: "Upstream provider requests",
		},
		[]string{"endpoint", "status"}, // status: ok|http_error|network_error|decode_error|api_error
	)

	// CandlesUpserted counts persisted candles split by write outcome.
	CandlesUpserted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "methax_candles_upserted_total",
			Help: "Candles written to the store",
		},
		[]string{"timeframe", "result"}, // result: inserted|updated
	)

	// SpotResolutions counts spot price lookups by the chain tier that served
	// them; "none" means the whole chain came up empty.
	SpotResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "methax_spot_resolutions_total",
			Help: "Spot price resolutions by source",
		},
		[]string{"source"},
	)

	// GateVerdicts counts risk gate evaluations by outcome.
	GateVerdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "methax_gate_verdicts_total",
			Help: "Risk gate verdicts",
		},
		[]string{"allowed"}, // allowed: true|false
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPDuration,
		UpstreamRequests,
		CandlesUpserted,
		SpotResolutions,
		GateVerdicts,
	)
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
