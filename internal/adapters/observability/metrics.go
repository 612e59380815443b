package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotels", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotels", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	DatasetRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "hotels", Name: "dataset_records", Help: "Records in the loaded dataset."},
	)
	ReportOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotels", Name: "reports_total", Help: "Reports built, by outcome."},
		[]string{"outcome"}, // outcome: ok|empty
	)
	InsightSkips = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotels", Name: "insight_skips_total", Help: "Insights skipped for a missing column."},
		[]string{"insight"},
	)
	ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotels", Name: "exports_total", Help: "Filtered dataset downloads."},
		[]string{"format"}, // format: csv|xlsx
	)
)

// NewMetricsServer serves reg on addr under /metrics.
func NewMetricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, DatasetRecords, ReportOutcomes, InsightSkips, ExportsTotal)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func SetDatasetRecords(n int) { DatasetRecords.Set(float64(n)) }

func ObserveReport(outcome string) { ReportOutcomes.WithLabelValues(outcome).Inc() }

func ObserveSkip(insight string) { InsightSkips.WithLabelValues(insight).Inc() }

func ObserveExport(format string) { ExportsTotal.WithLabelValues(format).Inc() }
