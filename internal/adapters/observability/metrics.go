package observability

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "audit", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "audit", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ResponsesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "audit", Name: "responses_recorded_total", Help: "Checklist responses appended."},
		[]string{"section"},
	)
	ExportEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "audit", Name: "export_events_total", Help: "Artifact generation attempts."},
		[]string{"artifact", "outcome"}, // artifact: excel|report|snapshot, outcome: ok|error
	)
	CatalogEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "audit", Name: "catalog_events_total", Help: "Checklist catalog loads and fallbacks."},
		[]string{"event"}, // event: loaded|fallback_default|fallback_empty
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "audit", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ResponsesRecorded, ExportEvents, CatalogEvents, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveResponse(section string) {
	ResponsesRecorded.WithLabelValues(section).Inc()
}

func ObserveExport(artifact string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ExportEvents.WithLabelValues(artifact, outcome).Inc()
}

func ObserveCatalog(event string) { // event: loaded|fallback_default|fallback_empty
	CatalogEvents.WithLabelValues(event).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
