// Package metrics exposes prometheus counters for catalog loads, watering
// calculations and HTTP traffic.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "plantcare_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	catalogLoads        *prometheus.CounterVec
	wateringCalculation *prometheus.CounterVec
	httpLatency         *prometheus.HistogramVec
)

// Init registers all collectors with the default registry. It is safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		catalogLoads = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "catalog_loads_total",
				Help: "Catalog loads by result",
			},
			[]string{"result"},
		)
		wateringCalculation = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "watering_calculations_total",
				Help: "Watering calculations by season",
			},
			[]string{"season"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency by route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		)
		prometheus.MustRegister(catalogLoads, wateringCalculation, httpLatency)
	})
}

// ObserveCatalogLoad counts one catalog load.
func ObserveCatalogLoad(err error) {
	if catalogLoads == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	catalogLoads.WithLabelValues(result).Inc()
}

// ObserveWatering counts one successful calculation for season.
func ObserveWatering(season string) {
	if wateringCalculation == nil {
		return
	}
	wateringCalculation.WithLabelValues(season).Inc()
}

// ObserveHTTP records request latency.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if httpLatency == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	httpLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
