package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuotesComputedTotal counts quotation computations by display currency and result.
	QuotesComputedTotal *prometheus.CounterVec
	// QuoteExportsTotal tracks quotation export delivery outcomes.
	QuoteExportsTotal *prometheus.CounterVec
	// QuoteExportLatency records export delivery attempt latency in milliseconds.
	QuoteExportLatency *prometheus.HistogramVec
	// RateRefreshTotal counts exchange rate refresh outcomes by source.
	RateRefreshTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuotesComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_computed_total",
			Help:      "Count of quotation computations by currency and result.",
		}, []string{"currency", "result"})
		QuoteExportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_exports_total",
			Help:      "Count of quotation export delivery outcomes.",
		}, []string{"result"})
		QuoteExportLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_export_duration_ms",
			Help:      "Latency of quotation export delivery attempts in milliseconds.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"result"})
		RateRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_refresh_total",
			Help:      "Count of exchange rate refresh outcomes by source.",
		}, []string{"source", "result"})

		mustRegisterCollector(reg, QuotesComputedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuotesComputedTotal = v
			}
		})
		mustRegisterCollector(reg, QuoteExportsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteExportsTotal = v
			}
		})
		mustRegisterCollector(reg, QuoteExportLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				QuoteExportLatency = v
			}
		})
		mustRegisterCollector(reg, RateRefreshTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				RateRefreshTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
