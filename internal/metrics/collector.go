// Package metrics exports Prometheus metrics for the analysis engine
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector collects and exports metrics for the analysis engine
type Collector struct {
	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec

	pricingLookupsTotal *prometheus.CounterVec
	pricingCacheHits    prometheus.Counter
	pricingCacheMisses  prometheus.Counter
}

// NewCollector registers the engine metrics on the default registry
func NewCollector() *Collector {
	return &Collector{
		analysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "archlens_analyses_total",
			Help: "Total analysis calls by analyzer and outcome",
		}, []string{"analyzer", "outcome"}),
		analysisDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "archlens_analysis_duration_seconds",
			Help:    "Analysis call duration by analyzer",
			Buckets: prometheus.DefBuckets,
		}, []string{"analyzer"}),
		pricingLookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "archlens_pricing_lookups_total",
			Help: "Price resolutions by data source",
		}, []string{"source"}),
		pricingCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "archlens_pricing_cache_hits_total",
			Help: "Pricing cache hits",
		}),
		pricingCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "archlens_pricing_cache_misses_total",
			Help: "Pricing cache misses",
		}),
	}
}

// RecordAnalysis records one analysis call
func (c *Collector) RecordAnalysis(analyzer, outcome string, duration time.Duration) {
	c.analysesTotal.WithLabelValues(analyzer, outcome).Inc()
	c.analysisDuration.WithLabelValues(analyzer).Observe(duration.Seconds())
}

// RecordPricingLookup records one price resolution by source
func (c *Collector) RecordPricingLookup(source string) {
	c.pricingLookupsTotal.WithLabelValues(source).Inc()
}

// RecordPricingCache records a cache hit or miss
func (c *Collector) RecordPricingCache(hit bool) {
	if hit {
		c.pricingCacheHits.Inc()
	} else {
		c.pricingCacheMisses.Inc()
	}
}
