package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	t.Run("analysis calls", func(t *testing.T) {
		c.RecordAnalysis("dependencies", "success", 10*time.Millisecond)
		c.RecordAnalysis("dependencies", "success", 5*time.Millisecond)
		c.RecordAnalysis("gaps", "error", time.Millisecond)

		assert.Equal(t, 2.0, testutil.ToFloat64(c.analysesTotal.WithLabelValues("dependencies", "success")))
		assert.Equal(t, 1.0, testutil.ToFloat64(c.analysesTotal.WithLabelValues("gaps", "error")))
	})

	t.Run("pricing lookups", func(t *testing.T) {
		c.RecordPricingLookup("STATIC")
		c.RecordPricingLookup("STATIC")
		c.RecordPricingLookup("LIVE_API")

		assert.Equal(t, 2.0, testutil.ToFloat64(c.pricingLookupsTotal.WithLabelValues("STATIC")))
		assert.Equal(t, 1.0, testutil.ToFloat64(c.pricingLookupsTotal.WithLabelValues("LIVE_API")))
	})

	t.Run("pricing cache hits and misses", func(t *testing.T) {
		c.RecordPricingCache(false)
		c.RecordPricingCache(true)
		c.RecordPricingCache(true)

		assert.Equal(t, 2.0, testutil.ToFloat64(c.pricingCacheHits))
		assert.Equal(t, 1.0, testutil.ToFloat64(c.pricingCacheMisses))
	})
}
