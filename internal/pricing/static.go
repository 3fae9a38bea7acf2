package pricing

import "strings"

// Static per-provider hourly price tables keyed by canonical service bucket.
// These are deliberately coarse: they bound the estimate when the live API
// and cache both miss, and unit prices drift slowly enough that rough
// figures keep cost comparisons meaningful.

const defaultHourlyRate = 0.10

var staticPrices = map[string]map[string]float64{
	"aws": {
		"compute":       0.0956,
		"storage":       0.023,
		"objectstorage": 0.023,
		"blockstorage":  0.08,
		"database":      0.171,
		"container":     0.1012,
		"serverless":    0.0000167,
		"network":       0.0225,
		"analytics":     0.27,
		"monitoring":    0.03,
		"security":      0.05,
		"datawarehouse": 0.25,
		"default":       defaultHourlyRate,
	},
	"azure": {
		"compute":       0.096,
		"storage":       0.0208,
		"objectstorage": 0.0208,
		"blockstorage":  0.075,
		"database":      0.1665,
		"container":     0.10,
		"serverless":    0.000016,
		"network":       0.025,
		"analytics":     0.26,
		"monitoring":    0.0276,
		"security":      0.048,
		"datawarehouse": 0.24,
		"default":       defaultHourlyRate,
	},
	"gcp": {
		"compute":       0.0949,
		"storage":       0.020,
		"objectstorage": 0.020,
		"blockstorage":  0.068,
		"database":      0.1598,
		"container":     0.095,
		"serverless":    0.0000165,
		"network":       0.021,
		"analytics":     0.25,
		"monitoring":    0.0258,
		"security":      0.045,
		"datawarehouse": 0.23,
		"default":       defaultHourlyRate,
	},
}

// StaticPrice resolves a bounded heuristic hourly price for a provider and
// free-form service name. It always returns a usable rate: unknown
// providers and unmatched buckets settle on the default rate.
func StaticPrice(provider, service string) float64 {
	table, ok := staticPrices[normalizeProvider(provider)]
	if !ok {
		return defaultHourlyRate
	}
	bucket := NormalizeService(service)
	if price, ok := table[bucket]; ok {
		return price
	}
	return table["default"]
}

func normalizeProvider(provider string) string {
	p := strings.ToLower(provider)
	switch {
	case containsAny(p, "amazon", "aws"):
		return "aws"
	case containsAny(p, "azure", "microsoft"):
		return "azure"
	case containsAny(p, "gcp", "google"):
		return "gcp"
	default:
		return p
	}
}
