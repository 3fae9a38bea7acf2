// Package pricing resolves per-unit cloud prices for (provider, region,
// service) tuples through a live-API, cache, static-heuristic fallback
// chain. It implements the adapter port the cost estimator consumes.
package pricing

import (
	"context"
	"strings"
)

// DataSource records where a resolved price came from
type DataSource string

const (
	SourceLiveAPI DataSource = "LIVE_API"
	SourceCached  DataSource = "CACHED"
	SourceStatic  DataSource = "STATIC"
)

// Usage describes one requested cloud service consumption line
type Usage struct {
	Provider string  `json:"provider"`
	Region   string  `json:"region"`
	Service  string  `json:"service"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
}

// Request is a batch of usage lines to price
type Request struct {
	Usages []Usage `json:"usages"`
}

// PricePoint is a resolved per-unit price with provenance
type PricePoint struct {
	Provider     string     `json:"provider"`
	Region       string     `json:"region"`
	Service      string     `json:"service"`
	Unit         string     `json:"unit"`
	PricePerUnit float64    `json:"price_per_unit"`
	Source       DataSource `json:"source"`
}

// ServiceCost combines a usage line with its resolved price
type ServiceCost struct {
	Usage       Usage      `json:"usage"`
	PricePoint  PricePoint `json:"price_point"`
	HourlyCost  float64    `json:"hourly_cost"`
	MonthlyCost float64    `json:"monthly_cost"`
	AnnualCost  float64    `json:"annual_cost"`
	Discount    float64    `json:"discount,omitempty"`
	Notes       []string   `json:"notes,omitempty"`
}

// Result is the outcome of pricing a batch of usage lines
type Result struct {
	Services    []ServiceCost `json:"services"`
	DataSource  DataSource    `json:"data_source"`
	Assumptions []string      `json:"assumptions"`
}

// Adapter is the port any pricing source implements. Absence of an adapter
// is a valid configuration; the cost estimator then prices heuristically.
type Adapter interface {
	Estimate(ctx context.Context, req Request) (*Result, error)
}

// Outcome makes the degraded path explicit: a price either came from the
// live API, the cache, or the static fallback with a recorded reason.
type Outcome struct {
	Point          PricePoint
	FallbackReason string
}

// HoursPerMonth converts hourly rates to monthly figures
const HoursPerMonth = 730.0

// NormalizeService maps a free-form service name onto a canonical pricing
// bucket. Unmatched names fall back to "compute".
func NormalizeService(service string) string {
	s := strings.ToLower(service)
	switch {
	case containsAny(s, "redshift", "bigquery", "synapse", "warehouse"):
		return "datawarehouse"
	case containsAny(s, "s3", "blob", "object", "bucket", "gcs"):
		return "objectstorage"
	case containsAny(s, "ebs", "disk", "block", "volume"):
		return "blockstorage"
	case containsAny(s, "rds", "sql", "database", "db", "dynamo", "cosmos", "spanner"):
		return "database"
	case containsAny(s, "kubernetes", "eks", "aks", "gke", "container", "ecs", "fargate"):
		return "container"
	case containsAny(s, "lambda", "function", "serverless", "cloud run"):
		return "serverless"
	case containsAny(s, "vpc", "network", "load balancer", "cdn", "cloudfront", "gateway"):
		return "network"
	case containsAny(s, "athena", "emr", "dataflow", "analytics", "kinesis", "stream"):
		return "analytics"
	case containsAny(s, "cloudwatch", "monitor", "logging", "observability"):
		return "monitoring"
	case containsAny(s, "kms", "iam", "security", "waf", "shield", "guard"):
		return "security"
	case containsAny(s, "storage", "efs", "file"):
		return "storage"
	default:
		return "compute"
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// CacheKey builds the case-insensitive cache key for a usage line
func CacheKey(provider, region, service string) string {
	return strings.ToLower(provider) + ":" + strings.ToLower(region) + ":" + strings.ToLower(service)
}

// DominantSource picks the dominant source across a batch with precedence
// LIVE_API > CACHED > STATIC.
func DominantSource(services []ServiceCost) DataSource {
	counts := make(map[DataSource]int, 3)
	for _, svc := range services {
		counts[svc.PricePoint.Source]++
	}
	for _, source := range []DataSource{SourceLiveAPI, SourceCached, SourceStatic} {
		if counts[source] > 0 {
			return source
		}
	}
	return SourceStatic
}
