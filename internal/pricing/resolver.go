package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultLookupTimeout bounds each live price lookup
const DefaultLookupTimeout = 3 * time.Second

// EndpointResolver maps a provider name onto its price-list endpoint.
// An empty string disables live lookups for that provider.
type EndpointResolver func(provider string) string

// CacheObserver is notified of the result of each price-cache lookup
type CacheObserver func(hit bool)

// Resolver resolves prices through the live -> cache -> static chain and
// implements the Adapter port.
type Resolver struct {
	logger       *zap.Logger
	cache        PriceCache
	client       *http.Client
	endpoints    EndpointResolver
	timeout      time.Duration
	observeCache CacheObserver
}

// ResolverOption customizes a Resolver
type ResolverOption func(*Resolver)

// WithHTTPClient overrides the HTTP client used for live lookups
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(r *Resolver) { r.client = client }
}

// WithCacheObserver registers a callback for cache hit/miss accounting
func WithCacheObserver(observer CacheObserver) ResolverOption {
	return func(r *Resolver) { r.observeCache = observer }
}

// WithLookupTimeout overrides the per-lookup timeout
func WithLookupTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// NewResolver creates a pricing resolver. A nil cache gets an in-process
// MemoryCache; a nil endpoint resolver disables live lookups entirely so
// every miss goes straight to the static table.
func NewResolver(logger *zap.Logger, cache PriceCache, endpoints EndpointResolver, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		logger:    logger,
		cache:     cache,
		endpoints: endpoints,
		timeout:   DefaultLookupTimeout,
	}
	if r.cache == nil {
		r.cache = NewMemoryCache()
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = &http.Client{}
	}
	return r
}

// Estimate prices every usage line in the request. It never fails: lookup
// errors degrade to static prices and are recorded as assumptions.
func (r *Resolver) Estimate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{
		Services:    make([]ServiceCost, 0, len(req.Usages)),
		Assumptions: []string{},
	}
	seen := make(map[string]bool)
	addAssumption := func(s string) {
		if !seen[s] {
			seen[s] = true
			result.Assumptions = append(result.Assumptions, s)
		}
	}

	for _, usage := range req.Usages {
		outcome := r.resolve(ctx, usage)
		if outcome.FallbackReason != "" {
			addAssumption(fmt.Sprintf("Static pricing applied for %s: %s", cacheKeyString(usage), outcome.FallbackReason))
		}
		result.Services = append(result.Services, costFromPoint(usage, outcome.Point))
	}

	result.DataSource = DominantSource(result.Services)
	switch result.DataSource {
	case SourceLiveAPI:
		addAssumption("Prices resolved from live provider pricing APIs")
	case SourceCached:
		addAssumption("Prices served from the session price cache")
	default:
		addAssumption("Prices estimated from static heuristic tables")
	}

	return result, nil
}

// resolve runs the live -> cache -> static chain for one usage line
func (r *Resolver) resolve(ctx context.Context, usage Usage) Outcome {
	key := CacheKey(usage.Provider, usage.Region, usage.Service)
	point, ok := r.cache.Get(ctx, key)
	if r.observeCache != nil {
		r.observeCache(ok)
	}
	if ok {
		point.Source = SourceCached
		return Outcome{Point: point}
	}

	point, err := r.lookupLive(ctx, usage)
	if err == nil {
		r.cache.Put(ctx, key, point)
		return Outcome{Point: point}
	}

	r.logger.Debug("live price lookup failed, using static pricing",
		zap.String("provider", usage.Provider),
		zap.String("service", usage.Service),
		zap.Error(err))

	return Outcome{
		Point: PricePoint{
			Provider:     usage.Provider,
			Region:       usage.Region,
			Service:      usage.Service,
			Unit:         usage.Unit,
			PricePerUnit: StaticPrice(usage.Provider, usage.Service),
			Source:       SourceStatic,
		},
		FallbackReason: err.Error(),
	}
}

// priceListResponse is the wire shape returned by provider price endpoints
type priceListResponse struct {
	Prices []struct {
		Service      string  `json:"service"`
		Unit         string  `json:"unit"`
		PricePerUnit float64 `json:"price_per_unit"`
	} `json:"prices"`
}

func (r *Resolver) lookupLive(ctx context.Context, usage Usage) (PricePoint, error) {
	if r.endpoints == nil {
		return PricePoint{}, fmt.Errorf("no live pricing endpoint configured")
	}
	endpoint := r.endpoints(usage.Provider)
	if endpoint == "" {
		return PricePoint{}, fmt.Errorf("no live pricing endpoint configured for provider %q", usage.Provider)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	lookupURL := fmt.Sprintf("%s?region=%s", endpoint, url.QueryEscape(usage.Region))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return PricePoint{}, fmt.Errorf("build price request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return PricePoint{}, fmt.Errorf("price lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return PricePoint{}, fmt.Errorf("price lookup returned status %d", resp.StatusCode)
	}

	var list priceListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return PricePoint{}, fmt.Errorf("decode price list: %w", err)
	}

	bucket := NormalizeService(usage.Service)
	for _, entry := range list.Prices {
		if strings.EqualFold(entry.Service, usage.Service) || NormalizeService(entry.Service) == bucket {
			return PricePoint{
				Provider:     usage.Provider,
				Region:       usage.Region,
				Service:      usage.Service,
				Unit:         entry.Unit,
				PricePerUnit: entry.PricePerUnit,
				Source:       SourceLiveAPI,
			}, nil
		}
	}

	return PricePoint{}, fmt.Errorf("no price entry matched service %q (bucket %s)", usage.Service, bucket)
}

func costFromPoint(usage Usage, point PricePoint) ServiceCost {
	hourly := point.PricePerUnit * usage.Quantity
	monthly := hourly * HoursPerMonth
	return ServiceCost{
		Usage:       usage,
		PricePoint:  point,
		HourlyCost:  hourly,
		MonthlyCost: monthly,
		AnnualCost:  monthly * 12,
	}
}

var _ Adapter = (*Resolver)(nil)
