package cost

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/model"
	"github.com/archlens/analysis-engine/internal/pricing"
)

const maxDiscountPercent = 80.0

// CloudRequest describes a cloud cost estimation run
type CloudRequest struct {
	Usages          []pricing.Usage             `json:"usages"`
	DiscountPercent float64                     `json:"discount_percent,omitempty"`
	Elements        []model.ArchitectureElement `json:"elements,omitempty"`
}

// CloudEstimation is the cloud cost report
type CloudEstimation struct {
	ID           string                `json:"id"`
	Services     []pricing.ServiceCost `json:"services"`
	MonthlyTotal float64               `json:"monthly_total"`
	AnnualTotal  float64               `json:"annual_total"`
	DataSource   pricing.DataSource    `json:"data_source"`
	Assumptions  []string              `json:"assumptions"`
}

// EstimateCloud prices the requested usage lines. With an adapter present
// it delegates to it; on adapter failure or absence every line is priced
// from the static heuristic tables. The call never fails: degraded pricing
// is recorded in the assumptions, not returned as an error.
func (e *Estimator) EstimateCloud(ctx context.Context, req CloudRequest, adapter pricing.Adapter) *CloudEstimation {
	var (
		services    []pricing.ServiceCost
		dataSource  pricing.DataSource
		assumptions []string
	)

	if adapter != nil {
		result, err := adapter.Estimate(ctx, pricing.Request{Usages: req.Usages})
		if err == nil {
			services = result.Services
			dataSource = result.DataSource
			assumptions = result.Assumptions
		} else {
			e.logger.Warn("pricing adapter failed, using static estimates", zap.Error(err))
			services, assumptions = e.staticServices(req.Usages)
			assumptions = append(assumptions, fmt.Sprintf("Pricing adapter unavailable (%v); all prices are static estimates", err))
			dataSource = pricing.SourceStatic
		}
	} else {
		services, assumptions = e.staticServices(req.Usages)
		assumptions = append(assumptions, "No pricing adapter configured; all prices are static estimates")
		dataSource = pricing.SourceStatic
	}

	discount := model.Clamp(req.DiscountPercent, 0, maxDiscountPercent)
	if discount > 0 {
		for i := range services {
			services[i].Discount = discount
			services[i].MonthlyCost *= 1 - discount/100
			services[i].AnnualCost = services[i].MonthlyCost * 12
		}
		assumptions = append(assumptions, fmt.Sprintf("Applied %.0f%% negotiated discount to monthly costs", discount))
	}

	if len(req.Elements) > 0 {
		annotateLinkage(services, req.Elements)
	}

	est := &CloudEstimation{
		ID:          e.ids.NewID("cloud-cost"),
		Services:    services,
		DataSource:  dataSource,
		Assumptions: dedupe(assumptions),
	}
	for _, svc := range services {
		est.MonthlyTotal += svc.MonthlyCost
		est.AnnualTotal += svc.AnnualCost
	}

	e.logger.Debug("cloud cost estimation complete",
		zap.Int("services", len(services)),
		zap.String("data_source", string(est.DataSource)),
		zap.Float64("monthly_total", est.MonthlyTotal))

	return est
}

// staticServices prices every usage line from the heuristic tables
func (e *Estimator) staticServices(usages []pricing.Usage) ([]pricing.ServiceCost, []string) {
	services := make([]pricing.ServiceCost, 0, len(usages))
	assumptions := make([]string, 0, len(usages))
	for _, usage := range usages {
		price := pricing.StaticPrice(usage.Provider, usage.Service)
		hourly := price * usage.Quantity
		monthly := hourly * pricing.HoursPerMonth
		services = append(services, pricing.ServiceCost{
			Usage: usage,
			PricePoint: pricing.PricePoint{
				Provider:     usage.Provider,
				Region:       usage.Region,
				Service:      usage.Service,
				Unit:         usage.Unit,
				PricePerUnit: price,
				Source:       pricing.SourceStatic,
			},
			HourlyCost:  hourly,
			MonthlyCost: monthly,
			AnnualCost:  monthly * 12,
		})
		assumptions = append(assumptions, fmt.Sprintf("Static heuristic price used for %s %s (%s bucket)",
			usage.Provider, usage.Service, pricing.NormalizeService(usage.Service)))
	}
	return services, assumptions
}

// annotateLinkage attaches informational notes tying priced services back
// to architecture elements, matched by the CloudServiceID metadata field or
// a case-insensitive name substring. Linkage never changes cost figures.
func annotateLinkage(services []pricing.ServiceCost, elements []model.ArchitectureElement) {
	for i := range services {
		svc := strings.ToLower(services[i].Usage.Service)
		for _, el := range elements {
			linked := el.Metadata.CloudServiceID != "" && el.Metadata.CloudServiceID == services[i].Usage.Service
			if !linked {
				name := strings.ToLower(el.Name)
				linked = name != "" && svc != "" && (strings.Contains(svc, name) || strings.Contains(name, svc))
			}
			if linked {
				services[i].Notes = append(services[i].Notes,
					fmt.Sprintf("Linked to architecture element %q (%s)", el.Name, el.ID))
			}
		}
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
