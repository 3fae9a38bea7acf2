// Package cost allocates architecture costs into layer and category
// breakdowns and estimates cloud spend through the pricing adapter port.
package cost

import (
	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

// InfrastructureCosts breaks infrastructure spend down by hosting model.
// Total is always the sum of the three fields.
type InfrastructureCosts struct {
	Cloud     float64 `json:"cloud"`
	OnPremise float64 `json:"on_premise"`
	Hybrid    float64 `json:"hybrid"`
	Total     float64 `json:"total"`
}

// SoftwareCosts breaks software spend down by origin
type SoftwareCosts struct {
	Licenses          float64 `json:"licenses"`
	CustomDevelopment float64 `json:"custom_development"`
	Maintenance       float64 `json:"maintenance"`
	Total             float64 `json:"total"`
}

// ServicesCosts breaks professional-services spend down by engagement type
type ServicesCosts struct {
	Implementation float64 `json:"implementation"`
	Consulting     float64 `json:"consulting"`
	Total          float64 `json:"total"`
}

// OperationsCosts breaks run-side spend down
type OperationsCosts struct {
	Backup  float64 `json:"backup"`
	Support float64 `json:"support"`
	Total   float64 `json:"total"`
}

// Estimation is the traditional layer-allocated cost report
type Estimation struct {
	ID             string                  `json:"id"`
	ByLayer        map[model.Layer]float64 `json:"by_layer"`
	Infrastructure InfrastructureCosts     `json:"infrastructure"`
	Software       SoftwareCosts           `json:"software"`
	Services       ServicesCosts           `json:"services"`
	Operations     OperationsCosts         `json:"operations"`
	TotalCost      float64                 `json:"total_cost"`
}

// Estimator produces cost estimations
type Estimator struct {
	logger *zap.Logger
	ids    idgen.Generator
}

// NewEstimator creates a cost estimator
func NewEstimator(logger *zap.Logger, ids idgen.Generator) *Estimator {
	return &Estimator{logger: logger, ids: ids}
}

// EstimateTraditional allocates each element's metadata cost into its layer
// bucket and the fixed per-layer category splits. Category totals are
// computed by summing their fields so the breakdown always reconciles.
func (e *Estimator) EstimateTraditional(elements []model.ArchitectureElement) *Estimation {
	est := &Estimation{
		ID:      e.ids.NewID("cost"),
		ByLayer: make(map[model.Layer]float64),
	}

	for _, el := range elements {
		cost := el.Metadata.Cost
		if cost <= 0 {
			continue
		}
		est.ByLayer[el.Layer] += cost
		e.allocate(est, el.Layer, cost)
	}

	est.Infrastructure.Total = est.Infrastructure.Cloud + est.Infrastructure.OnPremise + est.Infrastructure.Hybrid
	est.Software.Total = est.Software.Licenses + est.Software.CustomDevelopment + est.Software.Maintenance
	est.Services.Total = est.Services.Implementation + est.Services.Consulting
	est.Operations.Total = est.Operations.Backup + est.Operations.Support
	est.TotalCost = est.Infrastructure.Total + est.Software.Total + est.Services.Total + est.Operations.Total

	e.logger.Debug("traditional cost estimation complete",
		zap.Int("elements", len(elements)),
		zap.Float64("total_cost", est.TotalCost))

	return est
}

// allocate applies the fixed per-layer percentage splits
func (e *Estimator) allocate(est *Estimation, layer model.Layer, cost float64) {
	switch layer {
	case model.LayerApplication:
		est.Software.CustomDevelopment += cost * 0.6
		est.Services.Implementation += cost * 0.3
		est.Software.Maintenance += cost * 0.1
	case model.LayerData:
		est.Infrastructure.Cloud += cost * 0.4
		est.Software.Licenses += cost * 0.3
		est.Operations.Backup += cost * 0.3
	case model.LayerTechnology:
		est.Infrastructure.OnPremise += cost * 0.5
		est.Infrastructure.Cloud += cost * 0.3
		est.Infrastructure.Hybrid += cost * 0.2
	case model.LayerBusiness:
		est.Services.Consulting += cost * 0.7
		est.Operations.Support += cost * 0.3
	default:
		est.Services.Implementation += cost * 0.5
		est.Software.Licenses += cost * 0.5
	}
}
