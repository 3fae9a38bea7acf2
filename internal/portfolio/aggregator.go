// Package portfolio composes health, maturity and debt summaries across the
// whole architecture graph for the dashboard surface.
package portfolio

import (
	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
	"github.com/archlens/analysis-engine/internal/risk"
)

// MaturityBaselines hold the placeholder maturity constants used until real
// telemetry feeds the dashboard. The output shape is the contract; these
// numbers are config-overridable defaults.
type MaturityBaselines struct {
	Process       float64 `json:"process"`
	Automation    float64 `json:"automation"`
	Documentation float64 `json:"documentation"`
}

// DefaultMaturityBaselines returns the stock baseline constants
func DefaultMaturityBaselines() MaturityBaselines {
	return MaturityBaselines{Process: 70, Automation: 60, Documentation: 55}
}

// LayerSummary counts and rates one architecture layer
type LayerSummary struct {
	Layer         model.Layer `json:"layer"`
	ElementCount  int         `json:"element_count"`
	HighRiskCount int         `json:"high_risk_count"`
	TotalCost     float64     `json:"total_cost"`
}

// DebtSummary estimates technical debt pressure across the portfolio
type DebtSummary struct {
	DeprecatedCount int     `json:"deprecated_count"`
	HighRiskCount   int     `json:"high_risk_count"`
	DebtScore       float64 `json:"debt_score"`
}

// Dashboard is the consolidated portfolio view
type Dashboard struct {
	ID                    string                       `json:"id"`
	TotalElements         int                          `json:"total_elements"`
	TotalRelationships    int                          `json:"total_relationships"`
	Layers                []LayerSummary               `json:"layers"`
	LifecycleDistribution map[model.LifecycleStage]int `json:"lifecycle_distribution"`
	OverallHealth         float64                      `json:"overall_health"`
	Maturity              MaturityBaselines            `json:"maturity"`
	Debt                  DebtSummary                  `json:"debt"`
	ReuseRatePercent      float64                      `json:"reuse_rate_percent"`
}

// Aggregator builds portfolio dashboards
type Aggregator struct {
	logger    *zap.Logger
	ids       idgen.Generator
	baselines MaturityBaselines
}

// NewAggregator creates a portfolio aggregator. Zero-valued baselines are
// replaced with the defaults.
func NewAggregator(logger *zap.Logger, ids idgen.Generator, baselines MaturityBaselines) *Aggregator {
	if baselines == (MaturityBaselines{}) {
		baselines = DefaultMaturityBaselines()
	}
	return &Aggregator{logger: logger, ids: ids, baselines: baselines}
}

// Aggregate composes the portfolio dashboard. An empty graph reports full
// health, zero reuse and no debt rather than erroring.
func (a *Aggregator) Aggregate(elements []model.ArchitectureElement, relationships []model.ArchitectureRelationship, risks []risk.Item) *Dashboard {
	dashboard := &Dashboard{
		ID:                    a.ids.NewID("portfolio"),
		TotalElements:         len(elements),
		TotalRelationships:    len(relationships),
		LifecycleDistribution: make(map[model.LifecycleStage]int),
		Maturity:              a.baselines,
	}

	layerIndex := make(map[model.Layer]*LayerSummary)
	order := []model.Layer{model.LayerBusiness, model.LayerApplication, model.LayerData, model.LayerTechnology, model.LayerSolution}
	for _, layer := range order {
		layerIndex[layer] = &LayerSummary{Layer: layer}
	}

	deprecated := 0
	highRisk := 0
	for _, el := range elements {
		summary, ok := layerIndex[el.Layer]
		if !ok {
			summary = &LayerSummary{Layer: el.Layer}
			layerIndex[el.Layer] = summary
			order = append(order, el.Layer)
		}
		summary.ElementCount++
		summary.TotalCost += el.Metadata.Cost
		if model.RiskRank(el.Metadata.Risk) >= model.RiskRank(model.RiskHigh) {
			summary.HighRiskCount++
			highRisk++
		}
		if stage := el.Metadata.LifecycleStage; stage != "" {
			dashboard.LifecycleDistribution[stage]++
			if stage == model.LifecycleDeprecated || stage == model.LifecycleDecommissioned {
				deprecated++
			}
		}
	}
	for _, layer := range order {
		dashboard.Layers = append(dashboard.Layers, *layerIndex[layer])
	}

	dashboard.Debt = debtSummary(len(elements), deprecated, highRisk)
	dashboard.OverallHealth = healthScore(len(elements), risks, dashboard.Debt)
	dashboard.ReuseRatePercent = reuseRate(elements, relationships)

	a.logger.Debug("portfolio aggregation complete",
		zap.Int("elements", len(elements)),
		zap.Float64("overall_health", dashboard.OverallHealth),
		zap.Float64("reuse_rate", dashboard.ReuseRatePercent))

	return dashboard
}

func debtSummary(total, deprecated, highRisk int) DebtSummary {
	summary := DebtSummary{DeprecatedCount: deprecated, HighRiskCount: highRisk}
	if total > 0 {
		summary.DebtScore = model.ClampScore(float64(deprecated*15+highRisk*10) / float64(total))
	}
	return summary
}

// healthScore starts at 100 and degrades with the surfaced risk load and
// debt pressure. An empty portfolio is perfectly healthy.
func healthScore(totalElements int, risks []risk.Item, debt DebtSummary) float64 {
	if totalElements == 0 {
		return 100
	}
	score := 100.0
	for _, item := range risks {
		switch {
		case item.Score >= 70:
			score -= 8
		case item.Score >= 50:
			score -= 5
		case item.Score >= 30:
			score -= 2
		}
	}
	score -= debt.DebtScore * 0.3
	return model.ClampScore(score)
}

// reuseRate reports the share of elements consumed or provided by more than
// one other element.
func reuseRate(elements []model.ArchitectureElement, relationships []model.ArchitectureRelationship) float64 {
	if len(elements) == 0 {
		return 0
	}
	consumers := make(map[string]map[string]bool)
	for _, rel := range relationships {
		if rel.Type != model.RelationConsumes && rel.Type != model.RelationProvides && rel.Type != model.RelationDependsOn {
			continue
		}
		if consumers[rel.TargetID] == nil {
			consumers[rel.TargetID] = make(map[string]bool)
		}
		consumers[rel.TargetID][rel.SourceID] = true
	}
	reused := 0
	for _, el := range elements {
		if len(consumers[el.ID]) > 1 {
			reused++
		}
	}
	return model.ClampScore(float64(reused) / float64(len(elements)) * 100)
}
