// Package gap computes the difference between an As-Is and a To-Be
// architecture snapshot.
package gap

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

// Category classifies what kind of gap was detected
type Category string

const (
	CategoryMissingComponent   Category = "MISSING_COMPONENT"
	CategoryTechnologyGap      Category = "TECHNOLOGY_GAP"
	CategoryDataGap            Category = "DATA_GAP"
	CategoryMissingCapability  Category = "MISSING_CAPABILITY"
	CategoryMissingIntegration Category = "MISSING_INTEGRATION"
)

const (
	costPerEffortDay      = 1000.0
	workingDaysPerMonth   = 20.0
	integrationEffortDays = 5
	integrationPriority   = 7
)

// Gap is a single difference between the As-Is and To-Be snapshots
type Gap struct {
	ID          string          `json:"id"`
	ElementID   string          `json:"element_id,omitempty"`
	SourceID    string          `json:"source_id,omitempty"`
	TargetID    string          `json:"target_id,omitempty"`
	Category    Category        `json:"category"`
	Severity    model.RiskLevel `json:"severity"`
	Description string          `json:"description"`
	EffortDays  int             `json:"effort_days"`
	Priority    int             `json:"priority"`
}

// Summary aggregates an analysis for reporting
type Summary struct {
	TotalGaps       int                     `json:"total_gaps"`
	BySeverity      map[model.RiskLevel]int `json:"by_severity"`
	TotalEffortDays int                     `json:"total_effort_days"`
	EstimatedCost   float64                 `json:"estimated_cost"`
	TimelineMonths  int                     `json:"timeline_months"`
}

// Analysis is the full gap report between two snapshots
type Analysis struct {
	ID      string  `json:"id"`
	Gaps    []Gap   `json:"gaps"`
	Summary Summary `json:"summary"`
}

// Analyzer derives gaps from As-Is and To-Be snapshots
type Analyzer struct {
	logger *zap.Logger
	ids    idgen.Generator
}

// NewAnalyzer creates a gap analyzer
func NewAnalyzer(logger *zap.Logger, ids idgen.Generator) *Analyzer {
	return &Analyzer{logger: logger, ids: ids}
}

// Analyze reports every To-Be element missing from As-Is and every To-Be
// integration relationship whose endpoint pair is absent from As-Is.
// Identical snapshots yield zero gaps.
func (a *Analyzer) Analyze(asIsElements, toBeElements []model.ArchitectureElement, asIsRelationships, toBeRelationships []model.ArchitectureRelationship) *Analysis {
	gaps := a.missingComponents(asIsElements, toBeElements)
	gaps = append(gaps, a.missingIntegrations(asIsRelationships, toBeRelationships)...)

	analysis := &Analysis{
		ID:      a.ids.NewID("gap"),
		Gaps:    gaps,
		Summary: summarize(gaps),
	}

	a.logger.Debug("gap analysis complete",
		zap.Int("gaps", len(gaps)),
		zap.Int("total_effort_days", analysis.Summary.TotalEffortDays))

	return analysis
}

func (a *Analyzer) missingComponents(asIs, toBe []model.ArchitectureElement) []Gap {
	existing := make(map[string]bool, len(asIs))
	for _, el := range asIs {
		existing[el.ID] = true
	}

	var gaps []Gap
	for _, el := range toBe {
		if existing[el.ID] {
			continue
		}
		gaps = append(gaps, Gap{
			ID:          a.ids.NewID("gap-item"),
			ElementID:   el.ID,
			Category:    componentCategory(el.Layer),
			Severity:    componentSeverity(el),
			Description: fmt.Sprintf("Target architecture requires %q (%s layer) which does not exist today", el.Name, el.Layer),
			EffortDays:  layerEffortDays(el.Layer),
			Priority:    componentPriority(el),
		})
	}
	return gaps
}

func (a *Analyzer) missingIntegrations(asIs, toBe []model.ArchitectureRelationship) []Gap {
	existing := make(map[string]bool, len(asIs))
	for _, rel := range asIs {
		existing[pairKey(rel)] = true
	}

	var gaps []Gap
	for _, rel := range toBe {
		if rel.Type != model.RelationIntegratesWith && rel.Type != model.RelationDependsOn {
			continue
		}
		if existing[pairKey(rel)] {
			continue
		}
		gaps = append(gaps, Gap{
			ID:          a.ids.NewID("gap-item"),
			SourceID:    rel.SourceID,
			TargetID:    rel.TargetID,
			Category:    CategoryMissingIntegration,
			Severity:    model.RiskMedium,
			Description: fmt.Sprintf("Target architecture requires a %s relationship from %s to %s", rel.Type, rel.SourceID, rel.TargetID),
			EffortDays:  integrationEffortDays,
			Priority:    integrationPriority,
		})
	}
	return gaps
}

// pairKey compares relationships by endpoints, not by id
func pairKey(rel model.ArchitectureRelationship) string {
	return rel.SourceID + "->" + rel.TargetID
}

func componentCategory(layer model.Layer) Category {
	switch layer {
	case model.LayerTechnology:
		return CategoryTechnologyGap
	case model.LayerData:
		return CategoryDataGap
	case model.LayerBusiness:
		return CategoryMissingCapability
	default:
		return CategoryMissingComponent
	}
}

func componentSeverity(el model.ArchitectureElement) model.RiskLevel {
	if el.Metadata.Risk != "" {
		return el.Metadata.Risk
	}
	switch el.Layer {
	case model.LayerBusiness, model.LayerSolution:
		return model.RiskHigh
	case model.LayerApplication, model.LayerData:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func layerEffortDays(layer model.Layer) int {
	switch layer {
	case model.LayerBusiness:
		return 10
	case model.LayerApplication:
		return 20
	case model.LayerData:
		return 15
	case model.LayerTechnology:
		return 25
	default:
		return 30
	}
}

func componentPriority(el model.ArchitectureElement) int {
	priority := 5
	switch el.Metadata.Risk {
	case model.RiskCritical:
		priority += 3
	case model.RiskHigh:
		priority += 2
	}
	if el.Layer == model.LayerApplication {
		priority++
	}
	if priority > 10 {
		priority = 10
	}
	return priority
}

func summarize(gaps []Gap) Summary {
	summary := Summary{
		TotalGaps:  len(gaps),
		BySeverity: make(map[model.RiskLevel]int),
	}
	for _, g := range gaps {
		summary.BySeverity[g.Severity]++
		summary.TotalEffortDays += g.EffortDays
	}
	summary.EstimatedCost = float64(summary.TotalEffortDays) * costPerEffortDay
	summary.TimelineMonths = int(math.Ceil(float64(summary.TotalEffortDays) / workingDaysPerMonth))
	return summary
}
