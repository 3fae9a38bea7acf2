// Package risk surfaces per-element risks, aggregates them into an overall
// score and heatmap, and turns scored risks into a tracked register.
package risk

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

// Category classifies the origin of a risk
type Category string

const (
	CategoryTechnical   Category = "TECHNICAL"
	CategoryOperational Category = "OPERATIONAL"
)

// Status tracks the handling state of a risk item
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusMitigated  Status = "MITIGATED"
	StatusAccepted   Status = "ACCEPTED"
	StatusMonitoring Status = "MONITORING"
)

// Item is a single surfaced risk. Probability and impact are 0-100;
// Score is probability x impact / 100, so it also tops out at 100.
type Item struct {
	ID          string   `json:"id"`
	ElementID   string   `json:"element_id"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Probability float64  `json:"probability"`
	Impact      float64  `json:"impact"`
	Score       float64  `json:"score"`
	Status      Status   `json:"status"`
	Mitigations []string `json:"mitigations"`
}

// Assessment is the aggregate risk report over an element snapshot
type Assessment struct {
	ID           string          `json:"id"`
	Items        []Item          `json:"items"`
	OverallScore float64         `json:"overall_score"`
	RiskLevel    model.RiskLevel `json:"risk_level"`
	Heatmap      *Heatmap        `json:"heatmap"`
}

// Scorer derives risk items from element metadata
type Scorer struct {
	logger *zap.Logger
	ids    idgen.Generator
}

// NewScorer creates a risk scorer
func NewScorer(logger *zap.Logger, ids idgen.Generator) *Scorer {
	return &Scorer{logger: logger, ids: ids}
}

// Score surfaces risks for every element and aggregates them. An empty
// snapshot yields a zero score, LOW level and an empty heatmap.
func (s *Scorer) Score(elements []model.ArchitectureElement) *Assessment {
	var items []Item
	for _, el := range elements {
		items = append(items, s.elementRisks(el)...)
	}

	overall := 0.0
	if len(items) > 0 {
		sum := 0.0
		for _, item := range items {
			sum += item.Score
		}
		overall = model.ClampScore(sum / float64(len(items)))
	}

	assessment := &Assessment{
		ID:           s.ids.NewID("risk"),
		Items:        items,
		OverallScore: overall,
		RiskLevel:    levelForScore(overall),
		Heatmap:      BuildHeatmap(items),
	}

	s.logger.Debug("risk scoring complete",
		zap.Int("elements", len(elements)),
		zap.Int("items", len(items)),
		zap.Float64("overall_score", overall))

	return assessment
}

func (s *Scorer) elementRisks(el model.ArchitectureElement) []Item {
	var items []Item

	if el.Metadata.Risk == model.RiskHigh || el.Metadata.Risk == model.RiskCritical {
		probability, impact := riskProbabilityImpact(el.Metadata.Risk)
		items = append(items, Item{
			ID:          s.ids.NewID("risk-item"),
			ElementID:   el.ID,
			Category:    CategoryTechnical,
			Description: fmt.Sprintf("%s carries %s technical risk", el.Name, el.Metadata.Risk),
			Probability: probability,
			Impact:      impact,
			Score:       probability * impact / 100,
			Status:      StatusOpen,
			Mitigations: []string{
				"Assess the component for modernization or replacement",
				"Add monitoring and alerting around failure modes",
			},
		})
	}

	stage := el.Metadata.LifecycleStage
	if stage == model.LifecycleDeprecated || stage == model.LifecycleDecommissioned {
		items = append(items, Item{
			ID:          s.ids.NewID("risk-item"),
			ElementID:   el.ID,
			Category:    CategoryOperational,
			Description: fmt.Sprintf("%s is %s and will lose support", el.Name, stage),
			Probability: 70,
			Impact:      60,
			Score:       42,
			Status:      StatusOpen,
			Mitigations: []string{
				"Plan migration to a supported platform",
				"Document operational workarounds for the interim",
			},
		})
	}

	return items
}

func riskProbabilityImpact(level model.RiskLevel) (float64, float64) {
	switch level {
	case model.RiskCritical:
		return 90, 100
	case model.RiskHigh:
		return 70, 80
	case model.RiskMedium:
		return 50, 60
	case model.RiskLow:
		return 30, 40
	default:
		return 20, 30
	}
}

func levelForScore(score float64) model.RiskLevel {
	switch {
	case score >= 70:
		return model.RiskCritical
	case score >= 50:
		return model.RiskHigh
	case score >= 30:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
