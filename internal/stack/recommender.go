package stack

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

// FitTier classifies how well an option satisfies the requirements
type FitTier string

const (
	FitHigh   FitTier = "HIGH"
	FitMedium FitTier = "MEDIUM"
	FitLow    FitTier = "LOW"
)

// Requirement is a weighted statement of need for one category
type Requirement struct {
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Weight      float64  `json:"weight"`
}

// ScoredOption is an option with its requirement-fit score
type ScoredOption struct {
	Option Option  `json:"option"`
	Score  float64 `json:"score"`
	Fit    FitTier `json:"fit"`
}

// Recommendation is the scored catalog plus the selected stack
type Recommendation struct {
	ID      string                    `json:"id"`
	Options []ScoredOption            `json:"options"`
	Stack   map[Category]ScoredOption `json:"stack"`
}

// Request supplies requirements and the names of technologies already in
// use; familiarity with an existing technology earns a scoring bonus.
type Request struct {
	Requirements         []Requirement `json:"requirements"`
	ExistingTechnologies []string      `json:"existing_technologies,omitempty"`
}

// Recommender scores catalog options against requirements
type Recommender struct {
	logger *zap.Logger
	ids    idgen.Generator
}

// NewRecommender creates a stack recommender
func NewRecommender(logger *zap.Logger, ids idgen.Generator) *Recommender {
	return &Recommender{logger: logger, ids: ids}
}

// Recommend scores every catalog option against the requirements sharing
// its category and selects the highest-scoring non-LOW option per category.
func (r *Recommender) Recommend(req Request) *Recommendation {
	existing := make(map[string]bool, len(req.ExistingTechnologies))
	for _, name := range req.ExistingTechnologies {
		existing[strings.ToLower(name)] = true
	}

	byCategory := make(map[Category][]Requirement)
	for _, requirement := range req.Requirements {
		byCategory[requirement.Category] = append(byCategory[requirement.Category], requirement)
	}

	scored := make([]ScoredOption, 0, len(catalog))
	for _, option := range CatalogOptions() {
		score := scoreOption(option, byCategory[option.Category], existing)
		scored = append(scored, ScoredOption{
			Option: option,
			Score:  score,
			Fit:    fitTier(score),
		})
	}

	// Score-descending so the first non-LOW hit per category wins
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	stack := make(map[Category]ScoredOption)
	for _, so := range scored {
		if so.Fit == FitLow {
			continue
		}
		if _, taken := stack[so.Option.Category]; !taken {
			stack[so.Option.Category] = so
		}
	}

	r.logger.Debug("stack recommendation complete",
		zap.Int("options_scored", len(scored)),
		zap.Int("stack_size", len(stack)))

	return &Recommendation{
		ID:      r.ids.NewID("stack"),
		Options: scored,
		Stack:   stack,
	}
}

func scoreOption(option Option, requirements []Requirement, existing map[string]bool) float64 {
	score := option.EcosystemScore*0.5 + option.ComplianceFit*0.3 + skillsBonus(option.Skills)

	totalWeight := 0.0
	weightedBonus := 0.0
	for _, req := range requirements {
		totalWeight += req.Weight
		weightedBonus += req.Weight * keywordBoost(req.Description, option)
	}
	if totalWeight > 0 {
		score += weightedBonus / totalWeight
	}

	if existing[strings.ToLower(option.Name)] {
		score += 8
	}

	return model.ClampScore(score)
}

func skillsBonus(skills SkillsAvailability) float64 {
	switch skills {
	case SkillsHigh:
		return 15
	case SkillsMedium:
		return 8
	default:
		return 0
	}
}

// keywordBoost derives a fit bonus from requirement wording: regulatory
// language favors compliance fit, speed language favors ecosystem maturity,
// and budget language favors cheaper cost tiers.
func keywordBoost(description string, option Option) float64 {
	d := strings.ToLower(description)
	boost := 0.0
	if strings.Contains(d, "regulatory") || strings.Contains(d, "compliance") {
		boost += option.ComplianceFit * 0.1
	}
	if strings.Contains(d, "time-to-market") || strings.Contains(d, "speed") {
		boost += option.EcosystemScore * 0.1
	}
	if strings.Contains(d, "cost") || strings.Contains(d, "budget") {
		boost += float64(6-option.CostTier) * 2
	}
	return boost
}

func fitTier(score float64) FitTier {
	switch {
	case score >= 75:
		return FitHigh
	case score >= 55:
		return FitMedium
	default:
		return FitLow
	}
}
