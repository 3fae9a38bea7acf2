// Package dependency performs direct, transitive and blast-radius analysis
// for a single system in the architecture graph.
package dependency

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

// ErrSystemNotFound is returned when the requested system id is absent from
// the supplied element snapshot.
var ErrSystemNotFound = errors.New("system not found")

// ImpactType classifies how strongly a dependency couples two elements
type ImpactType string

const (
	ImpactBreaking ImpactType = "BREAKING"
	ImpactModerate ImpactType = "MODERATE"
	ImpactMinor    ImpactType = "MINOR"
)

const maxTransitiveDepth = 3

// DirectDependency is a one-hop outgoing dependency of the analyzed system
type DirectDependency struct {
	ElementID   string                 `json:"element_id"`
	ElementName string                 `json:"element_name"`
	Type        model.RelationshipType `json:"type"`
	ImpactType  ImpactType             `json:"impact_type"`
}

// TransitiveDependency is a dependency reached through one or more hops
type TransitiveDependency struct {
	ElementID   string     `json:"element_id"`
	ElementName string     `json:"element_name"`
	Depth       int        `json:"depth"`
	ImpactType  ImpactType `json:"impact_type"`
}

// AffectedSystem is an element that depends on the analyzed system and would
// feel a change to it.
type AffectedSystem struct {
	ElementID            string          `json:"element_id"`
	ElementName          string          `json:"element_name"`
	Severity             model.RiskLevel `json:"severity"`
	EstimatedDowntimeHrs int             `json:"estimated_downtime_hours"`
}

// Analysis is the full dependency-impact report for one system
type Analysis struct {
	ID                     string                 `json:"id"`
	SystemID               string                 `json:"system_id"`
	DirectDependencies     []DirectDependency     `json:"direct_dependencies"`
	TransitiveDependencies []TransitiveDependency `json:"transitive_dependencies"`
	AffectedSystems        []AffectedSystem       `json:"affected_systems"`
	ImpactScore            float64                `json:"impact_score"`
	RiskLevel              model.RiskLevel        `json:"risk_level"`
	Recommendations        []string               `json:"recommendations"`
}

// Analyzer walks the architecture graph for dependency impact
type Analyzer struct {
	logger   *zap.Logger
	ids      idgen.Generator
	maxDepth int
}

// NewAnalyzer creates a dependency analyzer. A maxDepth of 0 uses the
// default transitive depth cap of 3.
func NewAnalyzer(logger *zap.Logger, ids idgen.Generator, maxDepth int) *Analyzer {
	if maxDepth <= 0 {
		maxDepth = maxTransitiveDepth
	}
	return &Analyzer{logger: logger, ids: ids, maxDepth: maxDepth}
}

// Analyze computes the dependency-impact report for systemID over the
// supplied graph snapshot. Returns ErrSystemNotFound when the id does not
// match any element.
func (a *Analyzer) Analyze(systemID string, elements []model.ArchitectureElement, relationships []model.ArchitectureRelationship) (*Analysis, error) {
	index := model.IndexElements(elements)
	if _, ok := index[systemID]; !ok {
		return nil, fmt.Errorf("analyze dependencies for %q: %w", systemID, ErrSystemNotFound)
	}

	outgoing := make(map[string][]model.ArchitectureRelationship)
	incoming := make(map[string][]model.ArchitectureRelationship)
	for _, rel := range relationships {
		outgoing[rel.SourceID] = append(outgoing[rel.SourceID], rel)
		incoming[rel.TargetID] = append(incoming[rel.TargetID], rel)
	}

	direct := a.directDependencies(systemID, index, outgoing)
	transitive := a.transitiveDependencies(systemID, direct, index, outgoing)
	affected := a.affectedSystems(systemID, index, incoming)

	score := impactScore(direct, transitive, affected)
	level := riskLevel(score, affected)

	analysis := &Analysis{
		ID:                     a.ids.NewID("dep"),
		SystemID:               systemID,
		DirectDependencies:     direct,
		TransitiveDependencies: transitive,
		AffectedSystems:        affected,
		ImpactScore:            score,
		RiskLevel:              level,
		Recommendations:        recommendations(level, direct, transitive, affected),
	}

	a.logger.Debug("dependency analysis complete",
		zap.String("system_id", systemID),
		zap.Int("direct", len(direct)),
		zap.Int("transitive", len(transitive)),
		zap.Int("affected", len(affected)),
		zap.Float64("impact_score", score))

	return analysis, nil
}

func (a *Analyzer) directDependencies(systemID string, index map[string]*model.ArchitectureElement, outgoing map[string][]model.ArchitectureRelationship) []DirectDependency {
	deps := make([]DirectDependency, 0, len(outgoing[systemID]))
	for _, rel := range outgoing[systemID] {
		target := index[rel.TargetID]
		name := rel.TargetID
		targetRisk := model.RiskLevel("")
		if target != nil {
			name = target.Name
			targetRisk = target.Metadata.Risk
		}
		deps = append(deps, DirectDependency{
			ElementID:   rel.TargetID,
			ElementName: name,
			Type:        rel.Type,
			ImpactType:  classifyDirect(rel.Type, targetRisk),
		})
	}
	return deps
}

func classifyDirect(relType model.RelationshipType, targetRisk model.RiskLevel) ImpactType {
	switch {
	case relType == model.RelationDependsOn && targetRisk == model.RiskCritical:
		return ImpactBreaking
	case relType == model.RelationIntegratesWith && targetRisk == model.RiskHigh:
		return ImpactModerate
	case relType == model.RelationConsumes || relType == model.RelationProvides:
		return ImpactModerate
	default:
		return ImpactMinor
	}
}

// transitiveDependencies walks depth-first from each direct dependency's
// outgoing edges. A single visited set spans the whole traversal so each
// element appears at most once and cyclic graphs terminate.
func (a *Analyzer) transitiveDependencies(systemID string, direct []DirectDependency, index map[string]*model.ArchitectureElement, outgoing map[string][]model.ArchitectureRelationship) []TransitiveDependency {
	visited := map[string]bool{systemID: true}
	for _, d := range direct {
		visited[d.ElementID] = true
	}

	var results []TransitiveDependency
	var walk func(fromID string, depth int)
	walk = func(fromID string, depth int) {
		if depth > a.maxDepth {
			return
		}
		for _, rel := range outgoing[fromID] {
			if visited[rel.TargetID] {
				continue
			}
			visited[rel.TargetID] = true
			name := rel.TargetID
			if el := index[rel.TargetID]; el != nil {
				name = el.Name
			}
			impact := ImpactMinor
			if depth == 1 {
				impact = ImpactModerate
			}
			results = append(results, TransitiveDependency{
				ElementID:   rel.TargetID,
				ElementName: name,
				Depth:       depth,
				ImpactType:  impact,
			})
			walk(rel.TargetID, depth+1)
		}
	}
	for _, d := range direct {
		walk(d.ElementID, 1)
	}
	return results
}

func (a *Analyzer) affectedSystems(systemID string, index map[string]*model.ArchitectureElement, incoming map[string][]model.ArchitectureRelationship) []AffectedSystem {
	affected := make([]AffectedSystem, 0, len(incoming[systemID]))
	for _, rel := range incoming[systemID] {
		source := index[rel.SourceID]
		name := rel.SourceID
		severity := model.RiskLevel("")
		if source != nil {
			name = source.Name
			severity = source.Metadata.Risk
		}
		if severity == "" {
			if rel.Type == model.RelationDependsOn {
				severity = model.RiskMedium
			} else {
				severity = model.RiskLow
			}
		}
		affected = append(affected, AffectedSystem{
			ElementID:            rel.SourceID,
			ElementName:          name,
			Severity:             severity,
			EstimatedDowntimeHrs: downtimeHours(severity),
		})
	}
	return affected
}

func downtimeHours(severity model.RiskLevel) int {
	switch severity {
	case model.RiskCritical:
		return 24
	case model.RiskHigh:
		return 12
	case model.RiskMedium:
		return 6
	default:
		return 2
	}
}

func impactScore(direct []DirectDependency, transitive []TransitiveDependency, affected []AffectedSystem) float64 {
	score := 0.0
	for _, d := range direct {
		switch d.ImpactType {
		case ImpactBreaking:
			score += 30
		case ImpactModerate:
			score += 15
		default:
			score += 5
		}
	}
	for _, t := range transitive {
		if t.ImpactType == ImpactModerate {
			score += 5
		} else {
			score += 2
		}
	}
	for _, s := range affected {
		switch s.Severity {
		case model.RiskCritical:
			score += 20
		case model.RiskHigh:
			score += 10
		case model.RiskMedium:
			score += 5
		}
	}
	return model.ClampScore(score)
}

func riskLevel(score float64, affected []AffectedSystem) model.RiskLevel {
	anyCritical := false
	anyHigh := false
	for _, s := range affected {
		switch s.Severity {
		case model.RiskCritical:
			anyCritical = true
		case model.RiskHigh:
			anyHigh = true
		}
	}
	switch {
	case score >= 70 || anyCritical:
		return model.RiskCritical
	case score >= 50 || anyHigh:
		return model.RiskHigh
	case score >= 30:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func recommendations(level model.RiskLevel, direct []DirectDependency, transitive []TransitiveDependency, affected []AffectedSystem) []string {
	recs := make([]string, 0, 4)
	switch level {
	case model.RiskCritical:
		recs = append(recs, "Schedule a dedicated change window and prepare a rollback plan before modifying this system")
	case model.RiskHigh:
		recs = append(recs, "Coordinate the change with owners of dependent systems and stage it through a test environment")
	}
	if breaking := countImpact(direct, ImpactBreaking); breaking > 0 {
		recs = append(recs, fmt.Sprintf("Decouple %d breaking dependency(ies) on critical components via versioned interfaces", breaking))
	}
	if len(direct) > 5 {
		recs = append(recs, fmt.Sprintf("This system has %d direct dependencies; consider introducing a facade to reduce coupling", len(direct)))
	}
	if len(transitive) > 10 {
		recs = append(recs, fmt.Sprintf("The transitive dependency chain spans %d components; review for consolidation opportunities", len(transitive)))
	}
	if len(affected) > 3 {
		recs = append(recs, fmt.Sprintf("%d systems depend on this component; publish deprecation notices well before breaking changes", len(affected)))
	}
	if len(recs) == 0 {
		recs = append(recs, "Dependency surface is small; standard change management applies")
	}
	return recs
}

func countImpact(deps []DirectDependency, impact ImpactType) int {
	n := 0
	for _, d := range deps {
		if d.ImpactType == impact {
			n++
		}
	}
	return n
}
