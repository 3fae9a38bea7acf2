package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(zap.NewNop(), &idgen.Sequence{}, 0)
}

func element(id string, riskLevel model.RiskLevel) model.ArchitectureElement {
	return model.ArchitectureElement{
		ID:       id,
		Name:     id,
		Layer:    model.LayerApplication,
		Metadata: model.ElementMetadata{Risk: riskLevel},
	}
}

func rel(id, source, target string, relType model.RelationshipType) model.ArchitectureRelationship {
	return model.ArchitectureRelationship{ID: id, SourceID: source, TargetID: target, Type: relType}
}

func TestAnalyze_SystemNotFound(t *testing.T) {
	analyzer := newTestAnalyzer()

	_, err := analyzer.Analyze("missing", []model.ArchitectureElement{element("sys1", "")}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSystemNotFound)
}

func TestAnalyze_BreakingDependencyOnCriticalTarget(t *testing.T) {
	analyzer := newTestAnalyzer()
	elements := []model.ArchitectureElement{
		element("sys1", model.RiskCritical),
		element("sys2", ""),
	}
	relationships := []model.ArchitectureRelationship{
		rel("r1", "sys2", "sys1", model.RelationDependsOn),
	}

	analysis, err := analyzer.Analyze("sys2", elements, relationships)
	require.NoError(t, err)

	require.Len(t, analysis.DirectDependencies, 1)
	assert.Equal(t, ImpactBreaking, analysis.DirectDependencies[0].ImpactType)
	assert.GreaterOrEqual(t, analysis.ImpactScore, 30.0)
}

func TestAnalyze_ImpactClassification(t *testing.T) {
	tests := []struct {
		name       string
		relType    model.RelationshipType
		targetRisk model.RiskLevel
		want       ImpactType
	}{
		{"depends on critical is breaking", model.RelationDependsOn, model.RiskCritical, ImpactBreaking},
		{"integrates with high is moderate", model.RelationIntegratesWith, model.RiskHigh, ImpactModerate},
		{"consumes is moderate", model.RelationConsumes, "", ImpactModerate},
		{"provides is moderate", model.RelationProvides, model.RiskLow, ImpactModerate},
		{"depends on low is minor", model.RelationDependsOn, model.RiskLow, ImpactMinor},
	}

	analyzer := newTestAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := []model.ArchitectureElement{
				element("target", tt.targetRisk),
				element("source", ""),
			}
			relationships := []model.ArchitectureRelationship{
				rel("r1", "source", "target", tt.relType),
			}

			analysis, err := analyzer.Analyze("source", elements, relationships)
			require.NoError(t, err)
			require.Len(t, analysis.DirectDependencies, 1)
			assert.Equal(t, tt.want, analysis.DirectDependencies[0].ImpactType)
		})
	}
}

func TestAnalyze_CyclicGraphTerminates(t *testing.T) {
	analyzer := newTestAnalyzer()
	elements := []model.ArchitectureElement{
		element("a", ""), element("b", ""), element("c", ""),
	}
	relationships := []model.ArchitectureRelationship{
		rel("r1", "a", "b", model.RelationDependsOn),
		rel("r2", "b", "c", model.RelationDependsOn),
		rel("r3", "c", "a", model.RelationDependsOn),
	}

	analysis, err := analyzer.Analyze("a", elements, relationships)
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, td := range analysis.TransitiveDependencies {
		seen[td.ElementID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "element %s appears more than once", id)
	}
}

func TestAnalyze_TransitiveDepthCap(t *testing.T) {
	analyzer := newTestAnalyzer()
	// chain a -> b -> c -> d -> e -> f: b is direct, f is beyond depth 3
	ids := []string{"a", "b", "c", "d", "e", "f"}
	var elements []model.ArchitectureElement
	for _, id := range ids {
		elements = append(elements, element(id, ""))
	}
	var relationships []model.ArchitectureRelationship
	for i := 0; i < len(ids)-1; i++ {
		relationships = append(relationships, rel("r"+ids[i], ids[i], ids[i+1], model.RelationDependsOn))
	}

	analysis, err := analyzer.Analyze("a", elements, relationships)
	require.NoError(t, err)

	transitiveIDs := make([]string, 0, len(analysis.TransitiveDependencies))
	for _, td := range analysis.TransitiveDependencies {
		transitiveIDs = append(transitiveIDs, td.ElementID)
		assert.LessOrEqual(t, td.Depth, 3)
	}
	assert.ElementsMatch(t, []string{"c", "d", "e"}, transitiveIDs)

	for _, td := range analysis.TransitiveDependencies {
		if td.Depth == 1 {
			assert.Equal(t, ImpactModerate, td.ImpactType)
		} else {
			assert.Equal(t, ImpactMinor, td.ImpactType)
		}
	}
}

func TestAnalyze_AffectedSystems(t *testing.T) {
	analyzer := newTestAnalyzer()
	elements := []model.ArchitectureElement{
		element("core", ""),
		element("critical-consumer", model.RiskCritical),
		element("plain-consumer", ""),
	}
	relationships := []model.ArchitectureRelationship{
		rel("r1", "critical-consumer", "core", model.RelationDependsOn),
		rel("r2", "plain-consumer", "core", model.RelationIntegratesWith),
	}

	analysis, err := analyzer.Analyze("core", elements, relationships)
	require.NoError(t, err)
	require.Len(t, analysis.AffectedSystems, 2)

	bySource := make(map[string]AffectedSystem)
	for _, a := range analysis.AffectedSystems {
		bySource[a.ElementID] = a
	}

	assert.Equal(t, model.RiskCritical, bySource["critical-consumer"].Severity)
	assert.Equal(t, 24, bySource["critical-consumer"].EstimatedDowntimeHrs)
	// no risk metadata, non-DEPENDS_ON edge falls back to LOW
	assert.Equal(t, model.RiskLow, bySource["plain-consumer"].Severity)
	assert.Equal(t, 2, bySource["plain-consumer"].EstimatedDowntimeHrs)

	// any affected CRITICAL forces the overall level to CRITICAL
	assert.Equal(t, model.RiskCritical, analysis.RiskLevel)
}

func TestAnalyze_ScoreClampedTo100(t *testing.T) {
	analyzer := newTestAnalyzer()
	elements := []model.ArchitectureElement{element("hub", "")}
	var relationships []model.ArchitectureRelationship
	for i := 0; i < 30; i++ {
		id := string(rune('a' + i%26))
		suffix := id + string(rune('0'+i/26))
		elements = append(elements, element("dep-"+suffix, model.RiskCritical))
		relationships = append(relationships,
			rel("out-"+suffix, "hub", "dep-"+suffix, model.RelationDependsOn),
			rel("in-"+suffix, "dep-"+suffix, "hub", model.RelationDependsOn),
		)
	}

	analysis, err := analyzer.Analyze("hub", elements, relationships)
	require.NoError(t, err)
	assert.LessOrEqual(t, analysis.ImpactScore, 100.0)
	assert.GreaterOrEqual(t, analysis.ImpactScore, 0.0)
}

func TestAnalyze_EmptyGraphBeyondTarget(t *testing.T) {
	analyzer := newTestAnalyzer()

	analysis, err := analyzer.Analyze("solo", []model.ArchitectureElement{element("solo", "")}, nil)
	require.NoError(t, err)
	assert.Empty(t, analysis.DirectDependencies)
	assert.Empty(t, analysis.TransitiveDependencies)
	assert.Empty(t, analysis.AffectedSystems)
	assert.Zero(t, analysis.ImpactScore)
	assert.Equal(t, model.RiskLow, analysis.RiskLevel)
	assert.NotEmpty(t, analysis.Recommendations)
}
