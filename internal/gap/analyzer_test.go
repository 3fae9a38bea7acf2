package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(zap.NewNop(), &idgen.Sequence{})
}

func TestAnalyze_IdenticalSnapshotsYieldNoGaps(t *testing.T) {
	analyzer := newTestAnalyzer()
	elements := []model.ArchitectureElement{
		{ID: "a", Layer: model.LayerApplication, Name: "A"},
		{ID: "b", Layer: model.LayerData, Name: "B"},
	}
	relationships := []model.ArchitectureRelationship{
		{ID: "r1", SourceID: "a", TargetID: "b", Type: model.RelationDependsOn},
	}

	analysis := analyzer.Analyze(elements, elements, relationships, relationships)

	assert.Empty(t, analysis.Gaps)
	assert.Zero(t, analysis.Summary.TotalGaps)
	assert.Zero(t, analysis.Summary.TotalEffortDays)
	assert.Zero(t, analysis.Summary.EstimatedCost)
	assert.Zero(t, analysis.Summary.TimelineMonths)
}

func TestAnalyze_SingleMissingComponent(t *testing.T) {
	analyzer := newTestAnalyzer()
	asIs := []model.ArchitectureElement{{ID: "a", Name: "A"}}
	toBe := []model.ArchitectureElement{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B", Layer: model.LayerApplication},
	}

	analysis := analyzer.Analyze(asIs, toBe, nil, nil)

	require.Len(t, analysis.Gaps, 1)
	g := analysis.Gaps[0]
	assert.Equal(t, CategoryMissingComponent, g.Category)
	assert.Equal(t, "b", g.ElementID)
	assert.Equal(t, 20, g.EffortDays)
	assert.Equal(t, 6, g.Priority) // base 5 + 1 for APPLICATION
}

func TestAnalyze_CategoryByLayer(t *testing.T) {
	tests := []struct {
		layer model.Layer
		want  Category
	}{
		{model.LayerApplication, CategoryMissingComponent},
		{model.LayerTechnology, CategoryTechnologyGap},
		{model.LayerData, CategoryDataGap},
		{model.LayerBusiness, CategoryMissingCapability},
		{model.LayerSolution, CategoryMissingComponent},
	}

	analyzer := newTestAnalyzer()
	for _, tt := range tests {
		t.Run(string(tt.layer), func(t *testing.T) {
			toBe := []model.ArchitectureElement{{ID: "x", Name: "X", Layer: tt.layer}}
			analysis := analyzer.Analyze(nil, toBe, nil, nil)
			require.Len(t, analysis.Gaps, 1)
			assert.Equal(t, tt.want, analysis.Gaps[0].Category)
		})
	}
}

func TestAnalyze_PriorityCappedAtTen(t *testing.T) {
	analyzer := newTestAnalyzer()
	toBe := []model.ArchitectureElement{{
		ID: "x", Name: "X", Layer: model.LayerApplication,
		Metadata: model.ElementMetadata{Risk: model.RiskCritical},
	}}

	analysis := analyzer.Analyze(nil, toBe, nil, nil)
	require.Len(t, analysis.Gaps, 1)
	assert.Equal(t, 9, analysis.Gaps[0].Priority) // 5 + 3 critical + 1 application
	assert.LessOrEqual(t, analysis.Gaps[0].Priority, 10)
}

func TestAnalyze_MissingIntegration(t *testing.T) {
	analyzer := newTestAnalyzer()
	elements := []model.ArchitectureElement{{ID: "a"}, {ID: "b"}}
	toBeRels := []model.ArchitectureRelationship{
		// compared by endpoint pair, not id
		{ID: "different-id", SourceID: "a", TargetID: "b", Type: model.RelationIntegratesWith},
		// PROVIDES relationships are not integration gaps
		{ID: "r2", SourceID: "b", TargetID: "a", Type: model.RelationProvides},
	}

	analysis := analyzer.Analyze(elements, elements, nil, toBeRels)

	require.Len(t, analysis.Gaps, 1)
	g := analysis.Gaps[0]
	assert.Equal(t, CategoryMissingIntegration, g.Category)
	assert.Equal(t, model.RiskMedium, g.Severity)
	assert.Equal(t, 5, g.EffortDays)
	assert.Equal(t, 7, g.Priority)
	assert.Equal(t, "a", g.SourceID)
	assert.Equal(t, "b", g.TargetID)
}

func TestAnalyze_SameEndpointsDifferentIDNotAGap(t *testing.T) {
	analyzer := newTestAnalyzer()
	asIsRels := []model.ArchitectureRelationship{
		{ID: "old", SourceID: "a", TargetID: "b", Type: model.RelationDependsOn},
	}
	toBeRels := []model.ArchitectureRelationship{
		{ID: "new", SourceID: "a", TargetID: "b", Type: model.RelationDependsOn},
	}

	analysis := analyzer.Analyze(nil, nil, asIsRels, toBeRels)
	assert.Empty(t, analysis.Gaps)
}

func TestAnalyze_SummaryAggregation(t *testing.T) {
	analyzer := newTestAnalyzer()
	toBe := []model.ArchitectureElement{
		{ID: "b1", Name: "B1", Layer: model.LayerBusiness},   // 10 days
		{ID: "t1", Name: "T1", Layer: model.LayerTechnology}, // 25 days
		{ID: "s1", Name: "S1", Layer: model.LayerSolution},   // 30 days
	}
	toBeRels := []model.ArchitectureRelationship{
		{ID: "r1", SourceID: "b1", TargetID: "t1", Type: model.RelationDependsOn}, // 5 days
	}

	analysis := analyzer.Analyze(nil, toBe, nil, toBeRels)

	assert.Equal(t, 4, analysis.Summary.TotalGaps)
	assert.Equal(t, 70, analysis.Summary.TotalEffortDays)
	assert.Equal(t, 70000.0, analysis.Summary.EstimatedCost)
	assert.Equal(t, 4, analysis.Summary.TimelineMonths) // ceil(70/20)
}
