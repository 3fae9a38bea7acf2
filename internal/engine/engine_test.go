package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/analysis-engine/internal/compliance"
	"github.com/archlens/analysis-engine/internal/cost"
	"github.com/archlens/analysis-engine/internal/dependency"
	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
	"github.com/archlens/analysis-engine/internal/performance"
	"github.com/archlens/analysis-engine/internal/pricing"
	"github.com/archlens/analysis-engine/internal/stack"
)

func newTestEngine() *Engine {
	return New(Options{IDs: &idgen.Sequence{}})
}

func TestEngine_DefaultsAreUsable(t *testing.T) {
	eng := New(Options{})
	require.NotNil(t, eng)

	_, err := eng.AnalyzeDependencies("nope", nil, nil)
	assert.ErrorIs(t, err, dependency.ErrSystemNotFound)
}

func TestEngine_EndToEndOverOneSnapshot(t *testing.T) {
	eng := newTestEngine()

	elements := []model.ArchitectureElement{
		{ID: "web", Name: "Web Frontend", Layer: model.LayerApplication, Metadata: model.ElementMetadata{Cost: 1200}},
		{ID: "api", Name: "Order API", Layer: model.LayerApplication, Metadata: model.ElementMetadata{Cost: 2400, Risk: model.RiskHigh}},
		{ID: "db", Name: "Order Store", Layer: model.LayerData, Metadata: model.ElementMetadata{Cost: 900, Risk: model.RiskCritical}},
		{ID: "vm", Name: "Compute Pool", Layer: model.LayerTechnology, Metadata: model.ElementMetadata{Cost: 600}, Tags: []string{"cloud"}},
	}
	relationships := []model.ArchitectureRelationship{
		{ID: "r1", SourceID: "web", TargetID: "api", Type: model.RelationDependsOn},
		{ID: "r2", SourceID: "api", TargetID: "db", Type: model.RelationDependsOn},
		{ID: "r3", SourceID: "api", TargetID: "vm", Type: model.RelationConsumes},
	}

	depAnalysis, err := eng.AnalyzeDependencies("web", elements, relationships)
	require.NoError(t, err)
	assert.NotEmpty(t, depAnalysis.DirectDependencies)
	assert.NotEmpty(t, depAnalysis.TransitiveDependencies)

	assessment := eng.ScoreRisks(elements)
	assert.NotEmpty(t, assessment.Items)

	register := eng.BuildRiskRegister(assessment.Items, nil)
	assert.Len(t, register.Mitigations, len(assessment.Items))

	estimation := eng.EstimateCosts(elements)
	assert.InDelta(t, 5100.0, estimation.TotalCost, 0.01)

	cloudEst := eng.EstimateCloudCosts(context.Background(), cost.CloudRequest{
		Usages: []pricing.Usage{{Provider: "aws", Region: "us-east-1", Service: "EC2", Quantity: 2}},
	})
	require.Len(t, cloudEst.Services, 1)
	assert.Equal(t, pricing.SourceStatic, cloudEst.DataSource)

	perfReport := eng.ModelPerformance(performance.WorkloadProfile{PeakTPS: 900, ConcurrentUsers: 400}, elements)
	assert.Equal(t, performance.ScalingAuto, perfReport.Plan.Strategy)

	complianceReport := eng.EvaluateCompliance(compliance.Request{Frameworks: []compliance.FrameworkID{compliance.FrameworkSOC2}})
	require.Len(t, complianceReport.Frameworks, 1)

	recommendation := eng.RecommendStack(stack.Request{ExistingTechnologies: []string{"PostgreSQL"}})
	assert.NotEmpty(t, recommendation.Stack)

	dashboard := eng.AggregatePortfolio(elements, relationships, assessment.Items)
	assert.Equal(t, 4, dashboard.TotalElements)
	assert.Less(t, dashboard.OverallHealth, 100.0)
}
