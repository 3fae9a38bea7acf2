// Package engine is the library surface of the analysis engine: one facade
// composing the analyzers, with the pricing adapter injected explicitly.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/compliance"
	"github.com/archlens/analysis-engine/internal/cost"
	"github.com/archlens/analysis-engine/internal/dependency"
	"github.com/archlens/analysis-engine/internal/gap"
	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/metrics"
	"github.com/archlens/analysis-engine/internal/model"
	"github.com/archlens/analysis-engine/internal/performance"
	"github.com/archlens/analysis-engine/internal/portfolio"
	"github.com/archlens/analysis-engine/internal/pricing"
	"github.com/archlens/analysis-engine/internal/risk"
	"github.com/archlens/analysis-engine/internal/stack"
)

// Options configure an Engine
type Options struct {
	Logger            *zap.Logger
	IDs               idgen.Generator
	Clock             func() time.Time
	PricingAdapter    pricing.Adapter
	Metrics           *metrics.Collector
	MaxTraversalDepth int
	UnitMonthlyCost   float64
	Maturity          portfolio.MaturityBaselines
}

// Engine composes the analyzers behind one facade. Every method is a pure
// function of its inputs except cloud pricing, which may consult the
// injected adapter.
type Engine struct {
	logger     *zap.Logger
	adapter    pricing.Adapter
	collector  *metrics.Collector
	deps       *dependency.Analyzer
	gaps       *gap.Analyzer
	risks      *risk.Scorer
	register   *risk.RegisterBuilder
	costs      *cost.Estimator
	perf       *performance.Modeler
	compliance *compliance.Evaluator
	stacks     *stack.Recommender
	portfolio  *portfolio.Aggregator
}

// New creates an engine. Nil options fall back to sane defaults: a no-op
// logger, UUID ids, the wall clock and no pricing adapter (heuristic-only
// cloud pricing).
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.IDs == nil {
		opts.IDs = idgen.UUID{}
	}
	logger := opts.Logger

	return &Engine{
		logger:     logger,
		adapter:    opts.PricingAdapter,
		collector:  opts.Metrics,
		deps:       dependency.NewAnalyzer(logger, opts.IDs, opts.MaxTraversalDepth),
		gaps:       gap.NewAnalyzer(logger, opts.IDs),
		risks:      risk.NewScorer(logger, opts.IDs),
		register:   risk.NewRegisterBuilder(logger, opts.IDs, opts.Clock),
		costs:      cost.NewEstimator(logger, opts.IDs),
		perf:       performance.NewModeler(logger, opts.IDs, opts.UnitMonthlyCost),
		compliance: compliance.NewEvaluator(logger, opts.IDs),
		stacks:     stack.NewRecommender(logger, opts.IDs),
		portfolio:  portfolio.NewAggregator(logger, opts.IDs, opts.Maturity),
	}
}

// AnalyzeDependencies runs dependency-impact analysis for one system.
// Returns dependency.ErrSystemNotFound when the id is absent.
func (e *Engine) AnalyzeDependencies(systemID string, elements []model.ArchitectureElement, relationships []model.ArchitectureRelationship) (*dependency.Analysis, error) {
	start := time.Now()
	analysis, err := e.deps.Analyze(systemID, elements, relationships)
	e.record("dependencies", err, start)
	return analysis, err
}

// AnalyzeGaps diffs an As-Is and To-Be snapshot
func (e *Engine) AnalyzeGaps(asIsElements, toBeElements []model.ArchitectureElement, asIsRelationships, toBeRelationships []model.ArchitectureRelationship) *gap.Analysis {
	start := time.Now()
	analysis := e.gaps.Analyze(asIsElements, toBeElements, asIsRelationships, toBeRelationships)
	e.record("gaps", nil, start)
	return analysis
}

// ScoreRisks surfaces and aggregates risks over the snapshot
func (e *Engine) ScoreRisks(elements []model.ArchitectureElement) *risk.Assessment {
	start := time.Now()
	assessment := e.risks.Score(elements)
	e.record("risks", nil, start)
	return assessment
}

// BuildRiskRegister pairs risks with mitigations and sets the review date
func (e *Engine) BuildRiskRegister(risks []risk.Item, existing []risk.Mitigation) *risk.Register {
	start := time.Now()
	register := e.register.Build(risks, existing)
	e.record("risk_register", nil, start)
	return register
}

// EstimateCosts allocates element costs into the layer/category breakdown
func (e *Engine) EstimateCosts(elements []model.ArchitectureElement) *cost.Estimation {
	start := time.Now()
	estimation := e.costs.EstimateTraditional(elements)
	e.record("costs", nil, start)
	return estimation
}

// EstimateCloudCosts prices cloud usage through the injected adapter,
// degrading to static heuristics when it is absent or failing.
func (e *Engine) EstimateCloudCosts(ctx context.Context, req cost.CloudRequest) *cost.CloudEstimation {
	start := time.Now()
	estimation := e.costs.EstimateCloud(ctx, req, e.adapter)
	if e.collector != nil {
		for _, svc := range estimation.Services {
			e.collector.RecordPricingLookup(string(svc.PricePoint.Source))
		}
	}
	e.record("cloud_costs", nil, start)
	return estimation
}

// ModelPerformance derives the capacity plan and bottlenecks
func (e *Engine) ModelPerformance(profile performance.WorkloadProfile, elements []model.ArchitectureElement) *performance.Report {
	start := time.Now()
	report := e.perf.Model(profile, elements)
	e.record("performance", nil, start)
	return report
}

// EvaluateCompliance scores the requested frameworks
func (e *Engine) EvaluateCompliance(req compliance.Request) *compliance.Report {
	start := time.Now()
	report := e.compliance.Evaluate(req)
	e.record("compliance", nil, start)
	return report
}

// RecommendStack scores technology options against requirements
func (e *Engine) RecommendStack(req stack.Request) *stack.Recommendation {
	start := time.Now()
	recommendation := e.stacks.Recommend(req)
	e.record("stack", nil, start)
	return recommendation
}

// AggregatePortfolio composes the portfolio dashboard
func (e *Engine) AggregatePortfolio(elements []model.ArchitectureElement, relationships []model.ArchitectureRelationship, risks []risk.Item) *portfolio.Dashboard {
	start := time.Now()
	dashboard := e.portfolio.Aggregate(elements, relationships, risks)
	e.record("portfolio", nil, start)
	return dashboard
}

func (e *Engine) record(analyzer string, err error, start time.Time) {
	if e.collector == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	e.collector.RecordAnalysis(analyzer, outcome, time.Since(start))
}
