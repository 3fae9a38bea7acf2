// Package handlers exposes the analysis engine over HTTP. Handlers decode a
// caller-supplied snapshot, call the engine and encode the result; no
// computation happens here.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/compliance"
	"github.com/archlens/analysis-engine/internal/cost"
	"github.com/archlens/analysis-engine/internal/dependency"
	"github.com/archlens/analysis-engine/internal/engine"
	"github.com/archlens/analysis-engine/internal/model"
	"github.com/archlens/analysis-engine/internal/performance"
	"github.com/archlens/analysis-engine/internal/risk"
	"github.com/archlens/analysis-engine/internal/stack"
)

// Handler handles HTTP requests for the analysis engine
type Handler struct {
	engine *engine.Engine
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(engine *engine.Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api/v1/analysis")
	{
		api.POST("/dependencies", h.AnalyzeDependencies)
		api.POST("/gaps", h.AnalyzeGaps)
		api.POST("/risks", h.ScoreRisks)
		api.POST("/risks/register", h.BuildRiskRegister)
		api.POST("/costs", h.EstimateCosts)
		api.POST("/costs/cloud", h.EstimateCloudCosts)
		api.POST("/performance", h.ModelPerformance)
		api.POST("/compliance", h.EvaluateCompliance)
		api.POST("/stack", h.RecommendStack)
		api.POST("/portfolio", h.AggregatePortfolio)
	}
}

// Health reports service liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// GraphRequest is the common element/relationship snapshot payload
type GraphRequest struct {
	Elements      []model.ArchitectureElement      `json:"elements"`
	Relationships []model.ArchitectureRelationship `json:"relationships"`
}

// DependencyRequest selects one system within a graph snapshot
type DependencyRequest struct {
	SystemID string `json:"system_id" binding:"required"`
	GraphRequest
}

// AnalyzeDependencies runs dependency-impact analysis for one system
func (h *Handler) AnalyzeDependencies(c *gin.Context) {
	var req DependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	analysis, err := h.engine.AnalyzeDependencies(req.SystemID, req.Elements, req.Relationships)
	if err != nil {
		if errors.Is(err, dependency.ErrSystemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("dependency analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dependency analysis failed"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// GapRequest pairs an As-Is and To-Be snapshot
type GapRequest struct {
	AsIsElements      []model.ArchitectureElement      `json:"as_is_elements"`
	ToBeElements      []model.ArchitectureElement      `json:"to_be_elements"`
	AsIsRelationships []model.ArchitectureRelationship `json:"as_is_relationships"`
	ToBeRelationships []model.ArchitectureRelationship `json:"to_be_relationships"`
}

// AnalyzeGaps diffs an As-Is and To-Be snapshot
func (h *Handler) AnalyzeGaps(c *gin.Context) {
	var req GapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.engine.AnalyzeGaps(req.AsIsElements, req.ToBeElements, req.AsIsRelationships, req.ToBeRelationships))
}

// ScoreRisks surfaces and aggregates risks over the snapshot
func (h *Handler) ScoreRisks(c *gin.Context) {
	var req GraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.engine.ScoreRisks(req.Elements))
}

// RegisterRequest carries scored risks plus any prior mitigation state
type RegisterRequest struct {
	Risks       []risk.Item       `json:"risks"`
	Mitigations []risk.Mitigation `json:"mitigations"`
}

// BuildRiskRegister pairs risks with mitigations
func (h *Handler) BuildRiskRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.engine.BuildRiskRegister(req.Risks, req.Mitigations))
}

// EstimateCosts allocates element costs into the layer/category breakdown
func (h *Handler) EstimateCosts(c *gin.Context) {
	var req GraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.engine.EstimateCosts(req.Elements))
}

// EstimateCloudCosts prices cloud usage lines
func (h *Handler) EstimateCloudCosts(c *gin.Context) {
	var req cost.CloudRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.engine.EstimateCloudCosts(c.Request.Context(), req))
}

// PerformanceRequest pairs a workload profile with the serving elements
type PerformanceRequest struct {
	Profile  performance.WorkloadProfile `json:"profile"`
	Elements []model.ArchitectureElement `json:"elements"`
}

// ModelPerformance derives the capacity plan and bottlenecks
func (h *Handler) ModelPerformance(c *gin.Context) {
	var req PerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.engine.ModelPerformance(req.Profile, req.Elements))
}

// EvaluateCompliance scores the requested frameworks
func (h *Handler) EvaluateCompliance(c *gin.Context) {
	var req compliance.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.engine.EvaluateCompliance(req))
}

// RecommendStack scores technology options against requirements
func (h *Handler) RecommendStack(c *gin.Context) {
	var req stack.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.engine.RecommendStack(req))
}

// PortfolioRequest is a graph snapshot plus previously scored risks
type PortfolioRequest struct {
	GraphRequest
	Risks []risk.Item `json:"risks"`
}

// AggregatePortfolio composes the portfolio dashboard
func (h *Handler) AggregatePortfolio(c *gin.Context) {
	var req PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.engine.AggregatePortfolio(req.Elements, req.Relationships, req.Risks))
}
