package compliance

import (
	"math"

	"github.com/antonmedv/expr"
	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

// ControlStatus is the evaluated state of one control
type ControlStatus string

const (
	StatusCompliant     ControlStatus = "COMPLIANT"
	StatusPartial       ControlStatus = "PARTIAL"
	StatusNonCompliant  ControlStatus = "NON_COMPLIANT"
	StatusNotApplicable ControlStatus = "NOT_APPLICABLE"
)

// Coverage is caller-supplied evidence for one control
type Coverage struct {
	Status   ControlStatus `json:"status"`
	Evidence string        `json:"evidence,omitempty"`
}

// CheckResult records the evaluation of a single control
type CheckResult struct {
	Control     Control       `json:"control"`
	Status      ControlStatus `json:"status"`
	Evidence    string        `json:"evidence,omitempty"`
	Remediation []string      `json:"remediation,omitempty"`
}

// FrameworkReport aggregates results for one framework
type FrameworkReport struct {
	Framework     FrameworkID   `json:"framework"`
	Name          string        `json:"name"`
	Checks        []CheckResult `json:"checks"`
	Compliant     int           `json:"compliant"`
	Partial       int           `json:"partial"`
	NonCompliant  int           `json:"non_compliant"`
	NotApplicable int           `json:"not_applicable"`
	Score         float64       `json:"score"`
}

// Report is the full compliance evaluation across requested frameworks
type Report struct {
	ID         string            `json:"id"`
	Frameworks []FrameworkReport `json:"frameworks"`
}

// Request selects frameworks and supplies coverage evidence.
// CustomControls extend the CUSTOM framework for this evaluation only.
type Request struct {
	Frameworks     []FrameworkID               `json:"frameworks"`
	Coverage       map[string]Coverage         `json:"coverage,omitempty"`
	CustomControls []Control                   `json:"custom_controls,omitempty"`
	Elements       []model.ArchitectureElement `json:"elements,omitempty"`
}

// Evaluator checks elements against framework catalogs
type Evaluator struct {
	logger  *zap.Logger
	ids     idgen.Generator
	catalog map[FrameworkID]Framework
}

// NewEvaluator creates a compliance evaluator over the built-in catalog
func NewEvaluator(logger *zap.Logger, ids idgen.Generator) *Evaluator {
	return &Evaluator{logger: logger, ids: ids, catalog: Catalog()}
}

// Evaluate checks every control of every requested framework. Controls
// without coverage default to NON_COMPLIANT when severity is HIGH and
// PARTIAL otherwise. Unknown framework ids are skipped.
func (e *Evaluator) Evaluate(req Request) *Report {
	report := &Report{ID: e.ids.NewID("compliance")}

	for _, id := range req.Frameworks {
		framework, ok := e.catalog[id]
		if !ok {
			e.logger.Warn("unknown compliance framework requested", zap.String("framework", string(id)))
			continue
		}
		controls := framework.Controls
		if id == FrameworkCustom && len(req.CustomControls) > 0 {
			controls = append(append([]Control{}, controls...), req.CustomControls...)
		}
		report.Frameworks = append(report.Frameworks, e.evaluateFramework(framework, controls, req))
	}

	return report
}

func (e *Evaluator) evaluateFramework(framework Framework, controls []Control, req Request) FrameworkReport {
	fr := FrameworkReport{
		Framework: framework.ID,
		Name:      framework.Name,
		Checks:    make([]CheckResult, 0, len(controls)),
	}

	for _, control := range controls {
		result := e.checkControl(framework.ID, control, req)
		switch result.Status {
		case StatusCompliant:
			fr.Compliant++
		case StatusPartial:
			fr.Partial++
		case StatusNotApplicable:
			fr.NotApplicable++
		default:
			fr.NonCompliant++
		}
		fr.Checks = append(fr.Checks, result)
	}

	applicable := len(controls) - fr.NotApplicable
	if applicable < 1 {
		applicable = 1
	}
	fr.Score = math.Round((float64(fr.Compliant) + 0.5*float64(fr.Partial)) / float64(applicable) * 100)

	e.logger.Debug("framework evaluated",
		zap.String("framework", string(framework.ID)),
		zap.Int("controls", len(controls)),
		zap.Float64("score", fr.Score))

	return fr
}

func (e *Evaluator) checkControl(frameworkID FrameworkID, control Control, req Request) CheckResult {
	result := CheckResult{Control: control}

	if coverage, ok := req.Coverage[control.ID]; ok {
		result.Status = coverage.Status
		result.Evidence = coverage.Evidence
	} else if frameworkID == FrameworkCustom && control.Expression != "" && e.evaluateExpression(control, req) {
		result.Status = StatusCompliant
		result.Evidence = "expression evaluated compliant"
	} else if control.Severity == SeverityHigh {
		result.Status = StatusNonCompliant
	} else {
		result.Status = StatusPartial
	}

	if result.Status == StatusNonCompliant || result.Status == StatusPartial {
		result.Remediation = RemediationFor(control.Category)
	}
	return result
}

// evaluateExpression runs a custom control's boolean expression against the
// evaluation environment. Compile or runtime failures count as no evidence.
func (e *Evaluator) evaluateExpression(control Control, req Request) bool {
	env := map[string]interface{}{
		"elements": len(req.Elements),
		"tagged": func(tag string) int {
			n := 0
			for _, el := range req.Elements {
				if el.HasTag(tag) {
					n++
				}
			}
			return n
		},
		"layer": func(layer string) int {
			n := 0
			for _, el := range req.Elements {
				if string(el.Layer) == layer {
					n++
				}
			}
			return n
		},
	}

	program, err := expr.Compile(control.Expression, expr.Env(env), expr.AsBool())
	if err != nil {
		e.logger.Warn("custom control expression failed to compile",
			zap.String("control", control.ID), zap.Error(err))
		return false
	}
	out, err := expr.Run(program, env)
	if err != nil {
		e.logger.Warn("custom control expression failed to evaluate",
			zap.String("control", control.ID), zap.Error(err))
		return false
	}
	matched, _ := out.(bool)
	return matched
}
