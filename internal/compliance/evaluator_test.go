package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

func newTestEvaluator() *Evaluator {
	return NewEvaluator(zap.NewNop(), &idgen.Sequence{})
}

func TestEvaluate_ScoreFormula(t *testing.T) {
	evaluator := newTestEvaluator()
	req := Request{
		Frameworks: []FrameworkID{FrameworkCustom},
		CustomControls: []Control{
			{ID: "c1", Category: "security", Severity: SeverityHigh},
			{ID: "c2", Category: "security", Severity: SeverityHigh},
			{ID: "c3", Category: "monitoring", Severity: SeverityMedium},
		},
		Coverage: map[string]Coverage{
			"c1": {Status: StatusCompliant, Evidence: "SSO enforced"},
			"c2": {Status: StatusPartial},
			"c3": {Status: StatusNonCompliant},
		},
	}

	report := evaluator.Evaluate(req)

	require.Len(t, report.Frameworks, 1)
	fr := report.Frameworks[0]
	assert.Equal(t, 1, fr.Compliant)
	assert.Equal(t, 1, fr.Partial)
	assert.Equal(t, 1, fr.NonCompliant)
	assert.Equal(t, 50.0, fr.Score) // round((1 + 0.5) / 3 * 100)
}

func TestEvaluate_UncoveredControlDefaults(t *testing.T) {
	evaluator := newTestEvaluator()
	report := evaluator.Evaluate(Request{Frameworks: []FrameworkID{FrameworkSOC2}})

	require.Len(t, report.Frameworks, 1)
	for _, check := range report.Frameworks[0].Checks {
		if check.Control.Severity == SeverityHigh {
			assert.Equal(t, StatusNonCompliant, check.Status, "control %s", check.Control.ID)
		} else {
			assert.Equal(t, StatusPartial, check.Status, "control %s", check.Control.ID)
		}
		assert.NotEmpty(t, check.Remediation, "control %s needs remediation actions", check.Control.ID)
	}
}

func TestEvaluate_NotApplicableExcludedFromScore(t *testing.T) {
	evaluator := newTestEvaluator()
	req := Request{
		Frameworks: []FrameworkID{FrameworkCustom},
		CustomControls: []Control{
			{ID: "c1", Category: "security", Severity: SeverityHigh},
			{ID: "c2", Category: "security", Severity: SeverityHigh},
		},
		Coverage: map[string]Coverage{
			"c1": {Status: StatusCompliant},
			"c2": {Status: StatusNotApplicable},
		},
	}

	report := evaluator.Evaluate(req)
	require.Len(t, report.Frameworks, 1)
	assert.Equal(t, 100.0, report.Frameworks[0].Score)
}

func TestEvaluate_UnknownFrameworkSkipped(t *testing.T) {
	evaluator := newTestEvaluator()
	report := evaluator.Evaluate(Request{Frameworks: []FrameworkID{"PCI-DSS", FrameworkGDPR}})
	require.Len(t, report.Frameworks, 1)
	assert.Equal(t, FrameworkGDPR, report.Frameworks[0].Framework)
}

func TestEvaluate_RemediationFallsBackToGeneric(t *testing.T) {
	actions := RemediationFor("some-untracked-category")
	assert.NotEmpty(t, actions)
	assert.Equal(t, genericRemediation, actions)
}

func TestEvaluate_CustomExpressionControls(t *testing.T) {
	evaluator := newTestEvaluator()
	elements := []model.ArchitectureElement{
		{ID: "e1", Layer: model.LayerData, Tags: []string{"encrypted"}},
		{ID: "e2", Layer: model.LayerData, Tags: []string{"encrypted"}},
	}

	t.Run("passing expression marks compliant", func(t *testing.T) {
		report := evaluator.Evaluate(Request{
			Frameworks: []FrameworkID{FrameworkCustom},
			CustomControls: []Control{{
				ID: "enc-1", Category: "security", Severity: SeverityHigh,
				Expression: `tagged("encrypted") == layer("DATA")`,
			}},
			Elements: elements,
		})
		require.Len(t, report.Frameworks, 1)
		assert.Equal(t, StatusCompliant, report.Frameworks[0].Checks[0].Status)
	})

	t.Run("failing expression falls back to severity default", func(t *testing.T) {
		report := evaluator.Evaluate(Request{
			Frameworks: []FrameworkID{FrameworkCustom},
			CustomControls: []Control{{
				ID: "enc-2", Category: "security", Severity: SeverityHigh,
				Expression: `tagged("encrypted") > 10`,
			}},
			Elements: elements,
		})
		assert.Equal(t, StatusNonCompliant, report.Frameworks[0].Checks[0].Status)
	})

	t.Run("broken expression counts as no evidence", func(t *testing.T) {
		report := evaluator.Evaluate(Request{
			Frameworks: []FrameworkID{FrameworkCustom},
			CustomControls: []Control{{
				ID: "bad-1", Category: "security", Severity: SeverityMedium,
				Expression: `this is not an expression ((`,
			}},
		})
		assert.Equal(t, StatusPartial, report.Frameworks[0].Checks[0].Status)
	})

	t.Run("explicit coverage beats the expression", func(t *testing.T) {
		report := evaluator.Evaluate(Request{
			Frameworks: []FrameworkID{FrameworkCustom},
			CustomControls: []Control{{
				ID: "enc-3", Category: "security", Severity: SeverityHigh,
				Expression: `elements >= 0`,
			}},
			Coverage: map[string]Coverage{"enc-3": {Status: StatusNonCompliant}},
			Elements: elements,
		})
		assert.Equal(t, StatusNonCompliant, report.Frameworks[0].Checks[0].Status)
	})
}
