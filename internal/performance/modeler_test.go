package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

func newTestModeler() *Modeler {
	return NewModeler(zap.NewNop(), &idgen.Sequence{}, 0)
}

func techElement(id string, capacity float64, tags ...string) model.ArchitectureElement {
	return model.ArchitectureElement{
		ID: id, Name: id, Layer: model.LayerTechnology, Tags: tags,
		Metadata: model.ElementMetadata{CapacityPerUnit: &capacity},
	}
}

func TestModel_DefaultBaseline(t *testing.T) {
	report := newTestModeler().Model(WorkloadProfile{PeakTPS: 1200}, nil)

	assert.Equal(t, 600.0, report.Plan.BaselineCapacity)
	assert.Equal(t, 2, report.Plan.CurrentCapacityUnits) // ceil(1200/600)
	assert.Equal(t, 900.0, report.Plan.MonthlyCost)      // 2 * default 450
}

func TestModel_BaselineFromTechnologyElements(t *testing.T) {
	elements := []model.ArchitectureElement{
		techElement("t1", 400),
		techElement("t2", 800),
		// non-technology layers are ignored for the baseline
		{ID: "app", Layer: model.LayerApplication},
	}

	report := newTestModeler().Model(WorkloadProfile{PeakTPS: 600}, elements)
	assert.Equal(t, 600.0, report.Plan.BaselineCapacity) // mean(400, 800)
}

func TestModel_BaselineReductions(t *testing.T) {
	t.Run("large payload reduces proportionally with 50 percent floor", func(t *testing.T) {
		report := newTestModeler().Model(WorkloadProfile{PeakTPS: 100, PayloadKB: 2048}, nil)
		assert.Equal(t, 300.0, report.Plan.BaselineCapacity) // floor at 600 * 0.5
	})

	t.Run("strict availability shaves 10 percent", func(t *testing.T) {
		report := newTestModeler().Model(WorkloadProfile{PeakTPS: 100, AvailabilityTarget: 99.95}, nil)
		assert.Equal(t, 540.0, report.Plan.BaselineCapacity)
	})

	t.Run("baseline never drops below 150", func(t *testing.T) {
		low := 100.0
		elements := []model.ArchitectureElement{techElement("t1", low)}
		report := newTestModeler().Model(WorkloadProfile{PeakTPS: 100, PayloadKB: 4096}, elements)
		assert.Equal(t, 150.0, report.Plan.BaselineCapacity)
	})
}

func TestModel_GrowthProjection(t *testing.T) {
	report := newTestModeler().Model(WorkloadProfile{PeakTPS: 600, MonthlyGrowthRate: 10}, nil)

	// 1 unit * 1.1^12 = 3.138... -> ceil 4
	assert.Equal(t, 1, report.Plan.CurrentCapacityUnits)
	assert.Equal(t, 4, report.Plan.TwelveMonthUnits)
}

func TestModel_PeakBuffer(t *testing.T) {
	report := newTestModeler().Model(WorkloadProfile{PeakTPS: 100, ConcurrentUsers: 300}, nil)
	assert.InDelta(t, 1.3, report.Plan.PeakBuffer, 1e-9)

	report = newTestModeler().Model(WorkloadProfile{PeakTPS: 100, ConcurrentUsers: 2000}, nil)
	assert.InDelta(t, 1.5, report.Plan.PeakBuffer, 1e-9) // capped at +50%
}

func TestModel_ScalingStrategy(t *testing.T) {
	t.Run("auto scaling with cloud tags and high concurrency", func(t *testing.T) {
		elements := []model.ArchitectureElement{techElement("t1", 600, "cloud")}
		report := newTestModeler().Model(WorkloadProfile{PeakTPS: 100, ConcurrentUsers: 300}, elements)
		assert.Equal(t, ScalingAuto, report.Plan.Strategy)
	})

	t.Run("horizontal when peak far exceeds average", func(t *testing.T) {
		report := newTestModeler().Model(WorkloadProfile{PeakTPS: 400, AverageTPS: 100}, nil)
		assert.Equal(t, ScalingHorizontal, report.Plan.Strategy)
	})

	t.Run("vertical otherwise", func(t *testing.T) {
		report := newTestModeler().Model(WorkloadProfile{PeakTPS: 100, AverageTPS: 90}, nil)
		assert.Equal(t, ScalingVertical, report.Plan.Strategy)
	})
}

func TestModel_BottleneckDetection(t *testing.T) {
	profile := WorkloadProfile{
		PeakTPS:         1500,
		AverageTPS:      900,
		ConcurrentUsers: 800,
		PayloadKB:       512,
		LatencyTargetMs: 100,
	}

	report := newTestModeler().Model(profile, nil)

	layers := make(map[model.Layer]Bottleneck)
	for _, b := range report.Bottlenecks {
		layers[b.Layer] = b
	}

	require.Len(t, report.Bottlenecks, 4)
	assert.Contains(t, layers, model.LayerTechnology)  // compute saturation
	assert.Contains(t, layers, model.LayerApplication) // integration volume
	assert.Contains(t, layers, model.LayerData)        // payload > 256KB
	assert.Contains(t, layers, model.LayerSolution)    // latency risk

	for _, b := range report.Bottlenecks {
		assert.GreaterOrEqual(t, b.UtilizationPercent, 0.0)
		assert.LessOrEqual(t, b.UtilizationPercent, 100.0)
		assert.NotEmpty(t, b.Remediations)
	}
}

func TestModel_ZeroTrafficNeedsNoUnits(t *testing.T) {
	report := newTestModeler().Model(WorkloadProfile{}, nil)

	assert.Equal(t, 0, report.Plan.CurrentCapacityUnits)
	assert.Equal(t, 0, report.Plan.TwelveMonthUnits)
	assert.Equal(t, 0.0, report.Plan.MonthlyCost)
}

func TestModel_QuietWorkloadHasNoBottlenecks(t *testing.T) {
	report := newTestModeler().Model(WorkloadProfile{PeakTPS: 10, AverageTPS: 8, ConcurrentUsers: 20, PayloadKB: 16}, nil)
	assert.Empty(t, report.Bottlenecks)
}
