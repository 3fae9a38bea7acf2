// Package performance derives capacity plans and bottleneck findings from a
// workload profile and the technology elements serving it.
package performance

import (
	"math"

	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
	"github.com/archlens/analysis-engine/internal/model"
)

// ScalingStrategy names how capacity should grow
type ScalingStrategy string

const (
	ScalingAuto       ScalingStrategy = "AUTO_SCALING"
	ScalingHorizontal ScalingStrategy = "HORIZONTAL"
	ScalingVertical   ScalingStrategy = "VERTICAL"
)

const (
	defaultCapacityPerUnit = 600.0
	minCapacityPerUnit     = 150.0
	largePayloadKB         = 512.0
	dataIOPayloadKB        = 256.0
	defaultUnitMonthlyCost = 450.0
)

// WorkloadProfile describes the load the architecture must carry
type WorkloadProfile struct {
	PeakTPS            float64 `json:"peak_tps"`
	AverageTPS         float64 `json:"average_tps"`
	ConcurrentUsers    int     `json:"concurrent_users"`
	PayloadKB          float64 `json:"payload_kb"`
	MonthlyGrowthRate  float64 `json:"monthly_growth_rate"`
	AvailabilityTarget float64 `json:"availability_target"`
	LatencyTargetMs    float64 `json:"latency_target_ms"`
}

// CapacityPlan is the derived capacity model. PeakBuffer is informational
// headroom guidance for operators; the unit and cost figures do not apply it.
type CapacityPlan struct {
	ID                   string          `json:"id"`
	BaselineCapacity     float64         `json:"baseline_capacity_per_unit"`
	CurrentCapacityUnits int             `json:"current_capacity_units"`
	PeakBuffer           float64         `json:"peak_buffer"`
	TwelveMonthUnits     int             `json:"twelve_month_units"`
	Strategy             ScalingStrategy `json:"strategy"`
	MonthlyCost          float64         `json:"monthly_cost"`
	UpgradeTimeline      string          `json:"upgrade_timeline"`
}

// Bottleneck flags a layer at risk under the profiled workload
type Bottleneck struct {
	Layer              model.Layer `json:"layer"`
	Finding            string      `json:"finding"`
	UtilizationPercent float64     `json:"utilization_percent"`
	Remediations       []string    `json:"remediations"`
}

// Report combines the capacity plan with detected bottlenecks
type Report struct {
	Plan        *CapacityPlan `json:"plan"`
	Bottlenecks []Bottleneck  `json:"bottlenecks"`
}

// Modeler builds performance reports
type Modeler struct {
	logger          *zap.Logger
	ids             idgen.Generator
	unitMonthlyCost float64
}

// NewModeler creates a performance modeler. A unitMonthlyCost of 0 uses the
// default per-unit rate.
func NewModeler(logger *zap.Logger, ids idgen.Generator, unitMonthlyCost float64) *Modeler {
	if unitMonthlyCost <= 0 {
		unitMonthlyCost = defaultUnitMonthlyCost
	}
	return &Modeler{logger: logger, ids: ids, unitMonthlyCost: unitMonthlyCost}
}

// Model derives the capacity plan and bottleneck findings for the profile
func (m *Modeler) Model(profile WorkloadProfile, elements []model.ArchitectureElement) *Report {
	baseline := m.baselineCapacity(profile, elements)

	currentUnits := 0
	if profile.PeakTPS > 0 {
		currentUnits = int(math.Ceil(profile.PeakTPS / baseline))
	}

	peakBuffer := 1 + math.Min(0.5, float64(profile.ConcurrentUsers)/1000)
	growthFactor := math.Pow(1+profile.MonthlyGrowthRate/100, 12)
	twelveMonthUnits := int(math.Ceil(float64(currentUnits) * growthFactor))

	plan := &CapacityPlan{
		ID:                   m.ids.NewID("capacity"),
		BaselineCapacity:     baseline,
		CurrentCapacityUnits: currentUnits,
		PeakBuffer:           peakBuffer,
		TwelveMonthUnits:     twelveMonthUnits,
		Strategy:             strategy(profile, elements),
		MonthlyCost:          float64(currentUnits) * m.unitMonthlyCost,
		UpgradeTimeline:      upgradeTimeline(currentUnits, twelveMonthUnits),
	}

	report := &Report{
		Plan:        plan,
		Bottlenecks: detectBottlenecks(profile),
	}

	m.logger.Debug("performance model complete",
		zap.Float64("baseline_capacity", baseline),
		zap.Int("current_units", currentUnits),
		zap.Int("twelve_month_units", twelveMonthUnits),
		zap.Int("bottlenecks", len(report.Bottlenecks)))

	return report
}

// baselineCapacity starts from the mean capacityPerUnit across TECHNOLOGY
// elements (default 600 TPS), then reduces for large payloads and strict
// availability targets, flooring at 150.
func (m *Modeler) baselineCapacity(profile WorkloadProfile, elements []model.ArchitectureElement) float64 {
	sum, count := 0.0, 0
	for _, el := range elements {
		if el.Layer == model.LayerTechnology && el.Metadata.CapacityPerUnit != nil {
			sum += *el.Metadata.CapacityPerUnit
			count++
		}
	}
	baseline := defaultCapacityPerUnit
	if count > 0 {
		baseline = sum / float64(count)
	}

	if profile.PayloadKB > largePayloadKB {
		reduction := math.Max(0.5, largePayloadKB/profile.PayloadKB)
		baseline *= reduction
	}
	if profile.AvailabilityTarget >= 99.9 {
		baseline *= 0.9
	}
	if baseline < minCapacityPerUnit {
		baseline = minCapacityPerUnit
	}
	return baseline
}

func strategy(profile WorkloadProfile, elements []model.ArchitectureElement) ScalingStrategy {
	cloudTagged := false
	for _, el := range elements {
		if el.HasTag("cloud") {
			cloudTagged = true
			break
		}
	}
	switch {
	case cloudTagged && profile.ConcurrentUsers > 250:
		return ScalingAuto
	case profile.AverageTPS > 0 && profile.PeakTPS > 1.5*profile.AverageTPS:
		return ScalingHorizontal
	default:
		return ScalingVertical
	}
}

func upgradeTimeline(currentUnits, twelveMonthUnits int) string {
	switch {
	case twelveMonthUnits > currentUnits*2:
		return "Begin capacity expansion within 3 months; demand more than doubles inside a year"
	case twelveMonthUnits > currentUnits:
		return "Plan incremental capacity additions over the next 6-9 months"
	default:
		return "Current capacity holds for the 12-month horizon; review quarterly"
	}
}

func detectBottlenecks(profile WorkloadProfile) []Bottleneck {
	var found []Bottleneck

	if profile.PeakTPS > defaultCapacityPerUnit {
		utilization := model.ClampScore(profile.PeakTPS / defaultCapacityPerUnit * 50)
		found = append(found, Bottleneck{
			Layer:              model.LayerTechnology,
			Finding:            "Compute saturation at peak throughput",
			UtilizationPercent: utilization,
			Remediations: []string{
				"Add compute capacity ahead of the projected peak",
				"Profile hot paths for per-request cost reductions",
			},
		})
	}

	if integrationVolume(profile) > 20 || profile.ConcurrentUsers > 500 {
		found = append(found, Bottleneck{
			Layer:              model.LayerApplication,
			Finding:            "Integration and network volume exceeds comfortable limits",
			UtilizationPercent: model.ClampScore(float64(profile.ConcurrentUsers) / 10),
			Remediations: []string{
				"Introduce asynchronous messaging between chatty integrations",
				"Batch or coalesce high-frequency calls",
			},
		})
	}

	if profile.PayloadKB > dataIOPayloadKB {
		found = append(found, Bottleneck{
			Layer:              model.LayerData,
			Finding:            "Data I/O pressure from large payloads",
			UtilizationPercent: model.ClampScore(profile.PayloadKB / dataIOPayloadKB * 40),
			Remediations: []string{
				"Compress or paginate large payloads",
				"Move bulk transfers to an out-of-band channel",
			},
		})
	}

	if profile.LatencyTargetMs > 0 && profile.LatencyTargetMs < 150 && profile.PeakTPS > 1000 {
		found = append(found, Bottleneck{
			Layer:              model.LayerSolution,
			Finding:            "Latency target at risk under peak load",
			UtilizationPercent: model.ClampScore(profile.PeakTPS / 1000 * 60),
			Remediations: []string{
				"Add caching in front of latency-critical paths",
				"Review synchronous hops on the critical path",
			},
		})
	}

	return found
}

func integrationVolume(profile WorkloadProfile) float64 {
	if profile.AverageTPS > 0 {
		return profile.AverageTPS
	}
	return profile.PeakTPS / 2
}
