package risk

import (
	"time"

	"go.uber.org/zap"

	"github.com/archlens/analysis-engine/internal/idgen"
)

// MitigationStatus tracks progress on a mitigation
type MitigationStatus string

const (
	MitigationPlanned    MitigationStatus = "PLANNED"
	MitigationInProgress MitigationStatus = "IN_PROGRESS"
	MitigationCompleted  MitigationStatus = "COMPLETED"
)

// Mitigation is the tracked response to a single risk
type Mitigation struct {
	ID              string           `json:"id"`
	RiskID          string           `json:"risk_id"`
	Description     string           `json:"description"`
	Owner           string           `json:"owner"`
	DueDate         time.Time        `json:"due_date"`
	Status          MitigationStatus `json:"status"`
	ProgressPercent float64          `json:"progress_percent"`
}

// Register pairs every risk with exactly one mitigation and sets the next
// review date.
type Register struct {
	ID             string       `json:"id"`
	Risks          []Item       `json:"risks"`
	Mitigations    []Mitigation `json:"mitigations"`
	NextReviewDate time.Time    `json:"next_review_date"`
}

// RegisterBuilder synthesizes a register from scored risks and any prior
// mitigation state supplied by the caller.
type RegisterBuilder struct {
	logger *zap.Logger
	ids    idgen.Generator
	now    func() time.Time
}

// NewRegisterBuilder creates a register builder. A nil clock uses time.Now.
func NewRegisterBuilder(logger *zap.Logger, ids idgen.Generator, now func() time.Time) *RegisterBuilder {
	if now == nil {
		now = time.Now
	}
	return &RegisterBuilder{logger: logger, ids: ids, now: now}
}

// Build produces one mitigation per risk, reusing caller-supplied
// mitigations matched by risk id and synthesizing defaults for the rest.
// Default due dates are 30 days out for high-impact risks (impact > 70),
// 60 days otherwise.
func (b *RegisterBuilder) Build(risks []Item, existing []Mitigation) *Register {
	byRisk := make(map[string]Mitigation, len(existing))
	for _, m := range existing {
		byRisk[m.RiskID] = m
	}

	now := b.now()
	mitigations := make([]Mitigation, 0, len(risks))
	for _, r := range risks {
		if m, ok := byRisk[r.ID]; ok {
			mitigations = append(mitigations, m)
			continue
		}
		dueDays := 60
		if r.Impact > 70 {
			dueDays = 30
		}
		mitigations = append(mitigations, Mitigation{
			ID:              b.ids.NewID("mit"),
			RiskID:          r.ID,
			Description:     "Define and execute a mitigation plan: " + r.Description,
			Owner:           "unassigned",
			DueDate:         now.AddDate(0, 0, dueDays),
			Status:          MitigationPlanned,
			ProgressPercent: 0,
		})
	}

	register := &Register{
		ID:             b.ids.NewID("register"),
		Risks:          risks,
		Mitigations:    mitigations,
		NextReviewDate: nextReview(now, mitigations),
	}

	b.logger.Debug("risk register built",
		zap.Int("risks", len(risks)),
		zap.Int("mitigations", len(mitigations)))

	return register
}

// nextReview is the earliest pending due date, or 30 days out when nothing
// is pending.
func nextReview(now time.Time, mitigations []Mitigation) time.Time {
	var earliest time.Time
	for _, m := range mitigations {
		if m.Status == MitigationCompleted {
			continue
		}
		if earliest.IsZero() || m.DueDate.Before(earliest) {
			earliest = m.DueDate
		}
	}
	if earliest.IsZero() {
		return now.AddDate(0, 0, 30)
	}
	return earliest
}
