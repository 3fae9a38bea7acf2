// Package model defines the architecture graph contract shared by every
// analyzer. Elements and relationships are caller-supplied snapshots; the
// engine never mutates them.
package model

// Layer identifies the architectural tier an element belongs to
type Layer string

const (
	LayerBusiness    Layer = "BUSINESS"
	LayerApplication Layer = "APPLICATION"
	LayerData        Layer = "DATA"
	LayerTechnology  Layer = "TECHNOLOGY"
	LayerSolution    Layer = "SOLUTION"
)

// RiskLevel classifies an element or finding; the empty string means unset
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// ElementState distinguishes current-state from target-state snapshots
type ElementState string

const (
	StateAsIs ElementState = "AS_IS"
	StateToBe ElementState = "TO_BE"
)

// RelationshipType classifies a directed relationship between two elements.
// Unrecognized strings pass through untouched.
type RelationshipType string

const (
	RelationDependsOn      RelationshipType = "DEPENDS_ON"
	RelationIntegratesWith RelationshipType = "INTEGRATES_WITH"
	RelationConsumes       RelationshipType = "CONSUMES"
	RelationProvides       RelationshipType = "PROVIDES"
)

// LifecycleStage tracks where an element sits in its lifecycle
type LifecycleStage string

const (
	LifecyclePlanned        LifecycleStage = "PLANNED"
	LifecycleActive         LifecycleStage = "ACTIVE"
	LifecycleDeprecated     LifecycleStage = "DEPRECATED"
	LifecycleDecommissioned LifecycleStage = "DECOMMISSIONED"
)

// ElementMetadata carries the optional attributes analyzers key off.
// Known extension fields are typed; anything else lands in Extra.
type ElementMetadata struct {
	Risk            RiskLevel         `json:"risk,omitempty"`
	Cost            float64           `json:"cost,omitempty"`
	LifecycleStage  LifecycleStage    `json:"lifecycle_stage,omitempty"`
	CapacityPerUnit *float64          `json:"capacity_per_unit,omitempty"`
	Platform        string            `json:"platform,omitempty"`
	CloudServiceID  string            `json:"cloud_service_id,omitempty"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// ArchitectureElement is a node in the enterprise-architecture graph
type ArchitectureElement struct {
	ID       string          `json:"id"`
	Layer    Layer           `json:"layer"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Metadata ElementMetadata `json:"metadata"`
	Tags     []string        `json:"tags,omitempty"`
	State    ElementState    `json:"state,omitempty"`
}

// HasTag reports whether the element carries the given tag (case-sensitive)
func (e *ArchitectureElement) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ArchitectureRelationship is a directed edge between two elements.
// Dangling source/target ids are treated as unknown, never as an error.
type ArchitectureRelationship struct {
	ID          string           `json:"id"`
	SourceID    string           `json:"source_id"`
	TargetID    string           `json:"target_id"`
	Type        RelationshipType `json:"type"`
	Description string           `json:"description,omitempty"`
}

// IndexElements builds an id lookup over an element snapshot
func IndexElements(elements []ArchitectureElement) map[string]*ArchitectureElement {
	index := make(map[string]*ArchitectureElement, len(elements))
	for i := range elements {
		index[elements[i].ID] = &elements[i]
	}
	return index
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampScore bounds a score to the 0-100 scale every analyzer reports on
func ClampScore(v float64) float64 {
	return Clamp(v, 0, 100)
}

// RiskRank orders risk levels for comparisons; unset ranks lowest
func RiskRank(level RiskLevel) int {
	switch level {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	default:
		return 0
	}
}
