// Package compliance evaluates architecture elements against named control
// frameworks and produces scored reports.
package compliance

// FrameworkID identifies a supported control framework
type FrameworkID string

const (
	FrameworkSOC2   FrameworkID = "SOC2"
	FrameworkHIPAA  FrameworkID = "HIPAA"
	FrameworkGDPR   FrameworkID = "GDPR"
	FrameworkCustom FrameworkID = "CUSTOM"
)

// Severity grades how serious a control failure is
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Control is a single auditable requirement within a framework.
// Expression is only honored for CUSTOM framework controls: a boolean
// expression over the evaluation environment that, when it evaluates true,
// marks the control compliant without explicit coverage.
type Control struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Expression  string   `json:"expression,omitempty"`
}

// Framework owns a fixed catalog of controls
type Framework struct {
	ID       FrameworkID `json:"id"`
	Name     string      `json:"name"`
	Controls []Control   `json:"controls"`
}

// Catalog returns the built-in framework definitions. CUSTOM starts empty;
// callers extend it with their own controls per request.
func Catalog() map[FrameworkID]Framework {
	return map[FrameworkID]Framework{
		FrameworkSOC2: {
			ID:   FrameworkSOC2,
			Name: "SOC 2 Type II",
			Controls: []Control{
				{ID: "CC6.1", Name: "Logical access controls", Category: "security", Severity: SeverityHigh,
					Description: "Access to systems and data is restricted to authorized users"},
				{ID: "CC6.6", Name: "Encryption in transit", Category: "security", Severity: SeverityHigh,
					Description: "Data transmitted over public networks is encrypted"},
				{ID: "CC7.2", Name: "Anomaly monitoring", Category: "monitoring", Severity: SeverityMedium,
					Description: "System components are monitored for anomalous behavior"},
				{ID: "A1.2", Name: "Capacity and availability", Category: "availability", Severity: SeverityMedium,
					Description: "Capacity demand is managed to meet availability commitments"},
				{ID: "C1.1", Name: "Confidential data identification", Category: "confidentiality", Severity: SeverityMedium,
					Description: "Confidential information is identified and protected"},
			},
		},
		FrameworkHIPAA: {
			ID:   FrameworkHIPAA,
			Name: "HIPAA Security Rule",
			Controls: []Control{
				{ID: "164.312(a)", Name: "Access control", Category: "security", Severity: SeverityHigh,
					Description: "Technical policies limit ePHI access to authorized persons"},
				{ID: "164.312(e)", Name: "Transmission security", Category: "security", Severity: SeverityHigh,
					Description: "ePHI transmitted over networks is guarded against interception"},
				{ID: "164.312(b)", Name: "Audit controls", Category: "monitoring", Severity: SeverityMedium,
					Description: "Activity in systems containing ePHI is recorded and examined"},
				{ID: "164.308(a)(7)", Name: "Contingency plan", Category: "availability", Severity: SeverityMedium,
					Description: "Data backup and disaster recovery plans exist for ePHI systems"},
			},
		},
		FrameworkGDPR: {
			ID:   FrameworkGDPR,
			Name: "GDPR",
			Controls: []Control{
				{ID: "Art.5", Name: "Lawfulness and minimization", Category: "privacy", Severity: SeverityHigh,
					Description: "Personal data processing is lawful, fair and limited to its purpose"},
				{ID: "Art.17", Name: "Right to erasure", Category: "privacy", Severity: SeverityMedium,
					Description: "Personal data can be located and erased on request"},
				{ID: "Art.32", Name: "Security of processing", Category: "security", Severity: SeverityHigh,
					Description: "Technical measures ensure confidentiality, integrity and resilience"},
				{ID: "Art.33", Name: "Breach notification", Category: "monitoring", Severity: SeverityMedium,
					Description: "Personal data breaches are detected and reported within 72 hours"},
			},
		},
		FrameworkCustom: {
			ID:       FrameworkCustom,
			Name:     "Custom Controls",
			Controls: []Control{},
		},
	}
}

// remediationActions maps control categories to fixed remediation steps
var remediationActions = map[string][]string{
	"security": {
		"Implement role-based access control on the affected components",
		"Enable encryption for data in transit and at rest",
	},
	"privacy": {
		"Map personal data flows across the affected elements",
		"Implement data subject request handling and retention policies",
	},
	"monitoring": {
		"Deploy centralized logging and alerting for the affected components",
		"Define and test incident response runbooks",
	},
	"availability": {
		"Document and exercise backup and recovery procedures",
		"Add redundancy for single points of failure",
	},
	"confidentiality": {
		"Classify data assets and apply handling controls per class",
	},
}

var genericRemediation = []string{
	"Assign an owner and remediation deadline for this control",
	"Gather and attach compliance evidence for the next audit cycle",
}

// RemediationFor returns the fixed action list for a control category,
// falling back to the generic actions for untracked categories.
func RemediationFor(category string) []string {
	if actions, ok := remediationActions[category]; ok {
		return actions
	}
	return genericRemediation
}
