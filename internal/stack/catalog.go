// Package stack scores technology options against weighted requirements and
// assembles a recommended stack per category.
package stack

// Category groups technology options by concern
type Category string

const (
	CategoryFrontend    Category = "FRONTEND"
	CategoryBackend     Category = "BACKEND"
	CategoryData        Category = "DATA"
	CategoryDevOps      Category = "DEVOPS"
	CategorySecurity    Category = "SECURITY"
	CategoryIntegration Category = "INTEGRATION"
)

// SkillsAvailability grades how easy it is to staff for an option
type SkillsAvailability string

const (
	SkillsHigh   SkillsAvailability = "HIGH"
	SkillsMedium SkillsAvailability = "MEDIUM"
	SkillsLow    SkillsAvailability = "LOW"
)

// Option is a technology candidate from the fixed catalog.
// EcosystemScore and ComplianceFit are 0-100; CostTier runs 1 (cheap) to 5.
type Option struct {
	Name           string             `json:"name"`
	Category       Category           `json:"category"`
	EcosystemScore float64            `json:"ecosystem_score"`
	ComplianceFit  float64            `json:"compliance_fit"`
	CostTier       int                `json:"cost_tier"`
	Skills         SkillsAvailability `json:"skills"`
}

// catalog is the fixed set of technology options the recommender scores
var catalog = []Option{
	{Name: "React", Category: CategoryFrontend, EcosystemScore: 95, ComplianceFit: 70, CostTier: 1, Skills: SkillsHigh},
	{Name: "Angular", Category: CategoryFrontend, EcosystemScore: 85, ComplianceFit: 75, CostTier: 1, Skills: SkillsMedium},
	{Name: "Vue.js", Category: CategoryFrontend, EcosystemScore: 80, ComplianceFit: 65, CostTier: 1, Skills: SkillsMedium},

	{Name: "Go", Category: CategoryBackend, EcosystemScore: 88, ComplianceFit: 80, CostTier: 1, Skills: SkillsMedium},
	{Name: "Java Spring", Category: CategoryBackend, EcosystemScore: 92, ComplianceFit: 90, CostTier: 2, Skills: SkillsHigh},
	{Name: "Node.js", Category: CategoryBackend, EcosystemScore: 90, ComplianceFit: 70, CostTier: 1, Skills: SkillsHigh},
	{Name: ".NET", Category: CategoryBackend, EcosystemScore: 85, ComplianceFit: 88, CostTier: 3, Skills: SkillsMedium},

	{Name: "PostgreSQL", Category: CategoryData, EcosystemScore: 93, ComplianceFit: 85, CostTier: 1, Skills: SkillsHigh},
	{Name: "MongoDB", Category: CategoryData, EcosystemScore: 82, ComplianceFit: 70, CostTier: 2, Skills: SkillsHigh},
	{Name: "Oracle", Category: CategoryData, EcosystemScore: 75, ComplianceFit: 95, CostTier: 5, Skills: SkillsMedium},
	{Name: "Snowflake", Category: CategoryData, EcosystemScore: 85, ComplianceFit: 88, CostTier: 4, Skills: SkillsLow},

	{Name: "Kubernetes", Category: CategoryDevOps, EcosystemScore: 94, ComplianceFit: 80, CostTier: 3, Skills: SkillsMedium},
	{Name: "GitHub Actions", Category: CategoryDevOps, EcosystemScore: 88, ComplianceFit: 75, CostTier: 1, Skills: SkillsHigh},
	{Name: "Terraform", Category: CategoryDevOps, EcosystemScore: 90, ComplianceFit: 82, CostTier: 2, Skills: SkillsMedium},

	{Name: "Keycloak", Category: CategorySecurity, EcosystemScore: 78, ComplianceFit: 85, CostTier: 1, Skills: SkillsLow},
	{Name: "Okta", Category: CategorySecurity, EcosystemScore: 85, ComplianceFit: 92, CostTier: 4, Skills: SkillsMedium},
	{Name: "HashiCorp Vault", Category: CategorySecurity, EcosystemScore: 86, ComplianceFit: 90, CostTier: 3, Skills: SkillsLow},

	{Name: "Apache Kafka", Category: CategoryIntegration, EcosystemScore: 90, ComplianceFit: 80, CostTier: 3, Skills: SkillsMedium},
	{Name: "RabbitMQ", Category: CategoryIntegration, EcosystemScore: 82, ComplianceFit: 75, CostTier: 1, Skills: SkillsMedium},
	{Name: "MuleSoft", Category: CategoryIntegration, EcosystemScore: 72, ComplianceFit: 88, CostTier: 5, Skills: SkillsLow},
}

// CatalogOptions returns a copy of the fixed option catalog
func CatalogOptions() []Option {
	out := make([]Option, len(catalog))
	copy(out, catalog)
	return out
}
