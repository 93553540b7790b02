package models

// PersonalAnalysis is the analysis payload attached to a successful
// personal onboarding.
type PersonalAnalysis struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"actionItems"`
}

// BusinessAnalysis is the fundability report attached to a successful
// business onboarding. Bureau scores stay nil when the report carries no
// recognizable score fields.
type BusinessAnalysis struct {
	FundabilityScore float64  `json:"fundabilityScore"`
	Grade            string   `json:"grade"`
	RiskFactors      []string `json:"riskFactors"`
	ActionPlan       []string `json:"actionPlan"`
	DNBScore         *float64 `json:"dnbScore,omitempty"`
	ExperianScore    *float64 `json:"experianScore,omitempty"`
	EquifaxScore     *float64 `json:"equifaxScore,omitempty"`
}

// OnboardingResult is produced once per onboarding call and returned to
// the caller; it is not persisted by the orchestrator itself.
type OnboardingResult struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	GeneratedLetter  string            `json:"generatedLetter,omitempty"`
	Analysis         *PersonalAnalysis `json:"analysis,omitempty"`
	BusinessAnalysis *BusinessAnalysis `json:"businessAnalysis,omitempty"`
	ClientID         string            `json:"clientId,omitempty"`
}
