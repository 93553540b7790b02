package businessanalysis

type Input struct {
	BusinessName  string `json:"businessName"`
	State         string `json:"state,omitempty"`
	ReportDataURI string `json:"reportDataUri"`
}

// Output is the fundability report. Bureau scores are nil when the
// attached report carries no recognizable score fields; in that case
// RiskFactors must name the missing score.
type Output struct {
	FundabilityScore float64  `json:"fundabilityScore"`
	Grade            string   `json:"grade"`
	RiskFactors      []string `json:"riskFactors"`
	ActionPlan       []string `json:"actionPlan"`
	DNBScore         *float64 `json:"dnbScore"`
	ExperianScore    *float64 `json:"experianScore"`
	EquifaxScore     *float64 `json:"equifaxScore"`
}
