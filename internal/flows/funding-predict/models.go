package fundingpredict

type Input struct {
	BusinessName    string  `json:"businessName"`
	Industry        string  `json:"industry,omitempty"`
	MonthlyRevenue  float64 `json:"monthlyRevenue,omitempty"`
	YearsInBusiness float64 `json:"yearsInBusiness,omitempty"`
	CreditScore     float64 `json:"creditScore,omitempty"`
}

type Prediction struct {
	Product            string  `json:"product"`
	Lender             string  `json:"lender"`
	AmountRange        string  `json:"amountRange"`
	ApprovalLikelihood float64 `json:"approvalLikelihood"`
	Reasoning          string  `json:"reasoning"`
}

type Output struct {
	Predictions []Prediction `json:"predictions"`
}
