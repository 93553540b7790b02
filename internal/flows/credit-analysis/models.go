package creditanalysis

type Input struct {
	CreditReportDataURI string `json:"creditReportDataUri"`
}

type Output struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"actionItems"`
}
