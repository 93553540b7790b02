package disputeletter

import "strings"

type Input struct {
	ClientName          string `json:"clientName"`
	ClientEmail         string `json:"clientEmail"`
	ClientAddress       string `json:"clientAddress,omitempty"`
	DisputeReason       string `json:"disputeReason"`
	PersonalInfoText    string `json:"personalInfoText,omitempty"`
	CreditReportDataURI string `json:"creditReportDataUri"`
}

// Output carries one letter per bureau. A bureau with nothing to dispute
// comes back as an empty string; callers treat all-empty as failure.
type Output struct {
	EquifaxLetter    string `json:"equifaxLetter"`
	ExperianLetter   string `json:"experianLetter"`
	TransunionLetter string `json:"transunionLetter"`
}

// FirstNonEmpty returns the first populated bureau letter, or "" when the
// generation produced nothing usable.
func (o *Output) FirstNonEmpty() string {
	for _, letter := range []string{o.EquifaxLetter, o.ExperianLetter, o.TransunionLetter} {
		if strings.TrimSpace(letter) != "" {
			return letter
		}
	}
	return ""
}
