package onboarding

// ClientInput is one personal-client signup request.
type ClientInput struct {
	ClientName          string `json:"clientName"`
	ClientEmail         string `json:"clientEmail"`
	ClientPhone         string `json:"clientPhone,omitempty"`
	ClientAddress       string `json:"clientAddress,omitempty"`
	DisputeReason       string `json:"disputeReason"`
	PersonalInfoText    string `json:"personalInfoText,omitempty"`
	CreditReportDataURI string `json:"creditReportDataUri"`
	AffiliateID         string `json:"affiliateId,omitempty"`
	ReferralSource      string `json:"referralSource,omitempty"`
}

// BusinessInput is one business-client signup request.
type BusinessInput struct {
	BusinessName   string `json:"businessName"`
	ContactName    string `json:"contactName"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone,omitempty"`
	State          string `json:"state,omitempty"`
	ReportDataURI  string `json:"reportDataUri"`
	AffiliateID    string `json:"affiliateId,omitempty"`
	ReferralSource string `json:"referralSource,omitempty"`
}
