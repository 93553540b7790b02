package vendorapply

type Input struct {
	BusinessName    string `json:"businessName"`
	VendorName      string `json:"vendorName"`
	ContactName     string `json:"contactName"`
	ContactEmail    string `json:"contactEmail"`
	BusinessAddress string `json:"businessAddress,omitempty"`
	EIN             string `json:"ein,omitempty"`
}

type Output struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ApplicationText string `json:"applicationText"`
}

// SubmissionReceipt confirms the (simulated) delivery of a generated
// application to the vendor.
type SubmissionReceipt struct {
	ConfirmationID string `json:"confirmationId"`
	Channel        string `json:"channel"`
}
