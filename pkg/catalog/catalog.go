// pkg/catalog/catalog.go
package catalog

import (
	bureauresponse "creditflow-engine/internal/flows/bureau-response"
	businessanalysis "creditflow-engine/internal/flows/business-analysis"
	creditanalysis "creditflow-engine/internal/flows/credit-analysis"
	disputeletter "creditflow-engine/internal/flows/dispute-letter"
	fundingpredict "creditflow-engine/internal/flows/funding-predict"
	sitechat "creditflow-engine/internal/flows/site-chat"
	tradelinestrategy "creditflow-engine/internal/flows/tradeline-strategy"
	vendorapply "creditflow-engine/internal/flows/vendor-apply"
)

const Version = "1.0"

var commonErrorCodes = []string{
	"VALIDATION_FAILED",
	"TEMPLATE_RENDER_FAILED",
	"GENERATION_FAILED",
	"OUTPUT_SCHEMA_MISMATCH",
}

// Build assembles the catalog from the flow packages' contracts.
func Build() *FlowCatalog {
	return &FlowCatalog{
		Version: Version,
		Operations: []Operation{
			{
				ID:           disputeletter.Operation,
				DisplayName:  "Generate Dispute Letters",
				Description:  "Produces FCRA dispute letters for each bureau from an uploaded credit report",
				Category:     "credit-repair",
				InputSchema:  disputeletter.GetInputSchema(),
				OutputSchema: disputeletter.GetOutputSchema(),
				ErrorCodes:   commonErrorCodes,
				Tags:         []string{"letters", "personal"},
			},
			{
				ID:           creditanalysis.Operation,
				DisplayName:  "Analyze Credit Profile",
				Description:  "Summarizes a personal credit report and lists concrete action items",
				Category:     "credit-repair",
				InputSchema:  creditanalysis.GetInputSchema(),
				OutputSchema: creditanalysis.GetOutputSchema(),
				ErrorCodes:   commonErrorCodes,
				Tags:         []string{"analysis", "personal"},
			},
			{
				ID:           businessanalysis.Operation,
				DisplayName:  "Analyze Business Credit",
				Description:  "Scores business fundability and extracts bureau scores when present",
				Category:     "business-funding",
				InputSchema:  businessanalysis.GetInputSchema(),
				OutputSchema: businessanalysis.GetOutputSchema(),
				ErrorCodes:   commonErrorCodes,
				Tags:         []string{"analysis", "business"},
			},
			{
				ID:           bureauresponse.Operation,
				DisplayName:  "Analyze Bureau Response",
				Description:  "Classifies a bureau's response letter and recommends the next step",
				Category:     "credit-repair",
				InputSchema:  bureauresponse.GetInputSchema(),
				OutputSchema: bureauresponse.GetOutputSchema(),
				ErrorCodes:   commonErrorCodes,
				Tags:         []string{"analysis", "personal"},
			},
			{
				ID:           tradelinestrategy.Operation,
				DisplayName:  "Generate Tradeline Strategy",
				Description:  "Recommends tradeline product categories matched to a credit summary",
				Category:     "credit-building",
				InputSchema:  tradelinestrategy.GetInputSchema(),
				OutputSchema: tradelinestrategy.GetOutputSchema(),
				ErrorCodes:   commonErrorCodes,
				Tags:         []string{"strategy"},
			},
			{
				ID:           fundingpredict.Operation,
				DisplayName:  "Predict Funding Approval",
				Description:  "Estimates approval likelihood across funding products for a business",
				Category:     "business-funding",
				InputSchema:  fundingpredict.GetInputSchema(),
				OutputSchema: fundingpredict.GetOutputSchema(),
				ErrorCodes:   commonErrorCodes,
				Tags:         []string{"prediction", "business"},
			},
			{
				ID:           vendorapply.Operation,
				DisplayName:  "Generate Vendor Application",
				Description:  "Drafts a net-30 vendor credit application and submits it",
				Category:     "credit-building",
				InputSchema:  vendorapply.GetInputSchema(),
				OutputSchema: vendorapply.GetOutputSchema(),
				ErrorCodes:   commonErrorCodes,
				Tags:         []string{"applications", "business"},
			},
			{
				ID:           sitechat.Operation,
				DisplayName:  "Site Chat",
				Description:  "Answers visitor questions from the embedded services knowledge base",
				Category:     "support",
				InputSchema:  sitechat.GetInputSchema(),
				OutputSchema: sitechat.GetOutputSchema(),
				ErrorCodes:   commonErrorCodes,
				Tags:         []string{"chat"},
			},
		},
	}
}

// Find returns the catalog entry for an operation id, or nil.
func (c *FlowCatalog) Find(id string) *Operation {
	for i := range c.Operations {
		if c.Operations[i].ID == id {
			return &c.Operations[i]
		}
	}
	return nil
}
