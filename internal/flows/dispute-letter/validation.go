package disputeletter

import (
	"creditflow-engine/internal/common/validation"
	"creditflow-engine/internal/flows"
)

const Operation = "generate-dispute-letter"

func GetContract() *flows.Contract {
	return &flows.Contract{
		Operation: Operation,
		Input:     GetInputSchema(),
		Output:    GetOutputSchema(),
	}
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"clientName", "clientEmail", "disputeReason", "creditReportDataUri"},
		Properties: map[string]validation.Property{
			"clientName": {
				Type:        "string",
				Description: "Full legal name of the client",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(200),
			},
			"clientEmail": {
				Type:        "string",
				Description: "Email address of the client",
				Format:      "email",
			},
			"clientAddress": {
				Type:        "string",
				Description: "Mailing address of the client",
				MaxLength:   intPtr(500),
			},
			"disputeReason": {
				Type:        "string",
				Description: "Why the client disputes the reported items",
				MinLength:   intPtr(3),
				MaxLength:   intPtr(2000),
			},
			"personalInfoText": {
				Type:        "string",
				Description: "Assembled personal information block for the letter header",
			},
			"creditReportDataUri": {
				Type:        "string",
				Description: "Uploaded credit report as a data URI",
				Format:      "data-uri",
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"equifaxLetter", "experianLetter", "transunionLetter"},
		Properties: map[string]validation.Property{
			"equifaxLetter": {
				Type:        "string",
				Description: "Dispute letter addressed to Equifax, empty if nothing to dispute",
			},
			"experianLetter": {
				Type:        "string",
				Description: "Dispute letter addressed to Experian, empty if nothing to dispute",
			},
			"transunionLetter": {
				Type:        "string",
				Description: "Dispute letter addressed to TransUnion, empty if nothing to dispute",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
