package creditanalysis

import (
	"creditflow-engine/internal/common/validation"
	"creditflow-engine/internal/flows"
)

const Operation = "analyze-credit-profile"

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
		Required: []string{"creditReportDataUri"},
		Properties: map[string]validation.Property{
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
		Required: []string{"summary", "actionItems"},
		Properties: map[string]validation.Property{
			"summary": {
				Type:        "string",
				Description: "Plain-language summary of the client's credit profile",
				MinLength:   intPtr(1),
			},
			"actionItems": {
				Type:        "array",
				Description: "Ordered, concrete steps the client should take next",
				MinItems:    intPtr(1),
				Items: &validation.Property{
					Type: "string",
				},
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
