package businessanalysis

import (
	"creditflow-engine/internal/common/validation"
	"creditflow-engine/internal/flows"
)

const Operation = "analyze-business-credit"

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
		Required: []string{"businessName", "reportDataUri"},
		Properties: map[string]validation.Property{
			"businessName": {
				Type:        "string",
				Description: "Legal name of the business",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(300),
			},
			"state": {
				Type:        "string",
				Description: "Two-letter state of registration",
				MinLength:   intPtr(2),
				MaxLength:   intPtr(2),
			},
			"reportDataUri": {
				Type:        "string",
				Description: "Uploaded business credit report as a data URI",
				Format:      "data-uri",
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"fundabilityScore", "grade", "riskFactors", "actionPlan", "dnbScore", "experianScore", "equifaxScore"},
		Properties: map[string]validation.Property{
			"fundabilityScore": {
				Type:        "number",
				Description: "Overall fundability score",
				Minimum:     floatPtr(0),
				Maximum:     floatPtr(100),
			},
			"grade": {
				Type:        "string",
				Description: "Letter grade summarizing fundability",
				Enum:        []string{"A", "B", "C", "D", "F"},
				MinLength:   intPtr(1),
				MaxLength:   intPtr(1),
			},
			"riskFactors": {
				Type:        "array",
				Description: "Factors holding the business back from funding",
				Items:       &validation.Property{Type: "string"},
			},
			"actionPlan": {
				Type:        "array",
				Description: "Concrete steps to raise fundability",
				MinItems:    intPtr(3),
				MaxItems:    intPtr(5),
				Items:       &validation.Property{Type: "string"},
			},
			"dnbScore": {
				Type:        "number",
				Description: "D&B PAYDEX score from the report, null when absent",
				Minimum:     floatPtr(0),
				Maximum:     floatPtr(100),
				Nullable:    true,
			},
			"experianScore": {
				Type:        "number",
				Description: "Experian Intelliscore from the report, null when absent",
				Minimum:     floatPtr(0),
				Maximum:     floatPtr(100),
				Nullable:    true,
			},
			"equifaxScore": {
				Type:        "number",
				Description: "Equifax Business score from the report, null when absent",
				Minimum:     floatPtr(0),
				Maximum:     floatPtr(100),
				Nullable:    true,
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
