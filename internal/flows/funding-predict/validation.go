package fundingpredict

import (
	"creditflow-engine/internal/common/validation"
	"creditflow-engine/internal/flows"
)

const Operation = "predict-funding-approval"

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
		Required: []string{"businessName"},
		Properties: map[string]validation.Property{
			"businessName": {
				Type:        "string",
				Description: "Legal name of the business",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(300),
			},
			"industry": {
				Type:        "string",
				Description: "Primary industry of the business",
				MaxLength:   intPtr(200),
			},
			"monthlyRevenue": {
				Type:        "number",
				Description: "Average monthly revenue in USD",
				Minimum:     floatPtr(0),
			},
			"yearsInBusiness": {
				Type:        "number",
				Description: "Years since the entity was formed",
				Minimum:     floatPtr(0),
			},
			"creditScore": {
				Type:        "number",
				Description: "Owner's personal FICO score",
				Minimum:     floatPtr(300),
				Maximum:     floatPtr(850),
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"predictions"},
		Properties: map[string]validation.Property{
			"predictions": {
				Type:        "array",
				Description: "Funding products ranked by approval likelihood",
				MinItems:    intPtr(2),
				MaxItems:    intPtr(4),
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"product", "lender", "amountRange", "approvalLikelihood", "reasoning"},
					Properties: map[string]validation.Property{
						"product": {
							Type:        "string",
							Description: "Funding product type, e.g. term loan, line of credit",
						},
						"lender": {
							Type:        "string",
							Description: "Representative lender for this product",
						},
						"amountRange": {
							Type:        "string",
							Description: "Expected approval amount range",
						},
						"approvalLikelihood": {
							Type:        "number",
							Description: "Approval likelihood as a percentage",
							Minimum:     floatPtr(0),
							Maximum:     floatPtr(100),
						},
						"reasoning": {
							Type:        "string",
							Description: "Why this likelihood was assigned",
						},
					},
				},
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
