package tradelinestrategy

import (
	"creditflow-engine/internal/common/validation"
	"creditflow-engine/internal/flows"
)

const Operation = "generate-tradeline-strategy"

func GetContract() *flows.Contract {
	return &flows.Contract{
		Operation: Operation,
		Input:     GetInputSchema(),
		Output:    GetOutputSchema(),
	}
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"creditSummary": {
				Type:        "string",
				Description: "Summary of the client's current credit profile",
				MaxLength:   intPtr(5000),
			},
			"isBusiness": {
				Type:        "boolean",
				Description: "Whether the strategy is for a business client",
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"categories"},
		Properties: map[string]validation.Property{
			"categories": {
				Type:        "array",
				Description: "Tradeline product recommendations grouped by category",
				MinItems:    intPtr(1),
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"category", "businessOnly", "products"},
					Properties: map[string]validation.Property{
						"category": {
							Type:        "string",
							Description: "Category name, e.g. Secured Credit Cards",
						},
						"businessOnly": {
							Type:        "boolean",
							Description: "True when the category only applies to business credit",
						},
						"products": {
							Type:        "array",
							Description: "Recommended products in this category",
							MinItems:    intPtr(1),
							Items: &validation.Property{
								Type:     "object",
								Required: []string{"name"},
								Properties: map[string]validation.Property{
									"name":        {Type: "string"},
									"description": {Type: "string"},
								},
							},
						},
					},
				},
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int { return &i }
