package sitechat

import (
	"creditflow-engine/internal/common/validation"
	"creditflow-engine/internal/flows"
)

const Operation = "site-chat"

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
		Required: []string{"question"},
		Properties: map[string]validation.Property{
			"question": {
				Type:        "string",
				Description: "The visitor's question",
				MinLength:   intPtr(3),
				MaxLength:   intPtr(2000),
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"answer"},
		Properties: map[string]validation.Property{
			"answer": {
				Type:        "string",
				Description: "The answer, grounded in the service knowledge base",
				MinLength:   intPtr(1),
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int { return &i }
