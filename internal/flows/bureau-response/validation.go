package bureauresponse

import (
	"creditflow-engine/internal/common/validation"
	"creditflow-engine/internal/flows"
)

const Operation = "analyze-bureau-response"

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
		Required: []string{"responseLetterDataUri"},
		Properties: map[string]validation.Property{
			"responseLetterDataUri": {
				Type:        "string",
				Description: "Scanned bureau response letter as a data URI",
				Format:      "data-uri",
			},
			"bureauName": {
				Type:        "string",
				Description: "Which bureau sent the letter, when known",
				MaxLength:   intPtr(100),
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"outcome", "summary", "nextStep"},
		Properties: map[string]validation.Property{
			"outcome": {
				Type:        "string",
				Description: "The bureau's disposition of the dispute",
				Enum:        ValidOutcomes,
			},
			"summary": {
				Type:        "string",
				Description: "What the letter says, in plain language",
				MinLength:   intPtr(1),
			},
			"nextStep": {
				Type:        "string",
				Description: "The recommended next action for the client",
				MinLength:   intPtr(1),
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int { return &i }
