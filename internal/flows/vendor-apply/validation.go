package vendorapply

import (
	"creditflow-engine/internal/common/validation"
	"creditflow-engine/internal/flows"
)

const Operation = "generate-vendor-application"

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
		Required: []string{"businessName", "vendorName", "contactName", "contactEmail"},
		Properties: map[string]validation.Property{
			"businessName": {
				Type:        "string",
				Description: "Legal name of the applying business",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(300),
			},
			"vendorName": {
				Type:        "string",
				Description: "Vendor the application is addressed to",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(200),
			},
			"contactName": {
				Type:        "string",
				Description: "Name of the business contact",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(200),
			},
			"contactEmail": {
				Type:        "string",
				Description: "Email of the business contact",
				Format:      "email",
			},
			"businessAddress": {
				Type:        "string",
				Description: "Registered business address",
				MaxLength:   intPtr(500),
			},
			"ein": {
				Type:        "string",
				Description: "Federal employer identification number",
				Pattern:     strPtr(`^\d{2}-?\d{7}$`),
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"success", "message", "applicationText"},
		Properties: map[string]validation.Property{
			"success": {
				Type:        "boolean",
				Description: "Whether a complete application could be generated",
			},
			"message": {
				Type:        "string",
				Description: "Human-readable result message",
			},
			"applicationText": {
				Type:        "string",
				Description: "The formatted vendor credit application",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
