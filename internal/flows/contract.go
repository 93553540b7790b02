// Package flows implements the structured-prompt flow engine: operation
// contracts, prompt templates, and the invoker that executes one
// schema-validated request against the generative-AI backend.
package flows

import (
	"creditflow-engine/internal/common/validation"
)

// Contract identifies one named AI operation together with its input and
// output shapes. Every field in the output shape must be present and
// type-conformant in any accepted response; partial results are not valid.
type Contract struct {
	Operation string
	Input     validation.JSONSchema
	Output    validation.JSONSchema
}

// ValidateInput checks a candidate input object against the contract.
func (c *Contract) ValidateInput(input map[string]interface{}) *validation.ValidationResult {
	return validation.ValidateInput(input, c.Input)
}

// ValidateOutput checks an object parsed from the backend response against
// the contract's output shape.
func (c *Contract) ValidateOutput(output map[string]interface{}) *validation.ValidationResult {
	return validation.ValidateOutput(output, c.Output)
}
