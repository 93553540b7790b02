// pkg/catalog/schema.go
package catalog

import "creditflow-engine/internal/common/validation"

// FlowCatalog describes every AI flow operation the engine serves. It is
// built from the flow packages at startup and exposed over the API for
// tooling and the dashboard.
type FlowCatalog struct {
	Version    string      `json:"version"`
	Operations []Operation `json:"operations"`
}

// Operation is one catalog entry: the operation id, its contract, and the
// error codes a caller can expect.
type Operation struct {
	ID           string                `json:"id"`
	DisplayName  string                `json:"displayName"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	InputSchema  validation.JSONSchema `json:"inputSchema"`
	OutputSchema validation.JSONSchema `json:"outputSchema"`
	ErrorCodes   []string              `json:"errorCodes"`
	Tags         []string              `json:"tags"`
}
