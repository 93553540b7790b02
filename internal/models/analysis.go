package models

import (
	"encoding/json"
	"time"
)

// AnalysisType tags a saved analysis payload.
type AnalysisType string

const (
	AnalysisTypePersonalCredit AnalysisType = "personal_credit"
	AnalysisTypeBusinessCredit AnalysisType = "business_credit"
	AnalysisTypeBureauResponse AnalysisType = "bureau_response"
)

// AnalysisRecord is one persisted analysis result for a client.
type AnalysisRecord struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"clientId"`
	Type      AnalysisType    `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}
