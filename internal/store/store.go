// Package store implements the client/document persistence boundary on
// PostgreSQL. The flow engine never touches it; the orchestrator,
// activation, and payment flows do.
package store

import (
	"context"

	"creditflow-engine/internal/models"
)

// ClientStore is the persistence boundary consumed by the orchestrator
// and the activation and payment flows.
type ClientStore interface {
	CreateClient(ctx context.Context, client *models.ClientRecord) (string, error)
	FindClientByEmail(ctx context.Context, email string) (*models.ClientRecord, error)
	FindClientByID(ctx context.Context, id string) (*models.ClientRecord, error)
	SaveAnalysis(ctx context.Context, clientID string, analysisType models.AnalysisType, payload interface{}) (string, error)
	LatestAnalysisForClient(ctx context.Context, clientID string, analysisType models.AnalysisType) (*models.AnalysisRecord, error)
	LinkIdentity(ctx context.Context, clientID, identityID string) error
	UnlockTool(ctx context.Context, clientID, tool string) error
}
