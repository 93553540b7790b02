package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"creditflow-engine/internal/common/errors"
	"creditflow-engine/internal/models"
)

// PostgresStore implements ClientStore on a *sql.DB.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const clientColumns = `id, email, first_name, last_name, phone, client_type, affiliate_id, identity_id, unlocked_tools, created_at, updated_at`

// CreateClient inserts a new client record and returns its id. Email
// uniqueness is enforced by the schema; a duplicate surfaces as
// DUPLICATE_CLIENT.
func (s *PostgresStore) CreateClient(ctx context.Context, client *models.ClientRecord) (string, error) {
	id := client.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (id, email, first_name, last_name, phone, client_type, affiliate_id, identity_id, unlocked_tools, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		id, client.Email, client.FirstName, client.LastName, client.Phone,
		string(client.Type), client.AffiliateID, client.IdentityID,
		pq.Array(client.UnlockedTools), now,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return "", &errors.StandardError{
				Code:      errors.ErrCodeDuplicateClient,
				Message:   "a client with this email already exists",
				Details:   client.Email,
				Retryable: false,
				Timestamp: time.Now().UTC(),
			}
		}
		return "", errors.NewDatabaseError("create client", err)
	}
	return id, nil
}

// FindClientByEmail returns the client with this email, or nil when none
// exists.
func (s *PostgresStore) FindClientByEmail(ctx context.Context, email string) (*models.ClientRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE email = $1`, email)
	return scanClient(row)
}

// FindClientByID returns the client with this id, or nil when none exists.
func (s *PostgresStore) FindClientByID(ctx context.Context, id string) (*models.ClientRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	return scanClient(row)
}

func scanClient(row *sql.Row) (*models.ClientRecord, error) {
	var c models.ClientRecord
	var clientType string
	var tools pq.StringArray
	err := row.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Phone,
		&clientType, &c.AffiliateID, &c.IdentityID, &tools, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewDatabaseError("find client", err)
	}
	c.Type = models.ClientType(clientType)
	c.UnlockedTools = tools
	return &c, nil
}

// SaveAnalysis stores one analysis payload for a client and returns the
// analysis id.
func (s *PostgresStore) SaveAnalysis(ctx context.Context, clientID string, analysisType models.AnalysisType, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.NewDatabaseError("marshal analysis", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, client_id, analysis_type, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, clientID, string(analysisType), data, time.Now().UTC(),
	)
	if err != nil {
		return "", errors.NewDatabaseError("save analysis", err)
	}
	return id, nil
}

// LatestAnalysisForClient returns the most recent analysis of the given
// type, or nil when the client has none.
func (s *PostgresStore) LatestAnalysisForClient(ctx context.Context, clientID string, analysisType models.AnalysisType) (*models.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, client_id, analysis_type, payload, created_at
		 FROM analyses WHERE client_id = $1 AND analysis_type = $2
		 ORDER BY created_at DESC LIMIT 1`,
		clientID, string(analysisType),
	)

	var rec models.AnalysisRecord
	var analysisTypeStr string
	err := row.Scan(&rec.ID, &rec.ClientID, &analysisTypeStr, &rec.Payload, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewDatabaseError("latest analysis", err)
	}
	rec.Type = models.AnalysisType(analysisTypeStr)
	return &rec, nil
}

// LinkIdentity attaches an authentication identity to the client record.
func (s *PostgresStore) LinkIdentity(ctx context.Context, clientID, identityID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE clients SET identity_id = $1, updated_at = $2 WHERE id = $3`,
		identityID, time.Now().UTC(), clientID,
	)
	if err != nil {
		return errors.NewDatabaseError("link identity", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NewClientNotFoundError(clientID)
	}
	return nil
}

// UnlockTool adds a tool to the client's unlocked set. Adding a tool the
// client already has is a no-op.
func (s *PostgresStore) UnlockTool(ctx context.Context, clientID, tool string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE clients
		 SET unlocked_tools = array_append(unlocked_tools, $1), updated_at = $2
		 WHERE id = $3 AND NOT ($1 = ANY(unlocked_tools))`,
		tool, time.Now().UTC(), clientID,
	)
	if err != nil {
		return errors.NewDatabaseError("unlock tool", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		// Either the client does not exist or the tool was already
		// unlocked; distinguish for the caller.
		existing, ferr := s.FindClientByID(ctx, clientID)
		if ferr != nil {
			return ferr
		}
		if existing == nil {
			return errors.NewClientNotFoundError(clientID)
		}
	}
	return nil
}
