package activation

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"creditflow-engine/internal/common/auth"
	"creditflow-engine/internal/common/database"
	"creditflow-engine/internal/common/errors"
	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/models"
)

// ==========================
// Mock Collaborators
// ==========================

type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) CreateUserWithPassword(ctx context.Context, user *auth.User, password string) (*auth.User, error) {
	args := m.Called(ctx, user, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockIdentity) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateClient(ctx context.Context, client *models.ClientRecord) (string, error) {
	args := m.Called(ctx, client)
	return args.String(0), args.Error(1)
}

func (m *MockStore) FindClientByEmail(ctx context.Context, email string) (*models.ClientRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientRecord), args.Error(1)
}

func (m *MockStore) FindClientByID(ctx context.Context, id string) (*models.ClientRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientRecord), args.Error(1)
}

func (m *MockStore) SaveAnalysis(ctx context.Context, clientID string, analysisType models.AnalysisType, payload interface{}) (string, error) {
	args := m.Called(ctx, clientID, analysisType, payload)
	return args.String(0), args.Error(1)
}

func (m *MockStore) LatestAnalysisForClient(ctx context.Context, clientID string, analysisType models.AnalysisType) (*models.AnalysisRecord, error) {
	args := m.Called(ctx, clientID, analysisType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisRecord), args.Error(1)
}

func (m *MockStore) LinkIdentity(ctx context.Context, clientID, identityID string) error {
	args := m.Called(ctx, clientID, identityID)
	return args.Error(0)
}

func (m *MockStore) UnlockTool(ctx context.Context, clientID, tool string) error {
	args := m.Called(ctx, clientID, tool)
	return args.Error(0)
}

// ==========================
// Test Helpers
// ==========================

func newTestTokenStore(t *testing.T, ttl time.Duration) (*TokenStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	return NewTokenStore(client, ttl), mr
}

func clientRecord() *models.ClientRecord {
	return &models.ClientRecord{
		ID:        "client-1",
		Email:     "jane@x.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Type:      models.ClientTypePersonal,
	}
}

// ==========================
// Token Store
// ==========================

func TestTokenStore_IssueAndResolve(t *testing.T) {
	tokens, _ := newTestTokenStore(t, 48*time.Hour)
	ctx := context.Background()

	token, err := tokens.Issue(ctx, "client-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	clientID, err := tokens.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "client-1", clientID)
}

func TestTokenStore_UnknownToken(t *testing.T) {
	tokens, _ := newTestTokenStore(t, 48*time.Hour)

	_, err := tokens.Resolve(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTokenNotFound))
}

func TestTokenStore_ExpiredToken(t *testing.T) {
	tokens, mr := newTestTokenStore(t, 48*time.Hour)
	ctx := context.Background()

	// Write a record whose logical expiry is already in the past while the
	// key itself is still retained.
	record, _ := json.Marshal(tokenRecord{
		ClientID:  "client-1",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	})
	mr.Set(tokenPrefix+"stale", string(record))

	_, err := tokens.Resolve(ctx, "stale")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTokenExpired))
}

func TestTokenStore_InvalidateRemovesToken(t *testing.T) {
	tokens, _ := newTestTokenStore(t, 48*time.Hour)
	ctx := context.Background()

	token, err := tokens.Issue(ctx, "client-1")
	require.NoError(t, err)
	require.NoError(t, tokens.Invalidate(ctx, token))

	_, err = tokens.Resolve(ctx, token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTokenNotFound))
}

// ==========================
// Activation Service
// ==========================

func TestActivate_Success(t *testing.T) {
	tokens, _ := newTestTokenStore(t, 48*time.Hour)
	identity := &MockIdentity{}
	clientStore := &MockStore{}
	service := NewService(tokens, identity, clientStore, logger.NewTestLogger(t))
	ctx := context.Background()

	token, err := tokens.Issue(ctx, "client-1")
	require.NoError(t, err)

	clientStore.On("FindClientByID", mock.Anything, "client-1").Return(clientRecord(), nil)
	identity.On("CreateUserWithPassword", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
		return u.Email == "jane@x.com" && u.FirstName == "Jane"
	}), "s3cret!").Return(&auth.User{ID: "kc-9", Email: "jane@x.com"}, nil)
	clientStore.On("LinkIdentity", mock.Anything, "client-1", "kc-9").Return(nil)

	result, err := service.Activate(ctx, token, "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "client-1", result.ClientID)
	assert.Equal(t, "kc-9", result.IdentityID)

	// The token is single-use.
	_, err = tokens.Resolve(ctx, token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTokenNotFound))
}

func TestActivate_UnknownToken(t *testing.T) {
	tokens, _ := newTestTokenStore(t, 48*time.Hour)
	service := NewService(tokens, &MockIdentity{}, &MockStore{}, logger.NewTestLogger(t))

	_, err := service.Activate(context.Background(), "bogus", "pw")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTokenNotFound))
}

func TestActivate_DuplicateIdentityIsReused(t *testing.T) {
	tokens, _ := newTestTokenStore(t, 48*time.Hour)
	identity := &MockIdentity{}
	clientStore := &MockStore{}
	service := NewService(tokens, identity, clientStore, logger.NewTestLogger(t))
	ctx := context.Background()

	token, err := tokens.Issue(ctx, "client-1")
	require.NoError(t, err)

	clientStore.On("FindClientByID", mock.Anything, "client-1").Return(clientRecord(), nil)
	identity.On("CreateUserWithPassword", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &errors.StandardError{Code: errors.ErrCodeDuplicateIdentity, Message: "exists"})
	identity.On("GetUserByEmail", mock.Anything, "jane@x.com").
		Return(&auth.User{ID: "kc-existing", Email: "jane@x.com"}, nil)
	clientStore.On("LinkIdentity", mock.Anything, "client-1", "kc-existing").Return(nil)

	result, err := service.Activate(ctx, token, "pw")
	require.NoError(t, err)
	assert.Equal(t, "kc-existing", result.IdentityID)
}

func TestActivate_IdentityFailureKeepsToken(t *testing.T) {
	tokens, _ := newTestTokenStore(t, 48*time.Hour)
	identity := &MockIdentity{}
	clientStore := &MockStore{}
	service := NewService(tokens, identity, clientStore, logger.NewTestLogger(t))
	ctx := context.Background()

	token, err := tokens.Issue(ctx, "client-1")
	require.NoError(t, err)

	clientStore.On("FindClientByID", mock.Anything, "client-1").Return(clientRecord(), nil)
	identity.On("CreateUserWithPassword", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.NewIdentityProviderError(assert.AnError))

	_, err = service.Activate(ctx, token, "pw")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIdentityFailed))

	// A failed activation leaves the token usable for a retry.
	clientID, err := tokens.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "client-1", clientID)
}
