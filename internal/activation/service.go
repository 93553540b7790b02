package activation

import (
	"context"

	"creditflow-engine/internal/common/auth"
	"creditflow-engine/internal/common/errors"
	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/store"
)

// IdentityProvider is the slice of the identity service the activation
// flow needs.
type IdentityProvider interface {
	CreateUserWithPassword(ctx context.Context, user *auth.User, password string) (*auth.User, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.User, error)
}

// Result is returned to the caller after a successful activation.
type Result struct {
	ClientID   string `json:"clientId"`
	IdentityID string `json:"identityId"`
	Email      string `json:"email"`
}

// Service exchanges an activation token plus a chosen password for a live
// identity linked to the client record.
type Service struct {
	tokens   *TokenStore
	identity IdentityProvider
	store    store.ClientStore
	logger   logger.Logger
}

func NewService(tokens *TokenStore, identity IdentityProvider, clientStore store.ClientStore, log logger.Logger) *Service {
	return &Service{
		tokens:   tokens,
		identity: identity,
		store:    clientStore,
		logger:   log.With(map[string]interface{}{"component": "activation"}),
	}
}

// Activate resolves the token, creates (or reuses) the identity, links it
// to the client record, and invalidates the token. The token survives an
// identity-provider failure so the user can retry.
func (s *Service) Activate(ctx context.Context, token, password string) (*Result, error) {
	clientID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	client, err := s.store.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.NewClientNotFoundError(clientID)
	}

	identity, err := s.identity.CreateUserWithPassword(ctx, &auth.User{
		Email:     client.Email,
		FirstName: client.FirstName,
		LastName:  client.LastName,
	}, password)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeDuplicateIdentity) {
			existing, lookupErr := s.identity.GetUserByEmail(ctx, client.Email)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing == nil {
				return nil, err
			}
			identity = existing
			s.logger.Info("reusing existing identity", map[string]interface{}{
				"clientId": clientID,
				"email":    client.Email,
			})
		} else {
			return nil, err
		}
	}

	if err := s.store.LinkIdentity(ctx, clientID, identity.ID); err != nil {
		return nil, err
	}

	if err := s.tokens.Invalidate(ctx, token); err != nil {
		s.logger.Warn("failed to invalidate activation token", map[string]interface{}{
			"clientId": clientID,
			"error":    err.Error(),
		})
	}

	s.logger.Info("account activated", map[string]interface{}{
		"clientId":   clientID,
		"identityId": identity.ID,
	})

	return &Result{
		ClientID:   clientID,
		IdentityID: identity.ID,
		Email:      client.Email,
	}, nil
}
