// internal/common/auth/keycloak.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"creditflow-engine/internal/common/errors"
)

// KeycloakClient provides the identity-provider operations the activation
// flow needs: creating an authentication identity and looking up existing
// ones for duplicate-email handling.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	accessToken  string
	tokenExpiry  time.Time
}

// User represents an identity in Keycloak.
type User struct {
	ID            string `json:"id,omitempty"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Username      string `json:"username"`
	Enabled       bool   `json:"enabled"`
	EmailVerified bool   `json:"emailVerified"`
}

type credential struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// TokenResponse holds the response from Keycloak's token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// NewKeycloakClient creates a new instance of KeycloakClient.
func NewKeycloakClient(baseURL, realm, clientID, clientSecret string) *KeycloakClient {
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// getAccessToken fetches a new access token using the client credentials
// flow. It caches the token until expiry.
func (k *KeycloakClient) getAccessToken(ctx context.Context) error {
	if k.tokenExpiry.After(time.Now()) && k.accessToken != "" {
		return nil
	}

	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", k.baseURL, k.realm)

	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", k.clientID)
	data.Set("client_secret", k.clientSecret)

	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("keycloak token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	k.accessToken = tokenResp.AccessToken
	k.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return nil
}

// CreateUserWithPassword creates an enabled identity with the given
// password. Keycloak answers 409 when the email is already registered,
// which surfaces as a DUPLICATE_IDENTITY error.
func (k *KeycloakClient) CreateUserWithPassword(ctx context.Context, user *User, password string) (*User, error) {
	if err := k.getAccessToken(ctx); err != nil {
		return nil, errors.NewIdentityProviderError(err)
	}

	if user.Username == "" {
		user.Username = user.Email
	}
	user.Enabled = true

	payload := struct {
		User
		Credentials []credential `json:"credentials"`
	}{
		User: *user,
		Credentials: []credential{{
			Type:      "password",
			Value:     password,
			Temporary: false,
		}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewIdentityProviderError(err)
	}

	userURL := fmt.Sprintf("%s/admin/realms/%s/users", k.baseURL, k.realm)
	req, err := http.NewRequestWithContext(ctx, "POST", userURL, strings.NewReader(string(jsonData)))
	if err != nil {
		return nil, errors.NewIdentityProviderError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+k.accessToken)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewIdentityProviderError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return nil, &errors.StandardError{
			Code:      errors.ErrCodeDuplicateIdentity,
			Message:   "an identity with this email already exists",
			Details:   user.Email,
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.NewIdentityProviderError(
			fmt.Errorf("create user failed with status %d: %s", resp.StatusCode, string(body)))
	}

	// Keycloak returns the new user's location, not a body.
	location := resp.Header.Get("Location")
	if idx := strings.LastIndex(location, "/"); idx >= 0 {
		user.ID = location[idx+1:]
	}
	return user, nil
}

// GetUserByEmail looks up an identity by exact email. Returns nil when no
// identity matches.
func (k *KeycloakClient) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if err := k.getAccessToken(ctx); err != nil {
		return nil, errors.NewIdentityProviderError(err)
	}

	searchURL := fmt.Sprintf("%s/admin/realms/%s/users?email=%s&exact=true", k.baseURL, k.realm, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, errors.NewIdentityProviderError(err)
	}
	req.Header.Set("Authorization", "Bearer "+k.accessToken)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewIdentityProviderError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.NewIdentityProviderError(
			fmt.Errorf("user search failed with status %d: %s", resp.StatusCode, string(body)))
	}

	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, errors.NewIdentityProviderError(err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}
