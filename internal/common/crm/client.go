// Package crm talks to the CRM's workflow-enrollment API. The orchestrator
// treats enrollment as fire-and-forget: results are logged by callers but
// never alter the caller's own outcome.
package crm

import (
	"context"
	"fmt"
	"time"

	commonhttp "creditflow-engine/internal/common/http"
)

type Client struct {
	baseURL    string
	apiKey     string
	oauthToken string
	httpClient *commonhttp.Client
}

// Contact is the fixed input shape for one workflow enrollment.
type Contact struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

// EnrollmentResult is the success/failure envelope returned by the CRM.
type EnrollmentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewClient(baseURL, apiKey, oauthToken string) *Client {
	if baseURL == "" {
		baseURL = "https://services.leadconnectorhq.com"
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		oauthToken: oauthToken,
		httpClient: commonhttp.NewClient(30 * time.Second),
	}
}

// AddToWorkflow enrolls one contact into the named workflow.
func (c *Client) AddToWorkflow(ctx context.Context, workflowID string, contact *Contact) (*EnrollmentResult, error) {
	if workflowID == "" {
		return nil, fmt.Errorf("workflow id is required")
	}
	if contact == nil || contact.Email == "" {
		return nil, fmt.Errorf("contact email is required")
	}

	url := fmt.Sprintf("%s/workflows/%s/enroll", c.baseURL, workflowID)
	headers := map[string]string{
		"Authorization": "Bearer " + c.oauthToken,
	}
	if c.apiKey != "" {
		headers["X-Api-Key"] = c.apiKey
	}

	var result EnrollmentResult
	if err := c.httpClient.PostJSON(ctx, url, headers, map[string]interface{}{
		"contact": contact,
	}, &result); err != nil {
		return nil, fmt.Errorf("enroll contact in workflow %s: %w", workflowID, err)
	}

	return &result, nil
}
