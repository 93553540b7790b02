// Package payments creates checkout sessions and processes the payment
// provider's webhooks. Webhook bodies are authenticated with an HMAC
// signature and validated against a JSON schema before any state changes.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"creditflow-engine/internal/common/config"
	"creditflow-engine/internal/common/errors"
	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/common/metrics"
	"creditflow-engine/internal/store"
)

// webhookSchema is the shape every incoming webhook body must satisfy
// before the event is dispatched.
const webhookSchema = `{
	"type": "object",
	"required": ["type", "data"],
	"properties": {
		"type": {"type": "string", "minLength": 1},
		"data": {
			"type": "object",
			"required": ["sessionId", "clientId", "productType"],
			"properties": {
				"sessionId": {"type": "string", "minLength": 1},
				"clientId": {"type": "string", "minLength": 1},
				"productType": {"type": "string", "minLength": 1}
			}
		}
	}
}`

const eventCheckoutCompleted = "checkout.session.completed"

type Service struct {
	cfg    config.PaymentsConfig
	store  store.ClientStore
	logger logger.Logger
	schema *gojsonschema.Schema
}

func NewService(cfg config.PaymentsConfig, clientStore store.ClientStore, log logger.Logger) (*Service, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(webhookSchema))
	if err != nil {
		return nil, fmt.Errorf("compile webhook schema: %w", err)
	}
	return &Service{
		cfg:    cfg,
		store:  clientStore,
		logger: log.With(map[string]interface{}{"component": "payments"}),
		schema: schema,
	}, nil
}

// CreateCheckout opens a checkout session for one product. The product
// must be listed in the configured price table.
func (s *Service) CreateCheckout(ctx context.Context, clientID, productType string) (*CheckoutSession, error) {
	price, ok := s.cfg.Products[productType]
	if !ok {
		return nil, &errors.StandardError{
			Code:      errors.ErrCodeUnknownProduct,
			Message:   fmt.Sprintf("unknown product type %q", productType),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	client, err := s.store.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.NewClientNotFoundError(clientID)
	}

	session := &CheckoutSession{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		ProductType: productType,
		AmountUSD:   price,
		SuccessURL:  s.cfg.SuccessURL,
		CancelURL:   s.cfg.CancelURL,
		CreatedAt:   time.Now().UTC(),
	}
	session.CheckoutURL = fmt.Sprintf("https://checkout.creditflow.example/session/%s", session.ID)

	s.logger.Info("checkout session created", map[string]interface{}{
		"sessionId":   session.ID,
		"clientId":    clientID,
		"productType": productType,
		"amountUsd":   price,
	})
	return session, nil
}

// HandleWebhook verifies, validates, and dispatches one webhook delivery.
// Signature failures must surface before any payload inspection.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) (*WebhookAck, error) {
	if !s.verifySignature(body, signature) {
		metrics.PaymentWebhooks.WithLabelValues("unknown", "bad_signature").Inc()
		return nil, errors.NewPaymentSignatureError()
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil || !result.Valid() {
		details := ""
		if err != nil {
			details = err.Error()
		} else {
			for _, desc := range result.Errors() {
				if details != "" {
					details += "; "
				}
				details += desc.String()
			}
		}
		metrics.PaymentWebhooks.WithLabelValues("unknown", "bad_payload").Inc()
		return nil, &errors.StandardError{
			Code:      errors.ErrCodePaymentBadPayload,
			Message:   "webhook payload failed schema validation",
			Details:   details,
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, &errors.StandardError{
			Code:      errors.ErrCodePaymentBadPayload,
			Message:   "webhook payload is not valid JSON",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	switch event.Type {
	case eventCheckoutCompleted:
		return s.completeCheckout(ctx, &event)
	default:
		// Unrecognized event types are acknowledged and dropped so the
		// provider stops redelivering them.
		s.logger.Info("ignoring webhook event", map[string]interface{}{"type": event.Type})
		metrics.PaymentWebhooks.WithLabelValues(event.Type, "ignored").Inc()
		return &WebhookAck{Received: true, Action: "ignored"}, nil
	}
}

func (s *Service) completeCheckout(ctx context.Context, event *WebhookEvent) (*WebhookAck, error) {
	if _, ok := s.cfg.Products[event.Data.ProductType]; !ok {
		return nil, &errors.StandardError{
			Code:      errors.ErrCodeUnknownProduct,
			Message:   fmt.Sprintf("unknown product type %q in webhook", event.Data.ProductType),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	if err := s.store.UnlockTool(ctx, event.Data.ClientID, event.Data.ProductType); err != nil {
		metrics.PaymentWebhooks.WithLabelValues(event.Type, "error").Inc()
		return nil, err
	}

	metrics.PaymentWebhooks.WithLabelValues(event.Type, "unlocked").Inc()
	s.logger.Info("checkout completed, tool unlocked", map[string]interface{}{
		"sessionId":   event.Data.SessionID,
		"clientId":    event.Data.ClientID,
		"productType": event.Data.ProductType,
	})
	return &WebhookAck{Received: true, Action: "unlocked:" + event.Data.ProductType}, nil
}

// verifySignature compares the hex HMAC-SHA256 of the raw body against
// the provider's signature header in constant time.
func (s *Service) verifySignature(body []byte, signature string) bool {
	if s.cfg.SigningSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.SigningSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the signature for a body, matching what the provider
// sends in its signature header.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
