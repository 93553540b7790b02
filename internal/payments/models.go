package payments

import "time"

// CheckoutSession is returned to the caller so the client can be sent to
// the hosted checkout page.
type CheckoutSession struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	ProductType string    `json:"productType"`
	AmountUSD   float64   `json:"amountUsd"`
	CheckoutURL string    `json:"checkoutUrl"`
	SuccessURL  string    `json:"successUrl"`
	CancelURL   string    `json:"cancelUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WebhookEvent is the parsed, schema-validated webhook payload.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		SessionID   string `json:"sessionId"`
		ClientID    string `json:"clientId"`
		ProductType string `json:"productType"`
	} `json:"data"`
}

// WebhookAck reports what the webhook handler did with an event.
type WebhookAck struct {
	Received bool   `json:"received"`
	Action   string `json:"action"`
}
