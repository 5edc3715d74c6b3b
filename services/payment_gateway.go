package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PaymentIntent is the processor's charge handle. IntentID is stored on the
// order; ClientSecret goes back to the client to finish the charge.
type PaymentIntent struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
}

type Subscription struct {
	SubscriptionID string    `json:"subscription_id"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
}

// PaymentGateway is the narrow contract with the external card processor.
type PaymentGateway interface {
	CreateIntent(amountCents int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	CreateSubscription(planRef string, amountCents int64, currency string, metadata map[string]string) (*Subscription, error)
}

// HTTPPaymentGateway talks to the processor's REST API.
type HTTPPaymentGateway struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPPaymentGateway(baseURL, apiKey string) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPPaymentGateway) post(path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, g.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	res, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("payment api: %s returned %d", path, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (g *HTTPPaymentGateway) CreateIntent(amountCents int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	var intent PaymentIntent
	err := g.post("/v1/intents", map[string]any{
		"amount":   amountCents,
		"currency": currency,
		"metadata": metadata,
	}, &intent)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (g *HTTPPaymentGateway) CreateSubscription(planRef string, amountCents int64, currency string, metadata map[string]string) (*Subscription, error) {
	var sub Subscription
	err := g.post("/v1/subscriptions", map[string]any{
		"plan":     planRef,
		"amount":   amountCents,
		"currency": currency,
		"metadata": metadata,
	}, &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ---------------- Webhooks ----------------

const (
	EventPaymentSucceeded     = "payment_succeeded"
	EventPaymentFailed        = "payment_failed"
	EventInvoicePaid          = "invoice_paid"
	EventSubscriptionCanceled = "subscription_canceled"
)

// WebhookEvent is the processor's asynchronous notification. IntentID is set
// for payment events, SubscriptionID for membership events.
type WebhookEvent struct {
	Type           string    `json:"type"`
	IntentID       string    `json:"intent_id,omitempty"`
	SubscriptionID string    `json:"subscription_id,omitempty"`
	PeriodStart    time.Time `json:"period_start,omitempty"`
	PeriodEnd      time.Time `json:"period_end,omitempty"`
}

// VerifyWebhookSignature checks the processor's HMAC-SHA256 signature over
// the raw request body. The signature header carries the hex digest.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignWebhookBody produces the signature the processor would send. Used by
// tests and local tooling.
func SignWebhookBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
