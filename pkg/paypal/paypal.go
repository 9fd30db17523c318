// Package paypal implements the subset of the PayPal Orders v2 API this
// service consumes: creating a checkout order and extracting its approval
// link. Capture happens out-of-band through the gateway's redirect, which
// calls back into the purchase recording endpoint.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoOrderID is returned when the gateway response carries no order id.
var ErrNoOrderID = errors.New("paypal response missing order id")

// Config holds gateway credentials.
type Config struct {
	APIURL       string
	ClientID     string
	ClientSecret string
}

// Client is a minimal PayPal Orders API client.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a PayPal client.
func New(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// OrderSpec describes a single-item checkout order.
type OrderSpec struct {
	ReferenceID string
	Description string
	CustomID    string
	Currency    string
	Value       string
	ReturnURL   string
	CancelURL   string
}

// Order is the subset of the gateway's order response this service uses.
type Order struct {
	ID           string
	ApprovalLink string
}

type orderRequest struct {
	Intent             string              `json:"intent"`
	PurchaseUnits      []purchaseUnit      `json:"purchase_units"`
	ApplicationContext *applicationContext `json:"application_context,omitempty"`
}

type purchaseUnit struct {
	ReferenceID string `json:"reference_id,omitempty"`
	Description string `json:"description,omitempty"`
	CustomID    string `json:"custom_id,omitempty"`
	Amount      amount `json:"amount"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type applicationContext struct {
	ReturnURL string `json:"return_url,omitempty"`
	CancelURL string `json:"cancel_url,omitempty"`
}

type orderResponse struct {
	ID    string `json:"id"`
	Links []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

// CreateOrder creates a CAPTURE-intent order and returns its id and the
// buyer approval link.
func (c *Client) CreateOrder(ctx context.Context, spec OrderSpec) (*Order, error) {
	payload := orderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			ReferenceID: spec.ReferenceID,
			Description: spec.Description,
			CustomID:    spec.CustomID,
			Amount: amount{
				CurrencyCode: spec.Currency,
				Value:        spec.Value,
			},
		}},
		ApplicationContext: &applicationContext{
			ReturnURL: spec.ReturnURL,
			CancelURL: spec.CancelURL,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.APIURL+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("create order: unexpected status %d", resp.StatusCode)
	}

	var parsed orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if parsed.ID == "" {
		return nil, ErrNoOrderID
	}

	order := &Order{ID: parsed.ID}
	for _, link := range parsed.Links {
		if link.Rel == "approve" {
			order.ApprovalLink = link.Href
			break
		}
	}
	return order, nil
}
