package service

import (
	"context"
	"fmt"

	"github.com/pixeldock/pixeldock/pkg/paypal"
)

// GatewayOrderSpec is a provider-neutral order request.
type GatewayOrderSpec struct {
	AssetID    string
	AssetTitle string
	Currency   string
	Price      float64
	ReturnURL  string
	CancelURL  string
}

// GatewayOrder is the created order the buyer is redirected to approve.
type GatewayOrder struct {
	OrderID      string
	ApprovalLink string
}

// PaymentGateway creates payment orders with an external provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, spec GatewayOrderSpec) (*GatewayOrder, error)
}

// PayPalGateway adapts the PayPal REST client to the PaymentGateway
// interface.
type PayPalGateway struct {
	client *paypal.Client
}

func NewPayPalGateway(client *paypal.Client) *PayPalGateway {
	return &PayPalGateway{client: client}
}

func (g *PayPalGateway) CreateOrder(ctx context.Context, spec GatewayOrderSpec) (*GatewayOrder, error) {
	order, err := g.client.CreateOrder(ctx, paypal.OrderSpec{
		ReferenceID: spec.AssetID,
		Description: fmt.Sprintf("Purchase of asset: %s", spec.AssetTitle),
		CustomID:    spec.AssetID,
		Currency:    spec.Currency,
		Value:       fmt.Sprintf("%.2f", spec.Price),
		ReturnURL:   spec.ReturnURL,
		CancelURL:   spec.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	return &GatewayOrder{OrderID: order.ID, ApprovalLink: order.ApprovalLink}, nil
}
