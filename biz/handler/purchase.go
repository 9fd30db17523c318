package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/pixeldock/pixeldock/pkg/common"
)

// CreateOrderRequest names the asset the buyer wants.
type CreateOrderRequest struct {
	AssetID string `json:"asset_id"`
}

// RecordPurchaseRequest arrives from the frontend after the buyer approved
// the gateway order.
type RecordPurchaseRequest struct {
	AssetID string `json:"asset_id"`
	OrderID string `json:"order_id"`
}

// CreateOrder starts the payment flow for an asset.
func (h *Handler) CreateOrder(ctx context.Context, c *app.RequestContext) {
	var req CreateOrderRequest
	if err := c.BindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	result, err := h.service.CreateOrder(ctx, common.SessionFromContext(ctx), req.AssetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, result)
}

// RecordPurchase persists a completed payment. Safe to replay.
func (h *Handler) RecordPurchase(ctx context.Context, c *app.RequestContext) {
	var req RecordPurchaseRequest
	if err := c.BindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	result, err := h.service.RecordPurchase(ctx, common.SessionFromContext(ctx), req.AssetID, req.OrderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, result)
}

// PurchaseStatus reports whether the caller owns the asset. Open endpoint:
// anonymous callers simply read false.
func (h *Handler) PurchaseStatus(ctx context.Context, c *app.RequestContext) {
	assetID := c.Param("assetID")
	purchased := h.service.HasPurchased(ctx, common.SessionFromContext(ctx), assetID)
	respondData(c, map[string]any{"purchased": purchased})
}
