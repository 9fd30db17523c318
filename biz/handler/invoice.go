package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pixeldock/pixeldock/pkg/common"
)

// CreateInvoiceRequest names the purchase to invoice.
type CreateInvoiceRequest struct {
	PurchaseID string `json:"purchase_id"`
}

// CreateInvoice generates and persists an invoice for a purchase.
func (h *Handler) CreateInvoice(ctx context.Context, c *app.RequestContext) {
	var req CreateInvoiceRequest
	if err := c.BindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	invoice, err := h.service.CreateInvoice(ctx, common.SessionFromContext(ctx), req.PurchaseID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"invoice": invoice})
}

// GetInvoice returns the invoice record without its document.
func (h *Handler) GetInvoice(ctx context.Context, c *app.RequestContext) {
	invoice, err := h.service.GetInvoiceByID(ctx, common.SessionFromContext(ctx), c.Param("invoiceID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"invoice": invoice})
}

// GetInvoiceDocument serves the persisted HTML document, suitable for
// display or printing.
func (h *Handler) GetInvoiceDocument(ctx context.Context, c *app.RequestContext) {
	doc, err := h.service.GetInvoiceDocument(ctx, common.SessionFromContext(ctx), c.Param("invoiceID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Data(consts.StatusOK, "text/html; charset=utf-8", []byte(doc))
}
