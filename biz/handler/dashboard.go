package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/pixeldock/pixeldock/biz/service"
	"github.com/pixeldock/pixeldock/pkg/common"
)

var errInvalidCategoryID = errors.New("invalid category_id")

// UploadAssetRequest is the metadata body for a new asset. The binary is
// already in object storage by the time this arrives.
type UploadAssetRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	CategoryID   uint   `json:"category_id"`
	FileURL      string `json:"file_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// SignUploadRequest declares the file a client wants to upload.
type SignUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadAsset records new asset metadata owned by the caller.
func (h *Handler) UploadAsset(ctx context.Context, c *app.RequestContext) {
	var req UploadAssetRequest
	if err := c.BindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	asset, err := h.service.UploadAsset(ctx, common.SessionFromContext(ctx), service.UploadAssetInput{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		FileURL:      req.FileURL,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"asset": asset})
}

// ListOwnAssets returns the caller's uploads in every approval state.
func (h *Handler) ListOwnAssets(ctx context.Context, c *app.RequestContext) {
	assets, err := h.service.ListUserAssets(ctx, common.SessionFromContext(ctx))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"assets": assets})
}

// SignUpload issues a presigned PUT credential for a declared file.
func (h *Handler) SignUpload(ctx context.Context, c *app.RequestContext) {
	var req SignUploadRequest
	if err := c.BindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	signed, err := h.service.SignUpload(ctx, common.SessionFromContext(ctx), req.FileName, req.ContentType, req.Size)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, signed)
}

// ListOwnPurchases returns the caller's purchase history.
func (h *Handler) ListOwnPurchases(ctx context.Context, c *app.RequestContext) {
	purchases, err := h.service.ListUserPurchases(ctx, common.SessionFromContext(ctx))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"purchases": purchases})
}

// ListOwnInvoices returns the caller's invoices.
func (h *Handler) ListOwnInvoices(ctx context.Context, c *app.RequestContext) {
	invoices, err := h.service.ListUserInvoices(ctx, common.SessionFromContext(ctx))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"invoices": invoices})
}
