package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/pixeldock/pixeldock/pkg/common"
)

// AddCategoryRequest is the body for a new category.
type AddCategoryRequest struct {
	Name string `json:"name"`
}

// ListAdminCategories returns all categories ordered by name.
func (h *Handler) ListAdminCategories(ctx context.Context, c *app.RequestContext) {
	categories, err := h.service.ListCategoriesAdmin(ctx, common.SessionFromContext(ctx))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"categories": categories})
}

// AddCategory creates a new category.
func (h *Handler) AddCategory(ctx context.Context, c *app.RequestContext) {
	var req AddCategoryRequest
	if err := c.BindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	category, err := h.service.AddCategory(ctx, common.SessionFromContext(ctx), req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"category": category})
}

// DeleteCategory removes a category unconditionally.
func (h *Handler) DeleteCategory(ctx context.Context, c *app.RequestContext) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		writeBadRequest(c, errors.New("invalid category id"))
		return
	}

	if err := h.service.DeleteCategory(ctx, common.SessionFromContext(ctx), uint(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	respondOK(c)
}

// ListPendingAssets returns assets awaiting review.
func (h *Handler) ListPendingAssets(ctx context.Context, c *app.RequestContext) {
	assets, err := h.service.ListPendingAssets(ctx, common.SessionFromContext(ctx))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"assets": assets})
}

// ApproveAsset marks an asset approved and visible in the gallery.
func (h *Handler) ApproveAsset(ctx context.Context, c *app.RequestContext) {
	if err := h.service.ApproveAsset(ctx, common.SessionFromContext(ctx), c.Param("assetID")); err != nil {
		writeServiceError(c, err)
		return
	}
	respondOK(c)
}

// RejectAsset marks an asset rejected.
func (h *Handler) RejectAsset(ctx context.Context, c *app.RequestContext) {
	if err := h.service.RejectAsset(ctx, common.SessionFromContext(ctx), c.Param("assetID")); err != nil {
		writeServiceError(c, err)
		return
	}
	respondOK(c)
}

// GetStats returns platform counters for the admin dashboard.
func (h *Handler) GetStats(ctx context.Context, c *app.RequestContext) {
	stats, err := h.service.GetAdminStats(ctx, common.SessionFromContext(ctx))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, stats)
}
