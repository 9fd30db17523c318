package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/pixeldock/pixeldock/pkg/common"
)

// ListGalleryAssets returns approved assets for the public gallery,
// optionally filtered by category_id.
func (h *Handler) ListGalleryAssets(ctx context.Context, c *app.RequestContext) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			writeBadRequest(c, errInvalidCategoryID)
			return
		}
		parsed := uint(id)
		categoryID = &parsed
	}

	assets, err := h.service.ListPublicAssets(ctx, categoryID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"assets": assets})
}

// GetGalleryAsset returns the joined detail of one asset, together with the
// caller's purchase status for it.
func (h *Handler) GetGalleryAsset(ctx context.Context, c *app.RequestContext) {
	assetID := c.Param("assetID")

	asset, err := h.service.GetAssetByID(ctx, assetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	purchased := h.service.HasPurchased(ctx, common.SessionFromContext(ctx), assetID)
	respondData(c, map[string]any{
		"asset":     asset,
		"purchased": purchased,
	})
}

// ListGalleryCategories returns the category vocabulary for the gallery
// filter bar.
func (h *Handler) ListGalleryCategories(ctx context.Context, c *app.RequestContext) {
	categories, err := h.service.ListCategoriesPublic(ctx)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respondData(c, map[string]any{"categories": categories})
}
