package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pixeldock/pixeldock/biz/dal/model"

	"gorm.io/gorm"
)

// AssetDAO handles CRUD operations for uploaded assets.
type AssetDAO struct{}

func NewAssetDAO() *AssetDAO { return &AssetDAO{} }

// Create persists a new asset, assigning a UUID when none is set.
func (dao *AssetDAO) Create(ctx context.Context, db *gorm.DB, asset *model.Asset) error {
	if asset == nil {
		return errors.New("asset must not be nil")
	}
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(asset).Error
}

// GetByID fetches a single asset.
func (dao *AssetDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.Asset, error) {
	var asset model.Asset
	if err := db.WithContext(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// SetApproval updates the approval state unconditionally, bumping
// updated_at even when the state does not change. A missing asset is not an
// error: zero rows affected keeps the operation idempotent.
func (dao *AssetDAO) SetApproval(ctx context.Context, db *gorm.DB, id string, state string) error {
	return db.WithContext(ctx).
		Model(&model.Asset{}).
		Where("id = ?", id).
		Update("is_approved", state).
		Error
}

// ListByUser returns all assets owned by userID ordered by creation time
// ascending.
func (dao *AssetDAO) ListByUser(ctx context.Context, db *gorm.DB, userID string) ([]model.Asset, error) {
	var assets []model.Asset
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// ListApproved returns approved assets, optionally filtered to one category.
func (dao *AssetDAO) ListApproved(ctx context.Context, db *gorm.DB, categoryID *uint) ([]model.Asset, error) {
	tx := db.WithContext(ctx).Where("is_approved = ?", model.ApprovalApproved)
	if categoryID != nil {
		tx = tx.Where("category_id = ?", *categoryID)
	}

	var assets []model.Asset
	if err := tx.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// ListPending returns all assets awaiting review.
func (dao *AssetDAO) ListPending(ctx context.Context, db *gorm.DB) ([]model.Asset, error) {
	var assets []model.Asset
	if err := db.WithContext(ctx).
		Where("is_approved = ?", model.ApprovalPending).
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// Count returns the total number of assets.
func (dao *AssetDAO) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Asset{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
