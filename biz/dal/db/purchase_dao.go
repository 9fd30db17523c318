package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pixeldock/pixeldock/biz/dal/model"

	"gorm.io/gorm"
)

// PurchaseDAO handles purchase rows. The (asset_id, user_id) unique index is
// the authoritative duplicate guard; Create surfaces a violation as
// gorm.ErrDuplicatedKey.
type PurchaseDAO struct{}

func NewPurchaseDAO() *PurchaseDAO { return &PurchaseDAO{} }

// Create persists a new purchase, assigning a UUID when none is set.
func (dao *PurchaseDAO) Create(ctx context.Context, db *gorm.DB, purchase *model.Purchase) error {
	if purchase == nil {
		return errors.New("purchase must not be nil")
	}
	if purchase.ID == "" {
		purchase.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(purchase).Error
}

// GetByID fetches a single purchase.
func (dao *PurchaseDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := db.WithContext(ctx).Where("id = ?", id).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// GetByAssetAndUser fetches the purchase for an (asset, user) pair.
func (dao *PurchaseDAO) GetByAssetAndUser(ctx context.Context, db *gorm.DB, assetID, userID string) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := db.WithContext(ctx).
		Where("asset_id = ? AND user_id = ?", assetID, userID).
		First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ExistsByAssetAndUser checks whether the pair already purchased.
func (dao *PurchaseDAO) ExistsByAssetAndUser(ctx context.Context, db *gorm.DB, assetID, userID string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.Purchase{}).
		Where("asset_id = ? AND user_id = ?", assetID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser returns all purchases for a user ordered by purchase time.
func (dao *PurchaseDAO) ListByUser(ctx context.Context, db *gorm.DB, userID string) ([]model.Purchase, error) {
	var purchases []model.Purchase
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// CountByAsset returns how many times an asset has been sold.
func (dao *PurchaseDAO) CountByAsset(ctx context.Context, db *gorm.DB, assetID string) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.Purchase{}).
		Where("asset_id = ?", assetID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
