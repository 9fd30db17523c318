package model

import "time"

// Purchase grants a user permanent access to one asset. The composite unique
// index enforces at most one purchase per (asset, user) pair at the storage
// layer; a violation surfaces as gorm.ErrDuplicatedKey and is reported as
// "already exists" rather than relied on a prior read.
type Purchase struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AssetID   string    `gorm:"column:asset_id;type:varchar(36);uniqueIndex:idx_purchase_asset_user" json:"asset_id"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);uniqueIndex:idx_purchase_asset_user" json:"user_id"`
	PaymentID string    `gorm:"column:payment_id;type:varchar(36)" json:"payment_id"`
	Price     float64   `gorm:"column:price" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides gorm to use the purchase table.
func (Purchase) TableName() string {
	return "purchase"
}
