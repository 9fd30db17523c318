package model

import "time"

// Approval states for uploaded assets.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Asset stores metadata for an uploaded media item. The binary itself lives
// in external object storage; only URL strings are kept here. Assets are
// never deleted.
type Asset struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title        string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Description  string    `gorm:"column:description;type:text" json:"description,omitempty"`
	FileURL      string    `gorm:"column:file_url;type:text" json:"file_url"`
	ThumbnailURL string    `gorm:"column:thumbnail_url;type:text" json:"thumbnail_url"`
	CategoryID   uint      `gorm:"column:category_id;index:idx_asset_category" json:"category_id"`
	UserID       string    `gorm:"column:user_id;type:varchar(36);index:idx_asset_user" json:"user_id"`
	IsApproved   string    `gorm:"column:is_approved;type:varchar(16);default:pending;index:idx_asset_approval" json:"is_approved"`
	Price        float64   `gorm:"column:price" json:"price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides gorm to use the asset table.
func (Asset) TableName() string {
	return "asset"
}
