package model

import "time"

// Category is the admin-controlled vocabulary assets are grouped under.
// Deletes are unconditional: assets may keep dangling category references,
// and readers tolerate them through LEFT JOIN semantics.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(50);uniqueIndex:idx_category_name" json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// TableName overrides gorm to use the category table.
func (Category) TableName() string {
	return "category"
}
