package model

import "time"

// Roles mirrored from the auth provider.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors the auth provider's user table. The provider owns these rows;
// this service only reads them for joins and counts.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email,omitempty"`
	Image     string    `gorm:"column:image;type:text" json:"image,omitempty"`
	Role      string    `gorm:"column:role;type:varchar(16);default:user" json:"role"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// TableName overrides gorm to use the auth provider's table name.
func (User) TableName() string {
	return "user"
}
