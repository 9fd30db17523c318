package model

import "time"

// Payment statuses and providers.
const (
	PaymentStatusCompleted = "completed"
	PaymentProviderPayPal  = "paypal"
)

// Payment is the financial-transaction record backing a purchase. Created
// once per successful purchase flow, immutable thereafter.
type Payment struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Amount     float64   `gorm:"column:amount" json:"amount"`
	Currency   string    `gorm:"column:currency;type:varchar(8)" json:"currency"`
	Status     string    `gorm:"column:status;type:varchar(16)" json:"status"`
	Provider   string    `gorm:"column:provider;type:varchar(32)" json:"provider"`
	ProviderID string    `gorm:"column:provider_id;type:varchar(64)" json:"provider_id"`
	UserID     string    `gorm:"column:user_id;type:varchar(36);index:idx_payment_user" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides gorm to use the payment table.
func (Payment) TableName() string {
	return "payment"
}
