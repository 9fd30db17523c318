package model

import "time"

// InvoiceStatusPaid is the only status this system issues today; invoices
// are generated after a completed payment.
const InvoiceStatusPaid = "paid"

// Invoice is the generated, persisted billing document tied to one purchase.
// The invoice number is human readable and derived from the creation date
// plus a random suffix; the unique index turns a collision into a retry at
// creation time.
type Invoice struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	InvoiceNumber string    `gorm:"column:invoice_number;type:varchar(32);uniqueIndex:idx_invoice_number" json:"invoice_number"`
	PurchaseID    string    `gorm:"column:purchase_id;type:varchar(36);index:idx_invoice_purchase" json:"purchase_id"`
	UserID        string    `gorm:"column:user_id;type:varchar(36);index:idx_invoice_user" json:"user_id"`
	Amount        float64   `gorm:"column:amount" json:"amount"`
	Currency      string    `gorm:"column:currency;type:varchar(8)" json:"currency"`
	Status        string    `gorm:"column:status;type:varchar(16)" json:"status"`
	HTMLContent   string    `gorm:"column:html_content;type:text" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides gorm to use the invoice table.
func (Invoice) TableName() string {
	return "invoice"
}
