package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pixeldock/pixeldock/biz/dal/model"

	"gorm.io/gorm"
)

// InvoiceDAO handles invoice rows.
type InvoiceDAO struct{}

func NewInvoiceDAO() *InvoiceDAO { return &InvoiceDAO{} }

// Create persists a new invoice, assigning a UUID when none is set. A
// duplicate invoice number surfaces as gorm.ErrDuplicatedKey so callers can
// regenerate and retry.
func (dao *InvoiceDAO) Create(ctx context.Context, db *gorm.DB, invoice *model.Invoice) error {
	if invoice == nil {
		return errors.New("invoice must not be nil")
	}
	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(invoice).Error
}

// GetByID fetches a single invoice.
func (dao *InvoiceDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListByUser returns all invoices for a user ordered by creation time.
func (dao *InvoiceDAO) ListByUser(ctx context.Context, db *gorm.DB, userID string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
