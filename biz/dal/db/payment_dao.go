package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pixeldock/pixeldock/biz/dal/model"

	"gorm.io/gorm"
)

// PaymentDAO handles payment rows. Payments are write-once.
type PaymentDAO struct{}

func NewPaymentDAO() *PaymentDAO { return &PaymentDAO{} }

// Create persists a new payment, assigning a UUID when none is set.
func (dao *PaymentDAO) Create(ctx context.Context, db *gorm.DB, payment *model.Payment) error {
	if payment == nil {
		return errors.New("payment must not be nil")
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(payment).Error
}

// GetByID fetches a single payment.
func (dao *PaymentDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.Payment, error) {
	var payment model.Payment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
