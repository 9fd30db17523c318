package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pixeldock/pixeldock/biz/dal/model"
	"github.com/pixeldock/pixeldock/pkg/invoice"
	"github.com/pixeldock/pixeldock/pkg/session"

	"gorm.io/gorm"
)

// invoiceNumberAttempts bounds the retry loop on number collisions. The
// random suffix has 9000 values per month, so collisions are rare and a
// handful of retries is plenty.
const invoiceNumberAttempts = 5

// InvoiceView is the invoice record without its HTML document.
type InvoiceView struct {
	ID            string  `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	PurchaseID    string  `json:"purchase_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

// CreateInvoice generates and persists an invoice for an existing purchase.
// The caller must own the purchase or be an admin. Recording a purchase
// already creates its invoice; this operation covers regeneration for
// purchases recorded before invoicing existed.
func (s *Service) CreateInvoice(ctx context.Context, sess *session.Session, purchaseID string) (*InvoiceView, error) {
	user, err := session.Require(sess, "")
	if err != nil {
		return nil, err
	}

	purchase, err := s.logic.purchaseDAO.GetByID(ctx, s.logic.db, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase %s", ErrNotFound, purchaseID)
		}
		return nil, err
	}
	if purchase.UserID != user.ID && !session.IsAdmin(sess) {
		return nil, fmt.Errorf("%w: purchase belongs to another user", session.ErrForbidden)
	}

	title := "Digital Asset"
	if asset, err := s.logic.assetDAO.GetByID(ctx, s.logic.db, purchase.AssetID); err == nil {
		title = asset.Title
	}

	entity, err := s.createInvoiceTx(ctx, s.logic.db, purchase, title)
	if err != nil {
		return nil, err
	}

	s.views.Invalidate(ctx, "dashboard/purchases")
	return invoiceToView(entity), nil
}

// createInvoiceTx builds, renders and persists the invoice row on the given
// handle, which may be a transaction. Number collisions regenerate and
// retry.
func (s *Service) createInvoiceTx(ctx context.Context, tx *gorm.DB, purchase *model.Purchase, assetTitle string) (*model.Invoice, error) {
	now := time.Now()

	var lastErr error
	for attempt := 0; attempt < invoiceNumberAttempts; attempt++ {
		number := invoice.BuildNumber(now)
		entity := &model.Invoice{
			InvoiceNumber: number,
			PurchaseID:    purchase.ID,
			UserID:        purchase.UserID,
			Amount:        purchase.Price,
			Currency:      s.pricing.Currency,
			Status:        model.InvoiceStatusPaid,
			HTMLContent:   invoice.Render(number, purchase.CreatedAt, assetTitle, purchase.Price, s.pricing.Currency),
		}
		// Nested Transaction is a savepoint when tx is already a
		// transaction, so a duplicate number does not poison the outer
		// purchase transaction on postgres.
		err := tx.Transaction(func(inner *gorm.DB) error {
			return s.logic.invoiceDAO.Create(ctx, inner, entity)
		})
		if err == nil {
			return entity, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("invoice number space exhausted: %w", lastErr)
}

// GetInvoiceByID returns the invoice record. Owner or admin only.
func (s *Service) GetInvoiceByID(ctx context.Context, sess *session.Session, id string) (*InvoiceView, error) {
	entity, err := s.authorizedInvoice(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return invoiceToView(entity), nil
}

// GetInvoiceDocument returns the persisted HTML document. Owner or admin
// only; an empty document is ErrContentMissing.
func (s *Service) GetInvoiceDocument(ctx context.Context, sess *session.Session, id string) (string, error) {
	entity, err := s.authorizedInvoice(ctx, sess, id)
	if err != nil {
		return "", err
	}
	if entity.HTMLContent == "" {
		return "", fmt.Errorf("%w: invoice %s has no document", ErrContentMissing, id)
	}
	return entity.HTMLContent, nil
}

// ListUserInvoices returns the caller's invoices ordered by creation time.
func (s *Service) ListUserInvoices(ctx context.Context, sess *session.Session) ([]InvoiceView, error) {
	user, err := session.Require(sess, "")
	if err != nil {
		return nil, err
	}

	entities, err := s.logic.invoiceDAO.ListByUser(ctx, s.logic.db, user.ID)
	if err != nil {
		return nil, err
	}
	views := make([]InvoiceView, 0, len(entities))
	for i := range entities {
		views = append(views, *invoiceToView(&entities[i]))
	}
	return views, nil
}

// authorizedInvoice loads an invoice and enforces the owner-or-admin rule.
// Lookup runs before the ownership check so a missing invoice reads as not
// found, not forbidden.
func (s *Service) authorizedInvoice(ctx context.Context, sess *session.Session, id string) (*model.Invoice, error) {
	user, err := session.Require(sess, "")
	if err != nil {
		return nil, err
	}

	entity, err := s.logic.invoiceDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %s", ErrNotFound, id)
		}
		return nil, err
	}
	if entity.UserID != user.ID && !session.IsAdmin(sess) {
		return nil, fmt.Errorf("%w: invoice belongs to another user", session.ErrForbidden)
	}
	return entity, nil
}

func invoiceToView(entity *model.Invoice) *InvoiceView {
	return &InvoiceView{
		ID:            entity.ID,
		InvoiceNumber: entity.InvoiceNumber,
		PurchaseID:    entity.PurchaseID,
		Amount:        entity.Amount,
		Currency:      entity.Currency,
		Status:        entity.Status,
		CreatedAt:     entity.CreatedAt.UTC().Format(time.RFC3339),
	}
}
