package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pixeldock/pixeldock/biz/dal/model"
	"github.com/pixeldock/pixeldock/pkg/lock"
	"github.com/pixeldock/pixeldock/pkg/session"

	"gorm.io/gorm"
)

// OrderResult is what CreateOrder hands back to the frontend. When the
// caller already owns the asset no gateway order is created and
// AlreadyPurchased is set instead.
type OrderResult struct {
	AlreadyPurchased bool   `json:"already_purchased"`
	OrderID          string `json:"order_id,omitempty"`
	ApprovalLink     string `json:"approval_link,omitempty"`
}

// RecordResult reports the outcome of recording a purchase. AlreadyExists
// marks the idempotent replay case: the purchase was recorded before and no
// new rows were written.
type RecordResult struct {
	AlreadyExists bool   `json:"already_exists"`
	PurchaseID    string `json:"purchase_id"`
	InvoiceID     string `json:"invoice_id,omitempty"`
}

// PurchaseView joins a purchase with its asset for the buyer's dashboard.
type PurchaseView struct {
	ID           string  `json:"id"`
	AssetID      string  `json:"asset_id"`
	AssetTitle   string  `json:"asset_title"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	CreatedAt    string  `json:"created_at"`
}

// CreateOrder starts the payment flow for an asset: it verifies the asset
// exists, short-circuits when the caller already purchased it, and otherwise
// creates a gateway order for the asset's stored price.
func (s *Service) CreateOrder(ctx context.Context, sess *session.Session, assetID string) (*OrderResult, error) {
	user, err := session.Require(sess, "")
	if err != nil {
		return nil, err
	}

	asset, err := s.logic.assetDAO.GetByID(ctx, s.logic.db, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: asset %s", ErrNotFound, assetID)
		}
		return nil, err
	}

	purchased, err := s.logic.purchaseDAO.ExistsByAssetAndUser(ctx, s.logic.db, assetID, user.ID)
	if err != nil {
		return nil, err
	}
	if purchased {
		return &OrderResult{AlreadyPurchased: true}, nil
	}

	order, err := s.gateway.CreateOrder(ctx, GatewayOrderSpec{
		AssetID:    asset.ID,
		AssetTitle: asset.Title,
		Currency:   s.pricing.Currency,
		Price:      asset.Price,
		ReturnURL:  s.appURL + "/gallery/" + asset.ID + "?payment=success",
		CancelURL:  s.appURL + "/gallery/" + asset.ID + "?payment=cancelled",
	})
	if err != nil {
		return nil, err
	}
	if order.OrderID == "" {
		return nil, fmt.Errorf("%w: order created without id", ErrPaymentGateway)
	}

	return &OrderResult{OrderID: order.OrderID, ApprovalLink: order.ApprovalLink}, nil
}

// RecordPurchase persists a completed payment as Payment, Purchase and
// Invoice rows in one transaction. The operation is idempotent per
// (asset, caller): a replay returns AlreadyExists with zero writes, whether
// caught by the pre-check or by the unique index inside the transaction.
func (s *Service) RecordPurchase(ctx context.Context, sess *session.Session, assetID, gatewayOrderID string) (*RecordResult, error) {
	user, err := session.Require(sess, "")
	if err != nil {
		return nil, err
	}
	if assetID == "" || gatewayOrderID == "" {
		return nil, fmt.Errorf("%w: asset id and order id are required", ErrValidation)
	}

	if s.redis != nil {
		writeLock := lock.New(s.redis, "purchase:"+assetID+":"+user.ID, 10*time.Second, 5*time.Second)
		lockID, err := writeLock.Acquire(ctx)
		if err != nil {
			hlog.CtxWarnf(ctx, "purchase lock unavailable, relying on unique index: %v", err)
		} else {
			defer func() {
				if err := writeLock.Release(context.WithoutCancel(ctx), lockID); err != nil {
					hlog.CtxWarnf(ctx, "purchase lock release: %v", err)
				}
			}()
		}
	}

	existing, err := s.logic.purchaseDAO.GetByAssetAndUser(ctx, s.logic.db, assetID, user.ID)
	if err == nil {
		return &RecordResult{AlreadyExists: true, PurchaseID: existing.ID}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	asset, err := s.logic.assetDAO.GetByID(ctx, s.logic.db, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: asset %s", ErrNotFound, assetID)
		}
		return nil, err
	}

	var result RecordResult
	txErr := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment := &model.Payment{
			Amount:     asset.Price,
			Currency:   s.pricing.Currency,
			Status:     model.PaymentStatusCompleted,
			Provider:   model.PaymentProviderPayPal,
			ProviderID: gatewayOrderID,
			UserID:     user.ID,
		}
		if err := s.logic.paymentDAO.Create(ctx, tx, payment); err != nil {
			return err
		}

		purchase := &model.Purchase{
			AssetID:   asset.ID,
			UserID:    user.ID,
			PaymentID: payment.ID,
			Price:     asset.Price,
		}
		if err := s.logic.purchaseDAO.Create(ctx, tx, purchase); err != nil {
			return err
		}

		invoice, err := s.createInvoiceTx(ctx, tx, purchase, asset.Title)
		if err != nil {
			return err
		}

		result.PurchaseID = purchase.ID
		result.InvoiceID = invoice.ID
		return nil
	})
	if txErr != nil {
		// Concurrent replay slipped past the pre-check; the unique index
		// caught it and the transaction rolled back cleanly.
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			existing, err := s.logic.purchaseDAO.GetByAssetAndUser(ctx, s.logic.db, assetID, user.ID)
			if err != nil {
				return nil, txErr
			}
			return &RecordResult{AlreadyExists: true, PurchaseID: existing.ID}, nil
		}
		return nil, txErr
	}

	s.views.Invalidate(ctx, "gallery/"+assetID)
	s.views.Invalidate(ctx, "dashboard/purchases")
	return &result, nil
}

// HasPurchased reports whether the session's user owns the asset. It fails
// closed: no session or any lookup failure reads as false.
func (s *Service) HasPurchased(ctx context.Context, sess *session.Session, assetID string) bool {
	user, err := session.Require(sess, "")
	if err != nil {
		return false
	}
	purchased, err := s.logic.purchaseDAO.ExistsByAssetAndUser(ctx, s.logic.db, assetID, user.ID)
	if err != nil {
		hlog.CtxWarnf(ctx, "purchase status lookup for asset %s: %v", assetID, err)
		return false
	}
	return purchased
}

// ListUserPurchases returns the caller's purchases joined with asset titles
// and thumbnails, ordered by purchase time.
func (s *Service) ListUserPurchases(ctx context.Context, sess *session.Session) ([]PurchaseView, error) {
	user, err := session.Require(sess, "")
	if err != nil {
		return nil, err
	}

	purchases, err := s.logic.purchaseDAO.ListByUser(ctx, s.logic.db, user.ID)
	if err != nil {
		return nil, err
	}

	views := make([]PurchaseView, 0, len(purchases))
	for i := range purchases {
		p := &purchases[i]
		v := PurchaseView{
			ID:        p.ID,
			AssetID:   p.AssetID,
			Price:     p.Price,
			Currency:  s.pricing.Currency,
			CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		}
		// Asset rows are never deleted but tolerate a miss anyway
		if asset, err := s.logic.assetDAO.GetByID(ctx, s.logic.db, p.AssetID); err == nil {
			v.AssetTitle = asset.Title
			v.ThumbnailURL = asset.ThumbnailURL
		}
		views = append(views, v)
	}
	return views, nil
}
