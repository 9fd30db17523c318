package service

import (
	"context"

	"github.com/pixeldock/pixeldock/biz/dal/db"
	"github.com/pixeldock/pixeldock/biz/dal/model"

	"gorm.io/gorm"
)

// Logic contains business rules on top of data persistence.
type Logic struct {
	db          *gorm.DB
	categoryDAO *db.CategoryDAO
	assetDAO    *db.AssetDAO
	paymentDAO  *db.PaymentDAO
	purchaseDAO *db.PurchaseDAO
	invoiceDAO  *db.InvoiceDAO
	userDAO     *db.UserDAO
}

func NewLogic(dbConn *gorm.DB) *Logic {
	return &Logic{
		db:          dbConn,
		categoryDAO: db.NewCategoryDAO(),
		assetDAO:    db.NewAssetDAO(),
		paymentDAO:  db.NewPaymentDAO(),
		purchaseDAO: db.NewPurchaseDAO(),
		invoiceDAO:  db.NewInvoiceDAO(),
		userDAO:     db.NewUserDAO(),
	}
}

// categoryNamesFor resolves category ids to names in one batch query.
// Dangling references resolve to a missing map entry, which readers surface
// as a null name. Joins are composed in Go rather than SQL so the reserved
// table name "user" never appears in a hand-written join clause.
func (l *Logic) categoryNamesFor(ctx context.Context, assets []model.Asset) (map[uint]string, error) {
	idSet := make(map[uint]struct{}, len(assets))
	for i := range assets {
		if assets[i].CategoryID != 0 {
			idSet[assets[i].CategoryID] = struct{}{}
		}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	categories, err := l.categoryDAO.GetByIDs(ctx, l.db, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for i := range categories {
		names[categories[i].ID] = categories[i].Name
	}
	return names, nil
}

// usersFor batch-fetches the owners of the given assets.
func (l *Logic) usersFor(ctx context.Context, assets []model.Asset) (map[string]model.User, error) {
	idSet := make(map[string]struct{}, len(assets))
	for i := range assets {
		if assets[i].UserID != "" {
			idSet[assets[i].UserID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	return l.userDAO.GetByIDs(ctx, l.db, ids)
}
