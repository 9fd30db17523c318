package db

import (
	"context"
	"errors"
	"testing"

	"github.com/pixeldock/pixeldock/biz/dal/model"

	"gorm.io/gorm"
)

func TestInvoiceDAO_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewInvoiceDAO()
	ctx := context.Background()

	buyer := CreateTestUser(t, db, "invoice-buyer", model.RoleUser)
	uploader := CreateTestUser(t, db, "invoice-seller", model.RoleUser)
	category := CreateTestCategory(t, db, "Photos")
	asset := CreateTestAsset(t, db, uploader.ID, category.ID, "invoiced")
	payment := CreateTestPayment(t, db, buyer.ID, 5.00)
	purchase := CreateTestPurchase(t, db, asset.ID, buyer.ID, payment.ID)

	t.Run("Success", func(t *testing.T) {
		invoice := &model.Invoice{
			InvoiceNumber: "INV-202609-1234",
			PurchaseID:    purchase.ID,
			UserID:        buyer.ID,
			Amount:        5.00,
			Currency:      "USD",
			Status:        model.InvoiceStatusPaid,
			HTMLContent:   "<html><body>Invoice</body></html>",
		}

		err := dao.Create(ctx, db, invoice)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if invoice.ID == "" {
			t.Error("Expected UUID to be assigned after creation")
		}

		found, err := dao.GetByID(ctx, db, invoice.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if found.InvoiceNumber != "INV-202609-1234" {
			t.Errorf("Expected invoice number INV-202609-1234, got %s", found.InvoiceNumber)
		}
		if found.HTMLContent == "" {
			t.Error("Expected HTML content to be persisted")
		}
	})

	t.Run("DuplicateNumber", func(t *testing.T) {
		err := dao.Create(ctx, db, &model.Invoice{
			InvoiceNumber: "INV-202609-1234",
			PurchaseID:    purchase.ID,
			UserID:        buyer.ID,
			Amount:        5.00,
			Currency:      "USD",
			Status:        model.InvoiceStatusPaid,
		})
		if err == nil {
			t.Fatal("Expected error for duplicate invoice number")
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			t.Errorf("Expected gorm.ErrDuplicatedKey, got: %v", err)
		}
	})

	t.Run("NilEntity", func(t *testing.T) {
		err := dao.Create(ctx, db, nil)
		if err == nil {
			t.Error("Expected error for nil entity")
		}
	})
}

func TestInvoiceDAO_ListByUser(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewInvoiceDAO()
	ctx := context.Background()

	buyer := CreateTestUser(t, db, "list-buyer", model.RoleUser)
	uploader := CreateTestUser(t, db, "list-seller", model.RoleUser)
	category := CreateTestCategory(t, db, "Icons")
	payment := CreateTestPayment(t, db, buyer.ID, 5.00)

	for i, number := range []string{"INV-202609-1001", "INV-202609-1002"} {
		asset := CreateTestAsset(t, db, uploader.ID, category.ID, "asset"+number)
		purchase := CreateTestPurchase(t, db, asset.ID, buyer.ID, payment.ID)
		invoice := &model.Invoice{
			InvoiceNumber: number,
			PurchaseID:    purchase.ID,
			UserID:        buyer.ID,
			Amount:        5.00,
			Currency:      "USD",
			Status:        model.InvoiceStatusPaid,
		}
		if err := dao.Create(ctx, db, invoice); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	t.Run("AllForUser", func(t *testing.T) {
		invoices, err := dao.ListByUser(ctx, db, buyer.ID)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(invoices) != 2 {
			t.Fatalf("Expected 2 invoices, got %d", len(invoices))
		}
		if invoices[0].InvoiceNumber != "INV-202609-1001" {
			t.Errorf("Expected oldest invoice first, got %s", invoices[0].InvoiceNumber)
		}
	})

	t.Run("EmptyForStranger", func(t *testing.T) {
		invoices, err := dao.ListByUser(ctx, db, uploader.ID)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(invoices) != 0 {
			t.Errorf("Expected no invoices, got %d", len(invoices))
		}
	})
}

func TestUserDAO(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewUserDAO()
	ctx := context.Background()

	alice := CreateTestUser(t, db, "dao-alice", model.RoleUser)
	bob := CreateTestUser(t, db, "dao-bob", model.RoleAdmin)

	t.Run("GetByID", func(t *testing.T) {
		found, err := dao.GetByID(ctx, db, alice.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if found.Name != "dao-alice" {
			t.Errorf("Expected name 'dao-alice', got '%s'", found.Name)
		}
	})

	t.Run("GetByIDs", func(t *testing.T) {
		users, err := dao.GetByIDs(ctx, db, []string{alice.ID, bob.ID, "missing"})
		if err != nil {
			t.Fatalf("GetByIDs failed: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("Expected 2 users, got %d", len(users))
		}
		if _, ok := users["missing"]; ok {
			t.Error("Missing ID should be absent from result")
		}
	})

	t.Run("GetByIDsEmpty", func(t *testing.T) {
		users, err := dao.GetByIDs(ctx, db, nil)
		if err != nil {
			t.Fatalf("GetByIDs failed: %v", err)
		}
		if len(users) != 0 {
			t.Errorf("Expected empty map, got %d entries", len(users))
		}
	})

	t.Run("Count", func(t *testing.T) {
		count, err := dao.Count(ctx, db)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected 2 users, got %d", count)
		}
	})
}
