package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pixeldock/pixeldock/biz/dal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate all tables
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Asset{},
		&model.Payment{},
		&model.Purchase{},
		&model.Invoice{},
	); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestUser inserts a user row the way the auth provider would
func CreateTestUser(t *testing.T, db *gorm.DB, name, role string) *model.User {
	t.Helper()
	user := &model.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a test category with default values
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	dao := NewCategoryDAO()
	category := &model.Category{Name: name}
	if err := dao.Create(context.Background(), db, category); err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// CreateTestAsset creates a test asset with default values
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, categoryID uint, title string) *model.Asset {
	t.Helper()
	dao := NewAssetDAO()
	asset := &model.Asset{
		Title:        title,
		Description:  "Test asset",
		FileURL:      "https://cdn.example.com/" + title + ".png",
		ThumbnailURL: "https://cdn.example.com/" + title + "_thumb.png",
		CategoryID:   categoryID,
		UserID:       userID,
		IsApproved:   model.ApprovalPending,
		Price:        5.00,
	}
	if err := dao.Create(context.Background(), db, asset); err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestPayment creates a completed test payment
func CreateTestPayment(t *testing.T, db *gorm.DB, userID string, amount float64) *model.Payment {
	t.Helper()
	dao := NewPaymentDAO()
	payment := &model.Payment{
		Amount:     amount,
		Currency:   "USD",
		Status:     model.PaymentStatusCompleted,
		Provider:   model.PaymentProviderPayPal,
		ProviderID: "ORDER-" + uuid.NewString()[:8],
		UserID:     userID,
	}
	if err := dao.Create(context.Background(), db, payment); err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}
	return payment
}

// CreateTestPurchase creates a test purchase linking an asset, user and payment
func CreateTestPurchase(t *testing.T, db *gorm.DB, assetID, userID, paymentID string) *model.Purchase {
	t.Helper()
	dao := NewPurchaseDAO()
	purchase := &model.Purchase{
		AssetID:   assetID,
		UserID:    userID,
		PaymentID: paymentID,
		Price:     5.00,
	}
	if err := dao.Create(context.Background(), db, purchase); err != nil {
		t.Fatalf("Failed to create test purchase: %v", err)
	}
	return purchase
}
