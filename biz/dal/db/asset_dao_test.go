package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixeldock/pixeldock/biz/dal/model"

	"gorm.io/gorm"
)

func TestAssetDAO_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewAssetDAO()
	ctx := context.Background()

	user := CreateTestUser(t, db, "uploader", model.RoleUser)
	category := CreateTestCategory(t, db, "Photography")

	t.Run("Success", func(t *testing.T) {
		asset := &model.Asset{
			Title:        "Sunset",
			Description:  "A sunset over the bay",
			FileURL:      "https://cdn.example.com/sunset.png",
			ThumbnailURL: "https://cdn.example.com/sunset_thumb.png",
			CategoryID:   category.ID,
			UserID:       user.ID,
			IsApproved:   model.ApprovalPending,
			Price:        5.00,
		}

		err := dao.Create(ctx, db, asset)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if asset.ID == "" {
			t.Error("Expected UUID to be assigned after creation")
		}

		found, err := dao.GetByID(ctx, db, asset.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if found.Title != "Sunset" {
			t.Errorf("Expected title 'Sunset', got '%s'", found.Title)
		}
		if found.IsApproved != model.ApprovalPending {
			t.Errorf("Expected pending approval, got '%s'", found.IsApproved)
		}
	})

	t.Run("NilEntity", func(t *testing.T) {
		err := dao.Create(ctx, db, nil)
		if err == nil {
			t.Error("Expected error for nil entity")
		}
	})

	t.Run("KeepsProvidedID", func(t *testing.T) {
		asset := &model.Asset{
			ID:         "preset-id-1",
			Title:      "Preset",
			CategoryID: category.ID,
			UserID:     user.ID,
			IsApproved: model.ApprovalPending,
		}
		if err := dao.Create(ctx, db, asset); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if asset.ID != "preset-id-1" {
			t.Errorf("Expected ID to be preserved, got '%s'", asset.ID)
		}
	})
}

func TestAssetDAO_SetApproval(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewAssetDAO()
	ctx := context.Background()

	user := CreateTestUser(t, db, "uploader2", model.RoleUser)
	category := CreateTestCategory(t, db, "Icons")

	t.Run("Approve", func(t *testing.T) {
		asset := CreateTestAsset(t, db, user.ID, category.ID, "to-approve")

		if err := dao.SetApproval(ctx, db, asset.ID, model.ApprovalApproved); err != nil {
			t.Fatalf("SetApproval failed: %v", err)
		}

		found, err := dao.GetByID(ctx, db, asset.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if found.IsApproved != model.ApprovalApproved {
			t.Errorf("Expected approved, got '%s'", found.IsApproved)
		}
	})

	t.Run("Reject", func(t *testing.T) {
		asset := CreateTestAsset(t, db, user.ID, category.ID, "to-reject")

		if err := dao.SetApproval(ctx, db, asset.ID, model.ApprovalRejected); err != nil {
			t.Fatalf("SetApproval failed: %v", err)
		}

		found, err := dao.GetByID(ctx, db, asset.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if found.IsApproved != model.ApprovalRejected {
			t.Errorf("Expected rejected, got '%s'", found.IsApproved)
		}
	})

	t.Run("IdempotentRepeat", func(t *testing.T) {
		asset := CreateTestAsset(t, db, user.ID, category.ID, "repeat")

		if err := dao.SetApproval(ctx, db, asset.ID, model.ApprovalApproved); err != nil {
			t.Fatalf("First SetApproval failed: %v", err)
		}
		if err := dao.SetApproval(ctx, db, asset.ID, model.ApprovalApproved); err != nil {
			t.Fatalf("Repeated SetApproval failed: %v", err)
		}
	})

	t.Run("BumpsUpdatedAt", func(t *testing.T) {
		asset := CreateTestAsset(t, db, user.ID, category.ID, "bump")
		before, err := dao.GetByID(ctx, db, asset.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}

		time.Sleep(10 * time.Millisecond)
		if err := dao.SetApproval(ctx, db, asset.ID, model.ApprovalApproved); err != nil {
			t.Fatalf("SetApproval failed: %v", err)
		}

		after, err := dao.GetByID(ctx, db, asset.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if !after.UpdatedAt.After(before.UpdatedAt) {
			t.Error("Expected updated_at to advance on approval change")
		}
	})

	t.Run("MissingAsset", func(t *testing.T) {
		// Zero rows affected is not an error
		if err := dao.SetApproval(ctx, db, "no-such-asset", model.ApprovalApproved); err != nil {
			t.Errorf("SetApproval on missing asset should not fail: %v", err)
		}
	})
}

func TestAssetDAO_Lists(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewAssetDAO()
	ctx := context.Background()

	alice := CreateTestUser(t, db, "alice", model.RoleUser)
	bob := CreateTestUser(t, db, "bob", model.RoleUser)
	photos := CreateTestCategory(t, db, "Photos")
	icons := CreateTestCategory(t, db, "IconPack")

	a1 := CreateTestAsset(t, db, alice.ID, photos.ID, "a1")
	a2 := CreateTestAsset(t, db, alice.ID, icons.ID, "a2")
	b1 := CreateTestAsset(t, db, bob.ID, photos.ID, "b1")

	if err := dao.SetApproval(ctx, db, a1.ID, model.ApprovalApproved); err != nil {
		t.Fatalf("SetApproval failed: %v", err)
	}
	if err := dao.SetApproval(ctx, db, b1.ID, model.ApprovalApproved); err != nil {
		t.Fatalf("SetApproval failed: %v", err)
	}

	t.Run("ListByUser", func(t *testing.T) {
		assets, err := dao.ListByUser(ctx, db, alice.ID)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(assets) != 2 {
			t.Fatalf("Expected 2 assets, got %d", len(assets))
		}
		// Ordered oldest first regardless of approval state
		if assets[0].ID != a1.ID || assets[1].ID != a2.ID {
			t.Error("Expected assets ordered by creation time")
		}
	})

	t.Run("ListByUserEmpty", func(t *testing.T) {
		assets, err := dao.ListByUser(ctx, db, "nobody")
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(assets) != 0 {
			t.Errorf("Expected no assets, got %d", len(assets))
		}
	})

	t.Run("ListApprovedAll", func(t *testing.T) {
		assets, err := dao.ListApproved(ctx, db, nil)
		if err != nil {
			t.Fatalf("ListApproved failed: %v", err)
		}
		if len(assets) != 2 {
			t.Errorf("Expected 2 approved assets, got %d", len(assets))
		}
		for _, asset := range assets {
			if asset.IsApproved != model.ApprovalApproved {
				t.Errorf("Asset %s is not approved", asset.ID)
			}
		}
	})

	t.Run("ListApprovedByCategory", func(t *testing.T) {
		assets, err := dao.ListApproved(ctx, db, &photos.ID)
		if err != nil {
			t.Fatalf("ListApproved failed: %v", err)
		}
		if len(assets) != 2 {
			t.Errorf("Expected 2 approved photo assets, got %d", len(assets))
		}

		assets, err = dao.ListApproved(ctx, db, &icons.ID)
		if err != nil {
			t.Fatalf("ListApproved failed: %v", err)
		}
		if len(assets) != 0 {
			t.Errorf("Expected no approved icon assets, got %d", len(assets))
		}
	})

	t.Run("ListPending", func(t *testing.T) {
		assets, err := dao.ListPending(ctx, db)
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(assets) != 1 {
			t.Fatalf("Expected 1 pending asset, got %d", len(assets))
		}
		if assets[0].ID != a2.ID {
			t.Errorf("Expected pending asset %s, got %s", a2.ID, assets[0].ID)
		}
	})

	t.Run("Count", func(t *testing.T) {
		count, err := dao.Count(ctx, db)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 3 {
			t.Errorf("Expected 3 assets, got %d", count)
		}
	})
}

func TestAssetDAO_GetByID_NotFound(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewAssetDAO()

	_, err := dao.GetByID(context.Background(), db, "no-such-id")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected gorm.ErrRecordNotFound, got: %v", err)
	}
}
