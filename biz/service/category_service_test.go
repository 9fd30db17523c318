package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pixeldock/pixeldock/biz/dal/db"
	"github.com/pixeldock/pixeldock/biz/dal/model"
	"github.com/pixeldock/pixeldock/pkg/session"
)

func TestService_AddCategory(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	admin := db.CreateTestUser(t, conn, "admin", model.RoleAdmin)
	regular := db.CreateTestUser(t, conn, "regular", model.RoleUser)

	t.Run("Success", func(t *testing.T) {
		created, err := svc.AddCategory(ctx, userSession(admin), "Photography")
		if err != nil {
			t.Fatalf("AddCategory failed: %v", err)
		}
		if created.ID == 0 {
			t.Error("Expected category ID to be set")
		}
		if created.Name != "Photography" {
			t.Errorf("Expected name 'Photography', got '%s'", created.Name)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := svc.AddCategory(ctx, nil, "Anonymous")
		if !errors.Is(err, session.ErrNotAuthenticated) {
			t.Errorf("Expected ErrNotAuthenticated, got: %v", err)
		}
	})

	t.Run("NonAdminRefusedWithoutWrite", func(t *testing.T) {
		_, err := svc.AddCategory(ctx, userSession(regular), "Sneaky")
		if !errors.Is(err, session.ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got: %v", err)
		}

		exists, err := db.NewCategoryDAO().ExistsByName(ctx, conn, "Sneaky")
		if err != nil {
			t.Fatalf("ExistsByName failed: %v", err)
		}
		if exists {
			t.Error("Refused operation must not write")
		}
	})

	t.Run("TooShort", func(t *testing.T) {
		_, err := svc.AddCategory(ctx, userSession(admin), "X")
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Expected ErrValidation, got: %v", err)
		}
	})

	t.Run("TooLong", func(t *testing.T) {
		_, err := svc.AddCategory(ctx, userSession(admin), strings.Repeat("a", 51))
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Expected ErrValidation, got: %v", err)
		}
	})

	t.Run("BoundaryLengths", func(t *testing.T) {
		if _, err := svc.AddCategory(ctx, userSession(admin), "ab"); err != nil {
			t.Errorf("2-char name should be valid: %v", err)
		}
		if _, err := svc.AddCategory(ctx, userSession(admin), strings.Repeat("b", 50)); err != nil {
			t.Errorf("50-char name should be valid: %v", err)
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := svc.AddCategory(ctx, userSession(admin), "Photography")
		if !errors.Is(err, ErrDuplicate) {
			t.Errorf("Expected ErrDuplicate, got: %v", err)
		}
	})
}

func TestService_DeleteCategory(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	admin := db.CreateTestUser(t, conn, "admin-del", model.RoleAdmin)
	regular := db.CreateTestUser(t, conn, "regular-del", model.RoleUser)

	t.Run("NonAdminRefused", func(t *testing.T) {
		category := db.CreateTestCategory(t, conn, "Protected")
		err := svc.DeleteCategory(ctx, userSession(regular), category.ID)
		if !errors.Is(err, session.ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got: %v", err)
		}
	})

	t.Run("UnconditionalDelete", func(t *testing.T) {
		category := db.CreateTestCategory(t, conn, "Referenced")
		uploader := db.CreateTestUser(t, conn, "uploader-del", model.RoleUser)
		asset := db.CreateTestAsset(t, conn, uploader.ID, category.ID, "keeps-ref")

		// Delete succeeds even though an asset references the category
		if err := svc.DeleteCategory(ctx, userSession(admin), category.ID); err != nil {
			t.Fatalf("DeleteCategory failed: %v", err)
		}

		// The asset reads back with a null category name
		view, err := svc.GetAssetByID(ctx, asset.ID)
		if err != nil {
			t.Fatalf("GetAssetByID failed: %v", err)
		}
		if view.CategoryName != nil {
			t.Errorf("Expected null category name, got %q", *view.CategoryName)
		}
		if view.CategoryID != category.ID {
			t.Errorf("Expected dangling category_id %d, got %d", category.ID, view.CategoryID)
		}
	})

	t.Run("MissingCategory", func(t *testing.T) {
		if err := svc.DeleteCategory(ctx, userSession(admin), 99999); err != nil {
			t.Errorf("Deleting a missing category should not fail: %v", err)
		}
	})
}

func TestService_ListCategories(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	admin := db.CreateTestUser(t, conn, "admin-list", model.RoleAdmin)
	regular := db.CreateTestUser(t, conn, "regular-list", model.RoleUser)

	db.CreateTestCategory(t, conn, "Zulu")
	db.CreateTestCategory(t, conn, "Alpha")

	t.Run("AdminOrderedByName", func(t *testing.T) {
		categories, err := svc.ListCategoriesAdmin(ctx, userSession(admin))
		if err != nil {
			t.Fatalf("ListCategoriesAdmin failed: %v", err)
		}
		if len(categories) != 2 {
			t.Fatalf("Expected 2 categories, got %d", len(categories))
		}
		if categories[0].Name != "Alpha" || categories[1].Name != "Zulu" {
			t.Error("Expected categories ordered by name")
		}
	})

	t.Run("AdminListRequiresAdmin", func(t *testing.T) {
		_, err := svc.ListCategoriesAdmin(ctx, userSession(regular))
		if !errors.Is(err, session.ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got: %v", err)
		}
	})

	t.Run("PublicListOpen", func(t *testing.T) {
		categories, err := svc.ListCategoriesPublic(ctx)
		if err != nil {
			t.Fatalf("ListCategoriesPublic failed: %v", err)
		}
		if len(categories) != 2 {
			t.Errorf("Expected 2 categories, got %d", len(categories))
		}
	})
}
