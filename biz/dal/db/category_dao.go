package db

import (
	"context"
	"errors"

	"github.com/pixeldock/pixeldock/biz/dal/model"
	"gorm.io/gorm"
)

// CategoryDAO wraps basic CRUD operations for the category vocabulary.
type CategoryDAO struct{}

func NewCategoryDAO() *CategoryDAO { return &CategoryDAO{} }

// Create persists a new category.
func (dao *CategoryDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Category) error {
	if entity == nil {
		return errors.New("category must not be nil")
	}
	if entity.Name == "" {
		return errors.New("category name is required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// Delete removes a category by id. Deletion is unconditional: assets keep
// their category_id and readers resolve it to a null name.
func (dao *CategoryDAO) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{}).Error
}

// GetByName fetches a category by exact, case-sensitive name match.
func (dao *CategoryDAO) GetByName(ctx context.Context, db *gorm.DB, name string) (*model.Category, error) {
	var entity model.Category
	if err := db.WithContext(ctx).Where("name = ?", name).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByIDs fetches categories for the given ids.
func (dao *CategoryDAO) GetByIDs(ctx context.Context, db *gorm.DB, ids []uint) ([]model.Category, error) {
	var entities []model.Category
	if len(ids) == 0 {
		return entities, nil
	}
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// List returns all categories in storage order.
func (dao *CategoryDAO) List(ctx context.Context, db *gorm.DB) ([]model.Category, error) {
	var entities []model.Category
	if err := db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// ListOrderedByName returns all categories ordered by name, as shown in the
// admin settings view.
func (dao *CategoryDAO) ListOrderedByName(ctx context.Context, db *gorm.DB) ([]model.Category, error) {
	var entities []model.Category
	if err := db.WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// ExistsByName checks for an exact-name category.
func (dao *CategoryDAO) ExistsByName(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.Category{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
