package db

import (
	"context"

	"github.com/pixeldock/pixeldock/biz/dal/model"

	"gorm.io/gorm"
)

// UserDAO reads from the user table owned by the auth service. All methods
// are read-only.
type UserDAO struct{}

func NewUserDAO() *UserDAO { return &UserDAO{} }

// GetByID fetches a single user.
func (dao *UserDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.User, error) {
	var user model.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDs batch-fetches users keyed by ID. Missing IDs are simply absent
// from the result map.
func (dao *UserDAO) GetByIDs(ctx context.Context, db *gorm.DB, ids []string) (map[string]model.User, error) {
	result := make(map[string]model.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []model.User
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// Count returns the total number of registered users.
func (dao *UserDAO) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
