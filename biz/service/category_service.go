package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixeldock/pixeldock/biz/dal/model"
	"github.com/pixeldock/pixeldock/pkg/session"
	"github.com/pixeldock/pixeldock/pkg/validator"

	"gorm.io/gorm"
)

// CategoryView is the response shape for category listings.
type CategoryView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AddCategory creates a new category. Admin only.
func (s *Service) AddCategory(ctx context.Context, sess *session.Session, name string) (*CategoryView, error) {
	if _, err := session.Require(sess, session.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validator.ValidateCategoryName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	exists, err := s.logic.categoryDAO.ExistsByName(ctx, s.logic.db, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: category %q", ErrDuplicate, name)
	}

	entity := &model.Category{Name: name}
	if err := s.logic.categoryDAO.Create(ctx, s.logic.db, entity); err != nil {
		// Lost the race between the existence check and the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category %q", ErrDuplicate, name)
		}
		return nil, err
	}

	s.views.Invalidate(ctx, "admin/settings")
	return &CategoryView{ID: entity.ID, Name: entity.Name}, nil
}

// DeleteCategory removes a category unconditionally. Admin only. Assets
// referencing the category keep their category_id; reads resolve it to a
// null name.
func (s *Service) DeleteCategory(ctx context.Context, sess *session.Session, id uint) error {
	if _, err := session.Require(sess, session.RoleAdmin); err != nil {
		return err
	}

	if err := s.logic.categoryDAO.Delete(ctx, s.logic.db, id); err != nil {
		return err
	}

	s.views.Invalidate(ctx, "admin/settings")
	return nil
}

// ListCategoriesAdmin returns all categories ordered by name. Admin only.
func (s *Service) ListCategoriesAdmin(ctx context.Context, sess *session.Session) ([]CategoryView, error) {
	if _, err := session.Require(sess, session.RoleAdmin); err != nil {
		return nil, err
	}
	entities, err := s.logic.categoryDAO.ListOrderedByName(ctx, s.logic.db)
	if err != nil {
		return nil, err
	}
	return categorySliceToView(entities), nil
}

// ListCategoriesPublic returns all categories for the public gallery filter.
func (s *Service) ListCategoriesPublic(ctx context.Context) ([]CategoryView, error) {
	entities, err := s.logic.categoryDAO.List(ctx, s.logic.db)
	if err != nil {
		return nil, err
	}
	return categorySliceToView(entities), nil
}

func categorySliceToView(categories []model.Category) []CategoryView {
	list := make([]CategoryView, 0, len(categories))
	for i := range categories {
		list = append(list, CategoryView{ID: categories[i].ID, Name: categories[i].Name})
	}
	return list
}
