package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
	"shared-lists/internal/store"
)

// CategoryService manages the named buckets of image_count lists and guards
// the protected default category.
type CategoryService struct {
	store store.Store
	log   *zap.Logger
}

func NewCategoryService(st store.Store, log *zap.Logger) *CategoryService {
	return &CategoryService{store: st, log: log}
}

func (s *CategoryService) Create(ctx context.Context, listID string, req models.CreateCategoryRequest) (*models.Category, error) {
	list, err := s.store.ListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("List not found")
		}
		return nil, err
	}
	if list.Type != models.ListTypeImageCount {
		return nil, apperr.InvalidArgument("Categories are only for image_count lists")
	}

	category := &models.Category{
		ID:        uuid.NewString(),
		ListID:    list.ID,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.log.Info("category created",
		zap.String("list_id", list.ID),
		zap.String("category_id", category.ID))
	return category, nil
}

// Get is list-scoped: a category id that belongs to another list is NotFound.
func (s *CategoryService) Get(ctx context.Context, listID, categoryID string) (*models.Category, error) {
	category, err := s.store.CategoryByID(ctx, listID, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, listID, categoryID string, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.Get(ctx, listID, categoryID)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, listID, categoryID string) error {
	category, err := s.Get(ctx, listID, categoryID)
	if err != nil {
		return err
	}
	if category.Name == models.DefaultCategoryName {
		return apperr.InvalidArgument("Cannot delete default category")
	}
	if err := s.store.DeleteCategory(ctx, listID, categoryID); err != nil {
		return err
	}
	s.log.Info("category deleted",
		zap.String("list_id", listID),
		zap.String("category_id", categoryID))
	return nil
}
