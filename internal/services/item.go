package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
	"shared-lists/internal/store"
)

// ItemService manages list items. An item is effectively a tagged union keyed
// by the owning list's type: image_count items carry amount and an optional
// image, check items carry the checked flag. validateFields enforces the
// split at every attach point.
type ItemService struct {
	store         store.Store
	images        *ImageService
	notifications *NotificationService
	log           *zap.Logger
}

func NewItemService(st store.Store, images *ImageService, notifications *NotificationService, log *zap.Logger) *ItemService {
	return &ItemService{store: st, images: images, notifications: notifications, log: log}
}

func validateFields(listType string, amount *int, checked *bool, hasImage bool) error {
	if listType == models.ListTypeImageCount && checked != nil {
		return apperr.InvalidArgument("Checked field is only for check lists")
	}
	if listType == models.ListTypeCheck && (amount != nil || hasImage) {
		return apperr.InvalidArgument("Amount and image fields are only for image_count lists")
	}
	return nil
}

func (s *ItemService) Create(ctx context.Context, listID string, req models.CreateItemRequest, upload *models.ImageUpload) (*models.Item, error) {
	list, err := s.store.ListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("List not found")
		}
		return nil, err
	}
	if err := validateFields(list.Type, req.Amount, req.Checked, upload != nil); err != nil {
		return nil, err
	}

	item := &models.Item{
		ID:        uuid.NewString(),
		ListID:    list.ID,
		Title:     req.Title,
		CreatedAt: time.Now().UTC(),
	}
	switch list.Type {
	case models.ListTypeImageCount:
		amount := 1
		if req.Amount != nil {
			amount = *req.Amount
		}
		item.Amount = &amount
	case models.ListTypeCheck:
		checked := false
		if req.Checked != nil {
			checked = *req.Checked
		}
		item.Checked = &checked
	}

	if req.CategoryID != "" {
		category, err := s.store.CategoryByID(ctx, listID, req.CategoryID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperr.NotFound("Category not found")
			}
			return nil, err
		}
		item.CategoryID = &category.ID
	}

	if upload != nil {
		image, err := s.images.Store(ctx, *upload)
		if err != nil {
			return nil, err
		}
		item.ImageID = &image.ID
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.log.Info("item created",
		zap.String("list_id", list.ID),
		zap.String("item_id", item.ID))

	// Item mutations notify every member, the actor included.
	message := fmt.Sprintf("Item %s added to list %s", item.Title, list.Title)
	if err := s.notifications.NotifyMembers(ctx, list, "", message); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, listID, itemID string) (*models.Item, error) {
	item, err := s.store.ItemByID(ctx, listID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Item not found")
		}
		return nil, err
	}
	return item, nil
}

// applyUpdate patches item in place from req. Present-but-falsy values
// (amount 0, checked false) still apply; only omitted fields are untouched.
func (s *ItemService) applyUpdate(ctx context.Context, item *models.Item, req models.UpdateItemRequest) error {
	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Amount != nil {
		amount := *req.Amount
		item.Amount = &amount
	}
	if req.Checked != nil {
		checked := *req.Checked
		item.Checked = &checked
	}
	if req.CategoryID != "" {
		category, err := s.store.CategoryByID(ctx, item.ListID, req.CategoryID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.NotFound("Category not found")
			}
			return err
		}
		item.CategoryID = &category.ID
	}
	return nil
}

func (s *ItemService) Update(ctx context.Context, listID, itemID string, req models.UpdateItemRequest, upload *models.ImageUpload) (*models.Item, error) {
	item, err := s.Get(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}
	list, err := s.store.ListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("List not found")
		}
		return nil, err
	}
	// Validated against the current list type, not the type at item creation.
	if err := validateFields(list.Type, req.Amount, req.Checked, upload != nil); err != nil {
		return nil, err
	}
	if err := s.applyUpdate(ctx, item, req); err != nil {
		return nil, err
	}
	if upload != nil {
		image, err := s.images.Store(ctx, *upload)
		if err != nil {
			return nil, err
		}
		item.ImageID = &image.ID
	}
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Item %s updated in list %s", item.Title, list.Title)
	if err := s.notifications.NotifyMembers(ctx, list, "", message); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, listID, itemID string) error {
	item, err := s.Get(ctx, listID, itemID)
	if err != nil {
		return err
	}
	list, err := s.store.ListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("List not found")
		}
		return err
	}
	if err := s.store.DeleteItem(ctx, listID, itemID); err != nil {
		return err
	}
	s.log.Info("item deleted",
		zap.String("list_id", listID),
		zap.String("item_id", itemID))

	message := fmt.Sprintf("Item %s removed from list %s", item.Title, list.Title)
	return s.notifications.NotifyMembers(ctx, list, "", message)
}

// BulkUpdate processes each entry independently: a bad entry produces a
// per-entry error result and never aborts the rest. Results come back one per
// input entry, in input order.
func (s *ItemService) BulkUpdate(ctx context.Context, listID string, entries []models.BulkUpdateEntry) ([]models.BulkItemResult, error) {
	list, err := s.store.ListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("List not found")
		}
		return nil, err
	}

	results := make([]models.BulkItemResult, 0, len(entries))
	for _, entry := range entries {
		item, err := s.store.ItemByID(ctx, listID, entry.ItemID)
		if err != nil {
			results = append(results, models.BulkItemResult{ItemID: entry.ItemID, Error: "Item not found"})
			continue
		}
		if err := validateFields(list.Type, entry.Data.Amount, entry.Data.Checked, false); err != nil {
			results = append(results, models.BulkItemResult{ItemID: entry.ItemID, Error: err.Error()})
			continue
		}
		if err := s.applyUpdate(ctx, item, entry.Data); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				results = append(results, models.BulkItemResult{ItemID: entry.ItemID, Error: "Category not found"})
				continue
			}
			return nil, err
		}
		if err := s.store.UpdateItem(ctx, item); err != nil {
			return nil, err
		}
		results = append(results, models.BulkItemResult{ItemID: entry.ItemID, Status: "updated", Item: item})

		message := fmt.Sprintf("Item %s updated in list %s", item.Title, list.Title)
		if err := s.notifications.NotifyMembers(ctx, list, "", message); err != nil {
			return nil, err
		}
	}
	return results, nil
}
