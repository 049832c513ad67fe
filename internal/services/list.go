package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
	"shared-lists/internal/store"
)

// ListService owns the list aggregate: creation with the type-dependent
// default category, membership, share-code lookup and the cascading delete.
type ListService struct {
	store         store.Store
	notifications *NotificationService
	log           *zap.Logger
}

func NewListService(st store.Store, notifications *NotificationService, log *zap.Logger) *ListService {
	return &ListService{store: st, notifications: notifications, log: log}
}

// newShareCode mints a 6-character lookup token. Not guaranteed unique by
// construction; the store resolves collisions oldest-first.
func newShareCode() string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}

func (s *ListService) Create(ctx context.Context, req models.CreateListRequest) (*models.List, error) {
	creator, err := s.store.UserByID(ctx, req.CreatorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Creator (user) not found")
		}
		return nil, err
	}
	if !models.ValidListType(req.Type) {
		return nil, apperr.InvalidArgument("Unknown list type %q", req.Type)
	}

	// Id assigned before the first persist so the default category and the
	// membership link can reference it in the same logical operation.
	list := &models.List{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		ShareCode:   newShareCode(),
		CreatorID:   creator.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, err
	}

	if list.Type == models.ListTypeImageCount {
		category := &models.Category{
			ID:        uuid.NewString(),
			ListID:    list.ID,
			Name:      models.DefaultCategoryName,
			CreatedAt: list.CreatedAt,
		}
		if err := s.store.CreateCategory(ctx, category); err != nil {
			return nil, err
		}
	}

	if err := s.store.AddMember(ctx, list.ID, creator.ID); err != nil {
		return nil, err
	}

	s.log.Info("list created",
		zap.String("list_id", list.ID),
		zap.String("type", list.Type),
		zap.String("creator_id", creator.ID))
	return s.Get(ctx, list.ID)
}

func (s *ListService) Get(ctx context.Context, id string) (*models.List, error) {
	list, err := s.store.ListByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("List not found")
		}
		return nil, err
	}
	return list, nil
}

func (s *ListService) GetByShareCode(ctx context.Context, code string) (*models.List, error) {
	list, err := s.store.ListByShareCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("List not found with provided share code")
		}
		return nil, err
	}
	return list, nil
}

func (s *ListService) List(ctx context.Context) ([]models.List, error) {
	lists, err := s.store.Lists(ctx)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []models.List{}
	}
	return lists, nil
}

// Update applies a partial update. Only non-empty fields overwrite; the list
// type is never mutable.
func (s *ListService) Update(ctx context.Context, id string, req models.UpdateListRequest) (*models.List, error) {
	list, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != "" {
		list.Title = req.Title
	}
	if req.Description != "" {
		list.Description = req.Description
	}
	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the list and everything under it. Only the creator may
// delete; the cascade is leaves-first and all-or-nothing.
func (s *ListService) Delete(ctx context.Context, id, requestingUserID string) error {
	list, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if list.CreatorID != requestingUserID {
		return apperr.Forbidden("Only the list creator can delete the list")
	}
	if err := s.store.DeleteListTree(ctx, id); err != nil {
		return err
	}
	s.log.Info("list deleted",
		zap.String("list_id", id),
		zap.String("requested_by", requestingUserID))
	return nil
}

// AddMember is idempotent: adding an existing member changes nothing and
// dispatches no notification.
func (s *ListService) AddMember(ctx context.Context, listID, userID string) (*models.List, error) {
	list, user, err := s.listAndUser(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	if list.IsMember(user.ID) {
		return list, nil
	}
	if err := s.store.AddMember(ctx, listID, user.ID); err != nil {
		return nil, err
	}
	list, err = s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}
	message := fmt.Sprintf("User %s joined list %s", user.Username, list.Title)
	if err := s.notifications.NotifyMembers(ctx, list, user.ID, message); err != nil {
		return nil, err
	}
	return list, nil
}

// RemoveMember removes the membership unconditionally and tells the remaining
// members. Administrative variant of Leave, with no creator guard.
func (s *ListService) RemoveMember(ctx context.Context, listID, userID string) (*models.List, error) {
	_, user, err := s.listAndUser(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	return s.removeMembership(ctx, listID, user)
}

// Leave is the self-service removal: the creator must delete instead, and a
// non-member cannot leave.
func (s *ListService) Leave(ctx context.Context, listID, userID string) (*models.List, error) {
	list, user, err := s.listAndUser(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	if list.CreatorID == user.ID {
		return nil, apperr.Forbidden("The list creator cannot leave the list")
	}
	if !list.IsMember(user.ID) {
		return nil, apperr.InvalidArgument("User is not a member of the list")
	}
	return s.removeMembership(ctx, listID, user)
}

func (s *ListService) removeMembership(ctx context.Context, listID string, user *models.User) (*models.List, error) {
	if err := s.store.RemoveMember(ctx, listID, user.ID); err != nil {
		return nil, err
	}
	list, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}
	message := fmt.Sprintf("User %s left list %s", user.Username, list.Title)
	if err := s.notifications.NotifyMembers(ctx, list, user.ID, message); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ListService) listAndUser(ctx context.Context, listID, userID string) (*models.List, *models.User, error) {
	list, err := s.store.ListByID(ctx, listID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, nil, err
	}
	user, uerr := s.store.UserByID(ctx, userID)
	if uerr != nil && !errors.Is(uerr, store.ErrNotFound) {
		return nil, nil, uerr
	}
	if list == nil || user == nil {
		return nil, nil, apperr.NotFound("List or user not found")
	}
	return list, user, nil
}
