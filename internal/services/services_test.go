package services

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"shared-lists/internal/models"
	"shared-lists/internal/store/memory"
)

type testEnv struct {
	store         *memory.Store
	users         *UserService
	lists         *ListService
	categories    *CategoryService
	items         *ItemService
	notifications *NotificationService
	images        *ImageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := memory.New()
	logger := zap.NewNop()
	images := NewImageService(st)
	notifications := NewNotificationService(st, logger)
	return &testEnv{
		store:         st,
		users:         NewUserService(st, images, logger),
		lists:         NewListService(st, notifications, logger),
		categories:    NewCategoryService(st, logger),
		items:         NewItemService(st, images, notifications, logger),
		notifications: notifications,
		images:        images,
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), models.CreateUserRequest{Username: username}, nil)
	if err != nil {
		t.Fatalf("createUser(%q): %v", username, err)
	}
	return user
}

func (e *testEnv) createList(t *testing.T, title, listType, creatorID string) *models.List {
	t.Helper()
	list, err := e.lists.Create(context.Background(), models.CreateListRequest{
		Title:     title,
		Type:      listType,
		CreatorID: creatorID,
	})
	if err != nil {
		t.Fatalf("createList(%q): %v", title, err)
	}
	return list
}

func (e *testEnv) feed(t *testing.T, userID string) []models.Notification {
	t.Helper()
	notifications, err := e.notifications.ListForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListForUser(%q): %v", userID, err)
	}
	return notifications
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
