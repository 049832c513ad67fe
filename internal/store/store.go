// Package store defines the persistence boundary for the shared-list domain.
// Implementations provide per-row atomicity for individual writes; the one
// multi-row guarantee is DeleteListTree, which removes a list and everything
// under it leaves-first without leaving orphans.
package store

import (
	"context"
	"errors"

	"shared-lists/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist, or exists but
// is out of scope for the given parent (cross-list id).
var ErrNotFound = errors.New("not found")

type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	Users(ctx context.Context) ([]models.User, error)

	// Lists. Reads return the list hydrated with members, categories and
	// items.
	CreateList(ctx context.Context, list *models.List) error
	ListByID(ctx context.Context, id string) (*models.List, error)
	ListByShareCode(ctx context.Context, code string) (*models.List, error)
	Lists(ctx context.Context) ([]models.List, error)
	ListsForUser(ctx context.Context, userID string) ([]models.List, error)
	UpdateList(ctx context.Context, list *models.List) error

	// DeleteListTree removes, in dependency order, the list's notifications,
	// items, categories, membership links and finally the list row itself.
	// The whole cascade completes or the prior state remains observable.
	DeleteListTree(ctx context.Context, id string) error

	// Membership
	AddMember(ctx context.Context, listID, userID string) error
	RemoveMember(ctx context.Context, listID, userID string) error

	// Categories. Lookups are scoped: a category id must belong to the given
	// list or the result is ErrNotFound.
	CreateCategory(ctx context.Context, category *models.Category) error
	CategoryByID(ctx context.Context, listID, categoryID string) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, listID, categoryID string) error

	// Items, scoped like categories.
	CreateItem(ctx context.Context, item *models.Item) error
	ItemByID(ctx context.Context, listID, itemID string) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, listID, itemID string) error

	// Notifications
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
	NotificationsForUser(ctx context.Context, userID string) ([]models.Notification, error)

	// Images
	CreateImage(ctx context.Context, image *models.Image) error
	ImageByID(ctx context.Context, id string) (*models.Image, error)
}
