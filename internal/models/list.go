package models

import "time"

const (
	ListTypeImageCount = "image_count"
	ListTypeCheck      = "check"
)

// DefaultCategoryName is the protected category every image_count list is
// created with. It can never be deleted.
const DefaultCategoryName = "uncategorized"

func ValidListType(t string) bool {
	return t == ListTypeImageCount || t == ListTypeCheck
}

type List struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Type        string    `json:"type" db:"type"`
	ShareCode   string    `json:"share_code" db:"share_code"`
	CreatorID   string    `json:"creator_id" db:"creator_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Hydrated relations
	Members    []User     `json:"members,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Items      []Item     `json:"items,omitempty"`
}

// IsMember reports whether the hydrated member set contains userID.
func (l *List) IsMember(userID string) bool {
	for _, m := range l.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

type Category struct {
	ID        string    `json:"id" db:"id"`
	ListID    string    `json:"list_id" db:"list_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Item carries the type-dependent variant as nullable fields: amount and
// image_id are only ever set for items of image_count lists, checked only for
// items of check lists. The services enforce that split at every write.
type Item struct {
	ID         string    `json:"id" db:"id"`
	ListID     string    `json:"list_id" db:"list_id"`
	CategoryID *string   `json:"category_id,omitempty" db:"category_id"`
	Title      string    `json:"title" db:"title"`
	Amount     *int      `json:"amount,omitempty" db:"amount"`
	ImageID    *string   `json:"image_id,omitempty" db:"image_id"`
	Checked    *bool     `json:"checked,omitempty" db:"checked"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type CreateListRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" form:"description" validate:"max=2000"`
	Type        string `json:"type" form:"type" validate:"required"`
	CreatorID   string `json:"creator_id" form:"creator_id" validate:"required"`
}

type UpdateListRequest struct {
	Title       string `json:"title" validate:"omitempty,min=1,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type CreateItemRequest struct {
	Title      string `json:"title" form:"title" validate:"required,min=1,max=255"`
	Amount     *int   `json:"amount" form:"amount" validate:"omitempty,min=0"`
	Checked    *bool  `json:"checked" form:"checked"`
	CategoryID string `json:"category_id" form:"category_id"`
}

type UpdateItemRequest struct {
	Title      string `json:"title" form:"title" validate:"omitempty,min=1,max=255"`
	Amount     *int   `json:"amount" form:"amount" validate:"omitempty,min=0"`
	Checked    *bool  `json:"checked" form:"checked"`
	CategoryID string `json:"category_id" form:"category_id"`
}

type BulkUpdateEntry struct {
	ItemID string            `json:"item_id" validate:"required"`
	Data   UpdateItemRequest `json:"data"`
}

type BulkUpdateRequest struct {
	Items []BulkUpdateEntry `json:"items" validate:"required,dive"`
}

// BulkItemResult is one per-entry outcome of a bulk update, in input order.
// Either Status+Item or Error is set, never both.
type BulkItemResult struct {
	ItemID string `json:"item_id"`
	Status string `json:"status,omitempty"`
	Item   *Item  `json:"item,omitempty"`
	Error  string `json:"error,omitempty"`
}
