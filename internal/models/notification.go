package models

import "time"

// Notification is immutable after creation: never updated, only listed per
// user in reverse-chronological order.
type Notification struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ListID    *string   `json:"list_id,omitempty" db:"list_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// List context, embedded when ListID is set and the list still exists.
	List *ListRef `json:"list,omitempty"`
}

// ListRef is the slim list context attached to a notification.
type ListRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}
