package models

import "time"

// Image is an opaque blob plus MIME type. Referenced by id from items and
// user profiles; orphaned blobs are never garbage-collected.
type Image struct {
	ID        string    `json:"id" db:"id"`
	Data      []byte    `json:"-" db:"data"`
	MimeType  string    `json:"mime_type" db:"mime_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ImageUpload is an incoming binary attachment before it is stored.
type ImageUpload struct {
	Data     []byte
	MimeType string
}
