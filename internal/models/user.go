package models

import "time"

type User struct {
	ID             string    `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	ProfileImageID *string   `json:"profile_image_id,omitempty" db:"profile_image_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	// Hydrated relation: lists the user is a member of.
	Lists []List `json:"lists,omitempty"`
}

type CreateUserRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
}

type UpdateUserRequest struct {
	Username string `json:"username" form:"username" validate:"omitempty,min=3,max=50"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
}
