package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// PostDB represents a post row in the database
type PostDB struct {
	PostID    int64     `json:"id" db:"post_id"`            // Serial primary key
	Title     string    `json:"title" db:"title"`           // Post title
	Content   string    `json:"content" db:"content"`       // Post body
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // Owner, fixed at creation
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last edit timestamp
}

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title   string
	Content string
}

// Validate checks the editable fields before they reach the store.
func (p PostInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Content, validation.Required),
	)
}
