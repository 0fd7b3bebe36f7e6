package models

import "time"

// Note is a free-form text owned by exactly one user.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// NoteCreate is the payload for creating a note.
type NoteCreate struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// NoteUpdate is a partial update of a note.
type NoteUpdate struct {
	Content *string `json:"content,omitempty" validate:"omitempty,max=10000"`
}

// IsEmpty reports whether the update carries no fields.
func (u NoteUpdate) IsEmpty() bool {
	return u.Content == nil
}
