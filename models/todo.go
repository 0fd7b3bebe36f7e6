package models

import "time"

// Todo is a task owned by exactly one user.
type Todo struct {
	ID int64 `json:"id"`

	// UserID is the owner. Set at creation from the resolved identity and
	// never changed afterwards.
	UserID int64 `json:"user_id"`

	Task      string    `json:"task"`
	DueDate   *Date     `json:"due_date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Todo model.
func (t Todo) TableName() string {
	return "todos"
}

// TodoCreate is the payload for creating a todo.
type TodoCreate struct {
	Task    string `json:"task" validate:"required,max=500"`
	DueDate *Date  `json:"due_date,omitempty"`
}

// TodoUpdate is a partial update of a todo.
// Only fields present in the payload are applied; the rest keep their stored
// values. "due_date": null removes the due date.
type TodoUpdate struct {
	Task      *string      `json:"task,omitempty" validate:"omitempty,min=1,max=500"`
	DueDate   OptionalDate `json:"due_date,omitzero"`
	Completed *bool        `json:"completed,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u TodoUpdate) IsEmpty() bool {
	return u.Task == nil && !u.DueDate.Set && u.Completed == nil
}
