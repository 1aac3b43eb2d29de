// Package todo is the records API's todo resource. A todo's group_id is the
// project that owns it.
package todo

// Todo is a todo as the records API returns it. Timestamps are RFC 3339.
type Todo struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	Category        string `json:"category"`
	ProgressPercent int64  `json:"progress_percent"`
	GroupID         *int64 `json:"group_id,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// List is the body of GET /api/v1/todos.
type List struct {
	Todos []Todo `json:"todos"`
	Count int64  `json:"count"`
}

// CreateRequest is the body of POST /api/v1/todos. Empty optional fields
// take the API's defaults.
type CreateRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status,omitempty"`
	Category        string `json:"category,omitempty"`
	ProgressPercent int64  `json:"progress_percent,omitempty"`
	GroupID         *int64 `json:"group_id,omitempty"`
}

// UpdateRequest is the body of PUT /api/v1/todos/{id}. A nil field is left
// unchanged by the API.
type UpdateRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	Status          *string `json:"status,omitempty"`
	Category        *string `json:"category,omitempty"`
	ProgressPercent *int64  `json:"progress_percent,omitempty"`
	GroupID         *int64  `json:"group_id,omitempty"`
}
