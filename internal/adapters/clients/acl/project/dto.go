// Package project is the records API's group resource, which stores our
// projects. Todos live in the todo package and point back by group_id.
package project

// Group is a group as the records API returns it.
type Group struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// List is the body of GET /api/v1/groups.
type List struct {
	Groups []Group `json:"groups"`
	Count  int64   `json:"count"`
}

// CreateRequest is the body of POST /api/v1/groups.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateRequest is the body of PUT /api/v1/groups/{id}. Nil fields are
// left unchanged.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
