package dto

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

const (
	msgUnknownField = "is not a known field"
	msgNotObject    = "must be an object"
	msgNotArray     = "must be an array"
)

// MaxBulkUpdates bounds the number of updates in a single bulk request.
const MaxBulkUpdates = 100

var (
	projectFields = []string{"id", "name", "description", "todos"}
	todoFields    = []string{"id", "title", "description", "status", "category", "progress_percent"}
)

// checkFields records every key of body that is not in allowed. The models
// ignore read-only keys such as id; keys they do not know at all are
// rejected here so typos do not pass silently.
func checkFields(prefix string, body map[string]any, allowed []string, fields map[string]string) {
	for k := range body {
		if !slices.Contains(allowed, k) {
			fields[prefix+k] = msgUnknownField
		}
	}
}

func checkTodo(prefix string, body map[string]any, fields map[string]string) {
	checkFields(prefix, body, todoFields, fields)
}

func validationResult(fields map[string]string) error {
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ProjectRequest is the JSON body for creating or updating a project: the
// project's client shape, optionally with its todos under "todos". Field
// values are checked by the project rules, not here.
type ProjectRequest map[string]any

// Validate rejects unknown fields and a malformed todos array.
// Returns a *domain.ValidationError if any checks fail.
func (r *ProjectRequest) Validate() error {
	fields := make(map[string]string)
	body := map[string]any(*r)
	checkFields("", body, projectFields, fields)

	if raw, ok := body["todos"]; ok && raw != nil {
		items, ok := raw.([]any)
		if !ok {
			fields["todos"] = msgNotArray
		}
		for i, it := range items {
			m, ok := it.(map[string]any)
			if !ok {
				fields[fmt.Sprintf("todos[%d]", i)] = msgNotObject
				continue
			}
			checkTodo(fmt.Sprintf("todos[%d].", i), m, fields)
		}
	}
	return validationResult(fields)
}

// CTO returns the request as the project's client shape.
func (r ProjectRequest) CTO() ports.CTO { return ports.CTO(r) }

// TodoRequest is the JSON body for creating or updating a todo.
type TodoRequest map[string]any

// Validate rejects unknown fields.
// Returns a *domain.ValidationError if any checks fail.
func (r *TodoRequest) Validate() error {
	fields := make(map[string]string)
	checkTodo("", map[string]any(*r), fields)
	return validationResult(fields)
}

// CTO returns the request as the todo's client shape.
func (r TodoRequest) CTO() ports.CTO { return ports.CTO(r) }

// BulkTodoUpdate is one entry of a bulk update request.
type BulkTodoUpdate struct {
	TodoID int64       `json:"todo_id"`
	Values TodoRequest `json:"values"`
}

// BulkUpdateTodosRequest is the JSON body for updating several todos of a
// project at once.
type BulkUpdateTodosRequest struct {
	Updates []BulkTodoUpdate `json:"updates"`
}

// Validate checks the update count, the todo IDs and each entry's fields.
// Returns a *domain.ValidationError if any checks fail.
func (r *BulkUpdateTodosRequest) Validate() error {
	fields := make(map[string]string)

	switch n := len(r.Updates); {
	case n == 0:
		fields["updates"] = "must contain at least one update"
	case n > MaxBulkUpdates:
		fields["updates"] = fmt.Sprintf("must contain at most %d updates, got %d", MaxBulkUpdates, n)
	}

	seen := make(map[int64]bool, len(r.Updates))
	for i, u := range r.Updates {
		prefix := fmt.Sprintf("updates[%d].", i)
		if u.TodoID <= 0 {
			fields[prefix+"todo_id"] = "must be a positive integer"
		} else if seen[u.TodoID] {
			fields[prefix+"todo_id"] = fmt.Sprintf("duplicate todo_id %d", u.TodoID)
		}
		seen[u.TodoID] = true
		if len(u.Values) == 0 {
			fields[prefix+"values"] = "must not be empty"
		}
		checkTodo(prefix+"values.", u.Values, fields)
	}
	return validationResult(fields)
}

// ToTodoUpdates converts the request entries to service updates.
func (r *BulkUpdateTodosRequest) ToTodoUpdates() []ports.TodoUpdate {
	out := make([]ports.TodoUpdate, len(r.Updates))
	for i, u := range r.Updates {
		out[i] = ports.TodoUpdate{TodoID: u.TodoID, Values: u.Values.CTO()}
	}
	return out
}

// ParseTodoFilter reads the todo search criteria from query parameters
// status, category and project_id. Absent parameters do not filter.
func ParseTodoFilter(q url.Values) (domain.TodoFilter, error) {
	var f domain.TodoFilter
	fields := make(map[string]string)

	if s := q.Get("status"); s != "" {
		if st := domain.TodoStatus(s); st.IsValid() {
			f.Status = st
		} else {
			fields["status"] = fmt.Sprintf("invalid: %q", s)
		}
	}
	if c := q.Get("category"); c != "" {
		if cat := domain.TodoCategory(c); cat.IsValid() {
			f.Category = cat
		} else {
			fields["category"] = fmt.Sprintf("invalid: %q", c)
		}
	}
	if p := q.Get("project_id"); p != "" {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			fields["project_id"] = "must be a positive integer"
		} else {
			f.ProjectID = &id
		}
	}

	if err := validationResult(fields); err != nil {
		return domain.TodoFilter{}, err
	}
	return f, nil
}
