package ports

import (
	"context"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
)

// CTO is the client shape of a model: property name to value, children
// nested under their property names. Handlers decode request bodies into
// CTOs and encode CTOs as responses.
type CTO = map[string]any

// ProjectService is what the HTTP handlers drive the project models
// through. Every call acts for the user on ctx (rules.WithUser).
//
// A model that is not savable comes back as *rules.BrokenRulesError
// (errors.Is domain.ErrValidation); a denied caller gets
// domain.ErrForbidden; an unknown id gets domain.ErrNotFound.
type ProjectService interface {
	// ListProjects returns project summaries whose name contains query.
	// An empty query lists every project.
	ListProjects(ctx context.Context, query string) ([]CTO, error)

	// GetProject returns the project with its todos.
	GetProject(ctx context.Context, id int64) (CTO, error)

	// CreateProject creates a project, and any todos nested under "todos",
	// and returns it with server-assigned fields (IDs, timestamps).
	CreateProject(ctx context.Context, cto CTO) (CTO, error)

	// UpdateProject applies cto to an existing project. When cto carries
	// "todos" the project's todos are reconciled with it by id: matched
	// todos are updated, new ones added and missing ones removed.
	UpdateProject(ctx context.Context, id int64, cto CTO) (CTO, error)

	// DeleteProject removes the project; its todos cascade.
	DeleteProject(ctx context.Context, id int64) error

	// AddTodo appends a todo to the project and saves the project.
	AddTodo(ctx context.Context, projectID int64, cto CTO) (CTO, error)

	// UpdateTodo applies cto to one todo of the project.
	UpdateTodo(ctx context.Context, projectID, todoID int64, cto CTO) (CTO, error)

	// RemoveTodo marks one todo for removal and saves the project.
	RemoveTodo(ctx context.Context, projectID, todoID int64) error

	// BulkUpdateTodos applies each update on its own; one bad update does not
	// stop the others. Only a missing or forbidden project fails the whole
	// call. Per-todo failures land in BulkUpdateResult.Errors.
	BulkUpdateTodos(ctx context.Context, projectID int64, updates []TodoUpdate) (*BulkUpdateResult, error)

	// CompleteProject marks every open todo of the project done and returns
	// the command result: the number of todos completed and the project
	// summary.
	CompleteProject(ctx context.Context, projectID int64) (CTO, error)

	// SearchTodos returns the todos matching filter across all projects.
	SearchTodos(ctx context.Context, filter domain.TodoFilter) ([]CTO, error)
}

// TodoUpdate is one entry of a bulk update.
type TodoUpdate struct {
	TodoID int64
	Values CTO
}

// BulkUpdateError is a todo the bulk update could not change.
type BulkUpdateError struct {
	TodoID int64
	Err    error
}

// BulkUpdateResult splits a bulk update into the changed todos and the
// failures.
type BulkUpdateResult struct {
	Updated []CTO
	Errors  []BulkUpdateError
}
