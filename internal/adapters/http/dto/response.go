// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
//
// Single objects travel in their client shape (ports.CTO) unchanged; the
// types here wrap lists and bulk results.
package dto

import (
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// ProjectListResponse represents a list of project summaries in HTTP responses.
type ProjectListResponse struct {
	Projects []ports.CTO `json:"projects"`
	Count    int         `json:"count"`
}

// ToProjectListResponse wraps project summaries. A nil slice becomes an
// empty JSON array.
func ToProjectListResponse(projects []ports.CTO) ProjectListResponse {
	if projects == nil {
		projects = []ports.CTO{}
	}
	return ProjectListResponse{Projects: projects, Count: len(projects)}
}

// TodoListResponse represents todo search results in HTTP responses.
type TodoListResponse struct {
	Todos []ports.CTO `json:"todos"`
	Count int         `json:"count"`
}

// ToTodoListResponse wraps todo search results.
func ToTodoListResponse(todos []ports.CTO) TodoListResponse {
	if todos == nil {
		todos = []ports.CTO{}
	}
	return TodoListResponse{Todos: todos, Count: len(todos)}
}

// BulkUpdateTodosResponse represents the result of a bulk update operation.
// It includes both successful updates and per-item errors.
type BulkUpdateTodosResponse struct {
	Updated   []ports.CTO           `json:"updated"`
	Errors    []BulkUpdateErrorItem `json:"errors"`
	Total     int                   `json:"total"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
}

// BulkUpdateErrorItem represents a single failed update within a bulk operation.
type BulkUpdateErrorItem struct {
	TodoID  int64  `json:"todo_id"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ToBulkUpdateResponse converts a ports.BulkUpdateResult to an HTTP response DTO.
func ToBulkUpdateResponse(result *ports.BulkUpdateResult) BulkUpdateTodosResponse {
	updated := result.Updated
	if updated == nil {
		updated = []ports.CTO{}
	}

	errs := make([]BulkUpdateErrorItem, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = BulkUpdateErrorItem{
			TodoID:  e.TodoID,
			Status:  StatusOf(e.Err),
			Message: e.Err.Error(),
		}
	}

	return BulkUpdateTodosResponse{
		Updated:   updated,
		Errors:    errs,
		Total:     len(result.Updated) + len(result.Errors),
		Succeeded: len(result.Updated),
		Failed:    len(result.Errors),
	}
}

// HealthResponse is the body of the liveness and readiness probes. Checks
// maps each backend to "ok" or its failure; Failing lists the failed
// backends in name order.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Failing []string          `json:"failing,omitempty"`
}
