// Package handlers translates HTTP requests into ProjectService calls.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// ProjectHandler serves the project root and the todos it owns.
type ProjectHandler struct {
	svc ports.ProjectService
}

func NewProjectHandler(svc ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// ListProjects handles GET /api/v1/projects?q=name.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, dto.ToProjectListResponse(projects))
}

// CreateProject handles POST /api/v1/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.ProjectRequest
	if !bind(w, r, &req) {
		return
	}
	created, err := h.svc.CreateProject(r.Context(), req.CTO())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, created)
}

// GetProject handles GET /api/v1/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	p, err := h.svc.GetProject(r.Context(), ids[0])
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, p)
}

// UpdateProject handles PATCH /api/v1/projects/{id}. A "todos" array
// replaces the project's todos, matched by id.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	var req dto.ProjectRequest
	if !bind(w, r, &req) {
		return
	}
	updated, err := h.svc.UpdateProject(r.Context(), ids[0], req.CTO())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, updated)
}

// DeleteProject handles DELETE /api/v1/projects/{id}.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id")
	if err == nil {
		err = h.svc.DeleteProject(r.Context(), ids[0])
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteProject handles POST /api/v1/projects/{id}/complete.
func (h *ProjectHandler) CompleteProject(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	result, err := h.svc.CompleteProject(r.Context(), ids[0])
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

// AddProjectTodo handles POST /api/v1/projects/{projectId}/todos.
func (h *ProjectHandler) AddProjectTodo(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "projectId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	var req dto.TodoRequest
	if !bind(w, r, &req) {
		return
	}
	created, err := h.svc.AddTodo(r.Context(), ids[0], req.CTO())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, created)
}

// UpdateProjectTodo handles PATCH /api/v1/projects/{projectId}/todos/{todoId}.
func (h *ProjectHandler) UpdateProjectTodo(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "projectId", "todoId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	var req dto.TodoRequest
	if !bind(w, r, &req) {
		return
	}
	updated, err := h.svc.UpdateTodo(r.Context(), ids[0], ids[1], req.CTO())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, updated)
}

// RemoveProjectTodo handles DELETE /api/v1/projects/{projectId}/todos/{todoId}.
func (h *ProjectHandler) RemoveProjectTodo(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "projectId", "todoId")
	if err == nil {
		err = h.svc.RemoveTodo(r.Context(), ids[0], ids[1])
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkUpdateProjectTodos handles PATCH /api/v1/projects/{projectId}/todos/bulk.
func (h *ProjectHandler) BulkUpdateProjectTodos(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "projectId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	var req dto.BulkUpdateTodosRequest
	if !bind(w, r, &req) {
		return
	}
	result, err := h.svc.BulkUpdateTodos(r.Context(), ids[0], req.ToTodoUpdates())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, dto.ToBulkUpdateResponse(result))
}
