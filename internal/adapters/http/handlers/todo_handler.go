package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// TodoHandler handles the cross-project todo search. Writes go through
// the owning project (ProjectHandler).
type TodoHandler struct {
	svc ports.ProjectService
}

// NewTodoHandler creates a new TodoHandler with the given service port.
func NewTodoHandler(svc ports.ProjectService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// SearchTodos handles GET /api/v1/todos with optional status, category and
// project_id query parameters.
func (h *TodoHandler) SearchTodos(w http.ResponseWriter, r *http.Request) {
	filter, err := dto.ParseTodoFilter(r.URL.Query())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	todos, err := h.svc.SearchTodos(r.Context(), filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToTodoListResponse(todos))
}
