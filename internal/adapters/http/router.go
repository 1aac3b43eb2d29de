// Package http is the inbound HTTP adapter: routes and server lifecycle.
package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
)

// NewRouter mounts the probes and the /api/v1 project routes behind the
// given middleware, outermost first.
func NewRouter(
	projects *handlers.ProjectHandler,
	todos *handlers.TodoHandler,
	health *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteErrorResponse(w, req, fmt.Errorf("no route for %s: %w", req.URL.Path, domain.ErrNotFound))
	})

	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/todos", todos.SearchTodos)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projects.ListProjects)
			r.Post("/", projects.CreateProject)

			r.Get("/{id}", projects.GetProject)
			r.Patch("/{id}", projects.UpdateProject)
			r.Delete("/{id}", projects.DeleteProject)
			r.Post("/{id}/complete", projects.CompleteProject)

			// Todos are only written through the project that owns them.
			r.Route("/{projectId}/todos", func(r chi.Router) {
				r.Post("/", projects.AddProjectTodo)
				r.Patch("/bulk", projects.BulkUpdateProjectTodos)
				r.Patch("/{todoId}", projects.UpdateProjectTodo)
				r.Delete("/{todoId}", projects.RemoveProjectTodo)
			})
		})
	})

	return r
}
