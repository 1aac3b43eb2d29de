// Package app provides application services that orchestrate use cases by
// coordinating between the business objects and infrastructure through
// port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/go-business-objects/internal/app/fanout"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/model"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/project"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/todo"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// Compile-time check that ProjectService implements ports.ProjectService.
var _ ports.ProjectService = (*ProjectService)(nil)

// ProjectService implements ports.ProjectService on top of the project
// models. Every call builds its instances from an Env acting for the user
// in ctx; the models enforce rules and persistence, the service turns
// denials and broken rules into errors and logs failures.
type ProjectService struct {
	env    *model.Env
	models *project.Models
	logger *slog.Logger
}

// NewProjectService creates a ProjectService. env supplies persistence and
// settings; its User is replaced per call by the user in ctx.
func NewProjectService(env *model.Env, models *project.Models, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProjectService{
		env:    env,
		models: models,
		logger: logger,
	}
}

func (s *ProjectService) envFor(ctx context.Context) *model.Env {
	return s.env.WithUser(rules.UserFromContext(ctx))
}

func (s *ProjectService) workers() int {
	if s.env.MaxConcurrency < 1 {
		return model.DefaultMaxConcurrency
	}
	return s.env.MaxConcurrency
}

// forbidden returns the error for a denied action.
func forbidden(action rules.Action, name string) error {
	return fmt.Errorf("%s %s: %w", action, name, domain.ErrForbidden)
}

// brokenRules returns a BrokenRulesError for an invalid instance, or nil.
func brokenRules(name string, v interface {
	IsValid() bool
	BrokenRules() *rules.BrokenRulesOutput
}) error {
	if v.IsValid() {
		return nil
	}
	return &rules.BrokenRulesError{Model: name, Response: rules.NewBrokenRulesResponse(v.BrokenRules(), "")}
}

func (s *ProjectService) logFailure(ctx context.Context, msg, op string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+2)
	args = append(args, slog.String("operation", op))
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.Any("error", err))
	s.logger.ErrorContext(ctx, msg, args...)
}

// fetchProject loads a project the user may read.
func (s *ProjectService) fetchProject(ctx context.Context, env *model.Env, id int64) (*model.Object, error) {
	p, err := model.Fetch(ctx, env, s.models.Project, ports.DTO{project.FieldID: id}, "")
	if err != nil {
		return nil, err
	}
	if !p.CanDo(rules.FetchObject, "") {
		return nil, forbidden(rules.FetchObject, project.ModelName)
	}
	return p, nil
}

// findTodo returns the live todo with id.
func findTodo(p *model.Object, id int64) (*model.Collection, *model.Object, error) {
	list, err := p.Collection(project.FieldTodos)
	if err != nil {
		return nil, nil, err
	}
	item, ok := list.Find(func(o *model.Object) bool {
		v, _ := model.Value[int64](o, todo.FieldID)
		return v == id
	})
	if !ok {
		return nil, nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	return list, item, nil
}

// saveProject validates and saves p after the caller's changes.
func (s *ProjectService) saveProject(ctx context.Context, p *model.Object, action rules.Action) error {
	if !p.CanDo(action, "") {
		return forbidden(action, project.ModelName)
	}
	if err := brokenRules(project.ModelName, p); err != nil {
		return err
	}
	return p.Save(ctx)
}

// ListProjects returns project summaries whose name contains query.
func (s *ProjectService) ListProjects(ctx context.Context, query string) ([]ports.CTO, error) {
	s.logger.InfoContext(ctx, "listing projects", slog.String("query", query))

	list, err := model.FetchCollection(ctx, s.envFor(ctx), s.models.List, project.ListFilter{Query: query}, "")
	if err == nil && !list.CanDo(rules.FetchObject, "") {
		err = forbidden(rules.FetchObject, project.ListName)
	}
	if err != nil {
		s.logFailure(ctx, "failed to list projects", "ListProjects", err)
		return nil, err
	}
	return list.ToCto()
}

// GetProject returns a single project by ID with its todos.
func (s *ProjectService) GetProject(ctx context.Context, id int64) (ports.CTO, error) {
	s.logger.InfoContext(ctx, "fetching project", slog.Int64("id", id))

	p, err := s.fetchProject(ctx, s.envFor(ctx), id)
	if err != nil {
		s.logFailure(ctx, "failed to fetch project", "GetProject", err, slog.Int64("id", id))
		return nil, err
	}
	return p.ToCto()
}

// CreateProject creates a project with the todos nested in cto.
func (s *ProjectService) CreateProject(ctx context.Context, cto ports.CTO) (ports.CTO, error) {
	s.logger.InfoContext(ctx, "creating project", slog.Any("name", cto[project.FieldName]))

	p, err := model.Create(ctx, s.envFor(ctx), s.models.Project)
	if err == nil && !p.CanDo(rules.CreateObject, "") {
		err = forbidden(rules.CreateObject, project.ModelName)
	}
	if err == nil {
		err = p.FromCto(ctx, cto)
	}
	if err == nil {
		err = s.saveProject(ctx, p, rules.CreateObject)
	}
	if err != nil {
		s.logFailure(ctx, "failed to create project", "CreateProject", err)
		return nil, err
	}
	return p.ToCto()
}

// UpdateProject applies cto to an existing project.
func (s *ProjectService) UpdateProject(ctx context.Context, id int64, cto ports.CTO) (ports.CTO, error) {
	s.logger.InfoContext(ctx, "updating project", slog.Int64("id", id))

	p, err := s.fetchProject(ctx, s.envFor(ctx), id)
	if err == nil && !p.CanDo(rules.UpdateObject, "") {
		err = forbidden(rules.UpdateObject, project.ModelName)
	}
	if err == nil {
		err = p.FromCto(ctx, cto)
	}
	if err == nil {
		err = s.saveProject(ctx, p, rules.UpdateObject)
	}
	if err != nil {
		s.logFailure(ctx, "failed to update project", "UpdateProject", err, slog.Int64("id", id))
		return nil, err
	}
	return p.ToCto()
}

// DeleteProject deletes a project and its todos.
func (s *ProjectService) DeleteProject(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "deleting project", slog.Int64("id", id))

	p, err := s.fetchProject(ctx, s.envFor(ctx), id)
	if err == nil && !p.CanDo(rules.RemoveObject, "") {
		err = forbidden(rules.RemoveObject, project.ModelName)
	}
	if err == nil {
		err = p.Remove()
	}
	if err == nil {
		err = p.Save(ctx)
	}
	if err != nil {
		s.logFailure(ctx, "failed to delete project", "DeleteProject", err, slog.Int64("id", id))
		return err
	}
	return nil
}

// AddTodo creates a new todo within the specified project.
func (s *ProjectService) AddTodo(ctx context.Context, projectID int64, cto ports.CTO) (ports.CTO, error) {
	s.logger.InfoContext(ctx, "adding todo to project", slog.Int64("project_id", projectID))

	created, err := s.addTodo(ctx, projectID, cto)
	if err != nil {
		s.logFailure(ctx, "failed to add todo", "AddTodo", err, slog.Int64("project_id", projectID))
		return nil, err
	}
	return created, nil
}

func (s *ProjectService) addTodo(ctx context.Context, projectID int64, cto ports.CTO) (ports.CTO, error) {
	p, err := s.fetchProject(ctx, s.envFor(ctx), projectID)
	if err != nil {
		return nil, err
	}
	if !p.CanDo(rules.UpdateObject, "") {
		return nil, forbidden(rules.UpdateObject, project.ModelName)
	}
	list, err := p.Collection(project.FieldTodos)
	if err != nil {
		return nil, err
	}
	item, err := list.CreateItem(ctx, -1)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, forbidden(rules.CreateObject, todo.ModelName)
	}
	if err := item.FromCto(ctx, cto); err != nil {
		return nil, err
	}
	if err := brokenRules(todo.ModelName, item); err != nil {
		return nil, err
	}
	if err := p.Save(ctx); err != nil {
		return nil, err
	}
	return item.ToCto()
}

// UpdateTodo updates an existing todo within the specified project.
func (s *ProjectService) UpdateTodo(ctx context.Context, projectID, todoID int64, cto ports.CTO) (ports.CTO, error) {
	s.logger.InfoContext(ctx, "updating todo in project",
		slog.Int64("project_id", projectID),
		slog.Int64("todo_id", todoID),
	)

	updated, err := s.updateTodo(ctx, projectID, todoID, cto)
	if err != nil {
		s.logFailure(ctx, "failed to update todo", "UpdateTodo", err,
			slog.Int64("project_id", projectID),
			slog.Int64("todo_id", todoID),
		)
		return nil, err
	}
	return updated, nil
}

func (s *ProjectService) updateTodo(ctx context.Context, projectID, todoID int64, cto ports.CTO) (ports.CTO, error) {
	p, err := s.fetchProject(ctx, s.envFor(ctx), projectID)
	if err != nil {
		return nil, err
	}
	if !p.CanDo(rules.UpdateObject, "") {
		return nil, forbidden(rules.UpdateObject, project.ModelName)
	}
	_, item, err := findTodo(p, todoID)
	if err != nil {
		return nil, err
	}
	if err := item.FromCto(ctx, cto); err != nil {
		return nil, err
	}
	if err := brokenRules(todo.ModelName, item); err != nil {
		return nil, err
	}
	if err := p.Save(ctx); err != nil {
		return nil, err
	}
	return item.ToCto()
}

// RemoveTodo deletes a todo from the specified project.
func (s *ProjectService) RemoveTodo(ctx context.Context, projectID, todoID int64) error {
	s.logger.InfoContext(ctx, "removing todo from project",
		slog.Int64("project_id", projectID),
		slog.Int64("todo_id", todoID),
	)

	p, err := s.fetchProject(ctx, s.envFor(ctx), projectID)
	if err == nil && !p.CanDo(rules.UpdateObject, "") {
		err = forbidden(rules.UpdateObject, project.ModelName)
	}
	var (
		list *model.Collection
		item *model.Object
	)
	if err == nil {
		list, item, err = findTodo(p, todoID)
	}
	if err == nil {
		err = list.Remove(item)
	}
	if err == nil {
		err = p.Save(ctx)
	}
	if err != nil {
		s.logFailure(ctx, "failed to remove todo", "RemoveTodo", err,
			slog.Int64("project_id", projectID),
			slog.Int64("todo_id", todoID),
		)
		return err
	}
	return nil
}

// BulkUpdateTodos updates multiple todos concurrently. The project is
// checked once up front; each update then loads, validates and saves on
// its own, so one failure does not affect the others.
func (s *ProjectService) BulkUpdateTodos(ctx context.Context, projectID int64, updates []ports.TodoUpdate) (*ports.BulkUpdateResult, error) {
	s.logger.InfoContext(ctx, "bulk updating todos",
		slog.Int64("project_id", projectID),
		slog.Int("count", len(updates)),
	)

	p, err := s.fetchProject(ctx, s.envFor(ctx), projectID)
	if err == nil && !p.CanDo(rules.UpdateObject, "") {
		err = forbidden(rules.UpdateObject, project.ModelName)
	}
	if err != nil {
		s.logFailure(ctx, "failed to verify project", "BulkUpdateTodos", err, slog.Int64("project_id", projectID))
		return nil, err
	}

	results := fanout.Run(ctx, s.workers(), updates, func(ctx context.Context, u ports.TodoUpdate) (ports.CTO, error) {
		return s.updateTodo(ctx, projectID, u.TodoID, u.Values)
	})

	out := &ports.BulkUpdateResult{}
	for i, r := range results {
		if r.Err != nil {
			s.logFailure(ctx, "failed to update todo in bulk", "BulkUpdateTodos", r.Err,
				slog.Int64("project_id", projectID),
				slog.Int64("todo_id", updates[i].TodoID),
			)
			out.Errors = append(out.Errors, ports.BulkUpdateError{TodoID: updates[i].TodoID, Err: r.Err})
			continue
		}
		out.Updated = append(out.Updated, r.Value)
	}
	return out, nil
}

// CompleteProject runs the completion command for the project.
func (s *ProjectService) CompleteProject(ctx context.Context, projectID int64) (ports.CTO, error) {
	s.logger.InfoContext(ctx, "completing project", slog.Int64("project_id", projectID))

	cmd, err := model.NewCommand(s.envFor(ctx), s.models.Complete)
	if err == nil && !cmd.CanDo(rules.ExecuteCommand, "") {
		err = forbidden(rules.ExecuteCommand, project.CompleteName)
	}
	if err == nil {
		err = cmd.Set(project.FieldProjectID, projectID)
	}
	if err == nil {
		err = brokenRules(project.CompleteName, cmd)
	}
	if err == nil {
		err = cmd.Execute(ctx, "")
	}
	if err != nil {
		s.logFailure(ctx, "failed to complete project", "CompleteProject", err, slog.Int64("project_id", projectID))
		return nil, err
	}
	return cmd.ToCto()
}

// SearchTodos returns the todos matching filter across all projects.
func (s *ProjectService) SearchTodos(ctx context.Context, filter domain.TodoFilter) ([]ports.CTO, error) {
	s.logger.InfoContext(ctx, "searching todos",
		slog.String("status", filter.Status.String()),
		slog.String("category", filter.Category.String()),
	)

	list, err := model.FetchCollection(ctx, s.envFor(ctx), s.models.Todos.Search, filter, "")
	if err == nil && !list.CanDo(rules.FetchObject, "") {
		err = forbidden(rules.FetchObject, todo.SearchName)
	}
	if err != nil {
		s.logFailure(ctx, "failed to search todos", "SearchTodos", err)
		return nil, err
	}
	return list.ToCto()
}
