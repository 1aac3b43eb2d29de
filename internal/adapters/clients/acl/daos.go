package acl

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"strings"

	aclproject "github.com/jsamuelsen11/go-business-objects/internal/adapters/clients/acl/project"
	acltodo "github.com/jsamuelsen11/go-business-objects/internal/adapters/clients/acl/todo"
	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence"
	"github.com/jsamuelsen11/go-business-objects/internal/app/fanout"
	"github.com/jsamuelsen11/go-business-objects/internal/app/unitofwork"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/project"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/todo"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

func registerDAOs(r *persistence.Registry, s *Store) {
	r.Register(project.DAOName, &projectDAO{s: s})
	r.Register(project.SummaryDAOName, &summaryDAO{ReadOnly: persistence.ReadOnly{Name: project.SummaryDAOName}, s: s})
	r.Register(project.CompleteDAOName, &completionDAO{
		ReadOnly: persistence.ReadOnly{Name: project.CompleteDAOName},
		NoFetch:  persistence.NoFetch{Name: project.CompleteDAOName},
		s:        s,
	})
	r.Register(todo.DAOName, &todoDAO{s: s})
}

func (s *Store) getGroup(ctx context.Context, id int64) (aclproject.Group, error) {
	var g aclproject.Group
	err := s.req.Do(ctx, http.MethodGet, groupPath(id), http.StatusOK, nil, &g)
	return g, err
}

func (s *Store) groupTodos(ctx context.Context, id int64) ([]ports.DTO, error) {
	var list acltodo.List
	if err := s.req.Do(ctx, http.MethodGet, groupPath(id)+"/todos", http.StatusOK, nil, &list); err != nil {
		return nil, err
	}
	return list.DTOs(), nil
}

func (s *Store) getTodo(ctx context.Context, id int64) (ports.DTO, error) {
	var t acltodo.Todo
	if err := s.req.Do(ctx, http.MethodGet, todoPath(id), http.StatusOK, nil, &t); err != nil {
		return nil, err
	}
	return t.DTO(), nil
}

// putTodo replaces todo id with the values of dto.
func (s *Store) putTodo(ctx context.Context, id int64, dto ports.DTO) (ports.DTO, error) {
	var t acltodo.Todo
	if err := s.req.Do(ctx, http.MethodPut, todoPath(id), http.StatusOK, acltodo.NewUpdateRequest(dto), &t); err != nil {
		return nil, err
	}
	return t.DTO(), nil
}

func todoKey(id int64) string { return fmt.Sprintf("todo:%d", id) }

// priorTodo returns todo id as it was before the unit of work changed it.
func (s *Store) priorTodo(ctx context.Context, u *unitofwork.UnitOfWork, id int64) (ports.DTO, error) {
	return unitofwork.Memoize(ctx, u, todoKey(id), func(ctx context.Context) (ports.DTO, error) {
		return s.getTodo(ctx, id)
	})
}

// deleteLater queues a DELETE for commit.
func (s *Store) deleteLater(u *unitofwork.UnitOfWork, what, path string) error {
	return u.Defer(unitofwork.Step{
		Desc: "delete " + what,
		Exec: func(ctx context.Context) error {
			return s.req.Do(ctx, http.MethodDelete, path, http.StatusNoContent, nil, nil)
		},
	})
}

type projectDAO struct {
	s *Store
}

// Fetch returns one group with its todos nested under "todos".
func (d *projectDAO) Fetch(ctx context.Context, _ ports.Connection, method string, filter any) (any, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(project.DAOName, method)
	}
	id, err := persistence.KeyOf(filter, project.FieldID)
	if err != nil {
		return nil, err
	}
	g, err := d.s.getGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	todos, err := d.s.groupTodos(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := g.DTO()
	dto[project.FieldTodos] = todos
	return dto, nil
}

// Insert creates the group now and deletes it again on rollback.
func (d *projectDAO) Insert(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	u, err := d.s.Unit(conn)
	if err != nil {
		return nil, err
	}
	var created aclproject.Group
	err = u.Do(ctx, unitofwork.Step{
		Desc: "create group",
		Exec: func(ctx context.Context) error {
			return d.s.req.Do(ctx, http.MethodPost, "/api/v1/groups", http.StatusCreated, aclproject.NewCreateRequest(dto), &created)
		},
		Undo: func(ctx context.Context) error {
			return d.s.req.Do(ctx, http.MethodDelete, groupPath(created.ID), http.StatusNoContent, nil, nil)
		},
	})
	if err != nil {
		return nil, err
	}
	return created.DTO(), nil
}

// Update replaces the group now and restores its earlier values on
// rollback.
func (d *projectDAO) Update(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	u, err := d.s.Unit(conn)
	if err != nil {
		return nil, err
	}
	id, err := persistence.Int(dto, project.FieldID)
	if err != nil {
		return nil, err
	}
	prior, err := unitofwork.Memoize(ctx, u, fmt.Sprintf("group:%d", id), func(ctx context.Context) (ports.DTO, error) {
		g, err := d.s.getGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		return g.DTO(), nil
	})
	if err != nil {
		return nil, err
	}
	var updated aclproject.Group
	err = u.Do(ctx, unitofwork.Step{
		Desc: fmt.Sprintf("update group %d", id),
		Exec: func(ctx context.Context) error {
			return d.s.req.Do(ctx, http.MethodPut, groupPath(id), http.StatusOK, aclproject.NewUpdateRequest(dto), &updated)
		},
		Undo: func(ctx context.Context) error {
			return d.s.req.Do(ctx, http.MethodPut, groupPath(id), http.StatusOK, aclproject.NewUpdateRequest(prior), nil)
		},
	})
	if err != nil {
		return nil, err
	}
	return updated.DTO(), nil
}

// Remove deletes the group on commit.
func (d *projectDAO) Remove(_ context.Context, conn ports.Connection, filter any) error {
	u, err := d.s.Unit(conn)
	if err != nil {
		return err
	}
	id, err := persistence.KeyOf(filter, project.FieldID)
	if err != nil {
		return err
	}
	return d.s.deleteLater(u, fmt.Sprintf("group %d", id), groupPath(id))
}

type todoDAO struct {
	s *Store
}

// Fetch returns the todos matching a domain.TodoFilter.
func (d *todoDAO) Fetch(ctx context.Context, _ ports.Connection, method string, filter any) (any, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(todo.DAOName, method)
	}
	f, err := persistence.TodoFilterOf(filter)
	if err != nil {
		return nil, err
	}
	var list acltodo.List
	if err := d.s.req.Do(ctx, http.MethodGet, "/api/v1/todos"+filterQuery(f), http.StatusOK, nil, &list); err != nil {
		return nil, err
	}
	return list.DTOs(), nil
}

// Insert creates the todo now and deletes it again on rollback.
func (d *todoDAO) Insert(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	u, err := d.s.Unit(conn)
	if err != nil {
		return nil, err
	}
	var created acltodo.Todo
	err = u.Do(ctx, unitofwork.Step{
		Desc: "create todo",
		Exec: func(ctx context.Context) error {
			return d.s.req.Do(ctx, http.MethodPost, "/api/v1/todos", http.StatusCreated, acltodo.NewCreateRequest(dto), &created)
		},
		Undo: func(ctx context.Context) error {
			return d.s.req.Do(ctx, http.MethodDelete, todoPath(created.ID), http.StatusNoContent, nil, nil)
		},
	})
	if err != nil {
		return nil, err
	}
	return created.DTO(), nil
}

// Update replaces the todo now and restores its earlier values on
// rollback.
func (d *todoDAO) Update(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	u, err := d.s.Unit(conn)
	if err != nil {
		return nil, err
	}
	id, err := persistence.Int(dto, todo.FieldID)
	if err != nil {
		return nil, err
	}
	return d.s.updateTodo(ctx, u, id, dto)
}

func (s *Store) updateTodo(ctx context.Context, u *unitofwork.UnitOfWork, id int64, dto ports.DTO) (ports.DTO, error) {
	prior, err := s.priorTodo(ctx, u, id)
	if err != nil {
		return nil, err
	}
	var updated ports.DTO
	err = u.Do(ctx, unitofwork.Step{
		Desc: fmt.Sprintf("update todo %d", id),
		Exec: func(ctx context.Context) error {
			var err error
			updated, err = s.putTodo(ctx, id, dto)
			return err
		},
		Undo: func(ctx context.Context) error {
			_, err := s.putTodo(ctx, id, prior)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes the todo on commit.
func (d *todoDAO) Remove(_ context.Context, conn ports.Connection, filter any) error {
	u, err := d.s.Unit(conn)
	if err != nil {
		return err
	}
	id, err := persistence.KeyOf(filter, todo.FieldID)
	if err != nil {
		return err
	}
	return d.s.deleteLater(u, fmt.Sprintf("todo %d", id), todoPath(id))
}

type summaryDAO struct {
	persistence.ReadOnly
	s *Store
}

// Fetch lists the groups whose name contains the project.ListFilter query,
// each summarized from its todos. The todo lists load in parallel.
func (d *summaryDAO) Fetch(ctx context.Context, _ ports.Connection, method string, filter any) (any, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(project.SummaryDAOName, method)
	}
	lf, err := persistence.ListFilterOf(filter)
	if err != nil {
		return nil, err
	}
	var list aclproject.List
	if err := d.s.req.Do(ctx, http.MethodGet, "/api/v1/groups", http.StatusOK, nil, &list); err != nil {
		return nil, err
	}

	query := strings.ToLower(lf.Query)
	var groups []ports.DTO
	for _, g := range list.DTOs() {
		if strings.Contains(strings.ToLower(persistence.Text(g, project.FieldName)), query) {
			groups = append(groups, g)
		}
	}

	results := fanout.Run(ctx, d.s.workers, groups, func(ctx context.Context, g ports.DTO) (ports.DTO, error) {
		id, _ := persistence.Int(g, project.FieldID)
		todos, err := d.s.groupTodos(ctx, id)
		if err != nil {
			return nil, err
		}
		return persistence.Summarize(g, todos), nil
	})
	if err := fanout.FirstError(results); err != nil {
		return nil, err
	}
	out := make([]ports.DTO, len(results))
	for i, r := range results {
		out[i] = r.Value
	}
	return out, nil
}

type completionDAO struct {
	persistence.ReadOnly
	persistence.NoFetch
	s *Store
}

// Execute marks every open todo of the group done at 100 percent. Each
// change is undone if the unit of work rolls back.
func (d *completionDAO) Execute(ctx context.Context, conn ports.Connection, method string, dto ports.DTO) (ports.DTO, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(project.CompleteDAOName, method)
	}
	u, err := d.s.Unit(conn)
	if err != nil {
		return nil, err
	}
	id, err := persistence.Int(dto, project.FieldProjectID)
	if err != nil {
		return nil, err
	}
	g, err := d.s.getGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	todos, err := d.s.groupTodos(ctx, id)
	if err != nil {
		return nil, err
	}

	var completed int64
	for i, t := range todos {
		if persistence.Text(t, todo.FieldStatus) == domain.StatusDone.String() {
			continue
		}
		tid, _ := persistence.Int(t, todo.FieldID)
		// The listed row is the prior state; no need to fetch it again.
		_, _ = unitofwork.Memoize(ctx, u, todoKey(tid), func(context.Context) (ports.DTO, error) { return t, nil })
		next := maps.Clone(t)
		next[todo.FieldStatus] = domain.StatusDone.String()
		next[todo.FieldProgress] = int64(100)
		updated, err := d.s.updateTodo(ctx, u, tid, next)
		if err != nil {
			return nil, err
		}
		todos[i] = updated
		completed++
	}
	return ports.DTO{
		project.FieldCompleted: completed,
		project.FieldProject:   persistence.Summarize(g.DTO(), todos),
	}, nil
}
