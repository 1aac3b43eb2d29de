package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/project"
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

func (s *Store) todosOf(projectID int64) []ports.DTO {
	return s.todos.selectRows(func(r ports.DTO) bool { return r[todo.FieldProjectID] == projectID })
}

type projectDAO struct {
	s *Store
}

// Fetch returns one project with its todos nested under "todos".
func (d *projectDAO) Fetch(_ context.Context, _ ports.Connection, method string, filter any) (any, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(project.DAOName, method)
	}
	id, err := persistence.KeyOf(filter, project.FieldID)
	if err != nil {
		return nil, err
	}
	row, err := d.s.projects.get(id)
	if err != nil {
		return nil, err
	}
	row[project.FieldTodos] = d.s.todosOf(id)
	return row, nil
}

func (d *projectDAO) checkUniqueName(id int64, name string) error {
	clash := d.s.projects.selectRows(func(r ports.DTO) bool {
		other, _ := r[project.FieldName].(string)
		return r[project.FieldID] != id && strings.EqualFold(other, name)
	})
	if len(clash) > 0 {
		return fmt.Errorf("project name %q: %w", name, domain.ErrConflict)
	}
	return nil
}

func (d *projectDAO) Insert(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	u, err := d.s.Unit(conn)
	if err != nil {
		return nil, err
	}
	name := persistence.Text(dto, project.FieldName)
	if err := d.checkUniqueName(0, name); err != nil {
		return nil, err
	}
	now := d.s.timestamp()
	return d.s.projects.insert(ctx, u, ports.DTO{
		project.FieldName:        name,
		project.FieldDescription: persistence.Text(dto, project.FieldDescription),
		project.FieldCreatedAt:   now,
		project.FieldUpdatedAt:   now,
	})
}

func (d *projectDAO) Update(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	u, err := d.s.Unit(conn)
	if err != nil {
		return nil, err
	}
	id, err := persistence.Int(dto, project.FieldID)
	if err != nil {
		return nil, err
	}
	name := persistence.Text(dto, project.FieldName)
	if err := d.checkUniqueName(id, name); err != nil {
		return nil, err
	}
	return d.s.projects.update(ctx, u, id, ports.DTO{
		project.FieldName:        name,
		project.FieldDescription: persistence.Text(dto, project.FieldDescription),
		project.FieldUpdatedAt:   d.s.timestamp(),
	})
}

func (d *projectDAO) Remove(ctx context.Context, conn ports.Connection, filter any) error {
	u, err := d.s.Unit(conn)
	if err != nil {
		return err
	}
	id, err := persistence.KeyOf(filter, project.FieldID)
	if err != nil {
		return err
	}
	return d.s.projects.remove(ctx, u, id)
}

type todoDAO struct {
	s *Store
}

// Fetch returns the todos matching a domain.TodoFilter. A nil filter matches
// every todo.
func (d *todoDAO) Fetch(_ context.Context, _ ports.Connection, method string, filter any) (any, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(todo.DAOName, method)
	}
	f, err := persistence.TodoFilterOf(filter)
	if err != nil {
		return nil, err
	}
	rows := d.s.todos.selectRows(todo.Matcher(f))
	if rows == nil {
		rows = []ports.DTO{}
	}
	return rows, nil
}

func todoValues(dto ports.DTO) ports.DTO {
	progress, _ := persistence.Int(dto, todo.FieldProgress)
	return ports.DTO{
		todo.FieldTitle:       persistence.Text(dto, todo.FieldTitle),
		todo.FieldDescription: persistence.Text(dto, todo.FieldDescription),
		todo.FieldStatus:      persistence.Text(dto, todo.FieldStatus),
		todo.FieldCategory:    persistence.Text(dto, todo.FieldCategory),
		todo.FieldProgress:    progress,
	}
}

func (d *todoDAO) Insert(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	u, err := d.s.Unit(conn)
	if err != nil {
		return nil, err
	}
	projectID, err := persistence.Int(dto, todo.FieldProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := d.s.projects.get(projectID); err != nil {
		return nil, err
	}
	row := todoValues(dto)
	now := d.s.timestamp()
	row[todo.FieldProjectID] = projectID
	row[todo.FieldCreatedAt] = now
	row[todo.FieldUpdatedAt] = now
	return d.s.todos.insert(ctx, u, row)
}

func (d *todoDAO) Update(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	u, err := d.s.Unit(conn)
	if err != nil {
		return nil, err
	}
	id, err := persistence.Int(dto, todo.FieldID)
	if err != nil {
		return nil, err
	}
	row := todoValues(dto)
	row[todo.FieldUpdatedAt] = d.s.timestamp()
	return d.s.todos.update(ctx, u, id, row)
}

func (d *todoDAO) Remove(ctx context.Context, conn ports.Connection, filter any) error {
	u, err := d.s.Unit(conn)
	if err != nil {
		return err
	}
	id, err := persistence.KeyOf(filter, todo.FieldID)
	if err != nil {
		return err
	}
	return d.s.todos.remove(ctx, u, id)
}

type summaryDAO struct {
	persistence.ReadOnly
	s *Store
}

// Fetch lists projects whose name contains the project.ListFilter query.
func (d *summaryDAO) Fetch(_ context.Context, _ ports.Connection, method string, filter any) (any, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(project.SummaryDAOName, method)
	}
	lf, err := persistence.ListFilterOf(filter)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(lf.Query)
	rows := d.s.projects.selectRows(func(r ports.DTO) bool {
		name, _ := r[project.FieldName].(string)
		return strings.Contains(strings.ToLower(name), query)
	})
	out := make([]ports.DTO, 0, len(rows))
	for _, r := range rows {
		id, _ := r[project.FieldID].(int64)
		out = append(out, persistence.Summarize(r, d.s.todosOf(id)))
	}
	return out, nil
}

type completionDAO struct {
	persistence.ReadOnly
	persistence.NoFetch
	s *Store
}

// Execute marks every open todo of the project done at 100 percent.
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
	p, err := d.s.projects.get(id)
	if err != nil {
		return nil, err
	}
	var completed int64
	for _, t := range d.s.todosOf(id) {
		if t[todo.FieldStatus] == domain.StatusDone.String() {
			continue
		}
		tid, _ := t[todo.FieldID].(int64)
		_, err := d.s.todos.update(ctx, u, tid, ports.DTO{
			todo.FieldStatus:    domain.StatusDone.String(),
			todo.FieldProgress:  int64(100),
			todo.FieldUpdatedAt: d.s.timestamp(),
		})
		if err != nil {
			return nil, err
		}
		completed++
	}
	return ports.DTO{
		project.FieldCompleted: completed,
		project.FieldProject:   persistence.Summarize(p, d.s.todosOf(id)),
	}, nil
}
