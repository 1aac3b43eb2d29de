package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

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

type scanner interface {
	Scan(dest ...any) error
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

const projectColumns = "id, name, description, created_at, updated_at"

func scanProject(row scanner) (ports.DTO, error) {
	var (
		id                   int64
		name, desc           string
		createdAt, updatedAt string
	)
	if err := row.Scan(&id, &name, &desc, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return ports.DTO{
		project.FieldID:          id,
		project.FieldName:        name,
		project.FieldDescription: desc,
		project.FieldCreatedAt:   created,
		project.FieldUpdatedAt:   updated,
	}, nil
}

const todoColumns = "id, project_id, title, description, status, category, progress_percent, created_at, updated_at"

func scanTodo(row scanner) (ports.DTO, error) {
	var (
		id, projectID, progress       int64
		title, desc, status, category string
		createdAt, updatedAt          string
	)
	if err := row.Scan(&id, &projectID, &title, &desc, &status, &category, &progress, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return ports.DTO{
		todo.FieldID:          id,
		todo.FieldProjectID:   projectID,
		todo.FieldTitle:       title,
		todo.FieldDescription: desc,
		todo.FieldStatus:      status,
		todo.FieldCategory:    category,
		todo.FieldProgress:    progress,
		todo.FieldCreatedAt:   created,
		todo.FieldUpdatedAt:   updated,
	}, nil
}

// collect reads every row with scan and closes rows.
func collect(rows *sql.Rows, scan func(scanner) (ports.DTO, error)) ([]ports.DTO, error) {
	defer func() { _ = rows.Close() }()
	out := []ports.DTO{}
	for rows.Next() {
		dto, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, rows.Err()
}

func getProject(ctx context.Context, q querier, id int64) (ports.DTO, error) {
	row := q.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	dto, err := scanProject(row)
	if err != nil {
		return nil, translate(fmt.Sprintf("project %d", id), err)
	}
	return dto, nil
}

func todosOf(ctx context.Context, q querier, projectID int64) ([]ports.DTO, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+todoColumns+" FROM todos WHERE project_id = ? ORDER BY id", projectID)
	if err != nil {
		return nil, translate("listing todos", err)
	}
	return collect(rows, scanTodo)
}

type projectDAO struct {
	s *Store
}

// Fetch returns one project with its todos nested under "todos".
func (d *projectDAO) Fetch(ctx context.Context, conn ports.Connection, method string, filter any) (any, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(project.DAOName, method)
	}
	q, err := d.s.q(conn)
	if err != nil {
		return nil, err
	}
	id, err := persistence.KeyOf(filter, project.FieldID)
	if err != nil {
		return nil, err
	}
	dto, err := getProject(ctx, q, id)
	if err != nil {
		return nil, err
	}
	todos, err := todosOf(ctx, q, id)
	if err != nil {
		return nil, err
	}
	dto[project.FieldTodos] = todos
	return dto, nil
}

func (d *projectDAO) Insert(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	q, err := d.s.q(conn)
	if err != nil {
		return nil, err
	}
	now := d.s.timestamp()
	res, err := q.ExecContext(ctx,
		"INSERT INTO projects (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)",
		persistence.Text(dto, project.FieldName), persistence.Text(dto, project.FieldDescription), now, now)
	if err != nil {
		return nil, translate("inserting project", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return getProject(ctx, q, id)
}

func (d *projectDAO) Update(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	q, err := d.s.q(conn)
	if err != nil {
		return nil, err
	}
	id, err := persistence.Int(dto, project.FieldID)
	if err != nil {
		return nil, err
	}
	res, err := q.ExecContext(ctx,
		"UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE id = ?",
		persistence.Text(dto, project.FieldName), persistence.Text(dto, project.FieldDescription), d.s.timestamp(), id)
	if err != nil {
		return nil, translate(fmt.Sprintf("updating project %d", id), err)
	}
	if err := requireRow(res, fmt.Sprintf("project %d", id)); err != nil {
		return nil, err
	}
	return getProject(ctx, q, id)
}

func (d *projectDAO) Remove(ctx context.Context, conn ports.Connection, filter any) error {
	q, err := d.s.q(conn)
	if err != nil {
		return err
	}
	id, err := persistence.KeyOf(filter, project.FieldID)
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return translate(fmt.Sprintf("deleting project %d", id), err)
	}
	return requireRow(res, fmt.Sprintf("project %d", id))
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}

type todoDAO struct {
	s *Store
}

// searchQuery builds the todo search statement for f.
func searchQuery(f domain.TodoFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status.String())
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category.String())
	}
	if f.ProjectID != nil {
		where = append(where, "project_id = ?")
		args = append(args, *f.ProjectID)
	}
	query := "SELECT " + todoColumns + " FROM todos"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query + " ORDER BY id", args
}

// Fetch returns the todos matching a domain.TodoFilter. A nil filter matches
// every todo.
func (d *todoDAO) Fetch(ctx context.Context, conn ports.Connection, method string, filter any) (any, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(todo.DAOName, method)
	}
	q, err := d.s.q(conn)
	if err != nil {
		return nil, err
	}
	f, err := persistence.TodoFilterOf(filter)
	if err != nil {
		return nil, err
	}
	query, args := searchQuery(f)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate("searching todos", err)
	}
	return collect(rows, scanTodo)
}

func getTodo(ctx context.Context, q querier, id int64) (ports.DTO, error) {
	dto, err := scanTodo(q.QueryRowContext(ctx, "SELECT "+todoColumns+" FROM todos WHERE id = ?", id))
	if err != nil {
		return nil, translate(fmt.Sprintf("todo %d", id), err)
	}
	return dto, nil
}

func (d *todoDAO) Insert(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	q, err := d.s.q(conn)
	if err != nil {
		return nil, err
	}
	projectID, err := persistence.Int(dto, todo.FieldProjectID)
	if err != nil {
		return nil, err
	}
	progress, _ := persistence.Int(dto, todo.FieldProgress)
	now := d.s.timestamp()
	res, err := q.ExecContext(ctx,
		"INSERT INTO todos (project_id, title, description, status, category, progress_percent, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		projectID,
		persistence.Text(dto, todo.FieldTitle),
		persistence.Text(dto, todo.FieldDescription),
		persistence.Text(dto, todo.FieldStatus),
		persistence.Text(dto, todo.FieldCategory),
		progress, now, now)
	if err != nil {
		return nil, translate("inserting todo", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return getTodo(ctx, q, id)
}

func (d *todoDAO) Update(ctx context.Context, conn ports.Connection, dto ports.DTO) (ports.DTO, error) {
	q, err := d.s.q(conn)
	if err != nil {
		return nil, err
	}
	id, err := persistence.Int(dto, todo.FieldID)
	if err != nil {
		return nil, err
	}
	progress, _ := persistence.Int(dto, todo.FieldProgress)
	res, err := q.ExecContext(ctx,
		"UPDATE todos SET title = ?, description = ?, status = ?, category = ?, progress_percent = ?, updated_at = ? WHERE id = ?",
		persistence.Text(dto, todo.FieldTitle),
		persistence.Text(dto, todo.FieldDescription),
		persistence.Text(dto, todo.FieldStatus),
		persistence.Text(dto, todo.FieldCategory),
		progress, d.s.timestamp(), id)
	if err != nil {
		return nil, translate(fmt.Sprintf("updating todo %d", id), err)
	}
	if err := requireRow(res, fmt.Sprintf("todo %d", id)); err != nil {
		return nil, err
	}
	return getTodo(ctx, q, id)
}

func (d *todoDAO) Remove(ctx context.Context, conn ports.Connection, filter any) error {
	q, err := d.s.q(conn)
	if err != nil {
		return err
	}
	id, err := persistence.KeyOf(filter, todo.FieldID)
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return translate(fmt.Sprintf("deleting todo %d", id), err)
	}
	return requireRow(res, fmt.Sprintf("todo %d", id))
}

const summarySQL = `
SELECT p.id, p.name, p.description, COUNT(t.id), COALESCE(SUM(t.progress_percent), 0)
FROM projects p
LEFT JOIN todos t ON t.project_id = p.id
WHERE %s
GROUP BY p.id
ORDER BY p.id`

func scanSummary(row scanner) (ports.DTO, error) {
	var (
		id, count, total int64
		name, desc       string
	)
	if err := row.Scan(&id, &name, &desc, &count, &total); err != nil {
		return nil, err
	}
	var progress int64
	if count > 0 {
		progress = total / count
	}
	return ports.DTO{
		project.FieldID:          id,
		project.FieldName:        name,
		project.FieldDescription: desc,
		project.FieldTodoCount:   count,
		project.FieldProgress:    progress,
	}, nil
}

type summaryDAO struct {
	persistence.ReadOnly
	s *Store
}

// Fetch lists projects whose name contains the project.ListFilter query.
func (d *summaryDAO) Fetch(ctx context.Context, conn ports.Connection, method string, filter any) (any, error) {
	if method != "" {
		return nil, persistence.UnknownMethod(project.SummaryDAOName, method)
	}
	q, err := d.s.q(conn)
	if err != nil {
		return nil, err
	}
	lf, err := persistence.ListFilterOf(filter)
	if err != nil {
		return nil, err
	}
	query := lf.Query
	rows, err := q.QueryContext(ctx, fmt.Sprintf(summarySQL, "p.name LIKE ?"), "%"+query+"%")
	if err != nil {
		return nil, translate("listing projects", err)
	}
	return collect(rows, scanSummary)
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
	q, err := d.s.q(conn)
	if err != nil {
		return nil, err
	}
	id, err := persistence.Int(dto, project.FieldProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := getProject(ctx, q, id); err != nil {
		return nil, err
	}
	res, err := q.ExecContext(ctx,
		"UPDATE todos SET status = ?, progress_percent = 100, updated_at = ? WHERE project_id = ? AND status <> ?",
		domain.StatusDone.String(), d.s.timestamp(), id, domain.StatusDone.String())
	if err != nil {
		return nil, translate(fmt.Sprintf("completing project %d", id), err)
	}
	completed, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	summary, err := scanSummary(q.QueryRowContext(ctx, fmt.Sprintf(summarySQL, "p.id = ?"), id))
	if err != nil {
		return nil, translate(fmt.Sprintf("project %d", id), err)
	}
	return ports.DTO{
		project.FieldCompleted: completed,
		project.FieldProject:   summary,
	}, nil
}
