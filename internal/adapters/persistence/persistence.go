// Package persistence holds what the store adapters share: the DAO
// registry they hand to the data portal and the helpers that read keys
// and filters out of the portal's arguments.
//
// The adapters themselves live in the memory and sqlite sub-packages and
// in clients/acl for the remote records API.
package persistence

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jsamuelsen11/go-business-objects/internal/app/unitofwork"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/datatype"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/project"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/todo"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// Registry maps DAO names to DAOs. It implements ports.DAOResolver and is
// safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	daos map[string]ports.DAO
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{daos: make(map[string]ports.DAO)}
}

// Register adds dao under name, replacing any earlier registration.
func (r *Registry) Register(name string, dao ports.DAO) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.daos[name] = dao
}

// DAO implements ports.DAOResolver.
func (r *Registry) DAO(name string) (ports.DAO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.daos[name]
	if !ok {
		return nil, fmt.Errorf("dao %q: %w", name, domain.ErrNotFound)
	}
	return d, nil
}

// Names lists the registered DAO names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.daos))
	for n := range r.daos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// KeyOf reads the integer key field from a key filter. The filter is
// usually the DTO the data portal builds from the key properties.
func KeyOf(filter any, field string) (int64, error) {
	dto, ok := filter.(map[string]any)
	if !ok {
		return 0, &domain.ArgumentError{Function: "persistence.KeyOf", Argument: "filter", Message: fmt.Sprintf("expected a key DTO, got %T", filter)}
	}
	return Int(dto, field)
}

// Int reads field from dto as int64.
func Int(dto ports.DTO, field string) (int64, error) {
	v, ok := datatype.Integer.Convert(dto[field])
	if !ok {
		return 0, &domain.DataTypeError{Property: field, Type: datatype.Integer.Name(), Value: dto[field]}
	}
	id, _ := v.(int64)
	return id, nil
}

// Text reads field from dto as a string. Missing and nil values are "".
func Text(dto ports.DTO, field string) string {
	s, _ := dto[field].(string)
	return s
}

// UnknownMethod is the error of a Fetch or Execute given a method name
// the DAO does not serve.
func UnknownMethod(dao, method string) error {
	return &domain.MethodError{Type: dao, Method: method, Message: "unknown method"}
}

// TodoFilterOf reads the criteria of a todo search. nil matches every todo.
func TodoFilterOf(filter any) (domain.TodoFilter, error) {
	switch v := filter.(type) {
	case nil:
		return domain.TodoFilter{}, nil
	case domain.TodoFilter:
		return v, nil
	case *domain.TodoFilter:
		if v == nil {
			return domain.TodoFilter{}, nil
		}
		return *v, nil
	default:
		return domain.TodoFilter{}, &domain.ArgumentError{Function: "todos.Fetch", Argument: "filter", Message: fmt.Sprintf("expected domain.TodoFilter, got %T", filter)}
	}
}

// ListFilterOf reads the criteria of a project list. nil lists every
// project.
func ListFilterOf(filter any) (project.ListFilter, error) {
	switch v := filter.(type) {
	case nil:
		return project.ListFilter{}, nil
	case project.ListFilter:
		return v, nil
	default:
		return project.ListFilter{}, &domain.ArgumentError{Function: "projectSummaries.Fetch", Argument: "filter", Message: fmt.Sprintf("expected project.ListFilter, got %T", filter)}
	}
}

// Summarize builds a projectInfo row from a project row and its todos.
// Progress is the truncated average of the todos' progress.
func Summarize(p ports.DTO, todos []ports.DTO) ports.DTO {
	var total int64
	for _, t := range todos {
		n, _ := Int(t, todo.FieldProgress)
		total += n
	}
	var progress int64
	if len(todos) > 0 {
		progress = total / int64(len(todos))
	}
	return ports.DTO{
		project.FieldID:          p[project.FieldID],
		project.FieldName:        p[project.FieldName],
		project.FieldDescription: p[project.FieldDescription],
		project.FieldTodoCount:   int64(len(todos)),
		project.FieldProgress:    progress,
	}
}

// ReadOnly rejects writes. DAOs backing read-only models and commands
// embed it.
type ReadOnly struct {
	Name string
}

func (r ReadOnly) denied(op string) error {
	return &domain.MethodError{Type: r.Name, Method: op, Message: "read-only DAO"}
}

func (r ReadOnly) Insert(_ context.Context, _ ports.Connection, _ ports.DTO) (ports.DTO, error) {
	return nil, r.denied("Insert")
}

func (r ReadOnly) Update(_ context.Context, _ ports.Connection, _ ports.DTO) (ports.DTO, error) {
	return nil, r.denied("Update")
}

func (r ReadOnly) Remove(_ context.Context, _ ports.Connection, _ any) error {
	return r.denied("Remove")
}

// NoFetch rejects fetches. Command DAOs embed it alongside ReadOnly.
type NoFetch struct {
	Name string
}

func (n NoFetch) Fetch(_ context.Context, _ ports.Connection, _ string, _ any) (any, error) {
	return nil, &domain.MethodError{Type: n.Name, Method: "Fetch", Message: "command DAO"}
}

// Units is a ports.ConnectionManager for stores without transactions of
// their own. Every connection and transaction is a *unitofwork.UnitOfWork:
// closing a connection or committing runs its deferred steps, and a
// rollback undoes the steps already applied.
type Units struct {
	// Adapter names the store in errors.
	Adapter string
}

// Unit asserts conn back to the unit of work Units handed out.
func (m Units) Unit(conn ports.Connection) (*unitofwork.UnitOfWork, error) {
	u, ok := conn.(*unitofwork.UnitOfWork)
	if !ok {
		return nil, &domain.ArgumentError{Function: m.Adapter, Argument: "conn", Message: fmt.Sprintf("expected a unit of work, got %T", conn)}
	}
	return u, nil
}

func (m Units) OpenConnection(_ context.Context, dataSource string) (ports.Connection, error) {
	return unitofwork.New(dataSource), nil
}

func (m Units) CloseConnection(ctx context.Context, _ string, conn ports.Connection) error {
	u, err := m.Unit(conn)
	if err != nil {
		return err
	}
	return u.Commit(ctx)
}

func (m Units) BeginTransaction(_ context.Context, dataSource string) (ports.Connection, error) {
	return unitofwork.New(dataSource), nil
}

func (m Units) CommitTransaction(ctx context.Context, _ string, conn ports.Connection) error {
	u, err := m.Unit(conn)
	if err != nil {
		return err
	}
	return u.Commit(ctx)
}

func (m Units) RollbackTransaction(ctx context.Context, _ string, conn ports.Connection) error {
	u, err := m.Unit(conn)
	if err != nil {
		return err
	}
	return u.Rollback(ctx)
}
