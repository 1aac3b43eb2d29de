// Package memory is the in-process store behind the "memory" persistence
// driver. Tables live in unitofwork.Ref values; every connection and
// transaction the data portal opens is a *unitofwork.UnitOfWork, so a
// failed save undoes the writes it already made.
//
// Writes are applied at once and are visible to concurrent readers before
// commit. The store is meant for local runs and tests, not for isolation.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence"
	"github.com/jsamuelsen11/go-business-objects/internal/app/unitofwork"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

type table struct {
	nextID int64
	rows   map[int64]ports.DTO
}

// tableRef is one named table.
type tableRef struct {
	name string
	ref  *unitofwork.Ref[table]
}

func newTable(name string) *tableRef {
	return &tableRef{name: name, ref: unitofwork.NewRef(table{rows: make(map[int64]ports.DTO)})}
}

// get returns a copy of row id.
func (t *tableRef) get(id int64) (ports.DTO, error) {
	var row ports.DTO
	t.ref.View(func(tb table) {
		if r, ok := tb.rows[id]; ok {
			row = maps.Clone(r)
		}
	})
	if row == nil {
		return nil, fmt.Errorf("%s %d: %w", t.name, id, domain.ErrNotFound)
	}
	return row, nil
}

// selectRows returns copies of the rows match accepts, ordered by id.
func (t *tableRef) selectRows(match func(ports.DTO) bool) []ports.DTO {
	var out []ports.DTO
	t.ref.View(func(tb table) {
		ids := slices.Sorted(maps.Keys(tb.rows))
		for _, id := range ids {
			if r := tb.rows[id]; match == nil || match(r) {
				out = append(out, maps.Clone(r))
			}
		}
	})
	return out
}

func (t *tableRef) insert(ctx context.Context, u *unitofwork.UnitOfWork, row ports.DTO) (ports.DTO, error) {
	var id int64
	err := u.Do(ctx, unitofwork.Step{
		Desc: "insert " + t.name,
		Exec: func(context.Context) error {
			t.ref.Update(func(tb *table) {
				tb.nextID++
				id = tb.nextID
				row["id"] = id
				tb.rows[id] = maps.Clone(row)
			})
			return nil
		},
		Undo: func(context.Context) error {
			t.ref.Update(func(tb *table) { delete(tb.rows, id) })
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// update merges changes into row id and returns the stored row.
func (t *tableRef) update(ctx context.Context, u *unitofwork.UnitOfWork, id int64, changes ports.DTO) (ports.DTO, error) {
	var prev, next ports.DTO
	err := u.Do(ctx, unitofwork.Step{
		Desc: fmt.Sprintf("update %s %d", t.name, id),
		Exec: func(context.Context) error {
			var err error
			t.ref.Update(func(tb *table) {
				r, ok := tb.rows[id]
				if !ok {
					err = fmt.Errorf("%s %d: %w", t.name, id, domain.ErrNotFound)
					return
				}
				prev = maps.Clone(r)
				next = maps.Clone(r)
				maps.Copy(next, changes)
				tb.rows[id] = next
			})
			return err
		},
		Undo: func(context.Context) error {
			t.ref.Update(func(tb *table) { tb.rows[id] = prev })
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return maps.Clone(next), nil
}

func (t *tableRef) remove(ctx context.Context, u *unitofwork.UnitOfWork, id int64) error {
	var prev ports.DTO
	return u.Do(ctx, unitofwork.Step{
		Desc: fmt.Sprintf("delete %s %d", t.name, id),
		Exec: func(context.Context) error {
			var err error
			t.ref.Update(func(tb *table) {
				r, ok := tb.rows[id]
				if !ok {
					err = fmt.Errorf("%s %d: %w", t.name, id, domain.ErrNotFound)
					return
				}
				prev = r
				delete(tb.rows, id)
			})
			return err
		},
		Undo: func(context.Context) error {
			t.ref.Update(func(tb *table) { tb.rows[id] = prev })
			return nil
		},
	})
}

// Store holds the project and todo tables. It implements
// ports.ConnectionManager and ports.HealthChecker; Registry returns its
// DAOs.
type Store struct {
	persistence.Units

	projects *tableRef
	todos    *tableRef
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock stamping created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		Units:    persistence.Units{Adapter: "memory"},
		projects: newTable("project"),
		todos:    newTable("todo"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) timestamp() time.Time { return s.now().UTC() }

// Registry returns a DAO registry over the store.
func (s *Store) Registry() *persistence.Registry {
	r := persistence.NewRegistry()
	registerDAOs(r, s)
	return r
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "memory" }

// HealthCheck implements ports.HealthChecker. The store is always ready.
func (s *Store) HealthCheck(context.Context) error { return nil }
