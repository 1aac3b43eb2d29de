// Package unitofwork provides compensating transactions for stores that
// have no native transaction support: the in-memory tables and the remote
// TODO API.
//
// A UnitOfWork collects actions. Do runs an action at once and remembers
// it for undo; Defer and DeferGroup queue actions until Commit. Rollback
// undoes everything done so far in reverse order:
//
//	uow := unitofwork.New("memory")
//	err := uow.Do(ctx, unitofwork.Step{Desc: "insert todo 7", Exec: ins, Undo: del})
//	...
//	err = uow.Commit(ctx) // or uow.Rollback(ctx)
//
// Memoize caches reads for the lifetime of the unit of work.
package unitofwork

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-business-objects/internal/platform/logging"
)

// ErrFinished is returned when a unit of work is used after Commit or
// Rollback.
var ErrFinished = errors.New("unitofwork: already committed or rolled back")

// ErrNilAction is returned when a nil Action is passed in.
var ErrNilAction = errors.New("unitofwork: nil action")

// ErrTypeMismatch is returned by Memoize when a cached value's type does
// not match the requested type.
var ErrTypeMismatch = errors.New("unitofwork: cached value type mismatch")

// Action is one step of a unit of work.
type Action interface {
	// Execute performs the step.
	Execute(ctx context.Context) error

	// Rollback reverses a successful Execute. It is never called for a
	// step whose Execute failed.
	Rollback(ctx context.Context) error

	// Description names the step in logs, e.g. "insert todo 7".
	Description() string
}

// Step adapts a pair of functions to Action. A nil Undo makes Rollback a
// no-op.
type Step struct {
	Desc string
	Exec func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

func (s Step) Execute(ctx context.Context) error { return s.Exec(ctx) }

func (s Step) Rollback(ctx context.Context) error {
	if s.Undo == nil {
		return nil
	}
	return s.Undo(ctx)
}

func (s Step) Description() string { return s.Desc }

// UnitOfWork is safe for concurrent use: sibling children saved in
// parallel share one unit of work.
type UnitOfWork struct {
	id         string
	dataSource string

	mu       sync.Mutex
	done     []step
	deferred []step
	cache    map[string]cacheEntry
	finished bool
}

type cacheEntry struct {
	value any
	err   error
}

// New starts a unit of work on the named data source.
func New(dataSource string) *UnitOfWork {
	return &UnitOfWork{
		id:         uuid.NewString(),
		dataSource: dataSource,
		cache:      make(map[string]cacheEntry),
	}
}

// ID identifies the unit of work in logs.
func (u *UnitOfWork) ID() string { return u.id }

// DataSource implements ports.Connection.
func (u *UnitOfWork) DataSource() string { return u.dataSource }

// Do executes action now. On success the action is kept for Rollback.
func (u *UnitOfWork) Do(ctx context.Context, action Action) error {
	if action == nil {
		return ErrNilAction
	}
	if u.isFinished() {
		return ErrFinished
	}
	if err := action.Execute(ctx); err != nil {
		return fmt.Errorf("executing %s: %w", action.Description(), err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.done = append(u.done, single{a: action})
	return nil
}

// Defer queues action for Commit.
func (u *UnitOfWork) Defer(action Action) error {
	if action == nil {
		return ErrNilAction
	}
	return u.enqueue(single{a: action})
}

// DeferGroup queues actions that Commit runs concurrently.
func (u *UnitOfWork) DeferGroup(actions ...Action) error {
	for _, a := range actions {
		if a == nil {
			return ErrNilAction
		}
	}
	return u.enqueue(&group{actions: actions})
}

func (u *UnitOfWork) enqueue(item step) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.finished {
		return ErrFinished
	}
	u.deferred = append(u.deferred, item)
	return nil
}

func (u *UnitOfWork) isFinished() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.finished
}

// finish marks the unit of work finished and hands out its queues.
func (u *UnitOfWork) finish() (done, deferred []step, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.finished {
		return nil, nil, ErrFinished
	}
	u.finished = true
	return u.done, u.deferred, nil
}

// Commit runs the deferred actions in order. When one fails, the deferred
// actions that ran and every action done with Do are rolled back in
// reverse order, and the failure is returned.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	done, deferred, err := u.finish()
	if err != nil {
		return err
	}

	logger := logging.FromContext(ctx)
	for i, item := range deferred {
		logger.DebugContext(ctx, "executing deferred action",
			slog.String("operation", "UnitOfWork.Commit"),
			slog.String("unit_of_work", u.id),
			slog.Int("step", i+1),
			slog.Int("total", len(deferred)),
			slog.String("action", item.description()),
		)

		if err := item.execute(ctx); err != nil {
			logger.ErrorContext(ctx, "deferred action failed, rolling back",
				slog.String("operation", "UnitOfWork.Commit"),
				slog.String("unit_of_work", u.id),
				slog.Int("failed_step", i+1),
				slog.String("action", item.description()),
				slog.Any("error", err),
			)
			rollbackItems(ctx, u.id, deferred[:i], logger)
			rollbackItems(ctx, u.id, done, logger)
			return fmt.Errorf("executing %s: %w", item.description(), err)
		}
	}
	return nil
}

// Rollback undoes every action done with Do in reverse order and drops the
// deferred ones. Undo failures are logged, not returned.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	done, _, err := u.finish()
	if err != nil {
		return err
	}
	rollbackItems(ctx, u.id, done, logging.FromContext(ctx))
	return nil
}

// rollbackItems rolls items back in reverse order. Failures are logged and
// do not stop the remaining rollbacks.
func rollbackItems(ctx context.Context, id string, items []step, logger *slog.Logger) {
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]

		logger.InfoContext(ctx, "rolling back action",
			slog.String("operation", "UnitOfWork.rollback"),
			slog.String("unit_of_work", id),
			slog.Int("step", i+1),
			slog.String("action", item.description()),
		)

		if err := item.rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "rollback failed",
				slog.String("operation", "UnitOfWork.rollback"),
				slog.String("unit_of_work", id),
				slog.Int("step", i+1),
				slog.String("action", item.description()),
				slog.Any("error", err),
			)
		}
	}
}

// Memoize returns the value cached under key, or calls fetch and caches
// its result, errors included. The same key must always be used with the
// same type T.
func Memoize[T any](ctx context.Context, u *UnitOfWork, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	u.mu.Lock()
	entry, ok := u.cache[key]
	u.mu.Unlock()
	if ok {
		if entry.err != nil {
			return zero, entry.err
		}
		v, ok := entry.value.(T)
		if !ok {
			return zero, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
		}
		return v, nil
	}

	val, err := fetch(ctx)

	u.mu.Lock()
	u.cache[key] = cacheEntry{value: val, err: err}
	u.mu.Unlock()
	return val, err
}

// Forget drops a memoized value, e.g. after a write made it stale.
func (u *UnitOfWork) Forget(key string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.cache, key)
}
