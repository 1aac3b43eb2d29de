package model

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-business-objects/internal/app/fanout"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/event"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// Data portal action names.
const (
	ActionCreate  = "create"
	ActionFetch   = "fetch"
	ActionInsert  = "insert"
	ActionUpdate  = "update"
	ActionRemove  = "remove"
	ActionExecute = "execute"
	actionSave    = "save"
)

type connectMode int

const (
	noConnection connectMode = iota
	plainConnection
	transaction
)

// portalCall describes one data portal action on one instance.
type portalCall struct {
	action string
	auth   rules.Action
	target string
	method string

	// conn is the caller's connection at child level. When nil and mode
	// asks for one, the action acquires and releases its own.
	conn ports.Connection
	mode connectMode
}

// host is what the data portal needs from an instance.
type host interface {
	Definition() *Definition
	environment() *Env
	emit(ctx context.Context, e event.Event)
	hasPermission(action rules.Action, target string) bool
}

// runPortal executes the common protocol around body: permission gate,
// connection acquisition, pre event, body, connection release, post event
// and error wrapping. body covers the data access, the children cascade
// and the state transition. The post event carries the final error, a
// failed commit included. A denied permission makes the call a silent
// no-op.
func runPortal(ctx context.Context, h host, c portalCall, body func(ctx context.Context, conn ports.Connection) error) (err error) {
	def := h.Definition()
	env := h.environment()

	if !h.hasPermission(c.auth, c.target) {
		return nil
	}

	ctx, span := otel.GetTracerProvider().Tracer("model").Start(ctx, "portal "+c.action+" "+def.name,
		trace.WithAttributes(
			attribute.String("model.name", def.name),
			attribute.String("model.kind", def.kind.String()),
			attribute.String("portal.action", c.action),
		),
	)
	defer span.End()

	start := time.Now()
	owned := c.conn == nil && c.mode != noConnection
	completed := false
	defer func() {
		observe(ctx, env, def, c, owned, span, time.Since(start), err)
	}()

	// Registered before the release so it runs after it.
	defer func() {
		if completed {
			h.emit(ctx, event.Event{Name: event.Post(c.action), Action: c.action, ModelName: def.name, Method: c.method, Err: err})
		}
	}()

	ds := env.dataSource(def)
	conn := c.conn
	if owned {
		conn, err = acquire(ctx, env, ds, c.mode)
		if err != nil {
			return wrap(def, c.action, err)
		}

		// completed stays false when body panics, so the deferred release
		// rolls back.
		defer func() {
			if rerr := release(ctx, env, ds, c.mode, conn, completed && err == nil); rerr != nil && err == nil {
				err = wrap(def, c.action, rerr)
			}
		}()
	}

	h.emit(ctx, event.Event{Name: event.Pre(c.action), Action: c.action, ModelName: def.name, Method: c.method})

	if berr := body(ctx, conn); berr != nil {
		err = wrap(def, c.action, berr)
	}
	completed = true
	return err
}

func wrap(def *Definition, action string, err error) error {
	return &domain.DataPortalError{ModelType: def.kind.String(), ModelName: def.name, Action: action, Inner: err}
}

func acquire(ctx context.Context, env *Env, ds string, mode connectMode) (ports.Connection, error) {
	if env.Connections == nil {
		return nil, &domain.ArgumentError{Function: "model.Env", Argument: "Connections", Message: "no connection manager configured"}
	}
	if mode == transaction {
		conn, err := env.Connections.BeginTransaction(ctx, ds)
		if err != nil {
			return nil, fmt.Errorf("beginning transaction on %q: %w", ds, err)
		}
		return conn, nil
	}
	conn, err := env.Connections.OpenConnection(ctx, ds)
	if err != nil {
		return nil, fmt.Errorf("opening connection to %q: %w", ds, err)
	}
	return conn, nil
}

// release commits or closes on success and rolls back on failure. A
// rollback failure is logged; the original failure stays the reported one.
func release(ctx context.Context, env *Env, ds string, mode connectMode, conn ports.Connection, ok bool) error {
	switch {
	case mode == transaction && ok:
		if err := env.Connections.CommitTransaction(ctx, ds, conn); err != nil {
			return fmt.Errorf("committing transaction on %q: %w", ds, err)
		}
	case mode == transaction:
		if err := env.Connections.RollbackTransaction(ctx, ds, conn); err != nil {
			env.logger(ctx).ErrorContext(ctx, "rollback failed",
				slog.String("operation", "model.release"),
				slog.String("data_source", ds),
				slog.Any("error", err),
			)
		}
	default:
		if err := env.Connections.CloseConnection(ctx, ds, conn); err != nil {
			if ok {
				return fmt.Errorf("closing connection to %q: %w", ds, err)
			}
			env.logger(ctx).ErrorContext(ctx, "closing connection failed",
				slog.String("operation", "model.release"),
				slog.String("data_source", ds),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

// observe records the span status and metrics of a finished action. Only
// the action that owned the connection logs a failure so a failing child
// is not logged once per ancestor.
func observe(ctx context.Context, env *Env, def *Definition, c portalCall, owned bool, span trace.Span, elapsed time.Duration, err error) {
	if env.Recorder != nil {
		env.Recorder.RecordPortalAction(ctx, def.name, c.action, elapsed, err)
	}
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if owned {
		env.logger(ctx).ErrorContext(ctx, "data portal action failed",
			slog.String("operation", "model.portal"),
			slog.String("model", def.name),
			slog.String("action", c.action),
			slog.String("method", c.method),
			slog.Any("error", err),
		)
	}
}

// cascade runs fn for every child on a bounded number of goroutines and
// waits for all of them. The first error in child order wins.
func cascade[T any](ctx context.Context, env *Env, children []T, fn func(context.Context, T) error) error {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return fn(ctx, children[0])
	}
	return fanout.Each(ctx, env.maxConcurrency(), children, fn)
}

// fetchAuth returns the permission a fetch checks: fetchObject, or
// executeMethod for a named fetch method.
func fetchAuth(method string) (rules.Action, string) {
	if method != "" {
		return rules.ExecuteMethod, method
	}
	return rules.FetchObject, ""
}

// fetchData calls the DAO for a root fetch. Named methods go through
// RunMethod when the DAO implements it.
func fetchData(ctx context.Context, env *Env, def *Definition, conn ports.Connection, filter any, method string) (any, error) {
	dao, err := resolveDAO(env, def)
	if err != nil {
		return nil, err
	}
	if runner, ok := dao.(ports.MethodRunner); ok && method != "" {
		return runner.RunMethod(ctx, conn, method, filter)
	}
	return dao.Fetch(ctx, conn, method, filter)
}
