package unitofwork

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/go-business-objects/internal/platform/logging"
)

// step is one entry of a unit's queue.
type step interface {
	execute(ctx context.Context) error
	rollback(ctx context.Context) error
	description() string
}

type single struct{ a Action }

func (s single) execute(ctx context.Context) error  { return s.a.Execute(ctx) }
func (s single) rollback(ctx context.Context) error { return s.a.Rollback(ctx) }
func (s single) description() string                { return s.a.Description() }

// group executes its actions concurrently. The first failure cancels the
// rest, and whatever finished is undone, latest first.
type group struct {
	actions []Action
	done    []bool
}

func (g *group) execute(ctx context.Context) error {
	g.done = make([]bool, len(g.actions))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, a := range g.actions {
		eg.Go(func() error {
			if err := a.Execute(egCtx); err != nil {
				return err
			}
			g.done[i] = true
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		g.undo(ctx)
		return err
	}
	return nil
}

func (g *group) rollback(ctx context.Context) error {
	g.undo(ctx)
	return nil
}

func (g *group) undo(ctx context.Context) {
	for i := len(g.actions) - 1; i >= 0; i-- {
		if i >= len(g.done) || !g.done[i] {
			continue
		}
		g.done[i] = false
		if err := g.actions[i].Rollback(ctx); err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "group rollback failed",
				slog.String("action", g.actions[i].Description()),
				slog.Any("error", err),
			)
		}
	}
}

func (g *group) description() string {
	switch n := len(g.actions); n {
	case 0:
		return "empty group"
	case 1:
		return g.actions[0].Description()
	default:
		return fmt.Sprintf("group of %d starting with %s", n, g.actions[0].Description())
	}
}
