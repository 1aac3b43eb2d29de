package model

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen11/go-business-objects/internal/domain/event"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/logging"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// DefaultMaxConcurrency bounds sibling cascades when Env leaves it unset.
const DefaultMaxConcurrency = 4

// Recorder receives one observation per finished data portal action.
type Recorder interface {
	RecordPortalAction(ctx context.Context, model, action string, elapsed time.Duration, err error)
}

// Env carries what instances need to reach persistence and to decide
// permissions. Instances keep the Env they were created with; it must not be
// modified afterwards.
type Env struct {
	DAOs        ports.DAOResolver
	Connections ports.ConnectionManager

	// DataSource is used by definitions that do not pin one.
	DataSource string

	// User is the caller authorization rules decide on. Nil is anonymous.
	User rules.UserInfo

	Logger   *slog.Logger
	Recorder Recorder

	// MaxConcurrency bounds how many sibling children an action cascades
	// into at once.
	MaxConcurrency int

	// Events are copied into every instance created with the Env.
	Events event.Subscriptions
}

// WithUser returns a copy of e acting for user.
func (e *Env) WithUser(user rules.UserInfo) *Env {
	c := *e
	c.User = user
	return &c
}

// logger prefers the request logger carried by ctx over Env.Logger.
func (e *Env) logger(ctx context.Context) *slog.Logger {
	if l := logging.FromContext(ctx); l != slog.Default() || e.Logger == nil {
		return l
	}
	return e.Logger
}

func (e *Env) maxConcurrency() int {
	if e.MaxConcurrency < 1 {
		return DefaultMaxConcurrency
	}
	return e.MaxConcurrency
}

func (e *Env) dataSource(d *Definition) string {
	if d.dataSource != "" {
		return d.dataSource
	}
	return e.DataSource
}
