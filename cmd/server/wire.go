package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/clients/acl"
	adapthttp "github.com/jsamuelsen11/go-business-objects/internal/adapters/http"
	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence"
	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence/memory"
	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence/sqlite"
	"github.com/jsamuelsen11/go-business-objects/internal/app"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/model"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/project"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/authz"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/config"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/health"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// backend is a persistence adapter the models can run on.
type backend interface {
	ports.ConnectionManager
	ports.HealthChecker
	Registry() *persistence.Registry
}

// provide registers every service lazily. The injector expects *config.Config,
// *slog.Logger and *telemetry.Providers as values.
func provide(i do.Injector) {
	do.Provide(i, func(i do.Injector) (*telemetry.Metrics, error) {
		return do.MustInvoke[*telemetry.Providers](i).Metrics(), nil
	})
	do.Provide(i, func(do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})
	do.Provide(i, func(i do.Injector) (*authz.Policy, error) {
		return authz.Load(do.MustInvoke[*config.Config](i).Auth.PolicyFile)
	})
	do.Provide(i, func(i do.Injector) (*httpclient.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return httpclient.New(&cfg.Client, "records-api", do.MustInvoke[*telemetry.Metrics](i), do.MustInvoke[*slog.Logger](i)), nil
	})

	provideModels(i)
	provideHTTP(i)
}

func provideModels(i do.Injector) {
	do.Provide(i, func(i do.Injector) (backend, error) {
		return openBackend(context.Background(), i)
	})
	do.Provide(i, func(i do.Injector) (*project.Models, error) {
		setting := do.MustInvoke[*config.Config](i).Model.NoAccessBehavior
		noAccess, ok := rules.ParseNoAccessBehavior(setting)
		if !ok {
			return nil, fmt.Errorf("unknown no-access behavior %q", setting)
		}
		return project.Define(noAccess)
	})
	do.Provide(i, func(i do.Injector) (*model.Env, error) {
		cfg := do.MustInvoke[*config.Config](i)
		store := do.MustInvoke[backend](i)
		return &model.Env{
			DAOs:           store.Registry(),
			Connections:    store,
			DataSource:     cfg.Model.DataSource,
			Logger:         do.MustInvoke[*slog.Logger](i),
			Recorder:       do.MustInvoke[*telemetry.Metrics](i),
			MaxConcurrency: cfg.Model.MaxConcurrency,
		}, nil
	})
	do.Provide(i, func(i do.Injector) (ports.ProjectService, error) {
		return app.NewProjectService(
			do.MustInvoke[*model.Env](i),
			do.MustInvoke[*project.Models](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})
}

func openBackend(ctx context.Context, i do.Injector) (backend, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*slog.Logger](i)

	switch cfg.Persistence.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		store, err := sqlite.Open(ctx, cfg.Persistence.DSN, sqlite.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, nil
	case "api":
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewStore(client, logger, acl.WithMaxConcurrency(cfg.Model.MaxConcurrency)), nil
	default:
		return nil, fmt.Errorf("unknown persistence driver %q", cfg.Persistence.Driver)
	}
}

func provideHTTP(i do.Injector) {
	do.Provide(i, func(i do.Injector) (nethttp.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		svc := do.MustInvoke[ports.ProjectService](i)

		return adapthttp.NewRouter(
			handlers.NewProjectHandler(svc),
			handlers.NewTodoHandler(svc),
			handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)),
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.Identity(do.MustInvoke[*authz.Policy](i), cfg.Auth.UserHeader),
			middleware.OpenTelemetry(do.MustInvoke[*telemetry.Metrics](i)),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})
	do.Provide(i, func(i do.Injector) (*adapthttp.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[nethttp.Handler](i), do.MustInvoke[*slog.Logger](i)), nil
	})
}
