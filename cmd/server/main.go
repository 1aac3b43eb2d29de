// Command server runs the projects API on top of the business object
// framework. APP_PROFILE picks the configuration profile.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/go-business-objects/internal/adapters/http"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/authz"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/config"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/logging"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

const shutdownTimeout = 20 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile, ok := os.LookupEnv("APP_PROFILE")
	if !ok || profile == "" {
		return errors.New("APP_PROFILE is required (local, dev, qa, prod)")
	}
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	providers, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, providers)
	provide(injector)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return errors.Join(fmt.Errorf("wiring: %w", err), providers.Shutdown(context.Background()))
	}

	store := do.MustInvoke[backend](injector)
	do.MustInvoke[ports.HealthRegistry](injector).Register(store)
	if c, ok := store.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				logger.Error("closing store", slog.Any("error", err))
			}
		}()
	}

	policy := do.MustInvoke[*authz.Policy](injector)
	logger.Info("starting",
		slog.String("profile", profile),
		slog.String("persistence", cfg.Persistence.Driver),
		slog.Int("known_users", policy.Len()),
	)

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	if err := waitForStop(logger, policy, serverErr); err != nil {
		return errors.Join(err, providers.Shutdown(context.Background()))
	}

	// The injector stops the server first, then whatever it depended on,
	// the telemetry providers last.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if report := injector.ShutdownWithContext(ctx); !report.Succeed {
		logger.Error("shutdown", slog.String("report", report.Error()))
	}
	<-serverErr

	logger.Info("stopped")
	return nil
}

// waitForStop blocks until SIGINT or SIGTERM. SIGHUP rereads the caller
// policy in place.
func waitForStop(logger *slog.Logger, policy *authz.Policy, serverErr <-chan error) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	for {
		select {
		case err := <-serverErr:
			return fmt.Errorf("server: %w", err)
		case sig := <-signals:
			if sig != syscall.SIGHUP {
				logger.Info("stopping", slog.String("signal", sig.String()))
				return nil
			}
			if err := policy.Reload(); err != nil {
				logger.Error("reloading policy", slog.Any("error", err))
				continue
			}
			logger.Info("policy reloaded", slog.Int("known_users", policy.Len()))
		}
	}
}
