package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsamuelsen11/go-business-objects/internal/platform/config"
)

// Load tests chdir to the module root to read ./configs, so they cannot
// run in parallel.

func TestLoad_Profiles(t *testing.T) {
	t.Chdir("../../..")

	tests := []struct {
		profile string
		check   func(t *testing.T, c *config.Config)
	}{
		{
			profile: "local",
			check: func(t *testing.T, c *config.Config) {
				if c.Log.Level != "debug" || c.Log.Format != "text" {
					t.Errorf("log = %+v, want debug/text", c.Log)
				}
				if c.Persistence.Driver != "sqlite" || c.Persistence.DSN == "" {
					t.Errorf("persistence = %+v, want sqlite with a dsn", c.Persistence)
				}
				if c.Telemetry.Enabled {
					t.Error("telemetry enabled, want off")
				}
			},
		},
		{
			profile: "prod",
			check: func(t *testing.T, c *config.Config) {
				if c.Persistence.Driver != "api" {
					t.Errorf("driver = %q, want api", c.Persistence.Driver)
				}
				if !c.Telemetry.Enabled || c.Telemetry.Exporter != "otlp" || c.Telemetry.Endpoint == "" {
					t.Errorf("telemetry = %+v, want otlp with an endpoint", c.Telemetry)
				}
				if c.Client.RateLimit.RequestsPerSecond != 50 || c.Model.MaxConcurrency != 8 {
					t.Errorf("rate/concurrency = %v/%d, want 50/8", c.Client.RateLimit.RequestsPerSecond, c.Model.MaxConcurrency)
				}
			},
		},
		{
			profile: "test",
			check: func(t *testing.T, c *config.Config) {
				if c.Persistence.Driver != "memory" || c.Log.Level != "error" {
					t.Errorf("driver/level = %q/%q, want memory/error", c.Persistence.Driver, c.Log.Level)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			cfg, err := config.Load(tt.profile)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", tt.profile, err)
			}
			// base.yaml
			if cfg.Server.Host != "0.0.0.0" || cfg.Client.CircuitBreaker.MaxFailures != 5 {
				t.Errorf("base values lost: host=%q max_failures=%d", cfg.Server.Host, cfg.Client.CircuitBreaker.MaxFailures)
			}
			// defaults only
			if cfg.Auth.UserHeader != "X-User-ID" {
				t.Errorf("Auth.UserHeader = %q, want the default", cfg.Auth.UserHeader)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir("../../..")

	tests := []struct {
		env   string
		value string
		check func(c *config.Config) bool
	}{
		{env: "APP_SERVER_PORT", value: "9090", check: func(c *config.Config) bool { return c.Server.Port == 9090 }},
		{env: "APP_SERVER_READ_TIMEOUT", value: "15s", check: func(c *config.Config) bool { return c.Server.ReadTimeout == 15*time.Second }},
		{env: "APP_CLIENT_RETRY_MAX_ATTEMPTS", value: "7", check: func(c *config.Config) bool { return c.Client.Retry.MaxAttempts == 7 }},
		{env: "APP_MODEL_NO_ACCESS_BEHAVIOR", value: "deny", check: func(c *config.Config) bool { return c.Model.NoAccessBehavior == "deny" }},
		{env: "APP_PERSISTENCE_DRIVER", value: "memory", check: func(c *config.Config) bool { return c.Persistence.Driver == "memory" }},
		{env: "APP_AUTH_USER_HEADER", value: "X-Caller", check: func(c *config.Config) bool { return c.Auth.UserHeader == "X-Caller" }},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			cfg, err := config.Load("local")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("%s=%s not applied", tt.env, tt.value)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Chdir("../../..")

	tests := []struct {
		name    string
		profile string
		env     map[string]string
		want    string
	}{
		{name: "missing profile file", profile: "staging", want: "staging.yaml"},
		{name: "empty profile", profile: " ", want: "must not be empty"},
		{name: "path in profile", profile: "../etc/passwd", want: "plain name"},
		{name: "invalid override", profile: "local", env: map[string]string{"APP_MODEL_MAX_CONCURRENCY": "0"}, want: "model.max_concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(tt.profile)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load(%q) error = %v, want it to mention %q", tt.profile, err, tt.want)
			}
		})
	}
}

func TestLoad_WithConfigDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("base.yaml", "server:\n  port: 7000\n")
	write("ci.yaml", "persistence:\n  driver: api\n")

	cfg, err := config.Load("ci", config.WithConfigDir(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7000 || cfg.Persistence.Driver != "api" {
		t.Errorf("port/driver = %d/%q, want 7000/api", cfg.Server.Port, cfg.Persistence.Driver)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want the default", cfg.Log.Level)
	}
}
