package config

import (
	"errors"
	"fmt"
	"slices"
)

// problems collects validation failures.
type problems []error

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

func (p *problems) oneOf(key, got string, allowed ...string) {
	p.check(slices.Contains(allowed, got), "%s must be one of %v, got %q", key, allowed, got)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var p problems

	s := c.Server
	p.check(s.Port >= 1 && s.Port <= 65535, "server.port must be between 1 and 65535, got %d", s.Port)
	p.check(s.ReadTimeout > 0, "server.read_timeout must be positive")
	p.check(s.WriteTimeout > 0, "server.write_timeout must be positive")

	p.oneOf("log.level", c.Log.Level, "debug", "info", "warn", "error")
	p.oneOf("log.format", c.Log.Format, "json", "text")

	cl := c.Client
	p.check(cl.BaseURL != "", "client.base_url must not be empty")
	p.check(cl.Timeout > 0, "client.timeout must be positive")
	p.check(cl.Retry.MaxAttempts >= 1, "client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts)
	p.check(cl.Retry.Multiplier > 0, "client.retry.multiplier must be positive, got %g", cl.Retry.Multiplier)
	p.check(cl.CircuitBreaker.MaxFailures >= 1, "client.circuit_breaker.max_failures must be >= 1, got %d", cl.CircuitBreaker.MaxFailures)
	p.check(cl.RateLimit.RequestsPerSecond >= 0, "client.rate_limit.requests_per_second must be >= 0, got %g", cl.RateLimit.RequestsPerSecond)
	p.check(cl.RateLimit.RequestsPerSecond == 0 || cl.RateLimit.Burst >= 1, "client.rate_limit.burst must be >= 1, got %d", cl.RateLimit.Burst)

	if t := c.Telemetry; t.Enabled {
		p.oneOf("telemetry.exporter", t.Exporter, "stdout", "otlp")
		p.check(t.Exporter != "otlp" || t.Endpoint != "", "telemetry.endpoint must not be empty when exporter is otlp")
	}

	m := c.Model
	p.oneOf("model.no_access_behavior", m.NoAccessBehavior, "allow", "deny")
	p.check(m.MaxConcurrency >= 1, "model.max_concurrency must be >= 1, got %d", m.MaxConcurrency)
	p.check(m.DataSource != "", "model.data_source must not be empty")

	p.oneOf("persistence.driver", c.Persistence.Driver, "memory", "sqlite", "api")
	p.check(c.Persistence.Driver != "sqlite" || c.Persistence.DSN != "", "persistence.dsn must not be empty when driver is sqlite")

	p.check(c.Auth.UserHeader != "", "auth.user_header must not be empty")

	return errors.Join(p...)
}
