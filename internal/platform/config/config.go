// Package config loads the service configuration: built-in defaults,
// then configs/base.yaml, then the profile's YAML, then APP_* environment
// variables. See Load.
package config

import "time"

// Config is the whole service configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Log         LogConfig         `koanf:"log"`
	Client      ClientConfig      `koanf:"client"`
	Telemetry   TelemetryConfig   `koanf:"telemetry"`
	Model       ModelConfig       `koanf:"model"`
	Persistence PersistenceConfig `koanf:"persistence"`
	Auth        AuthConfig        `koanf:"auth"`
}

// ServerConfig is the inbound HTTP listener.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ClientConfig is the records API client used by the "api" driver.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig is the exponential backoff between attempts. MaxAttempts
// counts the first try.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig trips after MaxFailures consecutive failures and
// probes again after Timeout.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// TelemetryConfig selects the OpenTelemetry exporter. When disabled the
// global no-op providers stay in place and no metrics are recorded.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// RateLimitConfig bounds the request rate towards the downstream API.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// ModelConfig holds the business object environment settings.
type ModelConfig struct {
	// NoAccessBehavior decides actions no authorization rule mentions:
	// "allow" or "deny".
	NoAccessBehavior string `koanf:"no_access_behavior"`

	// MaxConcurrency bounds how many sibling children a portal action
	// cascades into at once.
	MaxConcurrency int `koanf:"max_concurrency"`

	// DataSource is the data source models use unless they pin one.
	DataSource string `koanf:"data_source"`
}

// PersistenceConfig selects the persistence adapter behind the models.
type PersistenceConfig struct {
	// Driver is one of "memory", "sqlite" or "api".
	Driver string `koanf:"driver"`

	// DSN is the sqlite data source name. Ignored by the other drivers.
	DSN string `koanf:"dsn"`
}

// AuthConfig holds caller identification settings.
type AuthConfig struct {
	// PolicyFile is the YAML file mapping callers to roles.
	PolicyFile string `koanf:"policy_file"`

	// UserHeader carries the caller id.
	UserHeader string `koanf:"user_header"`
}
