package config

// defaults is the lowest configuration layer. Keys are koanf paths; every
// key listed here can also be set through the environment.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          8080,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"client.base_url":                        "http://localhost:8081",
		"client.timeout":                         "30s",
		"client.retry.max_attempts":              3,
		"client.retry.initial_interval":          "100ms",
		"client.retry.max_interval":              "10s",
		"client.retry.multiplier":                2.0,
		"client.circuit_breaker.max_failures":    5,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": 1,
		"client.rate_limit.requests_per_second":  0.0,
		"client.rate_limit.burst":                1,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "go-business-objects",

		"model.no_access_behavior": "allow",
		"model.max_concurrency":    4,
		"model.data_source":        "main",

		"persistence.driver": "memory",
		"persistence.dsn":    "file:business.db?_foreign_keys=on&_busy_timeout=5000",

		"auth.policy_file": "configs/policy.yaml",
		"auth.user_header": "X-User-ID",
	}
}
