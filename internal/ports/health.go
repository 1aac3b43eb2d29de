package ports

import "context"

// HealthChecker reports whether a backing component (a persistence store,
// the records API client) can serve requests.
type HealthChecker interface {
	// Name keys the component in readiness output, e.g. "sqlite".
	Name() string

	// HealthCheck returns nil when the component is usable. It must return
	// once ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry is the set of checkers the readiness probe consults.
type HealthRegistry interface {
	// Register adds checker, replacing any checker of the same name.
	Register(checker HealthChecker)

	// CheckAll runs every checker and returns each result by name; a nil
	// value means healthy.
	CheckAll(ctx context.Context) map[string]error
}
