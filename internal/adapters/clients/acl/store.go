package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/httpclient"
)

// Store is the "api" persistence driver: the sample models stored in the
// downstream records API. Groups hold projects; todos carry their project
// in group_id.
//
// The API has no transactions. Every connection is a unit of work:
// creates and updates run at once and register a compensating request,
// deletes wait for commit. A failed save therefore deletes what it
// created and puts back what it changed.
//
// Store implements ports.ConnectionManager and ports.HealthChecker.
type Store struct {
	persistence.Units

	req     *Requester
	client  *httpclient.Client
	workers int
}

// Option configures a Store.
type Option func(*Store)

// WithMaxConcurrency bounds the parallel requests of list fetches.
func WithMaxConcurrency(n int) Option {
	return func(s *Store) { s.workers = n }
}

// NewStore creates a Store that sends requests through client.
func NewStore(client *httpclient.Client, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		Units:   persistence.Units{Adapter: "api"},
		req:     NewRequester(client, logger),
		client:  client,
		workers: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns a DAO registry over the store.
func (s *Store) Registry() *persistence.Registry {
	r := persistence.NewRegistry()
	registerDAOs(r, s)
	return r
}

// Name implements ports.HealthChecker with the downstream service name.
func (s *Store) Name() string { return s.client.Name() }

// HealthCheck implements ports.HealthChecker from the circuit breaker
// state of the client.
func (s *Store) HealthCheck(ctx context.Context) error { return s.client.HealthCheck(ctx) }

func groupPath(id int64) string { return fmt.Sprintf("/api/v1/groups/%d", id) }

func todoPath(id int64) string { return fmt.Sprintf("/api/v1/todos/%d", id) }

// filterQuery converts a domain.TodoFilter to a URL query string (including the
// leading "?"). Returns an empty string if no filters are set.
func filterQuery(f domain.TodoFilter) string {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status.String())
	}
	if f.Category != "" {
		v.Set("category", f.Category.String())
	}
	if f.ProjectID != nil {
		v.Set("group_id", fmt.Sprintf("%d", *f.ProjectID))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
