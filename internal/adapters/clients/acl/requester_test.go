package acl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/httpclient"
)

type seenRequest struct {
	method, key, contentType string
}

func TestRequester_Do(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		body    any
		status  int
		want    seenRequest
		wantErr error
	}{
		{
			name:   "GET sends no key",
			method: http.MethodGet,
			status: http.StatusOK,
			want:   seenRequest{method: http.MethodGet},
		},
		{
			name:   "POST carries key and JSON",
			method: http.MethodPost,
			body:   map[string]string{"name": "garden"},
			status: http.StatusOK,
			want:   seenRequest{method: http.MethodPost, key: "set", contentType: "application/json"},
		},
		{
			name:    "404 becomes not found",
			method:  http.MethodDelete,
			status:  http.StatusNotFound,
			want:    seenRequest{method: http.MethodDelete},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				mu  sync.Mutex
				got seenRequest
			)
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				got = seenRequest{method: r.Method, contentType: r.Header.Get("Content-Type")}
				if r.Header.Get("Idempotency-Key") != "" {
					got.key = "set"
				}
				mu.Unlock()
				if tt.status == http.StatusOK {
					reply(w, http.StatusOK, map[string]int{"id": 7})
					return
				}
				writeProblem(w, tt.status, "missing")
			}))
			t.Cleanup(ts.Close)

			r := NewRequester(newTestClient(t, ts.URL), slog.New(slog.DiscardHandler))
			var out struct {
				ID int `json:"id"`
			}
			err := r.Do(context.Background(), tt.method, "/api/v1/groups/7", http.StatusOK, tt.body, &out)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Do() error = %v, want %v", err, tt.wantErr)
			}
			mu.Lock()
			defer mu.Unlock()
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(seenRequest{})); diff != "" {
				t.Errorf("request mismatch (-want +got):\n%s", diff)
			}
			if tt.wantErr == nil && out.ID != 7 {
				t.Errorf("decoded id = %d, want 7", out.ID)
			}
		})
	}
}

func TestRequester_RetriedPostKeepsKey(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		keys []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		n := len(keys)
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		reply(w, http.StatusCreated, map[string]int{"id": 1})
	}))
	t.Cleanup(ts.Close)

	cfg := testClientConfig(ts.URL)
	cfg.Retry.MaxAttempts = 2
	client := httpclient.New(cfg, "records-api", nil, slog.New(slog.DiscardHandler))

	r := NewRequester(client, slog.New(slog.DiscardHandler))
	if err := r.Do(context.Background(), http.MethodPost, "/api/v1/todos", http.StatusCreated, map[string]string{"title": "a"}, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(keys) != 2 {
		t.Fatalf("attempts = %d, want 2", len(keys))
	}
	if keys[0] == "" || keys[0] != keys[1] {
		t.Errorf("keys = %q, want one non-empty key reused", keys)
	}
}

func TestRequester_UnsupportedMethod(t *testing.T) {
	t.Parallel()

	r := NewRequester(newTestClient(t, "http://127.0.0.1:1"), slog.New(slog.DiscardHandler))
	if err := r.Do(context.Background(), http.MethodPatch, "/x", http.StatusOK, nil, nil); err == nil {
		t.Fatal("Do(PATCH) error = nil, want unsupported method")
	}
}
