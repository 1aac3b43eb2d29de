package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-business-objects/mocks"
)

func TestLiveness(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t))

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	requireStatus(t, rec, http.StatusOK)
	if diff := cmp.Diff(dto.HealthResponse{Status: "ok"}, decodeBody[dto.HealthResponse](t, rec)); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		results    map[string]error
		wantStatus int
		want       dto.HealthResponse
	}{
		{
			name:       "no backends",
			results:    map[string]error{},
			wantStatus: http.StatusOK,
			want:       dto.HealthResponse{Status: "ready"},
		},
		{
			name:       "memory store",
			results:    map[string]error{"memory": nil},
			wantStatus: http.StatusOK,
			want:       dto.HealthResponse{Status: "ready", Checks: map[string]string{"memory": "ok"}},
		},
		{
			name: "records api breaker open",
			results: map[string]error{
				"sqlite":      nil,
				"records-api": errors.New("records-api: failing (circuit breaker open)"),
			},
			wantStatus: http.StatusServiceUnavailable,
			want: dto.HealthResponse{
				Status: "not_ready",
				Checks: map[string]string{
					"sqlite":      "ok",
					"records-api": "records-api: failing (circuit breaker open)",
				},
				Failing: []string{"records-api"},
			},
		},
		{
			name: "several failing sorted",
			results: map[string]error{
				"sqlite":      errors.New("database is locked"),
				"records-api": errors.New("timeout"),
			},
			wantStatus: http.StatusServiceUnavailable,
			want: dto.HealthResponse{
				Status: "not_ready",
				Checks: map[string]string{
					"sqlite":      "database is locked",
					"records-api": "timeout",
				},
				Failing: []string{"records-api", "sqlite"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.results)

			rec := httptest.NewRecorder()
			handlers.NewHealthHandler(registry).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			requireStatus(t, rec, tt.wantStatus)
			if diff := cmp.Diff(tt.want, decodeBody[dto.HealthResponse](t, rec)); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
