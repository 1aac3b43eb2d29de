package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/middleware"
)

type discardWriter struct{}

func (discardWriter) Header() http.Header       { return http.Header{} }
func (discardWriter) Write(b []byte) (int, error) { return len(b), nil }
func (discardWriter) WriteHeader(int)            {}

func newRequestWithHeaders(headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestRedactHeaders(t *testing.T) {
	t.Parallel()

	headers := http.Header{
		"X-User-Id":     {"alice"},
		"Authorization": {"Bearer abc"},
		"Cookie":        {"sid=1"},
		"Accept":        {"application/json", "text/plain"},
		"X-Api-Key":     {"k"},
	}

	got := map[string]string{}
	var order []string
	for _, a := range middleware.RedactHeaders(headers) {
		got[a.Key] = a.Value.String()
		order = append(order, a.Key)
	}

	want := map[string]string{
		"Accept":        "application/json,text/plain",
		"Authorization": "[REDACTED]",
		"Cookie":        "[REDACTED]",
		"X-Api-Key":     "[REDACTED]",
		"X-User-Id":     "alice",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RedactHeaders mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Accept", "Authorization", "Cookie", "X-Api-Key", "X-User-Id"}, order); diff != "" {
		t.Errorf("attribute order mismatch (-want +got):\n%s", diff)
	}
}

func TestRedactHeaders_Empty(t *testing.T) {
	t.Parallel()

	if got := middleware.RedactHeaders(http.Header{}); len(got) != 0 {
		t.Errorf("RedactHeaders(empty) = %v, want none", got)
	}
}
