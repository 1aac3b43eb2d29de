package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// withRoute attaches chi URL params as the router would after matching.
func withRoute(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleProject() ports.CTO {
	return ports.CTO{
		"id":          int64(1),
		"name":        "Sprint 1",
		"description": "First sprint tasks",
		"created_at":  "2026-02-12T15:04:05Z",
		"updated_at":  "2026-02-12T15:04:05Z",
		"todos":       []map[string]any{sampleTodo()},
	}
}

func sampleTodo() ports.CTO {
	return ports.CTO{
		"id":               int64(1),
		"project_id":       int64(1),
		"title":            "Buy groceries",
		"description":      "Milk, eggs, bread",
		"status":           "pending",
		"category":         "personal",
		"progress_percent": int64(0),
	}
}

func brokenRulesError(field, message string) error {
	out := rules.NewBrokenRulesOutput()
	out.Add(field, rules.Notice{Message: message, Severity: rules.Error})
	return &rules.BrokenRulesError{Model: "todo", Response: rules.NewBrokenRulesResponse(out, "")}
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal(%T): %v", v, err)
	}
	return bytes.NewReader(raw)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
