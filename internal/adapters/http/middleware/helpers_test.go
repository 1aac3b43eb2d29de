package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
)

func textLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// serveRoute mounts h at pattern behind mws on a chi router and serves one
// request for path.
func serveRoute(
	pattern, method, path string,
	h http.HandlerFunc,
	mws ...func(http.Handler) http.Handler,
) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	for _, mw := range mws {
		r.Use(mw)
	}
	r.Method(method, pattern, h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, http.NoBody))
	return rec
}

// asUser is middleware that marks every request as made by code.
func asUser(code string, roles ...string) func(http.Handler) http.Handler {
	u := &rules.User{Code: code, Name: code, Roles: roles}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(rules.WithUser(r.Context(), u)))
		})
	}
}
