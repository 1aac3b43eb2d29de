package httpclient

import (
	"context"
	"net/http"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyCorrelationID
	keyUserID
)

// propagated pairs each context value with the header it travels in.
var propagated = [...]struct {
	key    ctxKey
	header string
}{
	{keyRequestID, "X-Request-ID"},
	{keyCorrelationID, "X-Correlation-ID"},
	{keyUserID, "X-User-ID"},
}

// WithRequestID makes outbound requests made with ctx carry id as
// X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// WithCorrelationID makes outbound requests made with ctx carry id as
// X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyCorrelationID, id)
}

// WithUserID makes outbound requests made with ctx carry id as X-User-ID,
// so the records API authorizes the same caller.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyUserID, id)
}

// injectHeaders copies the identifiers present in ctx onto h. Headers the
// caller set already win.
func injectHeaders(ctx context.Context, h http.Header) {
	for _, p := range propagated {
		id, _ := ctx.Value(p.key).(string)
		if id == "" || h.Get(p.header) != "" {
			continue
		}
		h.Set(p.header, id)
	}
}
