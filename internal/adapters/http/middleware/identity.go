package middleware

import (
	"net/http"

	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/httpclient"
)

// DefaultUserHeader is the request header carrying the caller's user code
// when no other header is configured.
const DefaultUserHeader = "X-User-ID"

// UserDirectory resolves a user code to the identity authorization rules
// decide on. It returns nil for an unknown caller.
type UserDirectory interface {
	User(id string) rules.UserInfo
}

// Identity returns middleware that reads the caller's user code from
// header, resolves it through dir and stores the result for the business
// rules via rules.WithUser. Unknown or missing codes leave the request
// anonymous; the rules decide what anonymous callers may do.
//
// The raw code is also forwarded to outbound calls via
// httpclient.WithUserID.
func Identity(dir UserDirectory, header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultUserHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(header)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := httpclient.WithUserID(r.Context(), id)
			if u := dir.User(id); u != nil {
				ctx = rules.WithUser(ctx, u)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
