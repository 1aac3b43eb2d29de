package rules

import "context"

type userKey struct{}

// WithUser returns a context carrying u for authorization decisions made
// further down the call chain.
func WithUser(ctx context.Context, u UserInfo) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the user stored by WithUser, or nil for an
// anonymous caller.
func UserFromContext(ctx context.Context) UserInfo {
	u, _ := ctx.Value(userKey{}).(UserInfo)
	return u
}
