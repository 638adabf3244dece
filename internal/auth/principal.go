package auth

import "context"

// Principal is the authenticated identity of one request.
// It is rebuilt from the token on every request and never persisted.
type Principal struct {
	ID    uint64
	Email string
	Role  Role
}

// Authorities returns the authority set derived from the principal's role.
func (p Principal) Authorities() Authorities {
	return AuthoritiesOf(p.Role)
}

// principalKey is the context key for the request principal.
type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, &p)
}

// WithoutPrincipal returns a copy of ctx that reports no principal, even if a parent carries one.
func WithoutPrincipal(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey{}, (*Principal)(nil))
}

// CurrentPrincipal returns the principal stored in ctx.
func CurrentPrincipal(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}

	p, ok := ctx.Value(principalKey{}).(*Principal)
	if !ok || p == nil {
		return Principal{}, false
	}

	return *p, true
}
