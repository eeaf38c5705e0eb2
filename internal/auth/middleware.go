package auth

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the authenticated principal, or nil for guests.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(ctxKey{}).(*Principal)
	return p
}

// Middleware decorates requests with the caller's principal.
type Middleware struct {
	Issuer  *Issuer
	Users   *Users
	Cookies Cookies
}

// resolve returns the principal for a valid token naming an existing user.
func (m *Middleware) resolve(r *http.Request) (*Principal, bool) {
	tok := m.Cookies.TokenFromRequest(r)
	if tok == "" {
		return nil, false
	}
	p, err := m.Issuer.Parse(tok)
	if err != nil {
		return nil, false
	}
	if _, err := m.Users.FindByID(r.Context(), p.ID); err != nil {
		return nil, false
	}
	return &p, true
}

// Optional attaches the principal when a valid token is present. It never
// rejects; routes behind it still run for guests.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := m.resolve(r); ok {
			r = r.WithContext(WithPrincipal(r.Context(), p))
		}
		next.ServeHTTP(w, r)
	})
}

// Require enforces a valid token for an existing user.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Cookies.TokenFromRequest(r) == "" {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		p, ok := m.resolve(r)
		if !ok {
			http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}
