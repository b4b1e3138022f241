// Package auth turns the identity asserted by the upstream authentication
// service into a request-scoped capability. The gateway in front of this
// service verifies the session and forwards the user id and role grants as
// trusted headers; nothing here re-validates credentials.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/veridex/carbon-ledger/pkg/models"
)

// Header names set by the authenticating gateway.
const (
	UserIDHeader = "X-User-Id"
	RolesHeader  = "X-User-Roles"
)

// Principal is the verified identity and role grants for one request.
type Principal struct {
	UserID string
	Roles  []models.Role
}

// HasRole reports whether the principal holds any of the given roles.
func (p Principal) HasRole(roles ...models.Role) bool {
	for _, want := range roles {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

type contextKey struct{}

// FromContext extracts the request principal.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

// WithPrincipal returns a context carrying the principal. Exposed for tests.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// Middleware resolves the identity headers into a Principal. Requests without
// an asserted user id are rejected before reaching any handler.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			http.Error(w, "Missing identity", http.StatusUnauthorized)
			return
		}

		var roles []models.Role
		for _, raw := range strings.Split(r.Header.Get(RolesHeader), ",") {
			role := models.Role(strings.TrimSpace(raw))
			if models.ValidRole(role) {
				roles = append(roles, role)
			}
		}

		ctx := WithPrincipal(r.Context(), Principal{UserID: userID, Roles: roles})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route on the principal holding at least one of the
// given role grants.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "Missing identity", http.StatusUnauthorized)
				return
			}
			if !p.HasRole(roles...) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
