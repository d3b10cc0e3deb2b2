package router

import (
	"context"
	"encoding/json"
	"net/http"
)

// Principal is the authenticated identity an upstream authentication
// middleware attaches to the request context.
type Principal struct {
	Subject  string
	Role     string
	Metadata map[string]interface{}
}

// ResolvedRole returns the principal's role: the Role attribute when
// set, otherwise the "role" entry of the metadata map.
func (p *Principal) ResolvedRole() string {
	if p.Role != "" {
		return p.Role
	}
	if role, ok := p.Metadata["role"].(string); ok {
		return role
	}
	return ""
}

type principalKey struct{}

// WithPrincipal attaches a principal to the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the principal attached by an authentication
// middleware, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// RequireRoles returns the role-gate middleware for a fixed allowed-role
// set. Requests without a principal are rejected with 401; requests
// whose resolved role is not in the set are rejected with 403. The
// decision is per-request and synchronous, no retries.
func RequireRoles(roles ...string) Middleware {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !allowed[p.ResolvedRole()] {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
