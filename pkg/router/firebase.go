package router

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

// FirebaseAuth returns an authentication middleware that verifies the
// Bearer token with Firebase and attaches the resulting principal. The
// role comes from the "role" custom claim; the full claim map is kept
// as principal metadata so the role gate's fallback path works for
// tokens that nest the role elsewhere.
func FirebaseAuth(client *auth.Client) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "authorization header required")
				return
			}
			token, err := client.VerifyIDToken(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			p := &Principal{Subject: token.UID, Metadata: token.Claims}
			if role, ok := token.Claims["role"].(string); ok {
				p.Role = role
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
