package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackgen-cli/stackgen/pkg/router"
)

func gateRequest(t *testing.T, p *router.Principal, roles ...string) *httptest.ResponseRecorder {
	t.Helper()
	handler := router.RequireRoles(roles...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if p != nil {
		req = req.WithContext(router.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	t.Run("no principal yields 401", func(t *testing.T) {
		t.Parallel()
		rec := gateRequest(t, nil, "admin")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotEmpty(t, body["error"])
	})

	t.Run("wrong role yields 403", func(t *testing.T) {
		t.Parallel()
		rec := gateRequest(t, &router.Principal{Subject: "u1", Role: "user"}, "admin")
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching role passes through", func(t *testing.T) {
		t.Parallel()
		rec := gateRequest(t, &router.Principal{Subject: "u1", Role: "admin"}, "admin", "superAdmin")
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("role falls back to metadata", func(t *testing.T) {
		t.Parallel()
		p := &router.Principal{
			Subject:  "u1",
			Metadata: map[string]interface{}{"role": "editor"},
		}
		rec := gateRequest(t, p, "editor")
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("primary role wins over metadata", func(t *testing.T) {
		t.Parallel()
		p := &router.Principal{
			Subject:  "u1",
			Role:     "user",
			Metadata: map[string]interface{}{"role": "admin"},
		}
		rec := gateRequest(t, p, "admin")
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestResolvedRole(t *testing.T) {
	t.Parallel()

	require.Equal(t, "admin", (&router.Principal{Role: "admin"}).ResolvedRole())
	require.Equal(t, "editor", (&router.Principal{Metadata: map[string]interface{}{"role": "editor"}}).ResolvedRole())
	require.Empty(t, (&router.Principal{}).ResolvedRole())
	require.Empty(t, (&router.Principal{Metadata: map[string]interface{}{"role": 7}}).ResolvedRole())
}
