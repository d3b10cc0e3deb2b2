package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackgen-cli/stackgen/pkg/router"
)

type recordedRoute struct {
	method router.Method
	path   string
	h      http.Handler
}

type recordingBinder struct {
	routes []recordedRoute
}

func (b *recordingBinder) Handle(method router.Method, path string, h http.Handler) {
	b.routes = append(b.routes, recordedRoute{method: method, path: path, h: h})
}

// tagging middleware appends its name to a trace so execution order is
// observable.
func tagMW(trace *[]string, name string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trace = append(*trace, name)
			next.ServeHTTP(w, r)
		})
	}
}

func okHandler(trace *[]string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*trace = append(*trace, "handler")
		w.WriteHeader(http.StatusOK)
	})
}

func TestEffectiveMiddlewares(t *testing.T) {
	t.Parallel()

	cfg := router.Config{DefaultMiddlewares: []string{"auth", "audit", "rateLimit"}}

	t.Run("disabled entries are removed, order preserved", func(t *testing.T) {
		t.Parallel()
		got := router.EffectiveMiddlewares(cfg, router.RouteDefinition{Disabled: []string{"audit"}})
		require.Equal(t, []string{"auth", "rateLimit"}, got)
	})

	t.Run("enabled entries are appended", func(t *testing.T) {
		t.Parallel()
		c := router.Config{DefaultMiddlewares: []string{"auth"}}
		got := router.EffectiveMiddlewares(c, router.RouteDefinition{Enabled: []string{"rateLimit"}})
		require.Equal(t, []string{"auth", "rateLimit"}, got)
	})

	t.Run("no deduplication across segments", func(t *testing.T) {
		t.Parallel()
		c := router.Config{DefaultMiddlewares: []string{"auth", "audit"}}
		got := router.EffectiveMiddlewares(c, router.RouteDefinition{Enabled: []string{"audit"}})
		require.Equal(t, []string{"auth", "audit", "audit"}, got)
	})
}

func TestEffectiveRoles(t *testing.T) {
	t.Parallel()

	cfg := router.Config{DefaultRoles: []string{"user", "editor"}}

	t.Run("route roles replace defaults and ignore excludeRoles", func(t *testing.T) {
		t.Parallel()
		got := router.EffectiveRoles(cfg, router.RouteDefinition{
			Roles:        []string{"admin", "superAdmin"},
			ExcludeRoles: []string{"admin"},
		})
		require.Equal(t, []string{"admin", "superAdmin"}, got)
	})

	t.Run("excludeRoles subtracts from defaults", func(t *testing.T) {
		t.Parallel()
		got := router.EffectiveRoles(cfg, router.RouteDefinition{ExcludeRoles: []string{"editor"}})
		require.Equal(t, []string{"user"}, got)
	})

	t.Run("explicit empty roles disable the gate", func(t *testing.T) {
		t.Parallel()
		got := router.EffectiveRoles(cfg, router.RouteDefinition{Roles: []string{}})
		require.Empty(t, got)
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("chain runs in declaration order", func(t *testing.T) {
		t.Parallel()
		var trace []string
		reg := router.NewRegistry()
		reg.Register("auth", tagMW(&trace, "auth"))
		reg.Register("audit", tagMW(&trace, "audit"))
		reg.Register("rateLimit", tagMW(&trace, "rateLimit"))

		cfg := router.Config{
			DefaultMiddlewares: []string{"auth", "audit"},
			Routes: []router.RouteDefinition{{
				Method:  router.MethodGet,
				Path:    "/things",
				Handler: okHandler(&trace),
				Enabled: []string{"rateLimit"},
			}},
		}

		b := &recordingBinder{}
		router.Apply(cfg, reg, b)
		require.Len(t, b.routes, 1)
		require.Equal(t, router.MethodGet, b.routes[0].method)
		require.Equal(t, "/things", b.routes[0].path)

		rec := httptest.NewRecorder()
		b.routes[0].h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"auth", "audit", "rateLimit", "handler"}, trace)
	})

	t.Run("duplicated name runs twice", func(t *testing.T) {
		t.Parallel()
		var trace []string
		reg := router.NewRegistry()
		reg.Register("audit", tagMW(&trace, "audit"))

		cfg := router.Config{
			DefaultMiddlewares: []string{"audit"},
			Routes: []router.RouteDefinition{{
				Method:  router.MethodPost,
				Path:    "/things",
				Handler: okHandler(&trace),
				Enabled: []string{"audit"},
			}},
		}

		b := &recordingBinder{}
		router.Apply(cfg, reg, b)
		b.routes[0].h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/things", nil))
		require.Equal(t, []string{"audit", "audit", "handler"}, trace)
	})

	t.Run("unregistered names are dropped silently", func(t *testing.T) {
		t.Parallel()
		var trace []string
		reg := router.NewRegistry()
		reg.Register("auth", tagMW(&trace, "auth"))

		cfg := router.Config{
			DefaultMiddlewares: []string{"auth", "ghost"},
			Routes: []router.RouteDefinition{{
				Method:  router.MethodGet,
				Path:    "/things",
				Handler: okHandler(&trace),
			}},
		}

		b := &recordingBinder{}
		router.Apply(cfg, reg, b)
		rec := httptest.NewRecorder()
		b.routes[0].h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"auth", "handler"}, trace)
	})

	t.Run("role gate runs last, after authentication", func(t *testing.T) {
		t.Parallel()
		var trace []string
		reg := router.NewRegistry()
		reg.Register("auth", func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trace = append(trace, "auth")
				p := &router.Principal{Subject: "u1", Role: "admin"}
				next.ServeHTTP(w, r.WithContext(router.WithPrincipal(r.Context(), p)))
			})
		})

		cfg := router.Config{
			DefaultMiddlewares: []string{"auth"},
			DefaultRoles:       []string{"admin"},
			Routes: []router.RouteDefinition{{
				Method:  router.MethodDelete,
				Path:    "/things/{id}",
				Handler: okHandler(&trace),
			}},
		}

		b := &recordingBinder{}
		router.Apply(cfg, reg, b)
		rec := httptest.NewRecorder()
		b.routes[0].h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/things/1", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"auth", "handler"}, trace)
	})

	t.Run("role gate rejects before the handler when roles do not match", func(t *testing.T) {
		t.Parallel()
		var trace []string
		reg := router.NewRegistry()

		cfg := router.Config{
			DefaultRoles: []string{"admin"},
			Routes: []router.RouteDefinition{{
				Method:  router.MethodGet,
				Path:    "/admin",
				Handler: okHandler(&trace),
			}},
		}

		b := &recordingBinder{}
		router.Apply(cfg, reg, b)
		rec := httptest.NewRecorder()
		b.routes[0].h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Empty(t, trace, "handler must not run")
	})
}

func TestRegistryMissing(t *testing.T) {
	t.Parallel()

	reg := router.NewRegistry()
	reg.Register("auth", func(next http.Handler) http.Handler { return next })

	cfg := router.Config{
		DefaultMiddlewares: []string{"auth", "ghost"},
		Routes: []router.RouteDefinition{
			{Method: router.MethodGet, Path: "/a", Enabled: []string{"phantom"}},
			{Method: router.MethodGet, Path: "/b", Enabled: []string{"ghost"}},
		},
	}

	require.Equal(t, []string{"ghost", "phantom"}, reg.Missing(cfg))
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	m, err := router.ParseMethod("get")
	require.NoError(t, err)
	require.Equal(t, router.MethodGet, m)

	_, err = router.ParseMethod("TRACE")
	require.Error(t, err)
}
