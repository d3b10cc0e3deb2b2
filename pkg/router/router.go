// Package router turns a data-described route table into concrete,
// ordered middleware chains with role-based access control, and binds
// the result to an HTTP framework through a small Binder interface.
//
// Generated projects embed this package; the CLI also runs the same
// resolution at generation time to render route summaries.
package router

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is the closed set of HTTP methods a route may declare.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
	MethodPatch  Method = http.MethodPatch
)

// ParseMethod validates a method string against the closed set.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return m, nil
	}
	return "", fmt.Errorf("unsupported method %q", s)
}

// Middleware wraps an http.Handler, standard decorator shape.
type Middleware func(http.Handler) http.Handler

// RouteDefinition describes one route declaratively. Disabled removes
// names from the default chain, Enabled appends extras, Roles replaces
// the default role set wholesale, ExcludeRoles subtracts from it.
type RouteDefinition struct {
	Method       Method
	Path         string
	Handler      http.Handler
	Disabled     []string
	Enabled      []string
	Roles        []string
	ExcludeRoles []string
}

// Config is the declarative route table. The order of
// DefaultMiddlewares is the execution order of the synthesized chain.
type Config struct {
	DefaultMiddlewares []string
	DefaultRoles       []string
	Routes             []RouteDefinition
}

// Binder is the framework-specific routing primitive the composed
// chains are bound to. Adapters for chi and gin live in this package.
type Binder interface {
	Handle(method Method, path string, h http.Handler)
}

// EffectiveMiddlewares computes the middleware name list for one route:
// the default list with disabled entries removed (order preserved),
// then the route's enabled list appended. There is no deduplication; a
// name present in both segments runs twice.
func EffectiveMiddlewares(cfg Config, r RouteDefinition) []string {
	names := make([]string, 0, len(cfg.DefaultMiddlewares)+len(r.Enabled))
	for _, name := range cfg.DefaultMiddlewares {
		if !contains(r.Disabled, name) {
			names = append(names, name)
		}
	}
	return append(names, r.Enabled...)
}

// EffectiveRoles computes the allowed-role set for one route. A
// non-nil Roles list replaces the defaults outright and ExcludeRoles is
// ignored; otherwise the result is the default roles minus the
// excluded ones, order preserved.
func EffectiveRoles(cfg Config, r RouteDefinition) []string {
	if r.Roles != nil {
		return append([]string(nil), r.Roles...)
	}
	roles := make([]string, 0, len(cfg.DefaultRoles))
	for _, role := range cfg.DefaultRoles {
		if !contains(r.ExcludeRoles, role) {
			roles = append(roles, role)
		}
	}
	return roles
}

// Apply resolves every route against the registry and binds it. Names
// with no registered middleware are dropped silently; use
// Registry.Missing beforehand for a fail-fast report. When a route's
// effective role set is non-empty a role gate is appended as the last
// chain element, so it runs after whichever authentication middleware
// attached the principal.
func Apply(cfg Config, reg *Registry, b Binder) {
	for _, route := range cfg.Routes {
		b.Handle(route.Method, route.Path, buildChain(cfg, reg, route))
	}
}

func buildChain(cfg Config, reg *Registry, route RouteDefinition) http.Handler {
	var chain []Middleware
	for _, name := range EffectiveMiddlewares(cfg, route) {
		if mw, ok := reg.Get(name); ok {
			chain = append(chain, mw)
		}
	}
	if roles := EffectiveRoles(cfg, route); len(roles) > 0 {
		chain = append(chain, RequireRoles(roles...))
	}

	h := route.Handler
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
