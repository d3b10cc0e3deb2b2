package router

// Registry maps middleware names to callables. It is populated once
// during boot, before any route is bound, and only read afterwards; it
// is not safe for concurrent mutation and does not need to be.
type Registry struct {
	middlewares map[string]Middleware
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{middlewares: make(map[string]Middleware)}
}

// Register binds a name to a middleware. Registering the same name
// twice keeps the last value.
func (r *Registry) Register(name string, mw Middleware) {
	r.middlewares[name] = mw
}

// Get looks a middleware up by name.
func (r *Registry) Get(name string) (Middleware, bool) {
	mw, ok := r.middlewares[name]
	return mw, ok
}

// Missing returns every middleware name referenced by cfg that has no
// registered callable, in first-seen order without repeats. Apply drops
// such names silently; callers wanting fail-fast behavior check this
// before binding.
func (r *Registry) Missing(cfg Config) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, route := range cfg.Routes {
		for _, name := range EffectiveMiddlewares(cfg, route) {
			if seen[name] {
				continue
			}
			seen[name] = true
			if _, ok := r.middlewares[name]; !ok {
				missing = append(missing, name)
			}
		}
	}
	return missing
}
