package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type chiBinder struct {
	r chi.Router
}

func (b chiBinder) Handle(method Method, path string, h http.Handler) {
	b.r.Method(string(method), path, h)
}

// ApplyChi binds the composed route table to a chi router. Paths use
// chi's brace syntax ("/users/{id}").
func ApplyChi(cfg Config, reg *Registry, r chi.Router) {
	Apply(cfg, reg, chiBinder{r: r})
}
