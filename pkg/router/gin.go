package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ginBinder struct {
	r gin.IRouter
}

func (b ginBinder) Handle(method Method, path string, h http.Handler) {
	b.r.Handle(string(method), path, gin.WrapH(h))
}

// ApplyGin binds the composed route table to a gin router. Paths use
// gin's colon syntax ("/users/:id").
func ApplyGin(cfg Config, reg *Registry, r gin.IRouter) {
	Apply(cfg, reg, ginBinder{r: r})
}
