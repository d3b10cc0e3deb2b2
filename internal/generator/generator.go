package generator

import (
	"fmt"
	"path/filepath"

	"github.com/stackgen-cli/stackgen/internal/domain"
	"github.com/stackgen-cli/stackgen/pkg/router"
)

// Generate writes the project skeleton for a resolved config into
// outputDir/<name>. Emission is plain text rendering; nothing here
// validates the generated code.
func Generate(cfg domain.ProjectConfig, outputDir string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	if cfg.Name == "" {
		return fmt.Errorf("project name is empty")
	}
	projectPath := filepath.Join(outputDir, cfg.Name)

	dirs := []string{
		"src/config",
		"src/controllers",
		"src/middlewares",
	}
	for _, dir := range dirs {
		if err := fs.MkdirAll(filepath.Join(projectPath, dir)); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	steps := []struct {
		name string
		emit func(domain.ProjectConfig, string, domain.FileSystemPort, domain.TemplatePort) error
	}{
		{"package.json", emitPackageJSON},
		{"tsconfig", emitTSConfig},
		{"server", emitServer},
		{"router config", emitRouterConfig},
		{"middlewares", emitMiddlewares},
		{"env files", emitEnvFiles},
		{"docker", emitDocker},
		{"pm2", emitPM2},
		{"vercel", emitVercel},
		{"github workflow", emitWorkflow},
		{"readme", emitReadme},
	}
	for _, step := range steps {
		if err := step.emit(cfg, projectPath, fs, tmpl); err != nil {
			return fmt.Errorf("emit %s: %w", step.name, err)
		}
	}
	return nil
}

// ext returns the source extension matching the typescript toggle.
func ext(cfg domain.ProjectConfig) string {
	if cfg.TypeScript {
		return "ts"
	}
	return "js"
}

// RouterDefaults derives the default middleware chain and role set that
// get written into the generated route table.
func RouterDefaults(cfg domain.ProjectConfig) (middlewares, roles []string) {
	if cfg.Features.Logging {
		middlewares = append(middlewares, "requestLogger")
	}
	if cfg.Auth != "none" && cfg.Auth != "" {
		middlewares = append(middlewares, "auth")
		roles = append(roles, "user")
	}
	if cfg.Features.APIAudit {
		middlewares = append(middlewares, "audit")
	}
	return middlewares, roles
}

// RouteTable is the route set every skeleton starts with: an ungated
// health check, a CRUD block for an example resource, and an
// admin-only route.
func RouteTable(cfg domain.ProjectConfig) router.Config {
	middlewares, roles := RouterDefaults(cfg)
	return router.Config{
		DefaultMiddlewares: middlewares,
		DefaultRoles:       roles,
		Routes: []router.RouteDefinition{
			{Method: router.MethodGet, Path: "/health", Disabled: middlewares, Roles: []string{}},
			{Method: router.MethodGet, Path: "/api/items"},
			{Method: router.MethodPost, Path: "/api/items"},
			{Method: router.MethodPut, Path: "/api/items/:id"},
			{Method: router.MethodDelete, Path: "/api/items/:id", Roles: []string{"admin"}},
		},
	}
}
