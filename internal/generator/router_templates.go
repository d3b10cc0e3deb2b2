package generator

import (
	"path/filepath"

	"github.com/stackgen-cli/stackgen/internal/domain"
	"github.com/stackgen-cli/stackgen/pkg/router"
)

// routeEntry is the template-facing shape of one declarative route.
type routeEntry struct {
	Method       string
	Path         string
	Handler      string
	Disabled     []string
	Enabled      []string
	Roles        []string
	HasRoles     bool
	ExcludeRoles []string
}

var routeHandlers = map[router.Method]map[string]string{
	router.MethodGet:    {"/health": "health", "/api/items": "listItems"},
	router.MethodPost:   {"/api/items": "createItem"},
	router.MethodPut:    {"/api/items/:id": "updateItem"},
	router.MethodDelete: {"/api/items/:id": "removeItem"},
}

func routeEntries(cfg domain.ProjectConfig) []routeEntry {
	table := RouteTable(cfg)
	entries := make([]routeEntry, 0, len(table.Routes))
	for _, r := range table.Routes {
		entries = append(entries, routeEntry{
			Method:       string(r.Method),
			Path:         r.Path,
			Handler:      routeHandlers[r.Method][r.Path],
			Disabled:     r.Disabled,
			Enabled:      r.Enabled,
			Roles:        r.Roles,
			HasRoles:     r.Roles != nil,
			ExcludeRoles: r.ExcludeRoles,
		})
	}
	return entries
}

// routerConfigTemplate emits the declarative route table plus the
// resolution runtime: defaults minus disabled plus enabled (duplicates
// kept), role override/exclusion, role guard appended last, unknown
// middleware names skipped.
const routerConfigTemplate = `import { getMiddleware } from "../middlewares/index{{if not .Config.TypeScript}}.js{{end}}";
import { roleGuard } from "../middlewares/roleGuard{{if not .Config.TypeScript}}.js{{end}}";
import * as controllers from "../controllers/items{{if not .Config.TypeScript}}.js{{end}}";

export const routerConfig = {
  defaultMiddlewares: [{{quoteList .Defaults}}],
  defaultRoles: [{{quoteList .Roles}}],
  routes: [
{{- range .Routes}}
    {
      method: "{{.Method}}",
      path: "{{.Path}}",
      handler: controllers.{{.Handler}},
{{- if .Disabled}}
      disabled: [{{quoteList .Disabled}}],
{{- end}}
{{- if .Enabled}}
      enabled: [{{quoteList .Enabled}}],
{{- end}}
{{- if .HasRoles}}
      roles: [{{quoteList .Roles}}],
{{- end}}
{{- if .ExcludeRoles}}
      excludeRoles: [{{quoteList .ExcludeRoles}}],
{{- end}}
    },
{{- end}}
  ],
};

function effectiveMiddlewares(route{{if .Config.TypeScript}}: any{{end}}) {
  const disabled = route.disabled ?? [];
  const names = routerConfig.defaultMiddlewares.filter((n) => !disabled.includes(n));
  return names.concat(route.enabled ?? []);
}

function effectiveRoles(route{{if .Config.TypeScript}}: any{{end}}) {
  if (route.roles !== undefined) return route.roles;
  const excluded = route.excludeRoles ?? [];
  return routerConfig.defaultRoles.filter((r) => !excluded.includes(r));
}

export function applyRoutes(app{{if .Config.TypeScript}}: any{{end}}) {
  for (const route of routerConfig.routes) {
    const chain = effectiveMiddlewares(route)
      .map(getMiddleware)
      .filter((mw) => mw !== undefined);
    const roles = effectiveRoles(route);
    if (roles.length > 0) {
      chain.push(roleGuard(roles));
    }
{{- if eq .Config.Framework "hono"}}
    app.on(route.method, route.path, ...chain, route.handler);
{{- else}}
    app[route.method.toLowerCase()](route.path, ...chain, route.handler);
{{- end}}
  }
}
`

func emitRouterConfig(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	defaults, roles := RouterDefaults(cfg)
	data := struct {
		Config   domain.ProjectConfig
		Defaults []string
		Roles    []string
		Routes   []routeEntry
	}{cfg, defaults, roles, routeEntries(cfg)}
	b, err := tmpl.Render("router", routerConfigTemplate, data)
	if err != nil {
		return err
	}
	return fs.WriteFile(filepath.Join(projectPath, "src", "config", "router."+ext(cfg)), b)
}

// Express emits (req, res, next) callables; hono gets its own variants
// below with (c, next) middleware and (c) handlers.
const middlewaresTemplate = `const registry = new Map{{if .TypeScript}}<string, any>{{end}}();

export function registerMiddleware(name{{if .TypeScript}}: string{{end}}, fn{{if .TypeScript}}: any{{end}}) {
  registry.set(name, fn);
}

export function getMiddleware(name{{if .TypeScript}}: string{{end}}) {
  return registry.get(name);
}

export function registerMiddlewares() {
{{- if .Features.Logging}}
  registerMiddleware("requestLogger", (req{{if .TypeScript}}: any{{end}}, res{{if .TypeScript}}: any{{end}}, next{{if .TypeScript}}: any{{end}}) => {
    console.log(req.method, req.url);
    next();
  });
{{- end}}
{{- if ne .Auth "none"}}
  registerMiddleware("auth", (req{{if .TypeScript}}: any{{end}}, res{{if .TypeScript}}: any{{end}}, next{{if .TypeScript}}: any{{end}}) => {
    // TODO: verify the bearer token with the configured {{.Auth}} provider
    // and set req.principal = { subject, role, metadata }.
    next();
  });
{{- end}}
{{- if .Features.APIAudit}}
  registerMiddleware("audit", (req{{if .TypeScript}}: any{{end}}, res{{if .TypeScript}}: any{{end}}, next{{if .TypeScript}}: any{{end}}) => {
    res.on("finish", () => console.log("audit", req.method, req.url, res.statusCode));
    next();
  });
{{- end}}
}
`

const roleGuardTemplate = `export function roleGuard(roles{{if .TypeScript}}: string[]{{end}}) {
  return (req{{if .TypeScript}}: any{{end}}, res{{if .TypeScript}}: any{{end}}, next{{if .TypeScript}}: any{{end}}) => {
    const principal = req.principal;
    if (!principal) {
      return res.status(401).json({ error: "authentication required" });
    }
    const role = principal.role ?? principal.metadata?.role;
    if (!roles.includes(role)) {
      return res.status(403).json({ error: "insufficient role" });
    }
    next();
  };
}
`

const controllersTemplate = `{{$ts := .TypeScript -}}
export function health(req{{if $ts}}: any{{end}}, res{{if $ts}}: any{{end}}) {
  res.json({ status: "ok" });
}

export function listItems(req{{if $ts}}: any{{end}}, res{{if $ts}}: any{{end}}) {
  res.json([]);
}

export function createItem(req{{if $ts}}: any{{end}}, res{{if $ts}}: any{{end}}) {
  res.status(201).json(req.body ?? {});
}

export function updateItem(req{{if $ts}}: any{{end}}, res{{if $ts}}: any{{end}}) {
  res.json({ id: req.params.id });
}

export function removeItem(req{{if $ts}}: any{{end}}, res{{if $ts}}: any{{end}}) {
  res.status(204).end();
}
`

const honoMiddlewaresTemplate = `const registry = new Map{{if .TypeScript}}<string, any>{{end}}();

export function registerMiddleware(name{{if .TypeScript}}: string{{end}}, fn{{if .TypeScript}}: any{{end}}) {
  registry.set(name, fn);
}

export function getMiddleware(name{{if .TypeScript}}: string{{end}}) {
  return registry.get(name);
}

export function registerMiddlewares() {
{{- if .Features.Logging}}
  registerMiddleware("requestLogger", async (c{{if .TypeScript}}: any{{end}}, next{{if .TypeScript}}: any{{end}}) => {
    console.log(c.req.method, c.req.url);
    await next();
  });
{{- end}}
{{- if ne .Auth "none"}}
  registerMiddleware("auth", async (c{{if .TypeScript}}: any{{end}}, next{{if .TypeScript}}: any{{end}}) => {
    // TODO: verify the bearer token with the configured {{.Auth}} provider
    // and c.set("principal", { subject, role, metadata }).
    await next();
  });
{{- end}}
{{- if .Features.APIAudit}}
  registerMiddleware("audit", async (c{{if .TypeScript}}: any{{end}}, next{{if .TypeScript}}: any{{end}}) => {
    await next();
    console.log("audit", c.req.method, c.req.url, c.res.status);
  });
{{- end}}
}
`

const honoRoleGuardTemplate = `export function roleGuard(roles{{if .TypeScript}}: string[]{{end}}) {
  return async (c{{if .TypeScript}}: any{{end}}, next{{if .TypeScript}}: any{{end}}) => {
    const principal = c.get("principal");
    if (!principal) {
      return c.json({ error: "authentication required" }, 401);
    }
    const role = principal.role ?? principal.metadata?.role;
    if (!roles.includes(role)) {
      return c.json({ error: "insufficient role" }, 403);
    }
    await next();
  };
}
`

const honoControllersTemplate = `{{$ts := .TypeScript -}}
export function health(c{{if $ts}}: any{{end}}) {
  return c.json({ status: "ok" });
}

export function listItems(c{{if $ts}}: any{{end}}) {
  return c.json([]);
}

export async function createItem(c{{if $ts}}: any{{end}}) {
  const body = await c.req.json().catch(() => ({}));
  return c.json(body, 201);
}

export function updateItem(c{{if $ts}}: any{{end}}) {
  return c.json({ id: c.req.param("id") });
}

export function removeItem(c{{if $ts}}: any{{end}}) {
  return c.body(null, 204);
}
`

func emitMiddlewares(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	files := map[string]string{
		filepath.Join("src", "middlewares", "index."+ext(cfg)):     middlewaresTemplate,
		filepath.Join("src", "middlewares", "roleGuard."+ext(cfg)): roleGuardTemplate,
		filepath.Join("src", "controllers", "items."+ext(cfg)):     controllersTemplate,
	}
	if cfg.Framework == domain.FrameworkHono {
		files = map[string]string{
			filepath.Join("src", "middlewares", "index."+ext(cfg)):     honoMiddlewaresTemplate,
			filepath.Join("src", "middlewares", "roleGuard."+ext(cfg)): honoRoleGuardTemplate,
			filepath.Join("src", "controllers", "items."+ext(cfg)):     honoControllersTemplate,
		}
	}
	for path, t := range files {
		b, err := tmpl.Render(path, t, cfg)
		if err != nil {
			return err
		}
		if err := fs.WriteFile(filepath.Join(projectPath, path), b); err != nil {
			return err
		}
	}
	return nil
}
