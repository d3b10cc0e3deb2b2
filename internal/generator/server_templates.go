package generator

import (
	"path/filepath"

	"github.com/stackgen-cli/stackgen/internal/domain"
)

type dependency struct {
	Name    string
	Version string
	Last    bool
}

func markLast(deps []dependency) []dependency {
	if len(deps) > 0 {
		deps[len(deps)-1].Last = true
	}
	return deps
}

func runtimeDeps(cfg domain.ProjectConfig) []dependency {
	var deps []dependency
	switch cfg.Framework {
	case domain.FrameworkHono:
		deps = append(deps,
			dependency{Name: "hono", Version: "^4.6.0"},
			dependency{Name: "@hono/node-server", Version: "^1.13.0"})
	default:
		deps = append(deps, dependency{Name: "express", Version: "^4.21.0"})
	}
	switch cfg.Database {
	case "postgres":
		deps = append(deps, dependency{Name: "pg", Version: "^8.13.0"})
	case "mysql":
		deps = append(deps, dependency{Name: "mysql2", Version: "^3.11.0"})
	case "mongodb":
		deps = append(deps, dependency{Name: "mongodb", Version: "^6.10.0"})
	}
	switch cfg.ORM {
	case "drizzle":
		deps = append(deps, dependency{Name: "drizzle-orm", Version: "^0.36.0"})
	case "prisma":
		deps = append(deps, dependency{Name: "@prisma/client", Version: "^5.22.0"})
	}
	switch cfg.Auth {
	case "jwt":
		deps = append(deps, dependency{Name: "jsonwebtoken", Version: "^9.0.2"})
	case "supabase":
		deps = append(deps, dependency{Name: "@supabase/supabase-js", Version: "^2.46.0"})
	case "firebase":
		deps = append(deps, dependency{Name: "firebase-admin", Version: "^12.7.0"})
	}
	if cfg.Queue == "bullmq" {
		deps = append(deps, dependency{Name: "bullmq", Version: "^5.21.0"})
	}
	if cfg.Features.Cron {
		deps = append(deps, dependency{Name: "node-cron", Version: "^3.0.3"})
	}
	if cfg.Features.Logging {
		deps = append(deps, dependency{Name: "winston", Version: "^3.15.0"})
	}
	if cfg.AI.Chat || cfg.AI.RAG || cfg.AI.Embeddings {
		deps = append(deps, dependency{Name: "openai", Version: "^4.70.0"})
	}
	if cfg.AI.Langfuse {
		deps = append(deps, dependency{Name: "langfuse", Version: "^3.29.0"})
	}
	return markLast(deps)
}

func devDeps(cfg domain.ProjectConfig) []dependency {
	var deps []dependency
	if cfg.TypeScript {
		deps = append(deps,
			dependency{Name: "typescript", Version: "^5.6.0"},
			dependency{Name: "tsx", Version: "^4.19.0"})
	}
	if cfg.Features.Testing {
		deps = append(deps, dependency{Name: "vitest", Version: "^2.1.0"})
	}
	return markLast(deps)
}

const packageJSONTemplate = `{
  "name": "{{.Config.Name}}",
  "version": "0.1.0",
  "private": true,
  "scripts": {
{{- if .Config.TypeScript}}
    "dev": "tsx watch src/server.ts",
    "build": "tsc",
    "start": "node dist/server.js"{{if .Config.Features.Testing}},
    "test": "vitest run"{{end}}
{{- else}}
    "dev": "node --watch src/server.js",
    "start": "node src/server.js"{{if .Config.Features.Testing}},
    "test": "vitest run"{{end}}
{{- end}}
  },
  "dependencies": {
{{- range .Deps}}
    "{{.Name}}": "{{.Version}}"{{if not .Last}},{{end}}
{{- end}}
  },
  "devDependencies": {
{{- range .DevDeps}}
    "{{.Name}}": "{{.Version}}"{{if not .Last}},{{end}}
{{- end}}
  }
}
`

func emitPackageJSON(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	data := struct {
		Config  domain.ProjectConfig
		Deps    []dependency
		DevDeps []dependency
	}{cfg, runtimeDeps(cfg), devDeps(cfg)}
	b, err := tmpl.Render("package.json", packageJSONTemplate, data)
	if err != nil {
		return err
	}
	return fs.WriteFile(filepath.Join(projectPath, "package.json"), b)
}

const tsconfigContent = `{
  "compilerOptions": {
    "target": "ES2022",
    "module": "NodeNext",
    "moduleResolution": "NodeNext",
    "outDir": "dist",
    "rootDir": "src",
    "strict": true,
    "esModuleInterop": true,
    "skipLibCheck": true
  },
  "include": ["src"]
}
`

func emitTSConfig(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, _ domain.TemplatePort) error {
	if !cfg.TypeScript {
		return nil
	}
	return fs.WriteFile(filepath.Join(projectPath, "tsconfig.json"), []byte(tsconfigContent))
}

const expressServerTemplate = `import express from "express";
import { applyRoutes } from "./config/router{{if not .TypeScript}}.js{{end}}";
import { registerMiddlewares } from "./middlewares/index{{if not .TypeScript}}.js{{end}}";

const app = express();
app.use(express.json());

registerMiddlewares();
applyRoutes(app);

const port = Number(process.env.PORT ?? 3000);
app.listen(port, () => {
  console.log("{{.Name}} listening on :" + port);
});
`

const honoServerTemplate = `import { Hono } from "hono";
import { serve } from "@hono/node-server";
import { applyRoutes } from "./config/router{{if not .TypeScript}}.js{{end}}";
import { registerMiddlewares } from "./middlewares/index{{if not .TypeScript}}.js{{end}}";

const app = new Hono();

registerMiddlewares();
applyRoutes(app);

const port = Number(process.env.PORT ?? 3000);
serve({ fetch: app.fetch, port });
console.log("{{.Name}} listening on :" + port);
`

func emitServer(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	t := expressServerTemplate
	if cfg.Framework == domain.FrameworkHono {
		t = honoServerTemplate
	}
	b, err := tmpl.Render("server", t, cfg)
	if err != nil {
		return err
	}
	return fs.WriteFile(filepath.Join(projectPath, "src", "server."+ext(cfg)), b)
}
