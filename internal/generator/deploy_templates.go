package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/stackgen-cli/stackgen/internal/domain"
	"github.com/stackgen-cli/stackgen/pkg/router"
)

const envFileTemplate = `NODE_ENV={{.Env}}
PORT=3000
{{- if ne .Config.Database "none"}}
DATABASE_URL=
{{- end}}
{{- if .Config.Supabase.UsePooler}}
SUPABASE_POOLER_URL=
{{- end}}
{{- if eq .Config.Auth "jwt"}}
JWT_SECRET=
{{- end}}
{{- if eq .Config.Queue "bullmq"}}
REDIS_URL=
{{- end}}
{{- if or .Config.AI.Chat .Config.AI.RAG .Config.AI.Embeddings}}
OPENAI_API_KEY=
{{- end}}
{{- if .Config.AI.Langfuse}}
LANGFUSE_SECRET_KEY=
LANGFUSE_PUBLIC_KEY=
{{- end}}
`

func emitEnvFiles(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	for _, env := range cfg.Features.Environments {
		data := struct {
			Env    string
			Config domain.ProjectConfig
		}{env, cfg}
		b, err := tmpl.Render("env", envFileTemplate, data)
		if err != nil {
			return err
		}
		if err := fs.WriteFile(filepath.Join(projectPath, ".env."+env), b); err != nil {
			return err
		}
	}
	return nil
}

const dockerfileTemplate = `FROM node:22-alpine
WORKDIR /app
COPY package.json ./
RUN npm install
COPY . .
{{- if .TypeScript}}
RUN npm run build
CMD ["node", "dist/server.js"]
{{- else}}
CMD ["node", "src/server.js"]
{{- end}}
`

func emitDocker(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	if !cfg.Features.Docker {
		return nil
	}
	b, err := tmpl.Render("dockerfile", dockerfileTemplate, cfg)
	if err != nil {
		return err
	}
	return fs.WriteFile(filepath.Join(projectPath, "Dockerfile"), b)
}

const pm2Template = `module.exports = {
  apps: [
    {
      name: "{{.Name}}",
      script: "{{if .TypeScript}}dist/server.js{{else}}src/server.js{{end}}",
      instances: "max",
      exec_mode: "cluster",
    },
  ],
};
`

func emitPM2(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	if !cfg.Features.PM2 {
		return nil
	}
	b, err := tmpl.Render("pm2", pm2Template, cfg)
	if err != nil {
		return err
	}
	return fs.WriteFile(filepath.Join(projectPath, "ecosystem.config.js"), b)
}

const vercelTemplate = `{
  "version": 2,
  "builds": [{ "src": "{{if .TypeScript}}src/server.ts{{else}}src/server.js{{end}}", "use": "@vercel/node" }],
  "routes": [{ "src": "/(.*)", "dest": "{{if .TypeScript}}src/server.ts{{else}}src/server.js{{end}}" }]{{if and .Deployment.VercelCron .Features.Cron}},
  "crons": [{ "path": "/api/cron", "schedule": "0 * * * *" }]{{end}}
}
`

func emitVercel(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	if !cfg.Deployment.Vercel {
		return nil
	}
	b, err := tmpl.Render("vercel", vercelTemplate, cfg)
	if err != nil {
		return err
	}
	return fs.WriteFile(filepath.Join(projectPath, "vercel.json"), b)
}

const workflowTemplate = `name: ci
on:
  push:
    branches: [main]
  pull_request:
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-node@v4
        with:
          node-version: 22
      - run: npm install
{{- if .TypeScript}}
      - run: npm run build
{{- end}}
{{- if .Features.Testing}}
      - run: npm test
{{- end}}
`

func emitWorkflow(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error {
	if !cfg.Deployment.GithubWorkflow {
		return nil
	}
	b, err := tmpl.Render("workflow", workflowTemplate, cfg)
	if err != nil {
		return err
	}
	return fs.WriteFile(filepath.Join(projectPath, ".github", "workflows", "ci.yml"), b)
}

// emitReadme writes the project README, including a per-route summary
// of the effective middleware chain and role set the route table
// resolves to.
func emitReadme(cfg domain.ProjectConfig, projectPath string, fs domain.FileSystemPort, _ domain.TemplatePort) error {
	table := RouteTable(cfg)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cfg.Name)
	fmt.Fprintf(&b, "Generated by stackgen (preset: %s, framework: %s).\n\n", cfg.Preset, cfg.Framework)
	b.WriteString("## Routes\n\n")
	b.WriteString("| Method | Path | Middleware chain | Roles |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, route := range table.Routes {
		chain := strings.Join(router.EffectiveMiddlewares(table, route), ", ")
		if chain == "" {
			chain = "(none)"
		}
		roles := strings.Join(router.EffectiveRoles(table, route), ", ")
		if roles == "" {
			roles = "public"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", route.Method, route.Path, chain, roles)
	}
	b.WriteString("\nEdit `src/config/router." + ext(cfg) + "` to add routes; middleware\nnames resolve against the registry in `src/middlewares/index." + ext(cfg) + "`.\n")
	return fs.WriteFile(filepath.Join(projectPath, "README.md"), []byte(b.String()))
}
