package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackgen-cli/stackgen/internal/application"
	"github.com/stackgen-cli/stackgen/internal/generator"
	"github.com/stackgen-cli/stackgen/internal/infrastructure"
	"github.com/stackgen-cli/stackgen/internal/resolver"
)

func newInitCmd() *cobra.Command {
	var (
		presetID  string
		framework string
		database  string
		authKind  string
		queue     string
		orm       string
		useTS     bool
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Generate a new project in the current directory",
		Long: `init resolves a project configuration and writes the skeleton into
./<name>. Flags override the chosen preset; anything still missing is
asked interactively. In CI (or with stdin detached) nothing is asked:
pass a name, --preset, --framework and --yes to run unattended.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := resolver.Request{Preset: presetID, Yes: yes}
			if len(args) > 0 {
				name := args[0]
				req.Flags.Name = &name
			}
			flags := cmd.Flags()
			if flags.Changed("framework") {
				req.Flags.Framework = &framework
			}
			if flags.Changed("db") {
				req.Flags.Database = &database
			}
			if flags.Changed("auth") {
				req.Flags.Auth = &authKind
			}
			if flags.Changed("queue") {
				req.Flags.Queue = &queue
			}
			if flags.Changed("orm") {
				req.Flags.ORM = &orm
			}
			if flags.Changed("ts") {
				req.Flags.TypeScript = &useTS
			}

			store := newStore()
			svc := application.NewScaffoldService(
				infrastructure.NewOSFileSystem(),
				infrastructure.NewGoTemplateEngine(),
				store,
				huhPrompter{store: store},
				env,
				logger,
				generator.Generate,
			)
			cfg, err := svc.Init(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s (%s, preset %s)\n\n", cfg.Name, cfg.Framework, cfg.Preset)
			fmt.Fprintf(out, "Next steps:\n  cd %s\n  npm install\n  npm run dev\n", cfg.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&presetID, "preset", "p", "", "preset to start from (minimal, api, full, ai, custom or a saved name)")
	cmd.Flags().StringVarP(&framework, "framework", "f", "", "http framework (express or hono)")
	cmd.Flags().StringVar(&database, "db", "", "database (none, postgres, mysql, mongodb, supabase)")
	cmd.Flags().StringVar(&authKind, "auth", "", "auth provider (none, jwt, supabase, firebase)")
	cmd.Flags().StringVar(&queue, "queue", "", "queue backend (none, bullmq)")
	cmd.Flags().StringVar(&orm, "orm", "", "orm (none, drizzle, prisma)")
	cmd.Flags().BoolVar(&useTS, "ts", true, "emit TypeScript sources")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept the resolved configuration without prompting")
	return cmd
}
