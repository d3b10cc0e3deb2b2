package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stackgen-cli/stackgen/internal/domain"
	"github.com/stackgen-cli/stackgen/internal/preset"
	"github.com/stackgen-cli/stackgen/internal/registry"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved presets",
		Long: `Presets bundle answers to the init questions. Built-in presets
(minimal, api, full, ai, custom) ship with the binary; custom presets
are saved to ` + "`$STACKGEN_HOME/presets.json`" + ` and can be shared
through a Firestore collection with push/pull.`,
	}
	cmd.AddCommand(
		newPresetListCmd(),
		newPresetCreateCmd(),
		newPresetDeleteCmd(),
		newPresetDefaultCmd(),
		newPresetShowCmd(),
		newPresetPushCmd(),
		newPresetPullCmd(),
	)
	return cmd
}

func newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := newStore()
			def := store.Default()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Kind", "Description"})
			table.SetAutoWrapText(false)
			for _, b := range preset.Builtins() {
				if b.ID == "1" {
					continue
				}
				table.Append([]string{markDefault(b.ID, def), "built-in", b.Description})
			}
			for _, p := range store.List() {
				table.Append([]string{markDefault(p.Name, def), "custom", p.Description})
			}
			table.Render()
			return nil
		},
	}
}

func markDefault(name, def string) string {
	if def != "" && strings.EqualFold(name, def) {
		return name + " *"
	}
	return name
}

func newPresetCreateCmd() *cobra.Command {
	var (
		description string
		fromFile    string
		framework   string
		database    string
		authKind    string
		queue       string
		orm         string
		useTS       bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Save a preset from flags or a YAML file",
		Long: `create saves a named bundle of init answers. Start from --file (a
YAML document with the same shape "preset show" prints) and refine with
flags, or build the preset from flags alone. Saving an existing name
overwrites it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ConfigPatch
			if fromFile != "" {
				b, err := os.ReadFile(fromFile)
				if err != nil {
					return fmt.Errorf("read preset file: %w", err)
				}
				if err := yaml.Unmarshal(b, &patch); err != nil {
					return fmt.Errorf("parse preset file: %w", err)
				}
			}
			flags := cmd.Flags()
			if flags.Changed("framework") {
				patch.Framework = &framework
			}
			if flags.Changed("db") {
				patch.Database = &database
			}
			if flags.Changed("auth") {
				patch.Auth = &authKind
			}
			if flags.Changed("queue") {
				patch.Queue = &queue
			}
			if flags.Changed("orm") {
				patch.ORM = &orm
			}
			if flags.Changed("ts") {
				patch.TypeScript = &useTS
			}

			p, err := newStore().Create(args[0], patch, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "one-line description")
	cmd.Flags().StringVar(&fromFile, "file", "", "YAML file with the preset configuration")
	cmd.Flags().StringVarP(&framework, "framework", "f", "", "http framework (express or hono)")
	cmd.Flags().StringVar(&database, "db", "", "database")
	cmd.Flags().StringVar(&authKind, "auth", "", "auth provider")
	cmd.Flags().StringVar(&queue, "queue", "", "queue backend")
	cmd.Flags().StringVar(&orm, "orm", "", "orm")
	cmd.Flags().BoolVar(&useTS, "ts", true, "emit TypeScript sources")
	return cmd
}

func newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := newStore().Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No preset named %q\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %q\n", args[0])
			return nil
		},
	}
}

func newPresetDefaultCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "default [name]",
		Short: "Show or set the default preset",
		Long: `Without arguments, prints the preset "init" uses when --preset is
omitted. With a name, makes that preset the default. --clear removes
the pointer, falling back to "api".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()
			out := cmd.OutOrStdout()

			if clear {
				if err := store.SetDefault(""); err != nil {
					return err
				}
				fmt.Fprintln(out, "Default preset cleared")
				return nil
			}
			if len(args) == 0 {
				def := store.Default()
				if def == "" {
					fmt.Fprintf(out, "No default preset set (init falls back to %q)\n", "api")
					return nil
				}
				fmt.Fprintln(out, def)
				return nil
			}
			if err := store.SetDefault(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Default preset set to %q\n", strings.ToLower(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "remove the default pointer")
	return cmd
}

func newPresetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a preset as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if b, ok := preset.Builtin(args[0]); ok {
				fmt.Fprintf(out, "# %s (built-in): %s\n", b.ID, b.Description)
				enc, err := yaml.Marshal(b.Config)
				if err != nil {
					return err
				}
				_, err = out.Write(enc)
				return err
			}
			if p, ok := newStore().Get(args[0]); ok {
				enc, err := yaml.Marshal(p)
				if err != nil {
					return err
				}
				_, err = out.Write(enc)
				return err
			}
			return fmt.Errorf("unknown preset %q", args[0])
		},
	}
}

func newPresetPushCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "push <name>",
		Short: "Publish a saved preset to the shared registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := newStore().Get(args[0])
			if !ok {
				return fmt.Errorf("unknown preset %q", args[0])
			}
			reg, err := registry.NewFirestore(cmd.Context(), project)
			if err != nil {
				return err
			}
			defer reg.Close()
			if err := reg.Publish(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed preset %q to %s\n", p.Name, project)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "firebase project id of the shared registry")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newPresetPullCmd() *cobra.Command {
	var (
		project string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "pull [name]",
		Short: "Fetch shared presets into the local store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("pass a preset name or --all")
			}
			reg, err := registry.NewFirestore(cmd.Context(), project)
			if err != nil {
				return err
			}
			defer reg.Close()

			store := newStore()
			out := cmd.OutOrStdout()

			if all {
				shared, err := reg.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, p := range shared {
					if _, err := store.Save(p.Name, p.Config, p.Description); err != nil {
						if errors.Is(err, preset.ErrReservedName) {
							logger.Warn("skipping shared preset with reserved name", "name", p.Name)
							continue
						}
						return err
					}
					fmt.Fprintf(out, "Pulled preset %q\n", p.Name)
				}
				return nil
			}

			p, err := reg.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := store.Save(p.Name, p.Config, p.Description); err != nil {
				return err
			}
			fmt.Fprintf(out, "Pulled preset %q\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "firebase project id of the shared registry")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every shared preset")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
