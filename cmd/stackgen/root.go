package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackgen-cli/stackgen/internal/infrastructure"
	"github.com/stackgen-cli/stackgen/internal/paths"
	"github.com/stackgen-cli/stackgen/internal/preset"
)

var (
	env     paths.Environment
	logger  = slog.Default()
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "stackgen",
	Short: "Scaffold backend service projects from presets",
	Long: `stackgen generates ready-to-run backend skeletons (express or hono)
from built-in or user-defined presets. Run "stackgen init" in an empty
directory to get started, or "stackgen preset list" to see what ships
in the box.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newPresetCmd())
}

// Execute runs the CLI. The process environment is read exactly once,
// here; everything below receives it explicitly.
func Execute() error {
	env = paths.DetectEnvironment()
	return rootCmd.Execute()
}

func newStore() *preset.Store {
	return preset.NewStore(paths.PresetsPath(env.Home), infrastructure.NewOSFileSystem(), preset.WithLogger(logger))
}
