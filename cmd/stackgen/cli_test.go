package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackgen-cli/stackgen/internal/paths"
)

// runCLI executes the root command in-process with a captured output
// buffer. Tests share the package-level command tree, so they run
// sequentially and reset env themselves.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestPresetLifecycle(t *testing.T) {
	env = paths.Environment{Home: t.TempDir(), WorkDir: t.TempDir(), CI: true}

	out, err := runCLI(t, "preset", "create", "team-api", "--db", "postgres", "--auth", "jwt", "--desc", "team defaults")
	require.NoError(t, err)
	require.Contains(t, out, `Saved preset "team-api"`)

	out, err = runCLI(t, "preset", "list")
	require.NoError(t, err)
	require.Contains(t, out, "team-api")
	require.Contains(t, out, "minimal")

	out, err = runCLI(t, "preset", "default", "team-api")
	require.NoError(t, err)
	require.Contains(t, out, `Default preset set to "team-api"`)

	out, err = runCLI(t, "preset", "show", "team-api")
	require.NoError(t, err)
	require.Contains(t, out, "database: postgres")

	out, err = runCLI(t, "preset", "delete", "team-api")
	require.NoError(t, err)
	require.Contains(t, out, `Deleted preset "team-api"`)

	out, err = runCLI(t, "preset", "default")
	require.NoError(t, err)
	require.Contains(t, out, "No default preset set")
}

func TestPresetDeleteReservedFails(t *testing.T) {
	env = paths.Environment{Home: t.TempDir(), WorkDir: t.TempDir(), CI: true}

	_, err := runCLI(t, "preset", "delete", "api")
	require.Error(t, err)
}

func TestPresetShowBuiltin(t *testing.T) {
	env = paths.Environment{Home: t.TempDir(), WorkDir: t.TempDir(), CI: true}

	out, err := runCLI(t, "preset", "show", "full")
	require.NoError(t, err)
	require.Contains(t, out, "# full (built-in)")
	require.Contains(t, out, "queue: bullmq")
}

func TestInitUnattended(t *testing.T) {
	work := t.TempDir()
	env = paths.Environment{Home: t.TempDir(), WorkDir: work, CI: true}

	out, err := runCLI(t, "init", "demo-api", "--preset", "api", "--framework", "express", "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "Created demo-api")

	b, err := os.ReadFile(filepath.Join(work, "demo-api", "package.json"))
	require.NoError(t, err)
	require.Contains(t, string(b), `"express"`)
}

func TestInitUnattendedWithoutYesFails(t *testing.T) {
	env = paths.Environment{Home: t.TempDir(), WorkDir: t.TempDir(), CI: true}

	_, err := runCLI(t, "init", "demo-api", "--preset", "api", "--framework", "express", "--yes=false")
	require.Error(t, err)
}
