package paths

import (
	"os"
	"path/filepath"
)

const envHome = "STACKGEN_HOME"

// Home returns the base directory for stackgen configuration/state.
// Defaults to ~/.stackgen, can be overridden via STACKGEN_HOME.
func Home() string {
	if v := os.Getenv(envHome); v != "" {
		return v
	}
	hd, err := os.UserHomeDir()
	if err != nil || hd == "" {
		return ".stackgen"
	}
	return filepath.Join(hd, ".stackgen")
}

// PresetsPath returns the path of the persisted presets file inside home.
func PresetsPath(home string) string {
	return filepath.Join(home, "presets.json")
}

// Environment captures the ambient process state the CLI needs. It is
// built once in main and passed explicitly; nothing below the command
// layer reads globals.
type Environment struct {
	Home        string
	WorkDir     string
	CI          bool
	Interactive bool
}

// DetectEnvironment reads the process environment exactly once.
func DetectEnvironment() Environment {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	ci := os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
	return Environment{
		Home:        Home(),
		WorkDir:     wd,
		CI:          ci,
		Interactive: !ci,
	}
}
