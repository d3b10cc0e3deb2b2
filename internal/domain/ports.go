package domain

import "context"

// FileSystemPort defines the interface for file and directory operations
type FileSystemPort interface {
	MkdirAll(path string) error
	WriteFile(path string, data []byte) error
	ReadFile(path string) ([]byte, error)
}

// TemplatePort defines the interface for rendering templates
type TemplatePort interface {
	Render(name, tmpl string, data interface{}) ([]byte, error)
}

// PrompterPort collects interactive answers for the fields the caller
// did not supply. The seed carries values resolved so far, so prompts
// can pre-select them. The returned preset id may differ from the seed
// when the user picks another bundle.
type PrompterPort interface {
	Ask(ctx context.Context, seed ProjectConfig) (presetID string, answers ConfigPatch, err error)
}

// PresetRegistryPort is a remote store for sharing custom presets.
type PresetRegistryPort interface {
	Publish(ctx context.Context, p CustomPreset) error
	Fetch(ctx context.Context, name string) (*CustomPreset, error)
	List(ctx context.Context) ([]CustomPreset, error)
	Close() error
}
