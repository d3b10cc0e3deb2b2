package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stackgen-cli/stackgen/internal/domain"
	"github.com/stackgen-cli/stackgen/internal/paths"
	"github.com/stackgen-cli/stackgen/internal/preset"
	"github.com/stackgen-cli/stackgen/internal/resolver"
)

// ErrNonInteractive is returned when required inputs are missing and
// prompting is not possible.
var ErrNonInteractive = errors.New("missing required inputs in non-interactive mode (need a name, --preset, --framework and --yes)")

// GenerateFunc emits the project skeleton for a resolved config.
type GenerateFunc func(cfg domain.ProjectConfig, outputDir string, fs domain.FileSystemPort, tmpl domain.TemplatePort) error

// ScaffoldService orchestrates resolution and generation for the init
// command.
type ScaffoldService struct {
	fs       domain.FileSystemPort
	template domain.TemplatePort
	store    *preset.Store
	prompter domain.PrompterPort
	env      paths.Environment
	log      *slog.Logger
	generate GenerateFunc
}

func NewScaffoldService(
	fs domain.FileSystemPort,
	template domain.TemplatePort,
	store *preset.Store,
	prompter domain.PrompterPort,
	env paths.Environment,
	log *slog.Logger,
	generate GenerateFunc,
) *ScaffoldService {
	return &ScaffoldService{
		fs:       fs,
		template: template,
		store:    store,
		prompter: prompter,
		env:      env,
		log:      log,
		generate: generate,
	}
}

// Init resolves the final project configuration and generates the
// skeleton into the working directory. When the request already carries
// every required field it short-circuits without prompting, which keeps
// CI runs reproducible; otherwise the prompter fills the gaps.
func (s *ScaffoldService) Init(ctx context.Context, req resolver.Request) (domain.ProjectConfig, error) {
	var answers domain.ConfigPatch

	if !req.Complete(s.env) {
		if s.env.CI || !s.env.Interactive {
			return domain.ProjectConfig{}, ErrNonInteractive
		}
		seed := resolver.Resolve(req, domain.ConfigPatch{}, s.store)
		presetID, got, err := s.prompter.Ask(ctx, seed)
		if err != nil {
			return domain.ProjectConfig{}, fmt.Errorf("interactive setup: %w", err)
		}
		if presetID != "" {
			req.Preset = presetID
		}
		answers = got
	}

	cfg := resolver.Resolve(req, answers, s.store)
	if cfg.Name == "" {
		return domain.ProjectConfig{}, fmt.Errorf("project name is required")
	}

	s.log.Debug("resolved configuration",
		"name", cfg.Name, "preset", cfg.Preset, "framework", cfg.Framework)

	if err := s.generate(cfg, s.env.WorkDir, s.fs, s.template); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("generate project: %w", err)
	}
	return cfg, nil
}
