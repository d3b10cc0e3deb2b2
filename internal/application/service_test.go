package application_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackgen-cli/stackgen/internal/application"
	"github.com/stackgen-cli/stackgen/internal/domain"
	"github.com/stackgen-cli/stackgen/internal/infrastructure"
	"github.com/stackgen-cli/stackgen/internal/paths"
	"github.com/stackgen-cli/stackgen/internal/preset"
	"github.com/stackgen-cli/stackgen/internal/resolver"
)

type fakePrompter struct {
	preset  string
	answers domain.ConfigPatch
	calls   int
}

func (f *fakePrompter) Ask(_ context.Context, _ domain.ProjectConfig) (string, domain.ConfigPatch, error) {
	f.calls++
	return f.preset, f.answers, nil
}

func strp(s string) *string { return &s }

func newService(t *testing.T, env paths.Environment, prompter domain.PrompterPort) (*application.ScaffoldService, *[]domain.ProjectConfig) {
	t.Helper()
	store := preset.NewStore(filepath.Join(t.TempDir(), "presets.json"), infrastructure.NewOSFileSystem())

	var generated []domain.ProjectConfig
	generate := func(cfg domain.ProjectConfig, _ string, _ domain.FileSystemPort, _ domain.TemplatePort) error {
		generated = append(generated, cfg)
		return nil
	}
	svc := application.NewScaffoldService(
		infrastructure.NewOSFileSystem(),
		infrastructure.NewGoTemplateEngine(),
		store,
		prompter,
		env,
		slog.Default(),
		generate,
	)
	return svc, &generated
}

func TestInitFastPathSkipsPrompt(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{}
	env := paths.Environment{WorkDir: t.TempDir(), CI: true}
	svc, generated := newService(t, env, prompter)

	req := resolver.Request{
		Preset: "api",
		Flags:  domain.ConfigPatch{Name: strp("shop-api"), Framework: strp("express")},
		Yes:    true,
	}
	cfg, err := svc.Init(context.Background(), req)
	require.NoError(t, err)
	require.Zero(t, prompter.calls, "complete request must not prompt")
	require.Equal(t, "shop-api", cfg.Name)
	require.Len(t, *generated, 1)
}

func TestInitNonInteractiveWithoutYesFails(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{}
	env := paths.Environment{WorkDir: t.TempDir(), CI: true}
	svc, generated := newService(t, env, prompter)

	req := resolver.Request{
		Preset: "api",
		Flags:  domain.ConfigPatch{Name: strp("shop-api"), Framework: strp("express")},
	}
	_, err := svc.Init(context.Background(), req)
	require.ErrorIs(t, err, application.ErrNonInteractive)
	require.Zero(t, prompter.calls)
	require.Empty(t, *generated)
}

func TestInitPromptsForMissingFields(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{
		preset: "minimal",
		answers: domain.ConfigPatch{
			Name:      strp("from-prompt"),
			Framework: strp("hono"),
		},
	}
	env := paths.Environment{WorkDir: t.TempDir(), Interactive: true}
	svc, generated := newService(t, env, prompter)

	cfg, err := svc.Init(context.Background(), resolver.Request{})
	require.NoError(t, err)
	require.Equal(t, 1, prompter.calls)
	require.Equal(t, "from-prompt", cfg.Name)
	require.Equal(t, "minimal", cfg.Preset)
	require.Equal(t, "hono", cfg.Framework, "answers override preset")
	require.Len(t, *generated, 1)
}
