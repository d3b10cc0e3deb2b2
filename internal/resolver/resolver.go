package resolver

import (
	"strings"

	"github.com/stackgen-cli/stackgen/internal/domain"
	"github.com/stackgen-cli/stackgen/internal/paths"
	"github.com/stackgen-cli/stackgen/internal/preset"
)

// FallbackPreset is applied when the requested preset id is unknown.
// Resolution never fails on a bad preset id.
const FallbackPreset = "api"

// Request carries everything the caller supplied on the command line.
type Request struct {
	Preset string
	Flags  domain.ConfigPatch
	Yes    bool
}

// Complete reports whether the request already carries every required
// field (name, preset, framework), which lets resolution short-circuit
// without prompting. In CI / non-interactive mode --yes is additionally
// required, so a half-specified pipeline run fails fast instead of
// hanging on a prompt.
func (r Request) Complete(env paths.Environment) bool {
	has := r.Flags.Name != nil && strings.TrimSpace(r.Preset) != "" && r.Flags.Framework != nil
	if env.CI || !env.Interactive {
		return has && r.Yes
	}
	return has
}

// Loader is the slice of the preset store resolution needs.
type Loader interface {
	Get(name string) (domain.CustomPreset, bool)
	Default() string
}

// Defaults returns the hardcoded global defaults, the lowest layer of
// the merge.
func Defaults() domain.ProjectConfig {
	return domain.ProjectConfig{
		Preset:     FallbackPreset,
		Framework:  domain.FrameworkExpress,
		TypeScript: true,
		Database:   "none",
		Auth:       "none",
		Queue:      "none",
		ORM:        "none",
		Features: domain.FeaturesConfig{
			Logging:      true,
			Environments: []string{"development", "production"},
		},
		AI: domain.AIConfig{
			VectorStore:  "none",
			LLMProvider:  "none",
			ChatDatabase: "none",
		},
	}
}

// Resolve merges preset defaults, CLI flags and interactive answers into
// one concrete ProjectConfig. Precedence per field, highest first:
// answers > flags > preset > defaults. Nested sections merge one level
// deep: each sub-field resolves independently under the same rule.
// Identical inputs always yield a structurally identical config.
func Resolve(req Request, answers domain.ConfigPatch, store Loader) domain.ProjectConfig {
	cfg := Defaults()

	id := strings.ToLower(strings.TrimSpace(req.Preset))
	if id == "" {
		id = store.Default()
	}
	cfg = applyPreset(id, cfg, store)

	apply(&cfg, req.Flags)
	apply(&cfg, answers)
	return cfg
}

// Overlay applies a single patch on top of cfg and returns the result.
// It is the same merge step Resolve uses between layers; the prompter
// uses it to preview a preset before asking follow-up questions.
func Overlay(cfg domain.ProjectConfig, p domain.ConfigPatch) domain.ProjectConfig {
	apply(&cfg, p)
	return cfg
}

// applyPreset overlays the named preset's bundle and records the id
// that was actually applied. Unknown ids substitute the fallback
// bundle. Preset bundles never carry a preset id themselves, so the
// assignment here is the only writer of cfg.Preset.
func applyPreset(id string, cfg domain.ProjectConfig, store Loader) domain.ProjectConfig {
	if b, ok := preset.Builtin(id); ok {
		apply(&cfg, b.Config)
		cfg.Preset = b.ID
		return cfg
	}
	if p, ok := store.Get(id); ok {
		apply(&cfg, p.Config)
		cfg.Preset = strings.ToLower(p.Name)
		return cfg
	}
	fb, _ := preset.Builtin(FallbackPreset)
	apply(&cfg, fb.Config)
	cfg.Preset = FallbackPreset
	return cfg
}

func apply(cfg *domain.ProjectConfig, p domain.ConfigPatch) {
	if p.Name != nil {
		cfg.Name = *p.Name
	}
	if p.Framework != nil {
		cfg.Framework = strings.ToLower(*p.Framework)
	}
	if p.TypeScript != nil {
		cfg.TypeScript = *p.TypeScript
	}
	if p.Database != nil {
		cfg.Database = strings.ToLower(*p.Database)
	}
	if p.Auth != nil {
		cfg.Auth = strings.ToLower(*p.Auth)
	}
	if p.Queue != nil {
		cfg.Queue = strings.ToLower(*p.Queue)
	}
	if p.ORM != nil {
		cfg.ORM = strings.ToLower(*p.ORM)
	}
	if p.Features != nil {
		applyFeatures(&cfg.Features, *p.Features)
	}
	if p.AI != nil {
		applyAI(&cfg.AI, *p.AI)
	}
	if p.Deployment != nil {
		applyDeployment(&cfg.Deployment, *p.Deployment)
	}
	if p.Supabase != nil && p.Supabase.UsePooler != nil {
		cfg.Supabase.UsePooler = *p.Supabase.UsePooler
	}
}

func applyFeatures(f *domain.FeaturesConfig, p domain.FeaturesPatch) {
	if p.Cron != nil {
		f.Cron = *p.Cron
	}
	if p.CronLock != nil {
		f.CronLock = *p.CronLock
	}
	if p.Logging != nil {
		f.Logging = *p.Logging
	}
	if p.Testing != nil {
		f.Testing = *p.Testing
	}
	if p.Docker != nil {
		f.Docker = *p.Docker
	}
	if p.PM2 != nil {
		f.PM2 = *p.PM2
	}
	if p.Environments != nil {
		f.Environments = append([]string(nil), (*p.Environments)...)
	}
	if p.SourceConfig != nil {
		f.SourceConfig = *p.SourceConfig
	}
	if p.ModelConfig != nil {
		f.ModelConfig = *p.ModelConfig
	}
	if p.APIAudit != nil {
		f.APIAudit = *p.APIAudit
	}
}

func applyAI(a *domain.AIConfig, p domain.AIPatch) {
	if p.RAG != nil {
		a.RAG = *p.RAG
	}
	if p.Chat != nil {
		a.Chat = *p.Chat
	}
	if p.Langfuse != nil {
		a.Langfuse = *p.Langfuse
	}
	if p.Embeddings != nil {
		a.Embeddings = *p.Embeddings
	}
	if p.VectorStore != nil {
		a.VectorStore = strings.ToLower(*p.VectorStore)
	}
	if p.LLMProvider != nil {
		a.LLMProvider = strings.ToLower(*p.LLMProvider)
	}
	if p.ChatDatabase != nil {
		a.ChatDatabase = strings.ToLower(*p.ChatDatabase)
	}
}

func applyDeployment(d *domain.DeploymentConfig, p domain.DeploymentPatch) {
	if p.Vercel != nil {
		d.Vercel = *p.Vercel
	}
	if p.VercelCron != nil {
		d.VercelCron = *p.VercelCron
	}
	if p.GithubWorkflow != nil {
		d.GithubWorkflow = *p.GithubWorkflow
	}
}
