package preset

import (
	"strings"

	"github.com/stackgen-cli/stackgen/internal/domain"
)

// BuiltinPreset is an immutable, shipped preset.
type BuiltinPreset struct {
	ID          string
	Description string
	Config      domain.ConfigPatch
}

func str(s string) *string       { return &s }
func flag(b bool) *bool          { return &b }
func envs(e ...string) *[]string { return &e }

// builtins is the shipped catalog. "custom" is the fully-interactive
// entry and "1" is the legacy numeric menu id; both are reserved even
// though they carry no bundle of their own.
var builtins = []BuiltinPreset{
	{
		ID:          "minimal",
		Description: "Bare skeleton: framework, logging, nothing else",
		Config: domain.ConfigPatch{
			Framework:  str(domain.FrameworkExpress),
			TypeScript: flag(true),
			Database:   str("none"),
			Auth:       str("none"),
			Queue:      str("none"),
			ORM:        str("none"),
			Features: &domain.FeaturesPatch{
				Logging:      flag(true),
				Environments: envs("development", "production"),
			},
		},
	},
	{
		ID:          "api",
		Description: "REST API: database, ORM, auth, tests, docker",
		Config: domain.ConfigPatch{
			Framework:  str(domain.FrameworkExpress),
			TypeScript: flag(true),
			Database:   str("postgres"),
			Auth:       str("jwt"),
			Queue:      str("none"),
			ORM:        str("drizzle"),
			Features: &domain.FeaturesPatch{
				Logging:      flag(true),
				Testing:      flag(true),
				Docker:       flag(true),
				Environments: envs("development", "staging", "production"),
			},
		},
	},
	{
		ID:          "full",
		Description: "Everything on: queue, cron, pm2, audit, CI workflow",
		Config: domain.ConfigPatch{
			Framework:  str(domain.FrameworkExpress),
			TypeScript: flag(true),
			Database:   str("postgres"),
			Auth:       str("jwt"),
			Queue:      str("bullmq"),
			ORM:        str("drizzle"),
			Features: &domain.FeaturesPatch{
				Cron:         flag(true),
				CronLock:     flag(true),
				Logging:      flag(true),
				Testing:      flag(true),
				Docker:       flag(true),
				PM2:          flag(true),
				SourceConfig: flag(true),
				ModelConfig:  flag(true),
				APIAudit:     flag(true),
				Environments: envs("development", "staging", "production"),
			},
			Deployment: &domain.DeploymentPatch{
				GithubWorkflow: flag(true),
			},
		},
	},
	{
		ID:          "ai",
		Description: "API preset plus RAG, chat and embeddings modules",
		Config: domain.ConfigPatch{
			Framework:  str(domain.FrameworkExpress),
			TypeScript: flag(true),
			Database:   str("postgres"),
			Auth:       str("jwt"),
			Queue:      str("none"),
			ORM:        str("drizzle"),
			Features: &domain.FeaturesPatch{
				Logging:      flag(true),
				Testing:      flag(true),
				Docker:       flag(true),
				Environments: envs("development", "staging", "production"),
			},
			AI: &domain.AIPatch{
				RAG:          flag(true),
				Chat:         flag(true),
				Langfuse:     flag(true),
				Embeddings:   flag(true),
				VectorStore:  str("pgvector"),
				LLMProvider:  str("openai"),
				ChatDatabase: str("postgres"),
			},
		},
	},
	{
		ID:          "custom",
		Description: "Answer every question interactively",
		Config:      domain.ConfigPatch{},
	},
	{
		ID:          "1",
		Description: "Legacy numeric menu id (alias of minimal)",
		Config:      domain.ConfigPatch{},
	},
}

func init() {
	// "1" was the first entry of the old numbered menu; it resolves to
	// the same bundle as minimal.
	for i := range builtins {
		if builtins[i].ID == "1" {
			builtins[i].Config = builtins[0].Config
		}
	}
}

// Builtins returns the shipped catalog in display order.
func Builtins() []BuiltinPreset {
	out := make([]BuiltinPreset, len(builtins))
	copy(out, builtins)
	return out
}

// Builtin looks up a shipped preset by id, case-insensitively.
func Builtin(id string) (BuiltinPreset, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, b := range builtins {
		if b.ID == id {
			return b, true
		}
	}
	return BuiltinPreset{}, false
}

// IsReserved reports whether name collides with a built-in id.
// Custom presets may not create, overwrite or delete reserved names.
func IsReserved(name string) bool {
	_, ok := Builtin(name)
	return ok
}
