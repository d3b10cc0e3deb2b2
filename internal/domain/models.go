package domain

import "time"

// Framework identifiers supported by the generator.
const (
	FrameworkExpress = "express"
	FrameworkHono    = "hono"
)

// ProjectConfig is the fully resolved configuration for one generated
// project. Every field is concrete after resolution; partial shapes live
// in ConfigPatch.
type ProjectConfig struct {
	Name       string           `json:"name" yaml:"name"`
	Preset     string           `json:"preset" yaml:"preset"`
	Framework  string           `json:"framework" yaml:"framework"` // "express" or "hono"
	TypeScript bool             `json:"typescript" yaml:"typescript"`
	Database   string           `json:"database" yaml:"database"`
	Auth       string           `json:"auth" yaml:"auth"`
	Queue      string           `json:"queue" yaml:"queue"`
	ORM        string           `json:"orm" yaml:"orm"`
	Features   FeaturesConfig   `json:"features" yaml:"features"`
	AI         AIConfig         `json:"ai" yaml:"ai"`
	Deployment DeploymentConfig `json:"deployment" yaml:"deployment"`
	Supabase   SupabaseConfig   `json:"supabase" yaml:"supabase"`
}

// FeaturesConfig toggles the optional modules written into the skeleton.
type FeaturesConfig struct {
	Cron         bool     `json:"cron" yaml:"cron"`
	CronLock     bool     `json:"cronLock" yaml:"cronLock"`
	Logging      bool     `json:"logging" yaml:"logging"`
	Testing      bool     `json:"testing" yaml:"testing"`
	Docker       bool     `json:"docker" yaml:"docker"`
	PM2          bool     `json:"pm2" yaml:"pm2"`
	Environments []string `json:"environments" yaml:"environments"`
	SourceConfig bool     `json:"sourceConfig" yaml:"sourceConfig"`
	ModelConfig  bool     `json:"modelConfig" yaml:"modelConfig"`
	APIAudit     bool     `json:"apiAudit" yaml:"apiAudit"`
}

// AIConfig configures the AI modules of the generated project.
type AIConfig struct {
	RAG          bool   `json:"rag" yaml:"rag"`
	Chat         bool   `json:"chat" yaml:"chat"`
	Langfuse     bool   `json:"langfuse" yaml:"langfuse"`
	Embeddings   bool   `json:"embeddings" yaml:"embeddings"`
	VectorStore  string `json:"vectorStore" yaml:"vectorStore"`
	LLMProvider  string `json:"llmProvider" yaml:"llmProvider"`
	ChatDatabase string `json:"chatDatabase" yaml:"chatDatabase"`
}

// DeploymentConfig configures deployment targets.
type DeploymentConfig struct {
	Vercel         bool `json:"vercel" yaml:"vercel"`
	VercelCron     bool `json:"vercelCron" yaml:"vercelCron"`
	GithubWorkflow bool `json:"githubWorkflow" yaml:"githubWorkflow"`
}

// SupabaseConfig holds supabase-specific connection options.
type SupabaseConfig struct {
	UsePooler bool `json:"usePooler" yaml:"usePooler"`
}

// ConfigPatch is a partial ProjectConfig. Nil fields mean "not specified
// at this layer"; resolution overlays patches in precedence order, one
// level deep for the nested sections.
type ConfigPatch struct {
	Name       *string          `json:"name,omitempty" yaml:"name,omitempty"`
	Framework  *string          `json:"framework,omitempty" yaml:"framework,omitempty"`
	TypeScript *bool            `json:"typescript,omitempty" yaml:"typescript,omitempty"`
	Database   *string          `json:"database,omitempty" yaml:"database,omitempty"`
	Auth       *string          `json:"auth,omitempty" yaml:"auth,omitempty"`
	Queue      *string          `json:"queue,omitempty" yaml:"queue,omitempty"`
	ORM        *string          `json:"orm,omitempty" yaml:"orm,omitempty"`
	Features   *FeaturesPatch   `json:"features,omitempty" yaml:"features,omitempty"`
	AI         *AIPatch         `json:"ai,omitempty" yaml:"ai,omitempty"`
	Deployment *DeploymentPatch `json:"deployment,omitempty" yaml:"deployment,omitempty"`
	Supabase   *SupabasePatch   `json:"supabase,omitempty" yaml:"supabase,omitempty"`
}

// FeaturesPatch is the partial form of FeaturesConfig.
type FeaturesPatch struct {
	Cron         *bool     `json:"cron,omitempty" yaml:"cron,omitempty"`
	CronLock     *bool     `json:"cronLock,omitempty" yaml:"cronLock,omitempty"`
	Logging      *bool     `json:"logging,omitempty" yaml:"logging,omitempty"`
	Testing      *bool     `json:"testing,omitempty" yaml:"testing,omitempty"`
	Docker       *bool     `json:"docker,omitempty" yaml:"docker,omitempty"`
	PM2          *bool     `json:"pm2,omitempty" yaml:"pm2,omitempty"`
	Environments *[]string `json:"environments,omitempty" yaml:"environments,omitempty"`
	SourceConfig *bool     `json:"sourceConfig,omitempty" yaml:"sourceConfig,omitempty"`
	ModelConfig  *bool     `json:"modelConfig,omitempty" yaml:"modelConfig,omitempty"`
	APIAudit     *bool     `json:"apiAudit,omitempty" yaml:"apiAudit,omitempty"`
}

// AIPatch is the partial form of AIConfig.
type AIPatch struct {
	RAG          *bool   `json:"rag,omitempty" yaml:"rag,omitempty"`
	Chat         *bool   `json:"chat,omitempty" yaml:"chat,omitempty"`
	Langfuse     *bool   `json:"langfuse,omitempty" yaml:"langfuse,omitempty"`
	Embeddings   *bool   `json:"embeddings,omitempty" yaml:"embeddings,omitempty"`
	VectorStore  *string `json:"vectorStore,omitempty" yaml:"vectorStore,omitempty"`
	LLMProvider  *string `json:"llmProvider,omitempty" yaml:"llmProvider,omitempty"`
	ChatDatabase *string `json:"chatDatabase,omitempty" yaml:"chatDatabase,omitempty"`
}

// DeploymentPatch is the partial form of DeploymentConfig.
type DeploymentPatch struct {
	Vercel         *bool `json:"vercel,omitempty" yaml:"vercel,omitempty"`
	VercelCron     *bool `json:"vercelCron,omitempty" yaml:"vercelCron,omitempty"`
	GithubWorkflow *bool `json:"githubWorkflow,omitempty" yaml:"githubWorkflow,omitempty"`
}

// SupabasePatch is the partial form of SupabaseConfig.
type SupabasePatch struct {
	UsePooler *bool `json:"usePooler,omitempty" yaml:"usePooler,omitempty"`
}

// CustomPreset is a user-defined, persisted bundle of config defaults.
type CustomPreset struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Config      ConfigPatch `json:"config" yaml:"config"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

// PresetsConfig is the persisted aggregate owned by the preset store.
// Map keys are lowercased preset names; DefaultPreset names either a
// built-in id or a key in Presets.
type PresetsConfig struct {
	DefaultPreset string                  `json:"defaultPreset,omitempty" yaml:"defaultPreset,omitempty"`
	Presets       map[string]CustomPreset `json:"presets" yaml:"presets"`
}
