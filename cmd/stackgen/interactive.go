package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/stackgen-cli/stackgen/internal/domain"
	"github.com/stackgen-cli/stackgen/internal/preset"
	"github.com/stackgen-cli/stackgen/internal/resolver"
)

// huhPrompter asks for the missing configuration through terminal
// forms. It runs in two stages: first name and preset, then the
// remaining questions seeded with the chosen preset's values, so what
// the user confirms is what the preset would have produced.
type huhPrompter struct {
	store *preset.Store
}

func (p huhPrompter) Ask(_ context.Context, seed domain.ProjectConfig) (string, domain.ConfigPatch, error) {
	name := seed.Name
	presetID := seed.Preset

	presetOpts := make([]huh.Option[string], 0, 8)
	for _, b := range preset.Builtins() {
		if b.ID == "1" {
			continue
		}
		presetOpts = append(presetOpts, huh.NewOption(fmt.Sprintf("%s (%s)", b.ID, b.Description), b.ID))
	}
	if p.store != nil {
		for _, c := range p.store.List() {
			presetOpts = append(presetOpts, huh.NewOption(c.Name+" (custom)", strings.ToLower(c.Name)))
		}
	}

	first := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("project name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Preset").
				Options(presetOpts...).
				Value(&presetID),
		),
	)
	if err := first.Run(); err != nil {
		return "", domain.ConfigPatch{}, err
	}

	seed = p.applyPresetToSeed(seed, presetID)

	framework := seed.Framework
	typescript := seed.TypeScript
	database := seed.Database
	authKind := seed.Auth
	queue := seed.Queue
	orm := seed.ORM
	docker := seed.Features.Docker
	testing := seed.Features.Testing
	cron := seed.Features.Cron
	audit := seed.Features.APIAudit
	enableAI := seed.AI.RAG || seed.AI.Chat

	second := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Framework").
				Options(
					huh.NewOption("Express", domain.FrameworkExpress),
					huh.NewOption("Hono", domain.FrameworkHono),
				).
				Value(&framework),
			huh.NewConfirm().
				Title("TypeScript?").
				Value(&typescript),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Database").
				Options(
					huh.NewOption("None", "none"),
					huh.NewOption("PostgreSQL", "postgres"),
					huh.NewOption("MySQL", "mysql"),
					huh.NewOption("MongoDB", "mongodb"),
					huh.NewOption("Supabase", "supabase"),
				).
				Value(&database),
			huh.NewSelect[string]().
				Title("Authentication").
				Options(
					huh.NewOption("None", "none"),
					huh.NewOption("JWT", "jwt"),
					huh.NewOption("Supabase Auth", "supabase"),
					huh.NewOption("Firebase Auth", "firebase"),
				).
				Value(&authKind),
			huh.NewSelect[string]().
				Title("Queue").
				Options(
					huh.NewOption("None", "none"),
					huh.NewOption("BullMQ", "bullmq"),
				).
				Value(&queue),
			huh.NewSelect[string]().
				Title("ORM").
				Options(
					huh.NewOption("None", "none"),
					huh.NewOption("Drizzle", "drizzle"),
					huh.NewOption("Prisma", "prisma"),
				).
				Value(&orm),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Docker setup?").
				Value(&docker),
			huh.NewConfirm().
				Title("Test setup (vitest)?").
				Value(&testing),
			huh.NewConfirm().
				Title("Cron jobs?").
				Value(&cron),
			huh.NewConfirm().
				Title("API audit log?").
				Value(&audit),
			huh.NewConfirm().
				Title("AI modules (RAG + chat)?").
				Value(&enableAI),
		),
	)
	if err := second.Run(); err != nil {
		return "", domain.ConfigPatch{}, err
	}

	answers := domain.ConfigPatch{
		Name:       &name,
		Framework:  &framework,
		TypeScript: &typescript,
		Database:   &database,
		Auth:       &authKind,
		Queue:      &queue,
		ORM:        &orm,
		Features: &domain.FeaturesPatch{
			Docker:   &docker,
			Testing:  &testing,
			Cron:     &cron,
			APIAudit: &audit,
		},
	}
	if enableAI {
		on := true
		answers.AI = &domain.AIPatch{RAG: &on, Chat: &on, Embeddings: &on}
	}
	return presetID, answers, nil
}

// applyPresetToSeed overlays the selected preset so the second form
// shows its values as the starting point.
func (p huhPrompter) applyPresetToSeed(seed domain.ProjectConfig, id string) domain.ProjectConfig {
	if b, ok := preset.Builtin(id); ok {
		return resolver.Overlay(seed, b.Config)
	}
	if p.store != nil {
		if c, ok := p.store.Get(id); ok {
			return resolver.Overlay(seed, c.Config)
		}
	}
	return seed
}
