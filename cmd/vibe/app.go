package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vibebuilder/internal/build"
	"vibebuilder/internal/config"
	"vibebuilder/internal/generation"
	"vibebuilder/internal/link"
	"vibebuilder/internal/session"
	"vibebuilder/internal/templates"
)

// app is the assembled runtime: one connection, one session, one
// orchestrator.
type app struct {
	cfg          *config.Config
	log          *zap.Logger
	client       *link.Client
	orchestrator *build.Orchestrator
	registry     *templates.Registry

	stop func()
}

// newApp connects to the remote application and wires every component.
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := link.Dial(cfg.Link.URL, cfg.ConnectTimeout(), log)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Link.URL, err)
	}
	client := link.NewClient(conn, cfg.CommandTimeout(), log)

	gen, err := generation.NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model, log)
	if err != nil {
		client.Close()
		return nil, err
	}

	registry := templates.NewRegistry(log)
	registryStop := func() {}
	if cfg.Templates.Dir != "" {
		if err := registry.LoadDir(ctx, cfg.Templates.Dir); err != nil {
			client.Close()
			return nil, err
		}
		if cfg.Templates.Watch {
			if err := registry.Watch(ctx, cfg.Templates.Dir); err != nil {
				client.Close()
				return nil, err
			}
			registryStop = registry.Stop
		}
	}

	alloc := session.NewAllocator()
	orchestrator := build.NewOrchestrator(client, gen, alloc, log)

	log.Info("session ready",
		zap.String("endpoint", cfg.Link.URL),
		zap.String("model", cfg.LLM.Model),
		zap.String("session", alloc.Token()))

	return &app{
		cfg:          cfg,
		log:          log,
		client:       client,
		orchestrator: orchestrator,
		registry:     registry,
		stop: func() {
			registryStop()
			client.Close()
		},
	}, nil
}

// buildTemplate expands and executes a named scene template.
func (a *app) buildTemplate(ctx context.Context, name string) (*build.Report, error) {
	tpl, ok := a.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown template %q (run 'vibe templates' for the list)", name)
	}
	cmds, err := tpl.Expand("")
	if err != nil {
		return nil, err
	}
	return a.orchestrator.ExecuteBatch(ctx, tpl.Name, cmds)
}
