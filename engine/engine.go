package engine

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/rendertargets/engine/config"
	"github.com/spaghettifunk/rendertargets/engine/core"
	"github.com/spaghettifunk/rendertargets/engine/platform"
	"github.com/spaghettifunk/rendertargets/engine/renderer"
	"github.com/spaghettifunk/rendertargets/engine/renderer/vulkan"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine builds the configured render targets, creates a framebuffer for
// them and reports the result. With watch enabled it rebuilds on every
// config change.
type Engine struct {
	currentStage Stage
	configPath   string
	config       *config.Config
	platform     *platform.Platform
	renderer     *renderer.Renderer
}

func New(configPath string) (*Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if err := core.LogSetLevel(cfg.LogLevel); err != nil {
		core.LogWarn("unknown log level %q, keeping default", cfg.LogLevel)
	}

	p := platform.New()
	return &Engine{
		currentStage: EngineStageUninitialized,
		configPath:   configPath,
		config:       cfg,
		platform:     p,
		renderer:     renderer.New(p, cfg.Validation, cfg.DiscreteGPU),
	}, nil
}

func (e *Engine) Initialize() error {
	if err := e.platform.Startup(); err != nil {
		return err
	}
	if err := e.renderer.Initialize(e.config.ApplicationName); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("cannot run from stage %d: %w", e.currentStage, core.ErrEngineStage)
	}
	e.currentStage = EngineStageRunning
	if err := e.probe(e.config); err != nil {
		if !e.config.Watch {
			return err
		}
		core.LogError(err.Error())
	}
	if !e.config.Watch {
		return nil
	}

	core.LogInfo("watching %s for changes", e.configPath)
	return config.Watch(ctx, e.configPath, func(cfg *config.Config) {
		e.renderer.ReleaseTargets()
		e.config = cfg
		if err := e.probe(cfg); err != nil {
			core.LogError(err.Error())
		}
	})
}

func (e *Engine) probe(cfg *config.Config) error {
	rt, err := e.renderer.BuildTargets(cfg.Targets)
	if err != nil {
		return err
	}
	if !rt.HasAttachments() {
		core.LogWarn("no render targets configured, skipping framebuffer creation")
		return nil
	}
	if err := vulkan.ValidateRenderTargets(rt); err != nil {
		return err
	}
	if err := vulkan.CheckFramebufferLimits(e.renderer.Limits(), rt); err != nil {
		return err
	}

	format := rt.RenderPassFormat()
	core.LogInfo("render pass format: %d color attachment(s), depth=%t, samples=%d",
		format.ColorCount(), format.HasDepth(), format.SampleCount)

	fb, err := e.renderer.Framebuffer(rt)
	if err != nil {
		return err
	}
	core.LogInfo("framebuffer %s ready: size=%s attachments=%d", fb.ID, fb.Size, len(fb.Attachments()))
	return nil
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	return nil
}
