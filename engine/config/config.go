package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

const (
	RoleColor = "color"
	RoleDepth = "depth"

	// FormatAuto picks the depth format detected on the device.
	FormatAuto = "auto"
)

/** @brief A single render target image and the slot it is bound to. */
type TargetConfig struct {
	Role    string `toml:"role"`
	Slot    int    `toml:"slot"`
	Format  string `toml:"format"`
	Width   uint32 `toml:"width"`
	Height  uint32 `toml:"height"`
	Layers  uint32 `toml:"layers"`
	Samples uint32 `toml:"samples"`
	Layout  string `toml:"layout"`
}

type Config struct {
	ApplicationName string         `toml:"application_name"`
	LogLevel        string         `toml:"log_level"`
	Validation      bool           `toml:"validation"`
	DiscreteGPU     bool           `toml:"discrete_gpu"`
	Watch           bool           `toml:"watch"`
	Targets         []TargetConfig `toml:"targets"`
}

func Default() *Config {
	return &Config{
		ApplicationName: "rendertargets",
		LogLevel:        "info",
	}
}

// Load reads a TOML configuration file, fills in defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	for i := range c.Targets {
		t := &c.Targets[i]
		if t.Layers == 0 {
			t.Layers = 1
		}
		if t.Samples == 0 {
			t.Samples = 1
		}
		if t.Layout == "" {
			if t.Role == RoleDepth {
				t.Layout = "depth_stencil_attachment_optimal"
			} else {
				t.Layout = "color_attachment_optimal"
			}
		}
	}
}

// Validate checks the structure of the configuration. Format and layout
// names and color slot bounds are checked later by the renderer.
func (c *Config) Validate() error {
	depthCount := 0
	colorSlots := map[int]bool{}
	for i, t := range c.Targets {
		switch t.Role {
		case RoleDepth:
			depthCount++
		case RoleColor:
			if colorSlots[t.Slot] {
				return fmt.Errorf("targets[%d]: color slot %d bound twice: %w", i, t.Slot, core.ErrInvalidConfig)
			}
			colorSlots[t.Slot] = true
		default:
			return fmt.Errorf("targets[%d]: unknown role %q: %w", i, t.Role, core.ErrInvalidConfig)
		}
		if t.Format == "" {
			return fmt.Errorf("targets[%d]: missing format: %w", i, core.ErrInvalidConfig)
		}
		if t.Width == 0 || t.Height == 0 {
			return fmt.Errorf("targets[%d]: extent %dx%d is empty: %w", i, t.Width, t.Height, core.ErrInvalidConfig)
		}
	}
	if depthCount > 1 {
		return fmt.Errorf("%d depth targets configured, at most one allowed: %w", depthCount, core.ErrInvalidConfig)
	}
	return nil
}
