package cmd

import (
	"fmt"
	"time"

	"github.com/mattsolo1/grove-core/config"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
	"github.com/mattsolo1/grove-forge/pkg/sequencer"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// ForgeConfig defines the structure for the 'forge' section in grove.yml.
type ForgeConfig struct {
	// Catalogue is a YAML file of scenarios replacing the built-in three.
	Catalogue          string `yaml:"catalogue,omitempty" jsonschema:"description=Path to a scenario catalogue file"`
	StartDelayMs       int    `yaml:"start_delay_ms,omitempty" jsonschema:"minimum=1"`
	TypeIntervalMs     int    `yaml:"type_interval_ms,omitempty" jsonschema:"minimum=1"`
	ModelDelayMs       int    `yaml:"model_delay_ms,omitempty" jsonschema:"minimum=1"`
	InteractiveDelayMs int    `yaml:"interactive_delay_ms,omitempty" jsonschema:"minimum=1"`
	DwellMs            int    `yaml:"dwell_ms,omitempty" jsonschema:"minimum=1"`
	// FPS is the viewport redraw rate of the demo TUI.
	FPS int `yaml:"fps,omitempty" jsonschema:"minimum=1,maximum=120"`
}

const defaultFPS = 30

// loadForgeConfig loads the core grove config and unmarshals the 'forge' extension.
func loadForgeConfig() (*ForgeConfig, error) {
	coreCfg, err := config.LoadFrom(".")
	if err != nil {
		// It's okay if the core config doesn't exist, we'll just use an empty one.
		coreCfg = &config.Config{}
	}

	var forgeCfg ForgeConfig
	if err := coreCfg.UnmarshalExtension("forge", &forgeCfg); err != nil {
		return nil, fmt.Errorf("failed to parse 'forge' configuration from grove.yml: %w", err)
	}
	return &forgeCfg, nil
}

// Timings overlays the configured delays on the defaults. Unset fields keep
// their default.
func (c *ForgeConfig) Timings() (sequencer.Timings, error) {
	t := sequencer.DefaultTimings()
	overlay := []struct {
		ms  int
		dst *time.Duration
	}{
		{c.StartDelayMs, &t.StartDelay},
		{c.TypeIntervalMs, &t.TypeInterval},
		{c.ModelDelayMs, &t.ModelDelay},
		{c.InteractiveDelayMs, &t.InteractiveDelay},
		{c.DwellMs, &t.Dwell},
	}
	for _, o := range overlay {
		if o.ms != 0 {
			*o.dst = time.Duration(o.ms) * time.Millisecond
		}
	}
	if err := t.Validate(); err != nil {
		return sequencer.Timings{}, fmt.Errorf("invalid forge timings: %w", err)
	}
	return t, nil
}

// FrameInterval returns the redraw period for the configured fps.
func (c *ForgeConfig) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// LoadCatalogue returns the catalogue at override, then the configured one,
// falling back to the built-in scenarios.
func (c *ForgeConfig) LoadCatalogue(override string) (*scenario.Catalogue, error) {
	path := override
	if path == "" {
		path = c.Catalogue
	}
	if path == "" {
		return scenario.DefaultCatalogue(), nil
	}
	return scenario.LoadCatalogue(path)
}
