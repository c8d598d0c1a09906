// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/cartpack/lib/config"
	"github.com/bureau-foundation/cartpack/lib/raster"
)

// configParams selects the configuration file.
type configParams struct {
	Config string `flag:"config" desc:"YAML or JSONC configuration file (default: built-in defaults)"`
}

// load returns the configuration named by --config, or the defaults.
func (p *configParams) load() (*config.Config, error) {
	if p.Config == "" {
		return config.Default(), nil
	}
	return config.LoadFile(p.Config)
}

// overrideParams are per-run overrides of configuration values. Zero
// values leave the configuration alone.
type overrideParams struct {
	Codec      string `flag:"codec,c" desc:"symbol codec (see 'cartpack codecs --list')"`
	MaxChain   int    `flag:"max-chain" desc:"longest run for run-length codecs"`
	Alphabet   int    `flag:"alphabet" desc:"symbol alphabet for lzw and window"`
	WindowSize int    `flag:"window" desc:"window size for the window codec"`
	MaxMatch   int    `flag:"max-match" desc:"longest back-reference for the window codec"`
	Diameter   int    `flag:"diameter" desc:"planet diameter in pixels"`
	Width      int    `flag:"width" desc:"raster width (overrides diameter)"`
	Height     int    `flag:"height" desc:"raster height (overrides diameter)"`
	Projection string `flag:"projection" desc:"flat or cylinder"`
	Preview    string `flag:"preview" desc:"save a PNG preview of the quantized raster"`
}

// apply writes the set overrides into cfg and revalidates it.
func (p *overrideParams) apply(cfg *config.Config) error {
	if p.Codec != "" && p.Codec != cfg.Codec.Name {
		// Parameters tuned for one codec rarely suit another.
		cfg.Codec = config.CodecConfig{Name: p.Codec}
	}
	setInt(&cfg.Codec.MaxChain, p.MaxChain)
	setInt(&cfg.Codec.Alphabet, p.Alphabet)
	setInt(&cfg.Codec.WindowSize, p.WindowSize)
	setInt(&cfg.Codec.MaxMatch, p.MaxMatch)
	if p.Diameter != 0 {
		cfg.Image.Diameter = p.Diameter
		cfg.Image.Width, cfg.Image.Height = 0, 0
	}
	setInt(&cfg.Image.Width, p.Width)
	setInt(&cfg.Image.Height, p.Height)
	if p.Projection != "" {
		cfg.Image.Projection = raster.Projection(p.Projection)
	}
	if p.Preview != "" {
		cfg.Output.Preview = p.Preview
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

func setInt(target *int, value int) {
	if value != 0 {
		*target = value
	}
}

// positional checks args has exactly the named positional arguments.
func positional(args []string, names ...string) error {
	if len(args) != len(names) {
		return fmt.Errorf("expected %d arguments (%v), got %d", len(names), names, len(args))
	}
	return nil
}
