// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/cartpack/lib/cartridge"
	"github.com/bureau-foundation/cartpack/lib/palette"
	"github.com/bureau-foundation/cartpack/lib/raster"
	"github.com/bureau-foundation/cartpack/lib/symbolcodec"
)

// DefaultDiameter is the planet diameter, in pixels, used when the
// config does not set one.
const DefaultDiameter = 136

// Config is the master configuration for cartpack.
type Config struct {
	// Image controls how source images become rasters.
	Image ImageConfig `yaml:"image" json:"image"`

	// Palette lists the colors symbols index into.
	Palette PaletteConfig `yaml:"palette" json:"palette"`

	// Codec selects and parameterizes the symbol codec.
	Codec CodecConfig `yaml:"codec" json:"codec"`

	// Container bounds the three data chunks.
	Container cartridge.Capacities `yaml:"container" json:"container"`

	// Output configures side outputs of a conversion.
	Output OutputConfig `yaml:"output" json:"output"`
}

// ImageConfig controls raster dimensions and projection.
type ImageConfig struct {
	// Diameter is the planet diameter in pixels. When Width or Height
	// is zero it is derived from Diameter: width = floor(π·diameter),
	// height = diameter.
	Diameter int `yaml:"diameter" json:"diameter"`

	// Width and Height override the derived raster size.
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// Projection is "flat" or "cylinder".
	// Default: cylinder
	Projection raster.Projection `yaml:"projection" json:"projection"`
}

// Size returns the raster width and height.
func (c ImageConfig) Size() (width, height int) {
	width, height = c.Width, c.Height
	if width == 0 {
		width = int(float64(c.Diameter) * math.Pi)
	}
	if height == 0 {
		height = c.Diameter
	}
	return width, height
}

// PaletteConfig lists the palette.
type PaletteConfig struct {
	// Colors are "#rrggbb" strings. Order is significant: a symbol is
	// an index into this list.
	Colors []string `yaml:"colors" json:"colors"`

	// Bank selects which 16-color bank of the packed table is written
	// to the cartridge's palette chunk.
	// Default: 1
	Bank int `yaml:"bank" json:"bank"`
}

// CodecConfig selects a codec by name. Zero parameters take the
// codec's default.
type CodecConfig struct {
	Name       string `yaml:"name" json:"name"`
	Alphabet   int    `yaml:"alphabet" json:"alphabet"`
	MaxChain   int    `yaml:"max_chain" json:"max_chain"`
	WindowSize int    `yaml:"window_size" json:"window_size"`
	MaxMatch   int    `yaml:"max_match" json:"max_match"`
	MaxEntries int    `yaml:"max_entries" json:"max_entries"`
}

// OutputConfig configures side outputs.
type OutputConfig struct {
	// Preview, when set, is where the quantized raster is saved as a
	// PNG for visual checking.
	Preview string `yaml:"preview" json:"preview"`
}

// Default returns the default configuration: a 136-pixel planet on a
// cylinder, the standard 31-color palette, escape-RLE, and the
// standard chunk capacities.
func Default() *Config {
	return &Config{
		Image: ImageConfig{
			Diameter:   DefaultDiameter,
			Projection: raster.Cylinder,
		},
		Palette: PaletteConfig{
			Colors: palette.DefaultHex(),
			Bank:   1,
		},
		Codec: CodecConfig{
			Name: symbolcodec.NameEscapeRLE,
		},
		Container: cartridge.DefaultCapacities(),
	}
}

// LoadFile loads configuration from path over [Default], expands path
// variables and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	directory, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.expandVariables(directory)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile merges a single configuration file into c. A palette list
// in the file replaces the default list rather than merging with it.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	c.Palette.Colors = nil
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	if c.Palette.Colors == nil {
		c.Palette.Colors = palette.DefaultHex()
	}
	return nil
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVariables expands ${HOME} and ${CONFIG_DIR} in path fields.
// Unknown variables take their default, or expand to empty.
func (c *Config) expandVariables(configDirectory string) {
	homeDirectory, _ := os.UserHomeDir()
	vars := map[string]string{
		"HOME":       homeDirectory,
		"CONFIG_DIR": configDirectory,
	}
	c.Output.Preview = expandVars(c.Output.Preview, vars)
}

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := vars[parts[1]]; value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Image.Diameter < 0 || c.Image.Width < 0 || c.Image.Height < 0 {
		errs = append(errs, fmt.Errorf("image dimensions must not be negative"))
	}
	if width, height := c.Image.Size(); width == 0 || height == 0 {
		errs = append(errs, fmt.Errorf("image size %dx%d is empty; set image.diameter or image.width and image.height", width, height))
	}
	if !slices.Contains(raster.Projections(), c.Image.Projection) {
		errs = append(errs, fmt.Errorf("image.projection must be one of: %v", raster.Projections()))
	}

	if len(c.Palette.Colors) == 0 {
		errs = append(errs, fmt.Errorf("palette.colors is required"))
	} else if _, err := c.Colors(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.NewCodec(); err != nil {
		errs = append(errs, err)
	}

	if err := c.CartridgeOptions().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("container: %w", err))
	}

	return errors.Join(errs...)
}

// Colors parses the palette. More than 256 colors fails with
// *palette.TooManyColorsError.
func (c *Config) Colors() ([]palette.Color, error) {
	colors, err := palette.ParseHexList(c.Palette.Colors)
	if err != nil {
		return nil, fmt.Errorf("palette.colors: %w", err)
	}
	if len(colors) > palette.MaxColors {
		return nil, fmt.Errorf("palette.colors: %w", &palette.TooManyColorsError{Count: len(colors)})
	}
	return colors, nil
}

// CodecOptions converts the codec section to symbolcodec.Options.
func (c *Config) CodecOptions() symbolcodec.Options {
	return symbolcodec.Options{
		Alphabet:   c.Codec.Alphabet,
		MaxChain:   c.Codec.MaxChain,
		WindowSize: c.Codec.WindowSize,
		MaxMatch:   c.Codec.MaxMatch,
		MaxEntries: c.Codec.MaxEntries,
	}
}

// NewCodec constructs the configured codec.
func (c *Config) NewCodec() (symbolcodec.Codec, error) {
	codec, err := symbolcodec.New(c.Codec.Name, c.CodecOptions())
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	return codec, nil
}

// CartridgeOptions converts the container and palette bank settings
// to cartridge.Options.
func (c *Config) CartridgeOptions() cartridge.Options {
	return cartridge.Options{
		Capacities:  c.Container,
		PaletteBank: c.Palette.Bank,
	}
}
