// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/cli"
	"github.com/bureau-foundation/cartpack/lib/cartridge"
	"github.com/bureau-foundation/cartpack/lib/palette"
)

type paletteParams struct {
	cli.JSONOutput
	configParams
	Shade float64 `flag:"shade" desc:"also show the nearest-color table for colors scaled by this factor (0.3 darkens, 4 lightens)"`
	Bank  int     `flag:"bank" default:"-1" desc:"print the packed bytes of one 16-color bank as hex"`
}

type paletteEntry struct {
	Index int    `json:"index"`
	Hex   string `json:"hex"`
	Shade *int   `json:"shade,omitempty"`
}

type paletteResult struct {
	Source string         `json:"source"`
	Colors []paletteEntry `json:"colors"`
	Bank   *int           `json:"bank,omitempty"`
	Packed string         `json:"packed,omitempty"`
}

func paletteCommand() *cli.Command {
	var params paletteParams
	command := &cli.Command{
		Name:    "palette",
		Summary: "Show the configured palette or a cartridge's palette chunk",
		Description: `Print the palette colors with their indices and a color swatch.

Without an argument the configured palette is shown. Given a cartridge,
the 16 colors of its palette chunk are shown instead. Swatches are
omitted when NO_COLOR is set or output is not a terminal.`,
		Usage: "cartpack palette [flags] [cartridge]",
		Examples: []cli.Example{
			{
				Description: "Show the default palette and its shadow table",
				Command:     "cartpack palette --shade 0.3",
			},
			{
				Description: "Print the bytes the palette chunk receives",
				Command:     "cartpack palette --bank 1",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("palette", &params)
		},
	}
	command.Run = func(args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("expected at most 1 argument (cartridge), got %d", len(args))
		}
		if params.Shade < 0 {
			return fmt.Errorf("--shade must not be negative")
		}
		if params.Bank >= palette.Banks {
			return fmt.Errorf("--bank %d out of range [0, %d)", params.Bank, palette.Banks)
		}

		result, err := paletteReport(args, &params)
		if err != nil {
			return err
		}
		if done, err := params.EmitJSON(command.Out(), result); done {
			return err
		}
		return printPalette(command.Out(), result)
	}
	return command
}

func paletteReport(args []string, params *paletteParams) (*paletteResult, error) {
	var (
		colors []palette.Color
		source string
	)
	if len(args) == 1 {
		source = args[0]
		chunks, err := cartridge.ReadFile(source)
		if err != nil {
			return nil, err
		}
		if colors, err = cartridge.PaletteColors(chunks); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	} else {
		source = "default"
		if params.Config != "" {
			source = params.Config
		}
		cfg, err := params.load()
		if err != nil {
			return nil, err
		}
		if colors, err = cfg.Colors(); err != nil {
			return nil, err
		}
	}

	result := &paletteResult{Source: source, Colors: make([]paletteEntry, len(colors))}
	var shades []int
	if params.Shade > 0 {
		shades = palette.Shade(colors, params.Shade)
	}
	for i, c := range colors {
		result.Colors[i] = paletteEntry{Index: i, Hex: c.Hex()}
		if shades != nil {
			result.Colors[i].Shade = &shades[i]
		}
	}

	if params.Bank >= 0 {
		table, err := palette.Pack(colors)
		if err != nil {
			return nil, err
		}
		bank := params.Bank
		result.Bank = &bank
		result.Packed = hex.EncodeToString(table.Bank(bank))
	}
	return result, nil
}

func printPalette(w io.Writer, result *paletteResult) error {
	renderer := lipgloss.NewRenderer(w)
	if termenv.EnvNoColor() {
		renderer.SetColorProfile(termenv.Ascii)
	}
	showSwatch := renderer.ColorProfile() != termenv.Ascii

	fmt.Fprintf(w, "%s: %d colors\n", result.Source, len(result.Colors))
	for _, entry := range result.Colors {
		var line strings.Builder
		fmt.Fprintf(&line, "%3d  %s", entry.Index, entry.Hex)
		if showSwatch {
			line.WriteString("  ")
			line.WriteString(renderer.NewStyle().Background(lipgloss.Color(entry.Hex)).Render("    "))
		}
		if entry.Shade != nil {
			fmt.Fprintf(&line, "  -> %3d  %s", *entry.Shade, result.Colors[*entry.Shade].Hex)
		}
		fmt.Fprintln(w, line.String())
	}
	if result.Bank != nil {
		if _, err := fmt.Fprintf(w, "bank %d: %s\n", *result.Bank, result.Packed); err != nil {
			return err
		}
	}
	return nil
}
