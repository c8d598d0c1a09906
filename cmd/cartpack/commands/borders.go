// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/cli"
	"github.com/bureau-foundation/cartpack/lib/borders"
)

type bordersParams struct {
	cli.JSONOutput
	cli.LoggingParams
	configParams
	Diameter int    `flag:"diameter" desc:"planet diameter in pixels"`
	Width    int    `flag:"width" desc:"raster width (overrides diameter)"`
	Height   int    `flag:"height" desc:"raster height (overrides diameter)"`
	Output   string `flag:"output,o" desc:"write the Lua tables to this file instead of stdout"`
}

type bordersResult struct {
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	MaxY     int               `json:"max_y"`
	Points   []borders.Point   `json:"points"`
	Segments []borders.Segment `json:"segments"`
}

func bordersCommand() *cli.Command {
	var params bordersParams
	command := &cli.Command{
		Name:    "borders",
		Summary: "Convert SVG border paths into Lua point and line tables",
		Description: `Read the straight segments of every path in an SVG file, scale them
from the viewBox onto the raster size, and print them as two Lua
tables: POINTS, deduplicated in first-seen order, and LINES, pairs of
1-based indices into POINTS.

The raster size comes from the configuration's image section, so the
outlines line up with the map written by 'cartpack convert'.`,
		Arguments: []string{"svg"},
		Examples: []cli.Example{
			{
				Description: "Print the tables for the default 427x136 globe",
				Command:     "cartpack borders borders.svg",
			},
			{
				Description: "Write them to a Lua file for a smaller planet",
				Command:     "cartpack borders --diameter 64 -o borders.lua borders.svg",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("borders", &params)
		},
	}
	command.Run = func(args []string) error {
		cfg, err := params.load()
		if err != nil {
			return err
		}
		overrides := overrideParams{Diameter: params.Diameter, Width: params.Width, Height: params.Height}
		if err := overrides.apply(cfg); err != nil {
			return err
		}
		width, height := cfg.Image.Size()

		table, err := borders.ParseFile(args[0], width, height)
		if err != nil {
			return err
		}
		logger := params.Logger(command.ErrOut()).With("command", "borders")
		logger.Info("borders converted",
			"path", args[0],
			"points", len(table.Points),
			"segments", len(table.Segments),
			"max_y", table.MaxY(),
		)

		result := bordersResult{
			Width:    width,
			Height:   height,
			MaxY:     table.MaxY(),
			Points:   table.Points,
			Segments: table.Segments,
		}
		if params.Output == "" {
			if done, err := params.EmitJSON(command.Out(), result); done {
				return err
			}
			return table.WriteLua(command.Out())
		}

		var lua bytes.Buffer
		if err := table.WriteLua(&lua); err != nil {
			return err
		}
		if err := os.WriteFile(params.Output, lua.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", params.Output, err)
		}
		if done, err := params.EmitJSON(command.Out(), result); done {
			return err
		}
		_, err = fmt.Fprintf(command.Out(), "%s: %d points, %d lines\n", params.Output, len(table.Points), len(table.Segments))
		return err
	}
	return command
}
