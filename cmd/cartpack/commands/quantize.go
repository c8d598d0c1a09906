// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/cli"
	"github.com/bureau-foundation/cartpack/lib/binhash"
	"github.com/bureau-foundation/cartpack/lib/pipeline"
	"github.com/bureau-foundation/cartpack/lib/raster"
)

type quantizeParams struct {
	cli.JSONOutput
	cli.LoggingParams
	configParams
	overrideParams
}

type quantizeResult struct {
	Raster string `json:"raster"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Colors int    `json:"colors"`
	Used   int    `json:"used"`
	Digest string `json:"digest"`
}

func quantizeCommand() *cli.Command {
	var params quantizeParams
	command := &cli.Command{
		Name:    "quantize",
		Summary: "Resample and quantize an image to a raster file",
		Description: `Resample an image to the configured size and map each pixel to its
nearest palette color, without dithering.

The raster is saved as CBOR along with its palette, ready for
'cartpack splice' or 'cartpack codecs'. Use --preview to check the
result visually.`,
		Arguments: []string{"image", "raster"},
		Examples: []cli.Example{
			{
				Description: "Quantize a map and save a preview next to it",
				Command:     "cartpack quantize --preview earth-preview.png earth.jpg earth.raster",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("quantize", &params)
		},
	}
	command.Run = func(args []string) error {
		cfg, err := params.load()
		if err != nil {
			return err
		}
		if err := params.apply(cfg); err != nil {
			return err
		}
		logger := params.Logger(command.ErrOut()).With("command", "quantize")

		quantized, err := pipeline.Rasterize(context.Background(), logger, pipeline.Request{Image: args[0]}, cfg)
		if err != nil {
			return err
		}
		if err := raster.WriteFile(args[1], quantized); err != nil {
			return err
		}
		if cfg.Output.Preview != "" {
			if err := raster.SavePreview(cfg.Output.Preview, quantized); err != nil {
				return err
			}
		}
		digest, err := binhash.HashFile(args[1])
		if err != nil {
			return err
		}

		result := quantizeResult{
			Raster: args[1],
			Width:  quantized.Width,
			Height: quantized.Height,
			Colors: len(quantized.Palette),
			Used:   usedColors(quantized.Symbols),
			Digest: digest.String(),
		}
		if done, err := params.EmitJSON(command.Out(), result); done {
			return err
		}
		_, err = fmt.Fprintf(command.Out(), "%s: %dx%d, %d of %d colors used\nblake3 %s\n",
			result.Raster, result.Width, result.Height, result.Used, result.Colors, result.Digest)
		return err
	}
	return command
}

// usedColors counts the distinct symbols in symbols.
func usedColors(symbols []byte) int {
	var seen [256]bool
	count := 0
	for _, symbol := range symbols {
		if !seen[symbol] {
			seen[symbol] = true
			count++
		}
	}
	return count
}
