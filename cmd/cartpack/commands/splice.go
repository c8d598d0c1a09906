// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/cli"
	"github.com/bureau-foundation/cartpack/lib/pipeline"
)

type spliceParams struct {
	cli.JSONOutput
	cli.LoggingParams
	configParams
	Codec      string `flag:"codec,c" desc:"symbol codec (see 'cartpack codecs --list')"`
	MaxChain   int    `flag:"max-chain" desc:"longest run for run-length codecs"`
	Alphabet   int    `flag:"alphabet" desc:"symbol alphabet for lzw and window"`
	WindowSize int    `flag:"window" desc:"window size for the window codec"`
	MaxMatch   int    `flag:"max-match" desc:"longest back-reference for the window codec"`
	Output     string `flag:"output,o" desc:"write the cartridge here instead of rewriting it in place"`
}

func spliceCommand() *cli.Command {
	var params spliceParams
	command := &cli.Command{
		Name:    "splice",
		Summary: "Encode a quantized raster and splice it into a cartridge",
		Description: `Encode a raster written by 'cartpack quantize' and splice it into a
cartridge.

The raster carries its own palette, which becomes the cartridge's
palette chunk; the configuration's palette is not used. Splicing the
same raster with different codecs is the way to compare their real
effect on a cartridge.`,
		Arguments: []string{"raster", "cartridge"},
		Examples: []cli.Example{
			{
				Description: "Splice with LZW into a copy of the cartridge",
				Command:     "cartpack splice --codec lzw -o out.tic earth.raster game.tic",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("splice", &params)
		},
	}
	command.Run = func(args []string) error {
		cfg, err := params.load()
		if err != nil {
			return err
		}
		overrides := overrideParams{
			Codec:      params.Codec,
			MaxChain:   params.MaxChain,
			Alphabet:   params.Alphabet,
			WindowSize: params.WindowSize,
			MaxMatch:   params.MaxMatch,
		}
		if err := overrides.apply(cfg); err != nil {
			return err
		}
		logger := params.Logger(command.ErrOut()).With("command", "splice")
		result, err := pipeline.Convert(context.Background(), logger, pipeline.Request{
			Raster:    args[0],
			Cartridge: args[1],
			Output:    params.Output,
			Config:    cfg,
		})
		if err != nil {
			return err
		}
		if done, err := params.EmitJSON(command.Out(), result); done {
			return err
		}
		return printResult(command.Out(), result)
	}
	return command
}
