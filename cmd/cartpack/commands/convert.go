// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/cli"
	"github.com/bureau-foundation/cartpack/lib/pipeline"
)

type convertParams struct {
	cli.JSONOutput
	cli.LoggingParams
	configParams
	overrideParams
	Output     string `flag:"output,o" desc:"write the cartridge here instead of rewriting it in place"`
	SaveRaster string `flag:"save-raster" desc:"also save the quantized raster for later splicing"`
}

func convertCommand() *cli.Command {
	var params convertParams
	command := &cli.Command{
		Name:    "convert",
		Summary: "Quantize an image, encode it and splice it into a cartridge",
		Description: `Convert an image into a cartridge payload in one step.

The image is resampled to the configured size (cylinder projection by
default), quantized to the palette without dithering, encoded with the
configured codec, and written over the cartridge's palette, tiles,
sprites and map chunks. Every other chunk is kept byte-for-byte. The
cartridge is replaced atomically; on failure it is left untouched.`,
		Arguments: []string{"image", "cartridge"},
		Examples: []cli.Example{
			{
				Description: "Convert with the defaults, rewriting game.tic in place",
				Command:     "cartpack convert earth.jpg game.tic",
			},
			{
				Description: "Use the window codec and write a new cartridge",
				Command:     "cartpack convert --codec window -o out.tic earth.jpg game.tic",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("convert", &params)
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
		logger := params.Logger(command.ErrOut()).With("command", "convert")
		result, err := pipeline.Convert(context.Background(), logger, pipeline.Request{
			Image:      args[0],
			Cartridge:  args[1],
			Output:     params.Output,
			SaveRaster: params.SaveRaster,
			Config:     cfg,
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

// printResult writes a human-readable conversion summary.
func printResult(w io.Writer, result *pipeline.Result) error {
	fmt.Fprintf(w, "%s: %dx%d raster, %d colors\n", result.Output, result.Width, result.Height, result.Colors)
	fmt.Fprintf(w, "%s: %s symbols -> %s (%.1f%%)\n",
		result.Codec,
		humanize.Comma(int64(result.Symbols)),
		humanize.IBytes(uint64(result.Encoded)),
		100*float64(result.Encoded)/float64(max(result.Symbols, 1)))

	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CHUNK\tTYPE\tBANK\tSIZE\n")
	for _, chunk := range result.Chunks {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", chunk.Index, chunk.Name, chunk.Bank, chunk.Size)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "blake3 %s\n", result.Digest)
	return err
}
