// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/cli"
	"github.com/bureau-foundation/cartpack/lib/config"
	"github.com/bureau-foundation/cartpack/lib/pipeline"
	"github.com/bureau-foundation/cartpack/lib/symbolcodec"
)

type codecsParams struct {
	cli.JSONOutput
	cli.LoggingParams
	configParams
	overrideParams
	List   bool `flag:"list" desc:"list the available codecs and exit"`
	Raster bool `flag:"raster" desc:"the argument is a raster file rather than an image"`
}

// codecReport is one codec's result on a raster.
type codecReport struct {
	Codec    string  `json:"codec"`
	Alphabet int     `json:"alphabet"`
	Encoded  int     `json:"encoded,omitempty"`
	Ratio    float64 `json:"ratio,omitempty"`
	Fits     bool    `json:"fits"`
	Lossless bool    `json:"lossless"`
	Error    string  `json:"error,omitempty"`
}

type codecsResult struct {
	Symbols  int           `json:"symbols"`
	Capacity int           `json:"capacity"`
	Reports  []codecReport `json:"codecs"`
}

func codecsCommand() *cli.Command {
	var params codecsParams
	command := &cli.Command{
		Name:    "codecs",
		Summary: "Compare every codec's output size on one raster",
		Description: `Encode one raster with every codec and report the encoded size, the
ratio to the symbol count, whether it fits the cartridge's data
capacity, and whether it decodes back to the same symbols.

The configured codec uses the configured parameters; the others use
their defaults. Nothing is written. Picking a codec stays your call.`,
		Usage: "cartpack codecs [flags] <image|raster>",
		Examples: []cli.Example{
			{
				Description: "List codecs",
				Command:     "cartpack codecs --list",
			},
			{
				Description: "Compare codecs on a saved raster",
				Command:     "cartpack codecs --raster earth.raster",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("codecs", &params)
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
		if params.List {
			if len(args) != 0 {
				return fmt.Errorf("--list takes no arguments")
			}
			return listCodecs(command.Out(), &params.JSONOutput)
		}
		if err := positional(args, "source"); err != nil {
			return err
		}

		request := pipeline.Request{Image: args[0]}
		if params.Raster {
			request = pipeline.Request{Raster: args[0]}
		}
		ctx := context.Background()
		logger := params.Logger(command.ErrOut()).With("command", "codecs")
		source, err := pipeline.Rasterize(ctx, logger, request, cfg)
		if err != nil {
			return err
		}
		reports, err := compareCodecs(ctx, cfg, source.Symbols)
		if err != nil {
			return err
		}
		result := codecsResult{
			Symbols:  len(source.Symbols),
			Capacity: cfg.Container.Total(),
			Reports:  reports,
		}
		if done, err := params.EmitJSON(command.Out(), result); done {
			return err
		}
		return printCodecs(command.Out(), result)
	}
	return command
}

func listCodecs(w io.Writer, output *cli.JSONOutput) error {
	var reports []codecReport
	for _, name := range symbolcodec.Names() {
		codec, err := symbolcodec.New(name, symbolcodec.Options{})
		if err != nil {
			return err
		}
		reports = append(reports, codecReport{Codec: name, Alphabet: codec.Alphabet()})
	}
	if done, err := output.EmitJSON(w, reports); done {
		return err
	}
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CODEC\tALPHABET\n")
	for _, report := range reports {
		fmt.Fprintf(tw, "%s\t%d\n", report.Codec, report.Alphabet)
	}
	return tw.Flush()
}

// compareCodecs encodes symbols with every registered codec in
// parallel. Reports are sorted by encoded size; codecs that failed sort
// last.
func compareCodecs(ctx context.Context, cfg *config.Config, symbols []byte) ([]codecReport, error) {
	names := symbolcodec.Names()
	reports := make([]codecReport, len(names))
	capacity := cfg.Container.Total()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			options := symbolcodec.Options{}
			if name == cfg.Codec.Name {
				options = cfg.CodecOptions()
			}
			codec, err := symbolcodec.New(name, options)
			if err != nil {
				return err
			}
			reports[i] = measure(codec, symbols, capacity)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(reports, func(a, b codecReport) int {
		if order := boolOrder(a.Error != "", b.Error != ""); order != 0 {
			return order
		}
		return cmp.Compare(a.Encoded, b.Encoded)
	})
	return reports, nil
}

// boolOrder sorts false before true.
func boolOrder(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// measure encodes and decodes symbols with codec.
func measure(codec symbolcodec.Codec, symbols []byte, capacity int) codecReport {
	report := codecReport{Codec: codec.Name(), Alphabet: codec.Alphabet()}
	encoded, err := codec.Encode(symbols)
	if err != nil {
		var overflow *symbolcodec.AlphabetOverflowError
		if errors.As(err, &overflow) {
			report.Error = fmt.Sprintf("symbol %d at %d exceeds alphabet %d", overflow.Symbol, overflow.Index, overflow.Alphabet)
		} else {
			report.Error = err.Error()
		}
		return report
	}
	report.Encoded = len(encoded)
	report.Ratio = float64(len(encoded)) / float64(max(len(symbols), 1))
	report.Fits = len(encoded) <= capacity
	decoded, err := codec.Decode(encoded, len(symbols))
	report.Lossless = err == nil && bytes.Equal(decoded, symbols)
	return report
}

func printCodecs(w io.Writer, result codecsResult) error {
	fmt.Fprintf(w, "%s symbols, %s data capacity\n",
		humanize.Comma(int64(result.Symbols)), humanize.IBytes(uint64(result.Capacity)))
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CODEC\tSIZE\tRATIO\tFITS\tLOSSLESS\n")
	for _, report := range result.Reports {
		if report.Error != "" {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\n", report.Codec, report.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%s\t%s\n",
			report.Codec, report.Encoded, report.Ratio, yesNo(report.Fits), yesNo(report.Lossless))
	}
	return tw.Flush()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
