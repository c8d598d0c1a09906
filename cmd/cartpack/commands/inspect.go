// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/cli"
	"github.com/bureau-foundation/cartpack/lib/binhash"
	"github.com/bureau-foundation/cartpack/lib/cartridge"
)

type inspectParams struct {
	cli.JSONOutput
	configParams
	Verify  bool   `flag:"verify" desc:"decode the payload with the configured codec"`
	Codec   string `flag:"codec,c" desc:"codec to verify with (default from config)"`
	Symbols int    `flag:"symbols" desc:"symbol count to expect (default width x height from config)"`
}

type inspectResult struct {
	Path   string                   `json:"path"`
	Size   int64                    `json:"size"`
	Digest string                   `json:"digest"`
	Chunks []cartridge.ChunkSummary `json:"chunks"`
	Verify *verifyResult            `json:"verify,omitempty"`
}

type verifyResult struct {
	Codec   string `json:"codec"`
	Encoded int    `json:"encoded"`
	Symbols int    `json:"symbols"`
	Error   string `json:"error,omitempty"`
}

func inspectCommand() *cli.Command {
	var params inspectParams
	command := &cli.Command{
		Name:    "inspect",
		Summary: "List a cartridge's chunks",
		Description: `List every chunk of a cartridge with its offset, type, bank and size,
and print the file's BLAKE3 digest.

With --verify, the tiles, sprites and map payloads are concatenated and
decoded with the configured codec. A payload that does not decode to
the expected symbol count exits with status 1.`,
		Arguments: []string{"cartridge"},
		Examples: []cli.Example{
			{
				Description: "List chunks",
				Command:     "cartpack inspect game.tic",
			},
			{
				Description: "Check an LZW payload decodes to a 427x136 raster",
				Command:     "cartpack inspect --verify --codec lzw --symbols 58072 game.tic",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
	}
	command.Run = func(args []string) error {
		if params.Symbols < 0 {
			return fmt.Errorf("--symbols must not be negative, got %d", params.Symbols)
		}
		result, err := inspect(args[0], &params)
		if err != nil {
			return err
		}
		if done, err := params.EmitJSON(command.Out(), result); done {
			if err != nil {
				return err
			}
		} else if err := printInspect(command.Out(), result); err != nil {
			return err
		}
		if result.Verify != nil && result.Verify.Error != "" {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}
	return command
}

// inspect reads the cartridge and, when asked, verifies its payload.
// A payload that fails to decode is reported in result.Verify, not as
// an error.
func inspect(path string, params *inspectParams) (*inspectResult, error) {
	chunks, err := cartridge.ReadFile(path)
	if err != nil {
		return nil, err
	}
	digest, err := binhash.HashFile(path)
	if err != nil {
		return nil, err
	}
	result := &inspectResult{
		Path:   path,
		Digest: digest.String(),
		Chunks: cartridge.Summarize(chunks),
	}
	for _, chunk := range chunks {
		result.Size += int64(chunk.Size())
	}
	if !params.Verify {
		return result, nil
	}

	cfg, err := params.load()
	if err != nil {
		return nil, err
	}
	if params.Codec != "" {
		if err := (&overrideParams{Codec: params.Codec}).apply(cfg); err != nil {
			return nil, err
		}
	}
	codec, err := cfg.NewCodec()
	if err != nil {
		return nil, err
	}
	count := params.Symbols
	if count == 0 {
		width, height := cfg.Image.Size()
		count = width * height
	}

	data := cartridge.Data(chunks)
	result.Verify = &verifyResult{Codec: codec.Name(), Encoded: len(data), Symbols: count}
	if _, err := codec.Decode(data, count); err != nil {
		result.Verify.Error = err.Error()
		return result, nil
	}
	return result, nil
}

func printInspect(w io.Writer, result *inspectResult) error {
	fmt.Fprintf(w, "%s: %s in %d chunks\n", result.Path, humanize.IBytes(uint64(result.Size)), len(result.Chunks))
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CHUNK\tOFFSET\tTYPE\tBANK\tSIZE\t\n")
	for _, chunk := range result.Chunks {
		owned := ""
		if chunk.Owned {
			owned = "*"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%s\n", chunk.Index, chunk.Offset, chunk.Name, chunk.Bank, chunk.Size, owned)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "blake3 %s\n", result.Digest)
	if result.Verify == nil {
		return nil
	}
	verify := result.Verify
	if verify.Error != "" {
		_, err := fmt.Fprintf(w, "verify: FAILED: %s\n", verify.Error)
		return err
	}
	_, err := fmt.Fprintf(w, "verify: %s decodes %s into %s symbols\n",
		verify.Codec, humanize.IBytes(uint64(verify.Encoded)), humanize.Comma(int64(verify.Symbols)))
	return err
}
