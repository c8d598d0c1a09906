// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/cli"
)

// Root builds the complete cartpack command tree writing to stdout and
// stderr.
func Root(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name: "cartpack",
		Description: `cartpack: pack images into TIC-80 style cartridges.

Quantizes an image to a palette, compresses the symbols with a symbol
codec, and splices palette and payload into an existing cartridge,
preserving every chunk it does not own byte-for-byte. Border outlines
for the map are converted from SVG with 'cartpack borders'.`,
		Stdout: stdout,
		Stderr: stderr,
		Subcommands: []*cli.Command{
			convertCommand(),
			quantizeCommand(),
			spliceCommand(),
			inspectCommand(),
			codecsCommand(),
			paletteCommand(),
			bordersCommand(),
			versionCommand(),
		},
	}
}
