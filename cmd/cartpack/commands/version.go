// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/cli"
	"github.com/bureau-foundation/cartpack/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams
	command := &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
	}
	command.Run = func(args []string) error {
		if len(args) != 0 {
			return fmt.Errorf("unexpected argument: %s", args[0])
		}
		if done, err := params.EmitJSON(command.Out(), version.Current()); done {
			return err
		}
		_, err := fmt.Fprintln(command.Out(), version.Full())
		return err
	}
	return command
}
