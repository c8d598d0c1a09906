// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the cartpack command tree.
//
// Each subcommand lives in its own file as a constructor returning a
// *cli.Command. The work of each command is a plain function taking
// an io.Writer, so tests drive commands through [Root] with buffers
// for stdout and stderr.
package commands
