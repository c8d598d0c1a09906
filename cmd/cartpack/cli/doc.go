// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for cartpack.
//
// The central type is [Command]: a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory and a Run
// function. Commands are assembled into a tree in cmd/cartpack/commands
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing and structured help output with examples.
//
// Unknown subcommands and flags get a "did you mean" suggestion based
// on Levenshtein distance (threshold: distance <= 3), in suggest.go.
//
// [FlagsFromParams] binds flags to tagged struct fields, and the
// embeddable [JSONOutput] adds --json with [JSONOutput.EmitJSON].
// [NewCommandLogger] builds the slog logger every command uses.
//
// Output goes to the root command's Stdout and Stderr, which default
// to os.Stdout and os.Stderr; tests point them at buffers.
package cli
