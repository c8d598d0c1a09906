// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/bureau-foundation/cartpack/cmd/cartpack/commands"
)

func main() {
	os.Exit(commands.Root(os.Stdout, os.Stderr).Main(os.Args[1:]))
}
