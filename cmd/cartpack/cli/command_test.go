// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "cartpack",
		Subcommands: []*Command{
			{Name: "version", Run: func(args []string) error { called = "version"; return nil }},
			{Name: "inspect", Run: func(args []string) error { called = "inspect"; return nil }},
		},
	}

	if err := root.Execute([]string{"inspect"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "inspect" {
		t.Errorf("dispatched to %q, want %q", called, "inspect")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var codec string
	var positional []string

	command := &Command{
		Name: "convert",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.StringVar(&codec, "codec", "escape-rle", "codec name")
			return flagSet
		},
		Run: func(args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute([]string{"--codec", "lzw", "earth.png", "game.tic"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if codec != "lzw" {
		t.Errorf("codec = %q, want %q", codec, "lzw")
	}
	if len(positional) != 2 || positional[0] != "earth.png" || positional[1] != "game.tic" {
		t.Errorf("args = %v, want [earth.png game.tic]", positional)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "convert",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.String("codec", "", "codec name")
			flagSet.String("output", "", "output path")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--codek", "lzw"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --codec?") {
		t.Errorf("error = %q, want suggestion for --codec", err)
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "cartpack",
		Subcommands: []*Command{
			{Name: "convert", Run: func(args []string) error { return nil }},
			{Name: "inspect", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"convrt"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "convert"?`) {
		t.Errorf("error = %q, want suggestion for convert", err)
	}

	err = root.Execute([]string{"zzzzzzzzzz"})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want unknown command without suggestion", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var stderr bytes.Buffer
	root := &Command{
		Name:        "cartpack",
		Stderr:      &stderr,
		Subcommands: []*Command{{Name: "convert", Summary: "convert an image", Run: func(args []string) error { return nil }}},
	}

	if err := root.Execute(nil); err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute(nil) = %v, want subcommand required", err)
	}
	if !strings.Contains(stderr.String(), "convert an image") {
		t.Errorf("help output lacks the subcommand listing:\n%s", stderr.String())
	}
}

func TestCommand_HelpGoesToRootStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	var sawOut bool
	child := &Command{
		Name:        "palette",
		Description: "Show the palette.",
		Examples:    []Example{{Description: "Default palette", Command: "cartpack palette"}},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("palette", pflag.ContinueOnError)
			flagSet.Bool("json", false, "output as JSON")
			return flagSet
		},
	}
	child.Run = func(args []string) error {
		sawOut = child.Out() == &stdout
		return nil
	}
	root := &Command{Name: "cartpack", Stdout: &stdout, Stderr: &stderr, Subcommands: []*Command{child}}

	if err := root.Execute([]string{"palette", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	help := stderr.String()
	for _, fragment := range []string{"Show the palette.", "cartpack palette [flags]", "--json", "# Default palette"} {
		if !strings.Contains(help, fragment) {
			t.Errorf("help output lacks %q:\n%s", fragment, help)
		}
	}

	if err := root.Execute([]string{"palette"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !sawOut {
		t.Error("subcommand Out() does not resolve to the root's Stdout")
	}
}

func TestCommand_Execute_ArgumentCount(t *testing.T) {
	var stderr bytes.Buffer
	var ran bool
	child := &Command{
		Name:      "splice",
		Arguments: []string{"raster", "cartridge"},
		Run:       func(args []string) error { ran = true; return nil },
	}
	root := &Command{Name: "cartpack", Stderr: &stderr, Subcommands: []*Command{child}}

	err := root.Execute([]string{"splice", "earth.raster"})
	if err == nil || !strings.Contains(err.Error(), "expected 2 arguments (raster, cartridge), got 1") {
		t.Errorf("Execute() = %v, want an argument count error", err)
	}
	if ran {
		t.Error("Run called with the wrong argument count")
	}

	if err := root.Execute([]string{"splice", "--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	if !strings.Contains(stderr.String(), "cartpack splice [flags] <raster> <cartridge>") {
		t.Errorf("help lacks the synthesized usage line:\n%s", stderr.String())
	}

	if err := root.Execute([]string{"splice", "a", "b"}); err != nil || !ran {
		t.Errorf("Execute(a, b) = %v, ran = %v", err, ran)
	}
}

func TestCommand_Main(t *testing.T) {
	tests := []struct {
		name     string
		run      func([]string) error
		wantCode int
		wantErr  string
	}{
		{"success", func([]string) error { return nil }, 0, ""},
		{"exit error is silent", func([]string) error { return &ExitError{Code: 1} }, 1, ""},
		{"wrapped exit error", func([]string) error { return fmt.Errorf("verify: %w", &ExitError{Code: 2}) }, 2, ""},
		{"plain error is printed", func([]string) error { return errors.New("cartridge truncated") }, 1, "error: cartridge truncated\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var stderr bytes.Buffer
			root := &Command{
				Name:        "cartpack",
				Stderr:      &stderr,
				Subcommands: []*Command{{Name: "inspect", Run: test.run}},
			}
			if code := root.Main([]string{"inspect"}); code != test.wantCode {
				t.Errorf("Main() = %d, want %d", code, test.wantCode)
			}
			if stderr.String() != test.wantErr {
				t.Errorf("stderr = %q, want %q", stderr.String(), test.wantErr)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 3}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 3 {
		t.Errorf("ExitError does not report code 3")
	}
	if err.Error() != "exit code 3" {
		t.Errorf("Error() = %q", err.Error())
	}
}
