// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the cartpack command tree. A node either
// dispatches to Subcommands or parses its flags and calls Run.
type Command struct {
	// Name is the word typed to select the command ("convert").
	Name string

	// Summary is the one-line description listed under the parent.
	Summary string

	// Description is the long help text.
	Description string

	// Arguments names the positional arguments Run requires, in order.
	// When set, Execute rejects any other argument count before Run is
	// called, and help shows them in the synthesized usage line.
	// Commands with optional arguments leave it nil and check args
	// themselves.
	Arguments []string

	// Usage overrides the synthesized usage line.
	Usage string

	// Examples are listed at the end of help.
	Examples []Example

	// Flags builds the command's flag set. It is called for every
	// parse and every help rendering, so it must return a fresh set
	// bound to the command's params struct.
	Flags func() *pflag.FlagSet

	// Subcommands are selected by the first argument.
	Subcommands []*Command

	// Run receives the arguments left after flag parsing.
	Run func(args []string) error

	// Stdout and Stderr are read from the root only. Nil selects the
	// process streams.
	Stdout io.Writer
	Stderr io.Writer

	parent *Command
}

// Example is one entry in the Examples section of help.
type Example struct {
	Description string
	Command     string
}

// Main executes args and converts the outcome to a process exit code.
// An *ExitError exits with its code silently, since the command has
// already reported the failure; any other error is printed to ErrOut.
func (c *Command) Main(args []string) int {
	err := c.Execute(args)
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}
	fmt.Fprintf(c.ErrOut(), "error: %v\n", err)
	return 1
}

// Execute dispatches args through the tree and runs the selected
// command.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.ErrOut())
		return nil
	}
	if len(c.Subcommands) > 0 {
		return c.dispatch(args)
	}

	remaining, err := c.parseFlags(args)
	if err != nil || remaining == nil {
		return err
	}
	if c.Run == nil {
		c.PrintHelp(c.ErrOut())
		return fmt.Errorf("%s has no action", c.fullName())
	}
	if c.Arguments != nil && len(remaining) != len(c.Arguments) {
		return c.usageError("expected %d arguments (%s), got %d",
			len(c.Arguments), strings.Join(c.Arguments, ", "), len(remaining))
	}
	return c.Run(remaining)
}

// dispatch selects the subcommand named by args[0].
func (c *Command) dispatch(args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		c.PrintHelp(c.ErrOut())
		if len(args) == 0 {
			return fmt.Errorf("subcommand required")
		}
		return fmt.Errorf("subcommand required (got flag %q)", args[0])
	}
	name := args[0]
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			sub.parent = c
			return sub.Execute(args[1:])
		}
	}
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		return c.usageError("unknown command %q (did you mean %q?)", name, suggestion)
	}
	return c.usageError("unknown command %q", name)
}

// parseFlags returns the positional arguments. A nil slice with a nil
// error means help was printed and nothing should run.
func (c *Command) parseFlags(args []string) ([]string, error) {
	if c.Flags == nil {
		return append([]string{}, args...), nil
	}
	flagSet := c.Flags()
	flagSet.SetOutput(io.Discard)
	err := flagSet.Parse(args)
	switch {
	case err == nil:
		return append([]string{}, flagSet.Args()...), nil
	case errors.Is(err, pflag.ErrHelp):
		c.PrintHelp(c.ErrOut())
		return nil, nil
	}

	message := err.Error()
	if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
		// The failed parse may have consumed state; suggest from a fresh set.
		if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
			return nil, c.usageError("%s (did you mean %s?)", message, suggestion)
		}
	}
	return nil, c.usageError("%s", message)
}

// usageError formats a user mistake with a pointer to help.
func (c *Command) usageError(format string, args ...any) error {
	return fmt.Errorf("%s\n\nRun '%s --help' for usage.", fmt.Sprintf(format, args...), c.fullName())
}

// Out returns the writer for command output.
func (c *Command) Out() io.Writer {
	if root := c.root(); root.Stdout != nil {
		return root.Stdout
	}
	return os.Stdout
}

// ErrOut returns the writer for help, logs and diagnostics.
func (c *Command) ErrOut() io.Writer {
	if root := c.root(); root.Stderr != nil {
		return root.Stderr
	}
	return os.Stderr
}

// usage returns the usage line: Usage when set, otherwise the command
// path followed by its flags placeholder and Arguments.
func (c *Command) usage() string {
	if c.Usage != "" {
		return c.Usage
	}
	if len(c.Subcommands) > 0 {
		return c.fullName() + " <command> [flags]"
	}
	parts := []string{c.fullName(), "[flags]"}
	for _, argument := range c.Arguments {
		parts = append(parts, "<"+argument+">")
	}
	return strings.Join(parts, " ")
}

// PrintHelp writes the command's help to w.
func (c *Command) PrintHelp(w io.Writer) {
	switch {
	case c.Description != "":
		fmt.Fprintf(w, "%s\n\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", c.usage())

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}
	if c.Flags != nil {
		if usages := c.Flags().FlagUsages(); usages != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", usages)
		}
	}
	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for i, example := range c.Examples {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
		}
	}
	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for details on a command.\n", c.fullName())
	}
}

// fullName is the command path from the root ("cartpack convert").
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func (c *Command) root() *Command {
	for c.parent != nil {
		c = c.parent
	}
	return c
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
