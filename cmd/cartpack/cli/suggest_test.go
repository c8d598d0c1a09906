// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"convert", "convrt", 1},
		{"inspect", "insepct", 2},
	}

	for _, test := range tests {
		t.Run(test.a+"->"+test.b, func(t *testing.T) {
			if got := levenshtein(test.a, test.b); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if reverse := levenshtein(test.b, test.a); reverse != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, not symmetric", test.b, test.a, reverse)
			}
		})
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("codec", "", "")
	flagSet.String("config", "", "")
	flagSet.BoolP("verbose", "v", false, "")
	flagSet.BoolP("x", "x", false, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--codek"}, "--codec"},
		{[]string{"--confg=a.yaml"}, "--config"},
		{[]string{"--verbos"}, "--verbose"},
		{[]string{"-v", "--codex"}, "--codec"},
		{[]string{"--completely-different"}, ""},
		{[]string{"positional", "--y"}, "-x"},
		{[]string{"--", "--codek"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "convert"}, {Name: "codecs"}, {Name: "splice"}}
	tests := []struct {
		input string
		want  string
	}{
		{"convret", "convert"},
		{"codec", "codecs"},
		{"splise", "splice"},
		{"xyzzyplugh", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}
