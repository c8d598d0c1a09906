// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		JSONOutput
		LoggingParams
		Codec    string   `flag:"codec,c" desc:"codec name" default:"escape-rle"`
		Diameter int      `flag:"diameter" desc:"planet diameter" default:"136"`
		Factor   float64  `flag:"factor" desc:"shade factor" default:"0.3"`
		Colors   []string `flag:"colors" desc:"palette"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if p.Codec != "escape-rle" || p.Diameter != 136 || p.Factor != 0.3 {
		t.Errorf("defaults not applied: %+v", p)
	}

	err := flagSet.Parse([]string{
		"-c", "lzw",
		"--diameter", "64",
		"--factor", "4",
		"--colors", "#000000,#ffffff",
		"--json",
		"-v",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Codec != "lzw" || p.Diameter != 64 || p.Factor != 4 {
		t.Errorf("parsed = %+v", p)
	}
	if len(p.Colors) != 2 || p.Colors[1] != "#ffffff" {
		t.Errorf("Colors = %v", p.Colors)
	}
	if !p.OutputJSON || !p.Verbose {
		t.Errorf("embedded flags not bound: json=%v verbose=%v", p.OutputJSON, p.Verbose)
	}
	if p.Untagged != "" {
		t.Errorf("Untagged = %q, want empty", p.Untagged)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	var notStruct int
	if err := BindFlags(&notStruct, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags should reject a non-struct")
	}

	type unsupported struct {
		Channel chan int `flag:"channel"`
	}
	if err := BindFlags(&unsupported{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags should reject an unsupported field type")
	}

	type badDefault struct {
		Count int `flag:"count" default:"many"`
	}
	if err := BindFlags(&badDefault{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags should reject an unparseable default")
	}
}

func TestEmitJSON(t *testing.T) {
	var output bytes.Buffer
	disabled := JSONOutput{}
	if done, err := disabled.EmitJSON(&output, "x"); done || err != nil || output.Len() != 0 {
		t.Errorf("EmitJSON without --json = (%v, %v), wrote %q", done, err, output.String())
	}

	enabled := JSONOutput{OutputJSON: true}
	var none []string
	if done, err := enabled.EmitJSON(&output, none); !done || err != nil {
		t.Fatalf("EmitJSON = (%v, %v)", done, err)
	}
	if strings.TrimSpace(output.String()) != "[]" {
		t.Errorf("nil slice emitted as %q, want []", output.String())
	}
}

func TestLoggingParams(t *testing.T) {
	var output bytes.Buffer
	quiet := LoggingParams{}
	quiet.Logger(&output).Debug("hidden")
	if output.Len() != 0 {
		t.Errorf("debug message logged without --verbose: %q", output.String())
	}

	verbose := LoggingParams{Verbose: true}
	verbose.Logger(&output).Debug("shown", "chunk", "tiles")
	if !strings.Contains(output.String(), `"msg":"shown"`) {
		t.Errorf("verbose logger output = %q, want a JSON debug record", output.String())
	}

	if !NewCommandLogger(&output, slog.LevelWarn).Enabled(context.Background(), slog.LevelWarn) {
		t.Error("logger should be enabled at its own level")
	}
}
