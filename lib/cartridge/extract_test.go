// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartridge

import (
	"bytes"
	"testing"

	"github.com/bureau-foundation/cartpack/lib/palette"
)

func TestDataReassemblesBuild(t *testing.T) {
	data := make([]byte, 20000)
	for i := range data {
		data[i] = byte(i * 7)
	}
	passthrough := []Chunk{{Type: ChunkCode, Payload: []byte("-- code")}}
	chunks, err := Build(passthrough, defaultTable(t), data, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := Data(chunks); !bytes.Equal(got, data) {
		t.Errorf("Data returned %d bytes, want the %d bytes passed to Build", len(got), len(data))
	}
}

func TestDataStopsAtMissingType(t *testing.T) {
	chunks := []Chunk{
		{Type: ChunkTiles, Payload: []byte{1, 2}},
		{Type: ChunkMap, Payload: []byte{3}},
	}
	if got := Data(chunks); !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("Data = %v, want [1 2]", got)
	}
	if got := Data(nil); len(got) != 0 {
		t.Errorf("Data(nil) = %v, want empty", got)
	}
}

func TestPaletteColors(t *testing.T) {
	chunks, err := Build(nil, defaultTable(t), []byte{0}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	colors, err := PaletteColors(chunks)
	if err != nil {
		t.Fatalf("PaletteColors: %v", err)
	}
	// Bank 1 holds default colors 16 through 31; entry 31 is padding.
	want := palette.Default()
	for i, c := range colors {
		index := palette.BankColors + i
		var expected palette.Color
		if index < len(want) {
			expected = want[index]
		}
		if c != expected {
			t.Errorf("color %d = %s, want %s", i, c.Hex(), expected.Hex())
		}
	}

	if _, err := PaletteColors([]Chunk{{Type: ChunkCode}}); err == nil {
		t.Error("expected an error for a cartridge without a palette chunk")
	}
	if _, err := PaletteColors([]Chunk{{Type: ChunkPalette, Payload: make([]byte, 47)}}); err == nil {
		t.Error("expected an error for a short palette chunk")
	}
}
