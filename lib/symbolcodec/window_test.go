// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package symbolcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/bureau-foundation/cartpack/lib/testutil"
)

func TestWindowRun(t *testing.T) {
	codec, err := NewWindow(0, 0, 0)
	if err != nil {
		t.Fatalf("NewWindow failed: %v", err)
	}
	encoded, err := codec.Encode(testutil.Repeat(0, 20))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// Literal 0, then copy 16 from one back, then copy 3 from one back.
	want := []byte{0x00, 0x80, 0x0f, 0x80, 0x02}
	if !bytes.Equal(encoded, want) {
		t.Errorf("Encode = % x, want % x", encoded, want)
	}
}

func TestWindowReferenceLayout(t *testing.T) {
	codec, _ := NewWindow(0, 0, 0)
	pattern := []byte{1, 2, 3, 4, 5}
	input := append(append(append([]byte{}, pattern...), testutil.Repeat(9, 100)...), pattern...)
	encoded, err := codec.Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// The trailing pattern is a single reference 105 back, length 5.
	tail := binary.BigEndian.Uint16(encoded[len(encoded)-2:])
	if tail&0x8000 == 0 {
		t.Fatalf("last token % x is not a back-reference", encoded[len(encoded)-2:])
	}
	offset := int(tail&0x7fff) >> 4
	length := int(tail&0xf) + 1
	if offset+1 != 105 || length != 5 {
		t.Errorf("reference distance %d length %d, want 105 and 5", offset+1, length)
	}
}

func TestWindowFullAlphabet(t *testing.T) {
	codec, _ := NewWindow(128, 0, 0)
	input := testutil.RandomSymbols(21, 64, 128)
	encoded, err := codec.Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := codec.Decode(encoded, len(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, input) {
		t.Fatal("roundtrip mismatch with 128-symbol alphabet")
	}
}

func TestWindowRespectsWindowSize(t *testing.T) {
	codec, err := NewWindow(8, 4, 0)
	if err != nil {
		t.Fatalf("NewWindow failed: %v", err)
	}
	// Repeats only at distance 8, beyond the 4-symbol window.
	input := []byte{0, 1, 2, 3, 4, 5, 6, 7, 0, 1, 2, 3, 4, 5, 6, 7}
	encoded, err := codec.Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(encoded, input) {
		t.Errorf("Encode = % x, want all literals", encoded)
	}
}

func TestWindowParameters(t *testing.T) {
	input := testutil.RunSymbols(22, 30000, 16, 50)
	for _, parameters := range [][2]int{{1, 2}, {16, 4}, {300, 16}, {2048, 16}} {
		codec, err := NewWindow(16, parameters[0], parameters[1])
		if err != nil {
			t.Fatalf("NewWindow(%v) failed: %v", parameters, err)
		}
		encoded, err := codec.Encode(input)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		decoded, err := codec.Decode(encoded, len(input))
		if err != nil {
			t.Fatalf("window %v: Decode failed: %v", parameters, err)
		}
		if !bytes.Equal(decoded, input) {
			t.Fatalf("window %v: roundtrip mismatch", parameters)
		}
		if parameters[1] >= 4 && len(encoded) >= len(input) {
			t.Errorf("window %v: %d symbols encoded to %d bytes", parameters, len(input), len(encoded))
		}
	}
}

func TestWindowDecodeCorrupt(t *testing.T) {
	codec, _ := NewWindow(0, 0, 0)
	tests := []struct {
		name    string
		encoded []byte
		count   int
	}{
		{"truncated-reference", []byte{0, 0x80}, 2},
		{"reference-before-start", []byte{0, 0x80, 0x10}, 2},
		{"literal-outside-alphabet", []byte{0x40}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Decode(tt.encoded, tt.count); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Decode(% x) = %v, want ErrCorrupt", tt.encoded, err)
			}
		})
	}
}
