// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package symbolcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	"github.com/bureau-foundation/cartpack/lib/testutil"
)

func decodeCodes(t *testing.T, encoded []byte) []int {
	t.Helper()
	if len(encoded)%2 != 0 {
		t.Fatalf("encoded length %d is odd", len(encoded))
	}
	codes := make([]int, 0, len(encoded)/2)
	for i := 0; i < len(encoded); i += 2 {
		codes = append(codes, int(binary.BigEndian.Uint16(encoded[i:])))
	}
	return codes
}

func TestLZWSample(t *testing.T) {
	input := []byte{0, 0, 0, 1, 1, 0, 0, 0, 1, 1}
	tests := []struct {
		alphabet int
		want     []int
	}{
		{4, []int{0, 4, 1, 1, 4, 0, 6}},
		{32, []int{0, 32, 1, 1, 32, 0, 34}},
	}
	for _, tt := range tests {
		codec, err := NewLZW(tt.alphabet, 0)
		if err != nil {
			t.Fatalf("NewLZW(%d) failed: %v", tt.alphabet, err)
		}
		encoded, err := codec.Encode(input)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if codes := decodeCodes(t, encoded); !slices.Equal(codes, tt.want) {
			t.Errorf("alphabet %d: codes = %v, want %v", tt.alphabet, codes, tt.want)
		}
		decoded, err := codec.Decode(encoded, len(input))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !bytes.Equal(decoded, input) {
			t.Errorf("Decode = %v, want %v", decoded, input)
		}
	}
}

func TestLZWSampleBytes(t *testing.T) {
	codec, err := NewLZW(4, 0)
	if err != nil {
		t.Fatalf("NewLZW failed: %v", err)
	}
	encoded, err := codec.Encode([]byte{0, 0, 0, 1, 1, 0, 0, 0, 1, 1})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{0, 0, 0, 4, 0, 1, 0, 1, 0, 4, 0, 0, 0, 6}
	if !bytes.Equal(encoded, want) {
		t.Errorf("Encode = % x, want % x", encoded, want)
	}
}

func TestLZWFlushIsTwoBytes(t *testing.T) {
	codec, _ := NewLZW(0, 0)
	for _, input := range [][]byte{{5}, {5, 5}, {1, 2, 3}} {
		encoded, err := codec.Encode(input)
		if err != nil {
			t.Fatalf("Encode(%v) failed: %v", input, err)
		}
		if len(encoded)%2 != 0 {
			t.Errorf("Encode(%v) = % x has odd length", input, encoded)
		}
	}
	encoded, _ := codec.Encode(nil)
	if len(encoded) != 0 {
		t.Errorf("Encode(empty) = % x, want no bytes", encoded)
	}
}

func TestLZWCodeEqualsNextEntry(t *testing.T) {
	codec, _ := NewLZW(4, 0)
	input := []byte{0, 0, 0, 0}
	encoded, err := codec.Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// The second code refers to the entry being defined by that very
	// step.
	if codes := decodeCodes(t, encoded); !slices.Equal(codes, []int{0, 4, 0}) {
		t.Fatalf("codes = %v, want [0 4 0]", codes)
	}
	decoded, err := codec.Decode(encoded, len(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, input) {
		t.Errorf("Decode = %v, want %v", decoded, input)
	}
}

func TestLZWDictionaryCap(t *testing.T) {
	input := testutil.RunSymbols(11, 20000, 8, 12)
	for _, maxEntries := range []int{8, 9, 64, 4096} {
		codec, err := NewLZW(8, maxEntries)
		if err != nil {
			t.Fatalf("NewLZW(8, %d) failed: %v", maxEntries, err)
		}
		encoded, err := codec.Encode(input)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		for _, code := range decodeCodes(t, encoded) {
			if code >= maxEntries {
				t.Fatalf("maxEntries %d: emitted code %d", maxEntries, code)
			}
		}
		decoded, err := codec.Decode(encoded, len(input))
		if err != nil {
			t.Fatalf("maxEntries %d: Decode failed: %v", maxEntries, err)
		}
		if !bytes.Equal(decoded, input) {
			t.Fatalf("maxEntries %d: roundtrip mismatch", maxEntries)
		}
	}
}

func TestLZWLargeInputFillsDictionary(t *testing.T) {
	codec, _ := NewLZW(0, 0)
	input := testutil.RandomSymbols(12, 200000, 32)
	encoded, err := codec.Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := codec.Decode(encoded, len(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, input) {
		t.Fatal("roundtrip mismatch after dictionary filled")
	}
}

func TestLZWDecodeCorrupt(t *testing.T) {
	codec, _ := NewLZW(4, 0)
	tests := []struct {
		name    string
		encoded []byte
		count   int
	}{
		{"odd-length", []byte{0, 1, 0}, 2},
		{"unknown-first-code", []byte{0, 4}, 1},
		{"code-beyond-next", []byte{0, 0, 0, 9}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Decode(tt.encoded, tt.count); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Decode(% x) = %v, want ErrCorrupt", tt.encoded, err)
			}
		})
	}
}
