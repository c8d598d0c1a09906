// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package symbolcodec

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/bureau-foundation/cartpack/lib/testutil"
)

// roundTripInputs are valid for every registered codec (all symbols
// are below 32).
func roundTripInputs() map[string][]byte {
	return map[string][]byte{
		"empty":      {},
		"single":     {7},
		"pair":       {3, 3},
		"alternate":  {0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
		"long-run":   testutil.Repeat(5, 1000),
		"runs":       testutil.RunSymbols(1, 5000, 32, 40),
		"short-runs": testutil.RunSymbols(2, 3000, 4, 3),
		"noise":      testutil.RandomSymbols(3, 4000, 32),
		"lzw-sample": {0, 0, 0, 1, 1, 0, 0, 0, 1, 1},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, name := range Names() {
		codec, err := New(name, Options{})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		for inputName, input := range roundTripInputs() {
			t.Run(name+"/"+inputName, func(t *testing.T) {
				encoded, err := codec.Encode(input)
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				decoded, err := codec.Decode(encoded, len(input))
				if err != nil {
					t.Fatalf("Decode failed: %v", err)
				}
				if !bytes.Equal(decoded, input) {
					t.Fatalf("roundtrip mismatch: got %d symbols, want %d", len(decoded), len(input))
				}
			})
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	input := testutil.RunSymbols(4, 2000, 32, 10)
	for _, name := range Names() {
		codec, err := New(name, Options{})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		first, err := codec.Encode(input)
		if err != nil {
			t.Fatalf("%s: Encode failed: %v", name, err)
		}
		second, err := codec.Encode(input)
		if err != nil {
			t.Fatalf("%s: Encode failed: %v", name, err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("%s: two encodings of the same input differ", name)
		}
	}
}

func TestAlphabetOverflow(t *testing.T) {
	tests := []struct {
		name    string
		options Options
		input   []byte
		index   int
		bound   int
	}{
		{NameEscapeRLE, Options{}, []byte{1, 2, 32}, 2, 32},
		{NamePackedRLE, Options{}, []byte{40}, 0, 32},
		{NameLZW, Options{}, []byte{0, 0, 31, 32}, 3, 32},
		{NameLZW, Options{Alphabet: 4}, []byte{0, 4}, 1, 4},
		{NameWindow, Options{}, []byte{0, 0, 0, 99}, 3, 32},
		{NameWindow, Options{Alphabet: 128}, []byte{128}, 0, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := New(tt.name, tt.options)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			_, err = codec.Encode(tt.input)
			var overflow *AlphabetOverflowError
			if !errors.As(err, &overflow) {
				t.Fatalf("expected *AlphabetOverflowError, got %T: %v", err, err)
			}
			if overflow.Index != tt.index || overflow.Alphabet != tt.bound || overflow.Codec != tt.name {
				t.Errorf("overflow = %+v, want index %d alphabet %d codec %s", overflow, tt.index, tt.bound, tt.name)
			}
		})
	}
}

func TestDecodeCountMismatch(t *testing.T) {
	input := testutil.RunSymbols(5, 500, 32, 8)
	for _, name := range Names() {
		codec, err := New(name, Options{})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		encoded, err := codec.Encode(input)
		if err != nil {
			t.Fatalf("%s: Encode failed: %v", name, err)
		}
		if _, err := codec.Decode(encoded, len(input)+1); !errors.Is(err, ErrCorrupt) {
			t.Errorf("%s: Decode with wrong count = %v, want ErrCorrupt", name, err)
		}
	}
}

func TestDecodeRejectsNegativeCount(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			codec, err := New(name, Options{})
			if err != nil {
				t.Fatalf("New(%q) failed: %v", name, err)
			}
			for _, encoded := range [][]byte{nil, {1}, {1, 2, 3, 4}} {
				if _, err := codec.Decode(encoded, -1); !errors.Is(err, ErrCorrupt) {
					t.Errorf("Decode(%v, -1) = %v, want ErrCorrupt", encoded, err)
				}
			}
		})
	}
}

func TestDecodeHugeCountFailsOnStream(t *testing.T) {
	for _, name := range Names() {
		codec, err := New(name, Options{})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		encoded, err := codec.Encode([]byte{1, 1, 1, 2})
		if err != nil {
			t.Fatalf("%s: Encode failed: %v", name, err)
		}
		if _, err := codec.Decode(encoded, 1<<30); !errors.Is(err, ErrCorrupt) {
			t.Errorf("%s: Decode with count 1<<30 = %v, want ErrCorrupt", name, err)
		}
	}
}

func TestNames(t *testing.T) {
	want := []string{"bitplane", "escape-rle", "lz4", "lzw", "none", "packed-rle", "window", "zstd"}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	for _, name := range want {
		codec, err := New(name, Options{})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if codec.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, codec.Name())
		}
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name    string
		options Options
	}{
		{"gzip", Options{}},
		{NameEscapeRLE, Options{MaxChain: 1}},
		{NameEscapeRLE, Options{MaxChain: 224}},
		{NamePackedRLE, Options{MaxChain: 5}},
		{NameLZW, Options{Alphabet: 300}},
		{NameLZW, Options{Alphabet: 32, MaxEntries: 16}},
		{NameLZW, Options{MaxEntries: MaxLZWEntries + 1}},
		{NameWindow, Options{Alphabet: 129}},
		{NameWindow, Options{WindowSize: 4096}},
		{NameWindow, Options{MaxMatch: 1}},
		{NameWindow, Options{MaxMatch: 17}},
	}
	for _, tt := range tests {
		if _, err := New(tt.name, tt.options); err == nil {
			t.Errorf("New(%q, %+v) should fail", tt.name, tt.options)
		}
	}
}
