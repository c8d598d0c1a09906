// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package symbolcodec

import (
	"errors"
	"fmt"
	"sort"
)

// Codec encodes and decodes a symbol stream.
type Codec interface {
	// Name is the registry name of the algorithm (see [New]).
	Name() string

	// Alphabet is the exclusive upper bound on symbol values the
	// codec accepts.
	Alphabet() int

	// Encode returns the encoded form of symbols. It fails with
	// *AlphabetOverflowError if any symbol is >= Alphabet().
	Encode(symbols []byte) ([]byte, error)

	// Decode reverses Encode. count is the number of symbols the
	// stream is expected to hold; a stream that decodes to a
	// different count is reported as corrupt.
	Decode(encoded []byte, count int) ([]byte, error)
}

// ErrCorrupt is wrapped by every Decode failure caused by malformed
// input.
var ErrCorrupt = errors.New("corrupt symbol stream")

// AlphabetOverflowError reports a symbol outside a codec's alphabet.
// The caller must re-quantize to fewer colors or pick a codec with a
// larger alphabet.
type AlphabetOverflowError struct {
	Codec    string
	Index    int
	Symbol   int
	Alphabet int
}

func (e *AlphabetOverflowError) Error() string {
	return fmt.Sprintf("%s: symbol %d at index %d exceeds alphabet size %d",
		e.Codec, e.Symbol, e.Index, e.Alphabet)
}

// checkAlphabet returns an AlphabetOverflowError for the first symbol
// that is >= alphabet.
func checkAlphabet(name string, alphabet int, symbols []byte) error {
	if alphabet >= 256 {
		return nil
	}
	for i, symbol := range symbols {
		if int(symbol) >= alphabet {
			return &AlphabetOverflowError{Codec: name, Index: i, Symbol: int(symbol), Alphabet: alphabet}
		}
	}
	return nil
}

// corruptf formats a decode failure wrapping ErrCorrupt.
func corruptf(name, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", name, ErrCorrupt, fmt.Sprintf(format, args...))
}

// checkCount verifies a decoded stream has the expected length.
func checkCount(name string, decoded []byte, count int) ([]byte, error) {
	if len(decoded) != count {
		return nil, corruptf(name, "decoded %d symbols, expected %d", len(decoded), count)
	}
	return decoded, nil
}

// maxReserve bounds the buffer a decoder reserves up front, so an
// oversized count fails on the stream instead of on allocation.
const maxReserve = 1 << 20

// outputBuffer returns an empty buffer for a decoder expecting count
// symbols. A negative count is reported as corrupt.
func outputBuffer(name string, count int) ([]byte, error) {
	if count < 0 {
		return nil, corruptf(name, "negative symbol count %d", count)
	}
	return make([]byte, 0, min(count, maxReserve)), nil
}

// Options configures codecs built through New. Zero fields take each
// codec's default; fields that do not apply to the named codec are
// ignored.
type Options struct {
	// Alphabet is the symbol bound for LZW (seed entries) and Window.
	Alphabet int

	// MaxChain is the longest run a single RLE token may describe.
	MaxChain int

	// WindowSize is how many prior symbols Window may reference.
	WindowSize int

	// MaxMatch is the longest back-reference Window emits.
	MaxMatch int

	// MaxEntries caps the LZW dictionary.
	MaxEntries int
}

// Registry names.
const (
	NameEscapeRLE = "escape-rle"
	NamePackedRLE = "packed-rle"
	NameBitplane  = "bitplane"
	NameLZW       = "lzw"
	NameWindow    = "window"
	NameNone      = "none"
	NameZstd      = "zstd"
	NameLZ4       = "lz4"
)

var constructors = map[string]func(Options) (Codec, error){
	NameEscapeRLE: func(o Options) (Codec, error) { return NewEscapeRLE(o.MaxChain) },
	NamePackedRLE: func(o Options) (Codec, error) { return NewPackedRLE(o.MaxChain) },
	NameBitplane:  func(Options) (Codec, error) { return NewBitplane(), nil },
	NameLZW:       func(o Options) (Codec, error) { return NewLZW(o.Alphabet, o.MaxEntries) },
	NameWindow:    func(o Options) (Codec, error) { return NewWindow(o.Alphabet, o.WindowSize, o.MaxMatch) },
	NameNone:      func(Options) (Codec, error) { return General(NameNone) },
	NameZstd:      func(Options) (Codec, error) { return General(NameZstd) },
	NameLZ4:       func(Options) (Codec, error) { return General(NameLZ4) },
}

// Names returns every registered codec name in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs the codec registered under name.
func New(name string, options Options) (Codec, error) {
	constructor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (known: %v)", name, Names())
	}
	codec, err := constructor(options)
	if err != nil {
		return nil, fmt.Errorf("configuring %s: %w", name, err)
	}
	return codec, nil
}

// valueOrDefault returns value, or fallback when value is zero.
func valueOrDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
