// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package symbolcodec

import (
	"encoding/binary"
	"fmt"
)

// LZW is a dictionary codec. The dictionary is seeded with one entry
// per alphabet symbol (entry i is the single symbol i) and grows by one
// entry per emitted code until it holds maxEntries. Every code,
// including the final flush, is written as 2 bytes big-endian, so the
// stream needs no terminator and its length is always even.
type LZW struct {
	alphabet   int
	maxEntries int
}

const (
	// DefaultLZWAlphabet is the seed size used when none is configured.
	DefaultLZWAlphabet = 32

	// MaxLZWEntries is the largest dictionary 16-bit codes can address.
	MaxLZWEntries = 1 << 16

	lzwCodeSize = 2
)

// NewLZW returns an LZW codec. alphabet 0 selects DefaultLZWAlphabet
// and must otherwise be in [1, 256]; maxEntries 0 selects
// MaxLZWEntries and must otherwise be in [alphabet, MaxLZWEntries].
func NewLZW(alphabet, maxEntries int) (*LZW, error) {
	alphabet = valueOrDefault(alphabet, DefaultLZWAlphabet)
	maxEntries = valueOrDefault(maxEntries, MaxLZWEntries)
	if alphabet < 1 || alphabet > 256 {
		return nil, fmt.Errorf("alphabet %d outside [1, 256]", alphabet)
	}
	if maxEntries < alphabet || maxEntries > MaxLZWEntries {
		return nil, fmt.Errorf("max entries %d outside [%d, %d]", maxEntries, alphabet, MaxLZWEntries)
	}
	return &LZW{alphabet: alphabet, maxEntries: maxEntries}, nil
}

func (c *LZW) Name() string  { return NameLZW }
func (c *LZW) Alphabet() int { return c.alphabet }

// MaxEntries returns the dictionary cap.
func (c *LZW) MaxEntries() int { return c.maxEntries }

// lzwKey identifies the dictionary entry formed by extending the
// entry prefix by one symbol.
func lzwKey(prefix int, symbol byte) uint32 {
	return uint32(prefix)<<8 | uint32(symbol)
}

// Encode performs greedy longest-match: the current chain is extended
// while the extension is already in the dictionary; otherwise the
// chain's code is emitted, the extension is added (capacity
// permitting), and a new chain starts at the symbol just read.
func (c *LZW) Encode(symbols []byte) ([]byte, error) {
	if err := checkAlphabet(c.Name(), c.Alphabet(), symbols); err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return []byte{}, nil
	}

	dictionary := make(map[uint32]int)
	next := c.alphabet
	output := make([]byte, 0, len(symbols))

	code := int(symbols[0])
	for _, symbol := range symbols[1:] {
		key := lzwKey(code, symbol)
		if extended, ok := dictionary[key]; ok {
			code = extended
			continue
		}
		output = binary.BigEndian.AppendUint16(output, uint16(code))
		if next < c.maxEntries {
			dictionary[key] = next
			next++
		}
		code = int(symbol)
	}
	output = binary.BigEndian.AppendUint16(output, uint16(code))
	return output, nil
}

// Decode rebuilds the dictionary while reading 2-byte codes. It fails
// with ErrCorrupt unless the stream holds exactly count symbols.
func (c *LZW) Decode(encoded []byte, count int) ([]byte, error) {
	output, err := outputBuffer(c.Name(), count)
	if err != nil {
		return nil, err
	}
	if len(encoded)%lzwCodeSize != 0 {
		return nil, corruptf(c.Name(), "odd stream length %d", len(encoded))
	}
	if len(encoded) == 0 {
		return checkCount(c.Name(), output, count)
	}

	// entries[i] holds the symbols of dictionary entry i.
	entries := make([][]byte, c.alphabet, min(c.maxEntries, c.alphabet+len(encoded)/lzwCodeSize))
	for i := range entries {
		entries[i] = []byte{byte(i)}
	}

	var previous []byte
	for offset := 0; offset < len(encoded); offset += lzwCodeSize {
		code := int(binary.BigEndian.Uint16(encoded[offset:]))

		var current []byte
		switch {
		case code < len(entries):
			current = entries[code]
		case code == len(entries) && previous != nil && len(entries) < c.maxEntries:
			// The encoder emitted the entry it was about to add:
			// previous followed by its own first symbol.
			current = append(append(make([]byte, 0, len(previous)+1), previous...), previous[0])
		default:
			return nil, corruptf(c.Name(), "code %d at offset %d not in dictionary of %d entries",
				code, offset, len(entries))
		}

		if previous != nil && len(entries) < c.maxEntries {
			entry := make([]byte, 0, len(previous)+1)
			entry = append(append(entry, previous...), current[0])
			entries = append(entries, entry)
		}

		output = append(output, current...)
		if len(output) > count {
			break
		}
		previous = current
	}
	return checkCount(c.Name(), output, count)
}
