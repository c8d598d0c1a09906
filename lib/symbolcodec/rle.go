// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package symbolcodec

import "fmt"

// runLength returns the length of the run of symbols[start] beginning
// at start, capped at limit.
func runLength(symbols []byte, start, limit int) int {
	length := 1
	for start+length < len(symbols) && length < limit && symbols[start+length] == symbols[start] {
		length++
	}
	return length
}

// EscapeRLE is run-length coding with an in-band escape. Symbols below
// escapeBase are literals; a byte at or above escapeBase announces a
// run of (byte - escapeBase) copies of the symbol in the following
// byte. Runs and literals share one stream with no side channel.
type EscapeRLE struct {
	maxChain int
}

const (
	escapeBase = 32

	// MaxEscapeChain is the longest run one escape pair can carry:
	// the length byte must stay within 255.
	MaxEscapeChain = 255 - escapeBase

	// DefaultEscapeChain is the run cap used when none is configured.
	DefaultEscapeChain = MaxEscapeChain
)

// NewEscapeRLE returns an escape-coded RLE codec. maxChain 0 selects
// DefaultEscapeChain; otherwise it must be in [2, MaxEscapeChain].
func NewEscapeRLE(maxChain int) (*EscapeRLE, error) {
	maxChain = valueOrDefault(maxChain, DefaultEscapeChain)
	if maxChain < 2 || maxChain > MaxEscapeChain {
		return nil, fmt.Errorf("max chain %d outside [2, %d]", maxChain, MaxEscapeChain)
	}
	return &EscapeRLE{maxChain: maxChain}, nil
}

func (c *EscapeRLE) Name() string  { return NameEscapeRLE }
func (c *EscapeRLE) Alphabet() int { return escapeBase }

// MaxChain returns the configured run cap.
func (c *EscapeRLE) MaxChain() int { return c.maxChain }

// Encode emits a literal for each run of one and an escape pair for
// each longer run. Runs longer than the cap are split; a trailing
// remainder of one is emitted as a literal.
func (c *EscapeRLE) Encode(symbols []byte) ([]byte, error) {
	if err := checkAlphabet(c.Name(), c.Alphabet(), symbols); err != nil {
		return nil, err
	}
	output := make([]byte, 0, len(symbols))
	for i := 0; i < len(symbols); {
		length := runLength(symbols, i, c.maxChain)
		if length == 1 {
			output = append(output, symbols[i])
		} else {
			output = append(output, byte(length+escapeBase), symbols[i])
		}
		i += length
	}
	return output, nil
}

// Decode expands literals and escape pairs. It fails with ErrCorrupt
// unless the stream holds exactly count symbols.
func (c *EscapeRLE) Decode(encoded []byte, count int) ([]byte, error) {
	output, err := outputBuffer(c.Name(), count)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(encoded); i++ {
		value := encoded[i]
		if value < escapeBase {
			output = append(output, value)
			continue
		}
		length := int(value) - escapeBase
		if length < 2 {
			return nil, corruptf(c.Name(), "escape byte %d at offset %d encodes run of %d", value, i, length)
		}
		if i+1 >= len(encoded) {
			return nil, corruptf(c.Name(), "escape at offset %d has no symbol", i)
		}
		i++
		symbol := encoded[i]
		if symbol >= escapeBase {
			return nil, corruptf(c.Name(), "run symbol %d at offset %d outside alphabet", symbol, i)
		}
		for range length {
			output = append(output, symbol)
		}
		if len(output) > count {
			break
		}
	}
	return checkCount(c.Name(), output, count)
}

// PackedRLE stores each run in one byte: the top three bits hold
// length-1 and the low five bits hold the symbol.
type PackedRLE struct {
	maxChain int
}

const (
	packedSymbolBits = 5
	packedAlphabet   = 1 << packedSymbolBits

	// MaxPackedChain is the longest run a packed byte may describe.
	MaxPackedChain = 4
)

// NewPackedRLE returns a packed-run RLE codec. maxChain 0 selects
// MaxPackedChain; otherwise it must be in [1, MaxPackedChain].
func NewPackedRLE(maxChain int) (*PackedRLE, error) {
	maxChain = valueOrDefault(maxChain, MaxPackedChain)
	if maxChain < 1 || maxChain > MaxPackedChain {
		return nil, fmt.Errorf("max chain %d outside [1, %d]", maxChain, MaxPackedChain)
	}
	return &PackedRLE{maxChain: maxChain}, nil
}

func (c *PackedRLE) Name() string  { return NamePackedRLE }
func (c *PackedRLE) Alphabet() int { return packedAlphabet }

// MaxChain returns the configured run cap.
func (c *PackedRLE) MaxChain() int { return c.maxChain }

// Encode emits one byte per run of at most MaxChain symbols.
func (c *PackedRLE) Encode(symbols []byte) ([]byte, error) {
	if err := checkAlphabet(c.Name(), c.Alphabet(), symbols); err != nil {
		return nil, err
	}
	output := make([]byte, 0, len(symbols))
	for i := 0; i < len(symbols); {
		length := runLength(symbols, i, c.maxChain)
		output = append(output, packRun(length, symbols[i]))
		i += length
	}
	return output, nil
}

// packRun computes ((length-1) << 5) | symbol in unsigned arithmetic.
func packRun(length int, symbol byte) byte {
	return byte(uint(length-1)<<packedSymbolBits) | symbol
}

// Decode expands each packed byte into its run. It fails with
// ErrCorrupt unless the stream holds exactly count symbols.
func (c *PackedRLE) Decode(encoded []byte, count int) ([]byte, error) {
	output, err := outputBuffer(c.Name(), count)
	if err != nil {
		return nil, err
	}
	for i, value := range encoded {
		length := int(value>>packedSymbolBits) + 1
		if length > c.maxChain {
			return nil, corruptf(c.Name(), "run of %d at offset %d exceeds max chain %d", length, i, c.maxChain)
		}
		symbol := value & (packedAlphabet - 1)
		for range length {
			output = append(output, symbol)
		}
		if len(output) > count {
			break
		}
	}
	return checkCount(c.Name(), output, count)
}
