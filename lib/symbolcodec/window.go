// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package symbolcodec

import (
	"encoding/binary"
	"fmt"
)

// Window is an LZ77-style sliding-window codec. The stream is a
// sequence of tokens:
//
//	0sssssss                    literal symbol s
//	1ooooooo oooollll           copy l+1 symbols from o+1 symbols back
//
// Back-references are big-endian. The offset field is 11 bits, the
// length field 4 bits, which bounds the window at 2048 symbols and
// matches at 16. A copy may overlap the symbols it produces (distance
// smaller than length), which is how long runs compress.
type Window struct {
	alphabet   int
	windowSize int
	maxMatch   int
}

const (
	// MaxWindowSize is the farthest a back-reference can reach.
	MaxWindowSize = 1 << windowOffsetBits

	// MaxWindowMatch is the longest back-reference.
	MaxWindowMatch = 1 << windowLengthBits

	// MaxWindowAlphabet is the largest alphabet literals can carry.
	MaxWindowAlphabet = 0x80

	// DefaultWindowAlphabet is the alphabet used when none is configured.
	DefaultWindowAlphabet = 32

	windowOffsetBits = 11
	windowLengthBits = 4
	windowReference  = 0x8000

	// Matches shorter than this cost more than the literals they
	// replace and are emitted as literals.
	windowMinMatch = 2

	// Candidate positions examined per input position.
	windowMaxSteps = 256

	windowHashSize = MaxWindowAlphabet * MaxWindowAlphabet
)

// NewWindow returns a sliding-window codec. Zero arguments select the
// defaults (alphabet 32, window 2048, match 16). alphabet must be in
// [1, 128], windowSize in [1, 2048] and maxMatch in [2, 16].
func NewWindow(alphabet, windowSize, maxMatch int) (*Window, error) {
	alphabet = valueOrDefault(alphabet, DefaultWindowAlphabet)
	windowSize = valueOrDefault(windowSize, MaxWindowSize)
	maxMatch = valueOrDefault(maxMatch, MaxWindowMatch)
	if alphabet < 1 || alphabet > MaxWindowAlphabet {
		return nil, fmt.Errorf("alphabet %d outside [1, %d]", alphabet, MaxWindowAlphabet)
	}
	if windowSize < 1 || windowSize > MaxWindowSize {
		return nil, fmt.Errorf("window size %d outside [1, %d]", windowSize, MaxWindowSize)
	}
	if maxMatch < windowMinMatch || maxMatch > MaxWindowMatch {
		return nil, fmt.Errorf("max match %d outside [%d, %d]", maxMatch, windowMinMatch, MaxWindowMatch)
	}
	return &Window{alphabet: alphabet, windowSize: windowSize, maxMatch: maxMatch}, nil
}

func (c *Window) Name() string  { return NameWindow }
func (c *Window) Alphabet() int { return c.alphabet }

// WindowSize returns how far back references may reach.
func (c *Window) WindowSize() int { return c.windowSize }

// MaxMatch returns the longest reference the encoder emits.
func (c *Window) MaxMatch() int { return c.maxMatch }

func windowHash(symbols []byte, position int) int {
	return int(symbols[position])*MaxWindowAlphabet + int(symbols[position+1])
}

// Encode emits, at each position, the longest match found in the
// window (earliest-found wins among equal lengths) or a literal.
// Candidates are located through hash chains keyed on the next two
// symbols.
func (c *Window) Encode(symbols []byte) ([]byte, error) {
	if err := checkAlphabet(c.Name(), c.Alphabet(), symbols); err != nil {
		return nil, err
	}

	count := len(symbols)
	head := make([]int32, windowHashSize)
	for i := range head {
		head[i] = -1
	}
	chain := make([]int32, count)
	insert := func(position int) {
		if position+1 >= count {
			return
		}
		key := windowHash(symbols, position)
		chain[position] = head[key]
		head[key] = int32(position)
	}

	output := make([]byte, 0, count)
	for position := 0; position < count; {
		bestLength, bestDistance := 0, 0
		if position+1 < count {
			limit := min(c.maxMatch, count-position)
			candidate := int(head[windowHash(symbols, position)])
			for steps := 0; candidate >= 0 && position-candidate <= c.windowSize && steps < windowMaxSteps; steps++ {
				length := 0
				for length < limit && symbols[candidate+length] == symbols[position+length] {
					length++
				}
				if length > bestLength {
					bestLength, bestDistance = length, position-candidate
					if length == limit {
						break
					}
				}
				candidate = int(chain[candidate])
			}
		}

		if bestLength >= windowMinMatch {
			token := windowReference | uint16(bestDistance-1)<<windowLengthBits | uint16(bestLength-1)
			output = binary.BigEndian.AppendUint16(output, token)
			for offset := range bestLength {
				insert(position + offset)
			}
			position += bestLength
			continue
		}
		output = append(output, symbols[position])
		insert(position)
		position++
	}
	return output, nil
}

// Decode replays literals and back-references. It fails with
// ErrCorrupt unless the stream holds exactly count symbols.
func (c *Window) Decode(encoded []byte, count int) ([]byte, error) {
	output, err := outputBuffer(c.Name(), count)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(encoded); i++ {
		value := encoded[i]
		if value&0x80 == 0 {
			if int(value) >= c.alphabet {
				return nil, corruptf(c.Name(), "literal %d at offset %d outside alphabet %d", value, i, c.alphabet)
			}
			output = append(output, value)
			continue
		}
		if i+1 >= len(encoded) {
			return nil, corruptf(c.Name(), "back-reference at offset %d is truncated", i)
		}
		token := binary.BigEndian.Uint16(encoded[i:])
		i++
		distance := int(token&^windowReference>>windowLengthBits) + 1
		length := int(token&(MaxWindowMatch-1)) + 1
		if distance > len(output) {
			return nil, corruptf(c.Name(), "back-reference at offset %d reaches %d symbols back, only %d decoded",
				i-1, distance, len(output))
		}
		start := len(output) - distance
		for k := range length {
			output = append(output, output[start+k])
		}
		if len(output) > count {
			break
		}
	}
	return checkCount(c.Name(), output, count)
}
