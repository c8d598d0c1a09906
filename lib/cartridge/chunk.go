// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartridge

import (
	"encoding/binary"
	"fmt"
)

// ChunkType is the 5-bit tag identifying a chunk's role.
type ChunkType uint8

// Chunk types. Only palette, tiles, sprites and map are written by this
// package; the others are named for inspection output and passed
// through untouched.
const (
	ChunkTiles    ChunkType = 1
	ChunkSprites  ChunkType = 2
	ChunkCover    ChunkType = 3
	ChunkMap      ChunkType = 4
	ChunkCode     ChunkType = 5
	ChunkFlags    ChunkType = 6
	ChunkSamples  ChunkType = 9
	ChunkWaveform ChunkType = 10
	ChunkPalette  ChunkType = 12
	ChunkMusic    ChunkType = 14
	ChunkPatterns ChunkType = 15
	ChunkCodeZip  ChunkType = 16
	ChunkDefault  ChunkType = 17
	ChunkScreen   ChunkType = 18
	ChunkBinary   ChunkType = 19
)

const (
	// MaxPayloadSize is the largest length the header word can carry.
	MaxPayloadSize = 1<<24 - 1

	maxChunkType ChunkType = 0x1f
	maxChunkBank           = 0x7
	headerSize             = 4
	lengthShift            = 8
	bankShift              = 5
)

// String returns the chunk type's name, or "unknown(N)".
func (t ChunkType) String() string {
	switch t {
	case ChunkTiles:
		return "tiles"
	case ChunkSprites:
		return "sprites"
	case ChunkCover:
		return "cover"
	case ChunkMap:
		return "map"
	case ChunkCode:
		return "code"
	case ChunkFlags:
		return "flags"
	case ChunkSamples:
		return "samples"
	case ChunkWaveform:
		return "waveform"
	case ChunkPalette:
		return "palette"
	case ChunkMusic:
		return "music"
	case ChunkPatterns:
		return "patterns"
	case ChunkCodeZip:
		return "code_zip"
	case ChunkDefault:
		return "default"
	case ChunkScreen:
		return "screen"
	case ChunkBinary:
		return "binary"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Chunk is one record of a cartridge.
type Chunk struct {
	Type    ChunkType
	Bank    uint8
	Payload []byte
}

// Header packs the chunk's type, bank and payload length into its
// header word.
func (c Chunk) Header() (uint32, error) {
	if c.Type > maxChunkType {
		return 0, fmt.Errorf("chunk type %d does not fit in 5 bits", c.Type)
	}
	if c.Bank > maxChunkBank {
		return 0, fmt.Errorf("chunk bank %d does not fit in 3 bits", c.Bank)
	}
	if len(c.Payload) > MaxPayloadSize {
		return 0, &ContainerOverflowError{Chunk: c.Type, Size: len(c.Payload), Capacity: MaxPayloadSize}
	}
	return uint32(len(c.Payload))<<lengthShift | uint32(c.Bank)<<bankShift | uint32(c.Type), nil
}

// ParseHeader splits a header word into type, bank and payload length.
func ParseHeader(header uint32) (ChunkType, uint8, int) {
	return ChunkType(header & uint32(maxChunkType)),
		uint8(header>>bankShift) & maxChunkBank,
		int(header >> lengthShift)
}

// AppendBinary appends the chunk's header and payload to buffer.
func (c Chunk) AppendBinary(buffer []byte) ([]byte, error) {
	header, err := c.Header()
	if err != nil {
		return buffer, err
	}
	buffer = binary.LittleEndian.AppendUint32(buffer, header)
	return append(buffer, c.Payload...), nil
}

// Size is the number of bytes the chunk occupies on disk.
func (c Chunk) Size() int {
	return headerSize + len(c.Payload)
}
