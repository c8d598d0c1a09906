// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartridge

import (
	"fmt"

	"github.com/bureau-foundation/cartpack/lib/palette"
)

// Data reassembles the encoded stream Build split across the tiles,
// sprites and map chunks. The first chunk of each type is used; a
// missing type ends the stream.
func Data(chunks []Chunk) []byte {
	var data []byte
	for _, chunkType := range []ChunkType{ChunkTiles, ChunkSprites, ChunkMap} {
		chunk, ok := find(chunks, chunkType)
		if !ok {
			break
		}
		data = append(data, chunk.Payload...)
	}
	return data
}

// PaletteColors decodes the first palette chunk into its 16 colors.
func PaletteColors(chunks []Chunk) ([]palette.Color, error) {
	chunk, ok := find(chunks, ChunkPalette)
	if !ok {
		return nil, fmt.Errorf("cartridge has no palette chunk")
	}
	if len(chunk.Payload) != palette.BankSize {
		return nil, fmt.Errorf("palette chunk is %d bytes, want %d", len(chunk.Payload), palette.BankSize)
	}
	colors := make([]palette.Color, palette.BankColors)
	for i := range colors {
		colors[i] = palette.Color{R: chunk.Payload[i*3], G: chunk.Payload[i*3+1], B: chunk.Payload[i*3+2]}
	}
	return colors, nil
}

func find(chunks []Chunk, chunkType ChunkType) (Chunk, bool) {
	for _, chunk := range chunks {
		if chunk.Type == chunkType {
			return chunk, true
		}
	}
	return Chunk{}, false
}
