// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartridge

// ChunkSummary describes one chunk for listings and logs.
type ChunkSummary struct {
	Index  int    `json:"index"`
	Offset int64  `json:"offset"`
	Type   uint8  `json:"type"`
	Name   string `json:"name"`
	Bank   uint8  `json:"bank"`
	Size   int    `json:"size"`
	Owned  bool   `json:"owned"`
}

// Summarize lists each chunk with its file offset, as laid out by
// Write.
func Summarize(chunks []Chunk) []ChunkSummary {
	summaries := make([]ChunkSummary, len(chunks))
	var offset int64
	for i, chunk := range chunks {
		summaries[i] = ChunkSummary{
			Index:  i,
			Offset: offset,
			Type:   uint8(chunk.Type),
			Name:   chunk.Type.String(),
			Bank:   chunk.Bank,
			Size:   len(chunk.Payload),
			Owned:  Owned(chunk.Type),
		}
		offset += int64(chunk.Size())
	}
	return summaries
}
