// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartridge

import "fmt"

// TruncatedContainerError reports a cartridge that ends inside a chunk
// header or payload. Offset is the file offset of the damaged chunk's
// header.
type TruncatedContainerError struct {
	Offset int64
	Type   ChunkType
	Want   int
	Got    int
	// Header is true when the file ends inside the 4-byte header
	// itself; Type is then meaningless.
	Header bool
}

func (e *TruncatedContainerError) Error() string {
	if e.Header {
		return fmt.Sprintf("truncated cartridge: chunk header at offset %d has %d of %d bytes",
			e.Offset, e.Got, e.Want)
	}
	return fmt.Sprintf("truncated cartridge: %s chunk at offset %d declares %d payload bytes, %d present",
		e.Type, e.Offset, e.Want, e.Got)
}

// ContainerOverflowError reports an encoded payload that does not fit
// the chunks available for it. Chunk is the chunk that would have had
// to hold the excess. The caller must choose a stronger codec or a
// smaller raster; retrying unchanged cannot succeed.
type ContainerOverflowError struct {
	Chunk    ChunkType
	Size     int
	Capacity int
}

func (e *ContainerOverflowError) Error() string {
	return fmt.Sprintf("payload of %d bytes exceeds %s capacity of %d bytes",
		e.Size, e.Chunk, e.Capacity)
}
