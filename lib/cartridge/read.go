// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartridge

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Read parses chunks from r until end of stream. A stream that ends
// between chunks is well-formed; one that ends inside a header or
// payload fails with *TruncatedContainerError.
func Read(r io.Reader) ([]Chunk, error) {
	var chunks []Chunk
	var offset int64
	var header [headerSize]byte
	for {
		n, err := io.ReadFull(r, header[:])
		if err == io.EOF {
			return chunks, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncatedContainerError{Offset: offset, Header: true, Want: headerSize, Got: n}
		}
		if err != nil {
			return nil, fmt.Errorf("reading chunk header at offset %d: %w", offset, err)
		}

		chunkType, bank, length := ParseHeader(binary.LittleEndian.Uint32(header[:]))
		payload := make([]byte, length)
		n, err = io.ReadFull(r, payload)
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncatedContainerError{Offset: offset, Type: chunkType, Want: length, Got: n}
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s chunk payload at offset %d: %w", chunkType, offset, err)
		}

		chunks = append(chunks, Chunk{Type: chunkType, Bank: bank, Payload: payload})
		offset += int64(headerSize + length)
	}
}

// ReadFile reads every chunk of the cartridge at path.
func ReadFile(path string) ([]Chunk, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cartridge: %w", err)
	}
	defer file.Close()

	chunks, err := Read(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return chunks, nil
}
