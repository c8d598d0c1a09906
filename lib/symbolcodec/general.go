// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package symbolcodec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// general wraps a byte-oriented compressor as a Codec with a 256-symbol
// alphabet. These are not tuned for palette indices; they exist so the
// symbol codecs can be compared against mainstream compressors on the
// same input.
type general struct {
	name       string
	compress   func([]byte) ([]byte, error)
	decompress func([]byte, int) ([]byte, error)
}

// General returns the general-purpose codec registered under name:
// "none", "zstd" or "lz4".
func General(name string) (Codec, error) {
	switch name {
	case NameNone:
		return &general{name: name, compress: storeNone, decompress: loadNone}, nil
	case NameZstd:
		return &general{name: name, compress: compressZstd, decompress: decompressZstd}, nil
	case NameLZ4:
		return &general{name: name, compress: compressLZ4, decompress: decompressLZ4}, nil
	default:
		return nil, fmt.Errorf("unknown general codec %q", name)
	}
}

func (g *general) Name() string  { return g.name }
func (g *general) Alphabet() int { return 256 }

// Encode compresses symbols with the wrapped compressor.
func (g *general) Encode(symbols []byte) ([]byte, error) {
	return g.compress(symbols)
}

// Decode decompresses encoded and fails with ErrCorrupt unless the
// result is exactly count symbols. A negative count is ErrCorrupt.
func (g *general) Decode(encoded []byte, count int) ([]byte, error) {
	if count < 0 {
		return nil, corruptf(g.name, "negative symbol count %d", count)
	}
	decoded, err := g.decompress(encoded, count)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", g.name, ErrCorrupt, err)
	}
	return checkCount(g.name, decoded, count)
}

func storeNone(symbols []byte) ([]byte, error) {
	return bytes.Clone(symbols), nil
}

func loadNone(encoded []byte, _ int) ([]byte, error) {
	return bytes.Clone(encoded), nil
}

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. Both are safe for concurrent use
// through EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		panic("symbolcodec: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		panic("symbolcodec: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(symbols []byte) ([]byte, error) {
	return zstdEncoder.EncodeAll(symbols, nil), nil
}

func decompressZstd(encoded []byte, count int) ([]byte, error) {
	return zstdDecoder.DecodeAll(encoded, make([]byte, 0, min(count, maxReserve)))
}

// LZ4 uses the frame format rather than raw blocks: a block that does
// not compress is stored verbatim inside the frame, so every input has
// a decodable encoding.

func compressLZ4(symbols []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if err := writer.Apply(lz4.BlockSizeOption(lz4.Block64Kb), lz4.CompressionLevelOption(lz4.Level9)); err != nil {
		return nil, fmt.Errorf("lz4 options: %w", err)
	}
	if _, err := writer.Write(symbols); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buffer.Bytes(), nil
}

func decompressLZ4(encoded []byte, count int) ([]byte, error) {
	reader := lz4.NewReader(bytes.NewReader(encoded))
	output := bytes.NewBuffer(make([]byte, 0, min(count, maxReserve)))
	if _, err := io.Copy(output, reader); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}
