// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package symbolcodec provides interchangeable lossless (and one
// deliberately lossy) encoders for streams of small palette indices.
//
// A symbol stream is a []byte holding one palette index per byte in
// row-major order, the same layout as image.Paletted.Pix. Every codec
// implements [Codec]:
//
//	codec, err := symbolcodec.New("lzw", symbolcodec.Options{})
//	encoded, err := codec.Encode(symbols)
//	decoded, err := codec.Decode(encoded, len(symbols))
//
// The algorithms and their byte layouts:
//
//   - [EscapeRLE] ("escape-rle"): literals below 32, runs as the pair
//     (length+32, symbol).
//   - [PackedRLE] ("packed-rle"): one byte per run,
//     ((length-1)<<5)|symbol.
//   - [Bitplane] ("bitplane"): three 2-bit fields per symbol, four
//     fields per byte. Lossy: only the low 6 bits of a symbol survive.
//   - [LZW] ("lzw"): dictionary codes, 2 bytes big-endian each.
//   - [Window] ("window"): LZ77 literals (1 byte, high bit clear) and
//     back-references (2 bytes, high bit set).
//   - "none", "zstd" and "lz4": general-purpose byte compressors, kept
//     as baselines for comparing the symbol codecs.
//
// Codecs are immutable once constructed and safe for concurrent use.
// A symbol at or above a codec's alphabet fails with
// [*AlphabetOverflowError]; malformed encoded input fails with an
// error wrapping [ErrCorrupt]. Decode takes the expected symbol count
// because callers always know width × height, and the bit-packed
// layouts cannot recover it on their own.
//
// This package depends on no other cartpack packages.
package symbolcodec
