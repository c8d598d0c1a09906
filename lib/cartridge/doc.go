// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cartridge reads and rewrites tagged-chunk cartridge files.
//
// A cartridge is a sequence of chunks ending at end of file. There is
// no magic number, trailer or checksum. Each chunk is a 4-byte
// little-endian header word h followed by exactly length payload bytes:
//
//	type   = h & 0x1f       (5 bits)
//	bank   = (h >> 5) & 0x7 (3 bits)
//	length = h >> 8
//
// Rewriting keeps every chunk whose type this tool does not own
// byte-for-byte and in order, then appends a fresh palette chunk and
// up to three data chunks:
//
//	passthrough... | palette (48 bytes) | tiles | sprites? | map?
//
// The encoded symbol stream fills tiles first (8192 bytes), then
// sprites (8192), then map (32640), with no per-chunk framing beyond
// the chunk header. A stream that does not fit fails with
// [*ContainerOverflowError] before any output file is created. A
// damaged input fails with [*TruncatedContainerError].
//
// Files are opened one at a time and closed on every path; output is
// written to a temporary file in the destination directory and renamed
// into place.
package cartridge
