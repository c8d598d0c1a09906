// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides cartpack's CBOR encoding configuration.
//
// cartpack uses two serialization formats:
//
//   - JSON for CLI output (--json) and the JSONC configuration form.
//   - CBOR for intermediate files: quantized rasters written by
//     "cartpack quantize" and read back by "cartpack splice".
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same raster always serializes to the same bytes, so a raster file's
// BLAKE3 digest identifies its content.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For files and pipes, [NewEncoder] and [NewDecoder] wrap an
// io.Writer or io.Reader.
//
// # Struct tags
//
// A `cbor` tag marks a type that is only ever written as CBOR. A
// `json` tag marks a type that is written as both: fxamacker/cbor
// falls back to `json` tags when `cbor` tags are absent. Never put
// both on one field.
package codec
