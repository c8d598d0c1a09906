// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package palette packs ordered color lists into the fixed 768-byte RGB
// table stored in cartridge palette chunks, and provides the
// nearest-color lookups used by the quantizer.
//
// A [Table] holds 256 (R,G,B) triples. Cartridges store 16-color banks
// of it (48 bytes each); [Table.Bank] returns one bank. [Pack] fails
// with [*TooManyColorsError] rather than truncating a palette that does
// not fit.
//
// Nothing in this package holds process-wide state: [Default] returns a
// fresh slice on every call.
//
// This package depends on no other cartpack packages.
package palette
