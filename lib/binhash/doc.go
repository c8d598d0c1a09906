// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes BLAKE3 content digests of cartridges and
// raster files.
//
// The pipeline logs the digest of every cartridge it writes, and
// "cartpack inspect" prints it, so two runs can be compared without
// diffing binary files.
//
//   - [HashFile] streams a file through BLAKE3 with constant memory
//   - [HashBytes] hashes an in-memory buffer
//   - [FormatDigest] and [ParseDigest] convert to and from the
//     64-character hex form used in logs and JSON output
//
// This package has no dependencies on other cartpack packages.
package binhash
