// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipeline drives a full conversion: source image or raster
// file in, rewritten cartridge out.
//
// [Convert] runs the stages in order, checking the context between
// them:
//
//  1. Obtain symbols: decode, resample and quantize an image
//     (lib/raster), or read a previously quantized raster file.
//  2. Optionally save the raster (CBOR) and a PNG preview.
//  3. Pack the raster's palette into a 768-byte table (lib/palette).
//  4. Encode the symbols with the configured codec
//     (lib/symbolcodec), then decode the result and compare, so a
//     lossy codec never silently corrupts a raster.
//  5. Splice palette and payload into the cartridge
//     (lib/cartridge.Rewrite), atomically.
//  6. Hash the written cartridge (lib/binhash).
//
// Every stage logs through the caller's *slog.Logger. A nil logger
// discards output.
package pipeline
