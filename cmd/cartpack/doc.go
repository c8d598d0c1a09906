// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Cartpack converts images into palette-indexed symbol streams,
// compresses them with a choice of symbol codecs, and splices the
// result into a TIC-80 style cartridge, replacing only its palette,
// tiles, sprites and map chunks.
package main
