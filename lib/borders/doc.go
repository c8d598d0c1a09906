// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package borders converts the straight segments of SVG border paths
// into a point table and a segment list on the globe raster's pixel
// grid, for drawing country outlines over the rotating map.
//
// Points are deduplicated in first-seen order and numbered from 1, so
// the tables can be emitted as Lua arrays ([Table.WriteLua]) and
// indexed directly by the cartridge code. Only line segments (L, H, V
// and the implicit lines after M) are kept; curves, arcs and closepath
// move the pen without producing segments.
package borders
