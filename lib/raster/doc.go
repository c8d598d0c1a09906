// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package raster turns source images into palette-indexed symbol
// grids.
//
// A [Raster] is the unit the rest of cartpack works on: a width, a
// height, the palette its symbols index into, and one symbol per
// pixel in row-major order. The pipeline is:
//
//	img, err := raster.Load("earth.jpg")
//	resampled, err := raster.Resample(img, 427, 136, raster.Cylinder)
//	r, err := raster.Quantize(resampled, palette.Default())
//
// [Load] decodes PNG, JPEG, GIF, BMP and TIFF through
// disintegration/imaging, plus WebP through golang.org/x/image/webp.
//
// [Resample] either resizes the image directly ([Flat]) or warps an
// equirectangular map onto a cylinder ([Cylinder]) so that a sphere
// rendered from the cylinder has even latitude spacing. [CylinderRows]
// exposes the row mapping.
//
// [Quantize] maps every pixel to its nearest palette color with no
// dithering: dithering noise defeats run-length coding.
//
// Rasters persist as deterministic CBOR ([WriteFile], [ReadFile]) so
// quantizing and splicing can run as separate steps, and render to a
// PNG preview with [SavePreview].
package raster
