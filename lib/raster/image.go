// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/bureau-foundation/cartpack/lib/palette"
)

// Projection selects how Resample maps a source image onto the
// raster.
type Projection string

const (
	// Flat resizes the source image directly.
	Flat Projection = "flat"
	// Cylinder warps an equirectangular map onto a cylinder.
	Cylinder Projection = "cylinder"
)

// Projections lists the supported projections.
func Projections() []Projection {
	return []Projection{Flat, Cylinder}
}

// Load decodes the image at path, applying any EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}
	return img, nil
}

// Resample produces a width×height image from img.
func Resample(img image.Image, width, height int, projection Projection) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resample size %dx%d is empty", width, height)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("source image is empty")
	}
	switch projection {
	case Flat:
		return imaging.Resize(img, width, height, imaging.CatmullRom), nil
	case Cylinder:
		return cylinder(img, width, height), nil
	default:
		return nil, fmt.Errorf("unknown projection %q", projection)
	}
}

// CylinderRows returns the source row boundaries for a cylinder warp
// of a sourceHeight-row map onto height output rows. Output row y
// covers source rows [rows[y], rows[y+1]). The boundaries follow
// asin, so rows near the poles cover more of the source than rows at
// the equator. rows[0] is 0 and rows[height] is sourceHeight.
func CylinderRows(height, sourceHeight int) []float64 {
	rows := make([]float64, height+1)
	for y := 1; y <= height; y++ {
		position := float64(y)/float64(height)*2 - 1
		rows[y] = math.Asin(position)/math.Pi*float64(sourceHeight) + float64(sourceHeight)/2
	}
	rows[height] = float64(sourceHeight)
	return rows
}

// cylinder resizes img horizontally to width, then box-filters the
// source rows between consecutive CylinderRows boundaries into each
// output row.
func cylinder(img image.Image, width, height int) *image.NRGBA {
	sourceHeight := img.Bounds().Dy()
	wide := imaging.Resize(img, width, sourceHeight, imaging.CatmullRom)
	rows := CylinderRows(height, sourceHeight)

	output := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		top, bottom := rows[y], rows[y+1]
		for x := range width {
			var sum [4]float64
			var total float64
			first := int(math.Floor(top))
			last := min(int(math.Ceil(bottom)), sourceHeight)
			for row := first; row < last; row++ {
				weight := math.Min(bottom, float64(row+1)) - math.Max(top, float64(row))
				if weight <= 0 {
					continue
				}
				offset := wide.PixOffset(x, row)
				for channel := range sum {
					sum[channel] += weight * float64(wide.Pix[offset+channel])
				}
				total += weight
			}
			if total == 0 {
				row := min(max(first, 0), sourceHeight-1)
				output.SetNRGBA(x, y, wide.NRGBAAt(x, row))
				continue
			}
			output.SetNRGBA(x, y, color.NRGBA{
				R: uint8(math.Round(sum[0] / total)),
				G: uint8(math.Round(sum[1] / total)),
				B: uint8(math.Round(sum[2] / total)),
				A: uint8(math.Round(sum[3] / total)),
			})
		}
	}
	return output
}

// Quantize maps every pixel of img to the nearest color in colors,
// without dithering. Alpha is ignored.
func Quantize(img image.Image, colors []palette.Color) (*Raster, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("quantizing to an empty palette")
	}
	if len(colors) > palette.MaxColors {
		return nil, &palette.TooManyColorsError{Count: len(colors)}
	}

	bounds := img.Bounds()
	r := &Raster{
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Palette: append([]palette.Color(nil), colors...),
		Symbols: make([]byte, bounds.Dx()*bounds.Dy()),
	}
	nearest := make(map[palette.Color]byte)
	index := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			key := palette.Color{R: pixel.R, G: pixel.G, B: pixel.B}
			symbol, ok := nearest[key]
			if !ok {
				symbol = byte(palette.Nearest(colors, key))
				nearest[key] = symbol
			}
			r.Symbols[index] = symbol
			index++
		}
	}
	return r, nil
}
