// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/bureau-foundation/cartpack/lib/codec"
	"github.com/bureau-foundation/cartpack/lib/palette"
)

// Raster is a palette-indexed image. Symbols holds Width×Height
// palette indices in row-major order.
type Raster struct {
	Width   int             `cbor:"width"`
	Height  int             `cbor:"height"`
	Palette []palette.Color `cbor:"palette"`
	Symbols []byte          `cbor:"symbols"`
}

// Validate checks the dimensions match the symbol count and every
// symbol indexes the palette.
func (r *Raster) Validate() error {
	var errs []error
	if r.Width <= 0 || r.Height <= 0 {
		errs = append(errs, fmt.Errorf("raster size %dx%d is empty", r.Width, r.Height))
	} else if len(r.Symbols) != r.Width*r.Height {
		errs = append(errs, fmt.Errorf("raster %dx%d has %d symbols, want %d",
			r.Width, r.Height, len(r.Symbols), r.Width*r.Height))
	}
	if len(r.Palette) == 0 {
		errs = append(errs, fmt.Errorf("raster has no palette"))
	} else if len(r.Palette) > palette.MaxColors {
		errs = append(errs, &palette.TooManyColorsError{Count: len(r.Palette)})
	} else {
		for i, symbol := range r.Symbols {
			if int(symbol) >= len(r.Palette) {
				errs = append(errs, fmt.Errorf("symbol %d at index %d exceeds palette of %d colors",
					symbol, i, len(r.Palette)))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Paletted returns r as an image.Paletted sharing r's symbols.
func (r *Raster) Paletted() *image.Paletted {
	return &image.Paletted{
		Pix:     r.Symbols,
		Stride:  r.Width,
		Rect:    image.Rect(0, 0, r.Width, r.Height),
		Palette: palette.Palette(r.Palette),
	}
}

// SavePreview writes r as an image at path; the format follows the
// extension.
func SavePreview(path string, r *Raster) error {
	if err := imaging.Save(r.Paletted(), path); err != nil {
		return fmt.Errorf("saving preview %s: %w", path, err)
	}
	return nil
}

// WriteFile stores r at path as CBOR.
func WriteFile(path string, r *Raster) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("not writing invalid raster: %w", err)
	}
	return codec.WriteFile(path, r)
}

// ReadFile loads a raster written by WriteFile and validates it.
func ReadFile(path string) (*Raster, error) {
	var r Raster
	if err := codec.ReadFile(path, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &r, nil
}
