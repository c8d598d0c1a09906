// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	// MaxColors is the number of entries a Table can hold.
	MaxColors = 256

	// TableSize is the byte length of a packed Table.
	TableSize = MaxColors * 3

	// BankColors is the number of colors in one cartridge palette bank.
	BankColors = 16

	// BankSize is the byte length of one palette bank.
	BankSize = BankColors * 3

	// Banks is the number of banks in a Table.
	Banks = TableSize / BankSize
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color with full opacity.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Table is a packed palette: 256 RGB triples, zero-padded.
type Table [TableSize]byte

// TooManyColorsError is returned by Pack when the color list does not
// fit in a Table.
type TooManyColorsError struct {
	Count int
}

func (e *TooManyColorsError) Error() string {
	return fmt.Sprintf("palette has %d colors, at most %d fit in a table", e.Count, MaxColors)
}

// Pack writes each color's R, G and B bytes into a Table in input
// order. Bytes past the last color are zero.
func Pack(colors []Color) (Table, error) {
	var table Table
	if len(colors) > MaxColors {
		return table, &TooManyColorsError{Count: len(colors)}
	}
	for i, c := range colors {
		table[i*3] = c.R
		table[i*3+1] = c.G
		table[i*3+2] = c.B
	}
	return table, nil
}

// Bank returns the 48-byte sub-slice holding colors [16n, 16n+16).
// Panics if n is outside [0, Banks).
func (t *Table) Bank(n int) []byte {
	if n < 0 || n >= Banks {
		panic(fmt.Sprintf("palette: bank %d out of range [0, %d)", n, Banks))
	}
	return t[n*BankSize : (n+1)*BankSize]
}

// Color returns entry i of the table.
func (t *Table) Color(i int) Color {
	return Color{R: t[i*3], G: t[i*3+1], B: t[i*3+2]}
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(trimmed) != 6 {
		return Color{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	value, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(value >> 16), G: uint8(value >> 8), B: uint8(value)}, nil
}

// ParseHexList parses every entry with ParseHex. The error names the
// index of the first bad entry.
func ParseHexList(values []string) ([]Color, error) {
	colors := make([]Color, 0, len(values))
	for i, value := range values {
		c, err := ParseHex(value)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// Palette converts colors to a color.Palette for image encoding.
func Palette(colors []Color) color.Palette {
	result := make(color.Palette, len(colors))
	for i, c := range colors {
		result[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return result
}

// Default returns the 31-color globe palette the tool ships with. The
// slice is freshly allocated; callers may modify it.
func Default() []Color {
	hex := []string{
		"#000000", "#040531", "#0d0b37", "#15143c",
		"#28294d", "#153b06", "#fad698", "#464766",
		"#3c5316", "#2a5a10", "#5b5a2b", "#725c36",
		"#f7fcac", "#8086a2", "#000010", "#09090a",
		"#a18256", "#c9cbd3", "#868898", "#84915a",
		"#d47b54", "#a6a494", "#c8a375", "#a7aab2",
		"#e5c49d", "#f4f5f3", "#cfcbc2", "#2a350c",
		"#64667f", "#596d32", "#f6eccd",
	}
	colors, err := ParseHexList(hex)
	if err != nil {
		panic("palette: default palette: " + err.Error())
	}
	return colors
}

// DefaultHex returns Default formatted with Color.Hex.
func DefaultHex() []string {
	colors := Default()
	result := make([]string, len(colors))
	for i, c := range colors {
		result[i] = c.Hex()
	}
	return result
}
