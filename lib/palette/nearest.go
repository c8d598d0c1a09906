// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package palette

// Distance returns the squared Euclidean distance between two colors
// in RGB space.
func Distance(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Nearest returns the index of the entry in colors closest to c. Ties
// go to the lowest index. Returns -1 for an empty palette.
func Nearest(colors []Color, c Color) int {
	best := -1
	bestDistance := 0
	for i, candidate := range colors {
		distance := Distance(candidate, c)
		if best < 0 || distance < bestDistance {
			best = i
			bestDistance = distance
			if distance == 0 {
				break
			}
		}
	}
	return best
}

// Scale multiplies each channel by factor, clamping to [0, 255].
func Scale(c Color, factor float64) Color {
	return Color{R: scaleChannel(c.R, factor), G: scaleChannel(c.G, factor), B: scaleChannel(c.B, factor)}
}

func scaleChannel(v uint8, factor float64) uint8 {
	scaled := int(factor * float64(v))
	if scaled > 255 {
		return 255
	}
	if scaled < 0 {
		return 0
	}
	return uint8(scaled)
}

// Shade builds a remapping table: entry i is the palette index nearest
// to colors[i] scaled by factor. Factors below 1 darken (the engine's
// shadow table uses 0.3), factors above 1 lighten (4.0 for highlights).
func Shade(colors []Color, factor float64) []int {
	table := make([]int, len(colors))
	for i, c := range colors {
		table[i] = Nearest(colors, Scale(c, factor))
	}
	return table
}
