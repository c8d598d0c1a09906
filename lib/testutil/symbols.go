// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "math/rand/v2"

// RandomSymbols returns count symbols drawn uniformly from
// [0, alphabet). The same seed always yields the same stream.
func RandomSymbols(seed uint64, count, alphabet int) []byte {
	generator := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	symbols := make([]byte, count)
	for i := range symbols {
		symbols[i] = byte(generator.IntN(alphabet))
	}
	return symbols
}

// RunSymbols returns count symbols made of runs whose lengths are drawn
// from [1, maxRun] and whose values are drawn from [0, alphabet).
// Adjacent runs may share a value, as they do in real images.
func RunSymbols(seed uint64, count, alphabet, maxRun int) []byte {
	generator := rand.New(rand.NewPCG(seed, seed^0x6a09e667f3bcc909))
	symbols := make([]byte, 0, count)
	for len(symbols) < count {
		value := byte(generator.IntN(alphabet))
		length := min(1+generator.IntN(maxRun), count-len(symbols))
		for range length {
			symbols = append(symbols, value)
		}
	}
	return symbols
}

// Repeat returns count copies of value.
func Repeat(value byte, count int) []byte {
	symbols := make([]byte, count)
	for i := range symbols {
		symbols[i] = value
	}
	return symbols
}
