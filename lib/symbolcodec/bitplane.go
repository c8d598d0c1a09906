// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package symbolcodec

// Bitplane slices every symbol into three 2-bit fields (bits 0-1, 2-3,
// 4-5) and packs four fields per output byte, low field first:
//
//	f0 | f1<<2 | f2<<4 | f3<<6
//
// The field stream is zero-padded to a multiple of four, so the output
// is exactly ceil(3n/4) bytes.
//
// The layout is lossy: bits 6 and 7 of a symbol are discarded. Any
// byte is accepted, but only palettes of at most 64 colors round-trip.
type Bitplane struct{}

const (
	bitplaneFields    = 3
	bitplaneFieldBits = 2
	bitplaneFieldMask = 1<<bitplaneFieldBits - 1
	fieldsPerByte     = 8 / bitplaneFieldBits

	// BitplaneLosslessAlphabet is the largest alphabet Bitplane
	// reproduces exactly.
	BitplaneLosslessAlphabet = 1 << (bitplaneFields * bitplaneFieldBits)
)

// NewBitplane returns the bitplane packer. It has no parameters.
func NewBitplane() *Bitplane {
	return &Bitplane{}
}

func (*Bitplane) Name() string  { return NameBitplane }
func (*Bitplane) Alphabet() int { return 256 }

// BitplaneSize returns the encoded size of count symbols.
func BitplaneSize(count int) int {
	return (count*bitplaneFields + fieldsPerByte - 1) / fieldsPerByte
}

// Encode packs the low 6 bits of each symbol as three 2-bit fields,
// four fields per byte. Higher bits are dropped.
func (c *Bitplane) Encode(symbols []byte) ([]byte, error) {
	output := make([]byte, BitplaneSize(len(symbols)))
	field := 0
	for _, symbol := range symbols {
		for plane := range bitplaneFields {
			value := (symbol >> (plane * bitplaneFieldBits)) & bitplaneFieldMask
			output[field/fieldsPerByte] |= value << ((field % fieldsPerByte) * bitplaneFieldBits)
			field++
		}
	}
	return output, nil
}

// Decode recovers the low 6 bits of each symbol. encoded must be
// exactly BitplaneSize(count) bytes.
func (c *Bitplane) Decode(encoded []byte, count int) ([]byte, error) {
	if count < 0 {
		return nil, corruptf(c.Name(), "negative symbol count %d", count)
	}
	if len(encoded) != BitplaneSize(count) {
		return nil, corruptf(c.Name(), "%d bytes cannot hold exactly %d symbols", len(encoded), count)
	}
	output := make([]byte, count)
	field := 0
	for i := range output {
		var symbol byte
		for plane := range bitplaneFields {
			value := (encoded[field/fieldsPerByte] >> ((field % fieldsPerByte) * bitplaneFieldBits)) & bitplaneFieldMask
			symbol |= value << (plane * bitplaneFieldBits)
			field++
		}
		output[i] = symbol
	}
	return output, nil
}
