// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartridge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/bureau-foundation/cartpack/lib/palette"
)

// ownedTypes are the chunk types Build writes. Existing chunks of these
// types are dropped by Passthrough.
var ownedTypes = []ChunkType{ChunkPalette, ChunkTiles, ChunkSprites, ChunkMap}

// OwnedTypes returns the chunk types that Build replaces.
func OwnedTypes() []ChunkType {
	return slices.Clone(ownedTypes)
}

// Owned reports whether Build replaces chunks of type t.
func Owned(t ChunkType) bool {
	return slices.Contains(ownedTypes, t)
}

// MaxOwnedChunkSize is the largest payload Build puts in one chunk.
const MaxOwnedChunkSize = 0xffff

// Capacities are the payload sizes of the three data chunks, filled in
// order tiles, sprites, map.
type Capacities struct {
	Primary   int `yaml:"primary" json:"primary"`
	Secondary int `yaml:"secondary" json:"secondary"`
	Tertiary  int `yaml:"tertiary" json:"tertiary"`
}

// DefaultCapacities returns the sizes of the tiles, sprites and map
// regions of a cartridge bank.
func DefaultCapacities() Capacities {
	return Capacities{Primary: 8192, Secondary: 8192, Tertiary: 32640}
}

// Total is the number of payload bytes the three chunks hold together.
func (c Capacities) Total() int {
	return c.Primary + c.Secondary + c.Tertiary
}

// Validate checks each capacity is in [1, MaxOwnedChunkSize].
func (c Capacities) Validate() error {
	var errs []error
	for _, field := range []struct {
		name  string
		value int
	}{{"primary", c.Primary}, {"secondary", c.Secondary}, {"tertiary", c.Tertiary}} {
		if field.value < 1 || field.value > MaxOwnedChunkSize {
			errs = append(errs, fmt.Errorf("%s capacity %d outside [1, %d]", field.name, field.value, MaxOwnedChunkSize))
		}
	}
	return errors.Join(errs...)
}

// Options controls Build.
type Options struct {
	// Capacities bound the three data chunks.
	Capacities Capacities

	// PaletteBank selects which 16-color bank of the palette table is
	// written to the palette chunk.
	PaletteBank int
}

// DefaultOptions returns DefaultCapacities and palette bank 1
// (table bytes [48:96)).
func DefaultOptions() Options {
	return Options{Capacities: DefaultCapacities(), PaletteBank: 1}
}

// Validate checks the capacities and palette bank.
func (o Options) Validate() error {
	err := o.Capacities.Validate()
	if o.PaletteBank < 0 || o.PaletteBank >= palette.Banks {
		err = errors.Join(err, fmt.Errorf("palette bank %d outside [0, %d)", o.PaletteBank, palette.Banks))
	}
	return err
}

// Passthrough returns the chunks Build does not replace, in their
// original order.
func Passthrough(chunks []Chunk) []Chunk {
	kept := make([]Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if !Owned(chunk.Type) {
			kept = append(kept, chunk)
		}
	}
	return kept
}

// SplitData divides data into the primary, secondary and tertiary
// payloads. Secondary and tertiary are nil when data fits in fewer
// chunks. Data beyond the total capacity fails with
// *ContainerOverflowError.
func SplitData(data []byte, capacities Capacities) (primary, secondary, tertiary []byte, err error) {
	if len(data) > capacities.Total() {
		return nil, nil, nil, &ContainerOverflowError{Chunk: ChunkMap, Size: len(data), Capacity: capacities.Total()}
	}
	primary, rest := cut(data, capacities.Primary)
	secondary, rest = cut(rest, capacities.Secondary)
	tertiary, _ = cut(rest, capacities.Tertiary)
	return primary, secondary, tertiary, nil
}

// cut splits data after at most limit bytes. The tail is nil when
// nothing remains.
func cut(data []byte, limit int) ([]byte, []byte) {
	if len(data) <= limit {
		return data, nil
	}
	return data[:limit], data[limit:]
}

// Build assembles an output cartridge: passthrough chunks verbatim,
// then a palette chunk holding one 48-byte bank of table, then data
// split across tiles, sprites and map chunks. The tiles chunk is always
// present; sprites and map only when data spills into them. Every
// chunk Build creates has bank 0.
func Build(passthrough []Chunk, table *palette.Table, data []byte, options Options) ([]Chunk, error) {
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cartridge options: %w", err)
	}
	for i, chunk := range passthrough {
		if Owned(chunk.Type) {
			return nil, fmt.Errorf("passthrough chunk %d is a %s chunk, which Build replaces", i, chunk.Type)
		}
	}

	primary, secondary, tertiary, err := SplitData(data, options.Capacities)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, 0, len(passthrough)+4)
	chunks = append(chunks, passthrough...)
	chunks = append(chunks,
		Chunk{Type: ChunkPalette, Payload: slices.Clone(table.Bank(options.PaletteBank))},
		Chunk{Type: ChunkTiles, Payload: slices.Clone(primary)},
	)
	if secondary != nil {
		chunks = append(chunks, Chunk{Type: ChunkSprites, Payload: slices.Clone(secondary)})
	}
	if tertiary != nil {
		chunks = append(chunks, Chunk{Type: ChunkMap, Payload: slices.Clone(tertiary)})
	}
	return chunks, nil
}

// Marshal serializes chunks into cartridge bytes.
func Marshal(chunks []Chunk) ([]byte, error) {
	size := 0
	for _, chunk := range chunks {
		size += chunk.Size()
	}
	buffer := make([]byte, 0, size)
	for i, chunk := range chunks {
		var err error
		buffer, err = chunk.AppendBinary(buffer)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
	}
	return buffer, nil
}

// Write serializes chunks to w.
func Write(w io.Writer, chunks []Chunk) error {
	data, err := Marshal(chunks)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes chunks to path atomically: the cartridge is written
// to a temporary file in the same directory and renamed over path only
// after it is complete. On failure path is left as it was. An existing
// file keeps its permissions; a new one is created 0644.
func WriteFile(path string, chunks []Chunk) error {
	data, err := Marshal(chunks)
	if err != nil {
		return err
	}

	directory := filepath.Dir(path)
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary cartridge: %w", err)
	}
	temporaryPath := temporary.Name()
	defer func() {
		if temporary != nil {
			temporary.Close()
			os.Remove(temporaryPath)
		}
	}()

	if _, err := temporary.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", temporaryPath, err)
	}
	if err := temporary.Chmod(fileMode(path)); err != nil {
		return fmt.Errorf("setting mode on %s: %w", temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		temporary = nil
		return fmt.Errorf("renaming %s to %s: %w", temporaryPath, path, err)
	}
	temporary = nil
	return nil
}

// fileMode returns the permissions of an existing file at path, or
// 0644 for a new one.
func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0o644
}

// WriteCartridge builds the output cartridge from passthrough chunks,
// a palette table and an encoded data stream, and writes it to path.
// Nothing is written if Build fails.
func WriteCartridge(path string, passthrough []Chunk, table *palette.Table, data []byte, options Options) ([]Chunk, error) {
	chunks, err := Build(passthrough, table, data, options)
	if err != nil {
		return nil, err
	}
	if err := WriteFile(path, chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// Rewrite reads the cartridge at source, replaces its palette and data
// chunks, and writes the result to destination. source and destination
// may be the same path.
func Rewrite(source, destination string, table *palette.Table, data []byte, options Options) ([]Chunk, error) {
	existing, err := ReadFile(source)
	if err != nil {
		return nil, err
	}
	return WriteCartridge(destination, Passthrough(existing), table, data, options)
}
